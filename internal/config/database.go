package config

import "strings"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type DatabaseConfig struct {
	Driver      string
	SQLiteDSN   string
	PostgresDSN string
}

func loadDatabase() DatabaseConfig {
	driver := strings.ToLower(getenv("DB_DRIVER", DriverSQLite))
	if driver != DriverPostgres {
		driver = DriverSQLite
	}
	return DatabaseConfig{
		Driver:      driver,
		SQLiteDSN:   getenv("SQLITE_DSN", "./data/inspect.db"),
		PostgresDSN: getenv("POSTGRES_DSN", ""),
	}
}
