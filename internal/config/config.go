package config

type Config struct {
	Chain    ChainConfig
	Database DatabaseConfig
	Indexer  IndexerConfig
	Oracle   OracleConfig
	Registry RegistryConfig
	Server   ServerConfig
	Log      LogConfig
}

// Load reads the environment, after merging a .env file when one exists.
func Load() Config {
	ensureEnvLoaded()
	return Config{
		Chain:    loadChain(),
		Database: loadDatabase(),
		Indexer:  loadIndexer(),
		Oracle:   loadOracle(),
		Registry: loadRegistry(),
		Server:   loadServer(),
		Log:      loadLog(),
	}
}

type RegistryConfig struct {
	// File is an optional JSON overlay merged over the built-in mainnet registry.
	File string
}

func loadRegistry() RegistryConfig {
	return RegistryConfig{File: getenv("REGISTRY_FILE", "")}
}

type LogConfig struct {
	Level string
	JSON  bool
}

func loadLog() LogConfig {
	return LogConfig{
		Level: getenv("LOG_LEVEL", "info"),
		JSON:  boolenv("LOG_JSON", false),
	}
}
