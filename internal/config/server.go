package config

import "time"

type ServerConfig struct {
	HTTPAddr          string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

func loadServer() ServerConfig {
	return ServerConfig{
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		ReadHeaderTimeout: durationEnv("HTTP_READ_HEADER_TIMEOUT", 10*time.Second),
		ShutdownTimeout:   durationEnv("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}
