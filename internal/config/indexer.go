package config

import "time"

type IndexerConfig struct {
	Enabled             bool
	MaxConcurrency      int
	ChunkSize           uint64
	Confirmations       uint64
	PollInterval        time.Duration
	StartBlock          uint64
	StopOnProviderError bool
}

func loadIndexer() IndexerConfig {
	return IndexerConfig{
		Enabled:             boolenv("INDEXER_ENABLED", false),
		MaxConcurrency:      intEnv("INDEXER_MAX_CONCURRENCY", 8),
		ChunkSize:           u64env("INDEXER_CHUNK_SIZE", 50),
		Confirmations:       u64env("INDEXER_CONFIRMATIONS", 6),
		PollInterval:        durationEnv("INDEXER_POLL_INTERVAL", 12*time.Second),
		StartBlock:          u64env("INDEXER_START_BLOCK", 0),
		StopOnProviderError: boolenv("INDEXER_STOP_ON_PROVIDER_ERROR", false),
	}
}
