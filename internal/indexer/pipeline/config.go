package pipeline

import (
	"time"
)

type Config struct {
	ChainID             uint64
	MaxConcurrency      int
	ChunkSize           uint64
	Confirmations       uint64
	PollInterval        time.Duration
	ResubscribeDelay    time.Duration
	StartBlock          uint64
	StopOnProviderError bool
}

func (c Config) maxConcurrency() int {
	if c.MaxConcurrency <= 0 {
		return 8
	}
	return c.MaxConcurrency
}

func (c Config) chunkSize() uint64 {
	if c.ChunkSize == 0 {
		return 50
	}
	return c.ChunkSize
}

func (c Config) confirmations() uint64 {
	return c.Confirmations
}

func (c Config) pollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return 12 * time.Second
	}
	return c.PollInterval
}

func (c Config) resubscribeDelay() time.Duration {
	if c.ResubscribeDelay <= 0 {
		return 5 * time.Second
	}
	return c.ResubscribeDelay
}
