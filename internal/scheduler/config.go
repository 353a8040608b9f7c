package scheduler

import (
	"time"
)

// Config controls scheduler intervals and batch sizes.
type Config struct {
	RunInterval     time.Duration
	PurgeBatchSize  int
	PurgeGrace      time.Duration
	JobTimeout      time.Duration
}

func DefaultConfig() Config {
	return Config{
		RunInterval:    time.Hour,
		PurgeBatchSize: 200,
		PurgeGrace:     7 * 24 * time.Hour,
		JobTimeout:     time.Minute,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.PurgeBatchSize <= 0 {
		c.PurgeBatchSize = defaults.PurgeBatchSize
	}
	if c.PurgeGrace <= 0 {
		c.PurgeGrace = defaults.PurgeGrace
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	return c
}
