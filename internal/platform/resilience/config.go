package resilience

import "time"

type BreakerConfig struct {
	Enabled           bool
	FailureThreshold  int
	OpenTimeout       time.Duration
	HalfOpenMaxProbes int
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:           true,
		FailureThreshold:  5,
		OpenTimeout:       30 * time.Second,
		HalfOpenMaxProbes: 2,
	}
}

func NormalizeBreakerConfig(cfg BreakerConfig) BreakerConfig {
	defaults := DefaultBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxProbes < 1 {
		cfg.HalfOpenMaxProbes = defaults.HalfOpenMaxProbes
	}
	return cfg
}
