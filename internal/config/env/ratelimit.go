package env

import (
	"fmt"

	"reel_engine/internal/config"
)

const (
	rateLimitRPSEnvName   = "RATE_LIMIT_RPS"
	rateLimitBurstEnvName = "RATE_LIMIT_BURST"

	defaultRateLimitRPS   = 5
	defaultRateLimitBurst = 10
)

type rateLimitConfig struct {
	rps   float64
	burst int
}

func NewRateLimitConfig() (config.RateLimitConfig, error) {
	rps, err := getEnvFloat(rateLimitRPSEnvName, defaultRateLimitRPS)
	if err != nil {
		return nil, err
	}
	burst, err := getEnvInt(rateLimitBurstEnvName, defaultRateLimitBurst)
	if err != nil {
		return nil, err
	}
	if rps <= 0 || burst <= 0 {
		return nil, fmt.Errorf("rate limit must be positive: rps=%v burst=%d", rps, burst)
	}

	return &rateLimitConfig{rps: rps, burst: burst}, nil
}

func (cfg *rateLimitConfig) RPS() float64 {
	return cfg.rps
}

func (cfg *rateLimitConfig) Burst() int {
	return cfg.burst
}
