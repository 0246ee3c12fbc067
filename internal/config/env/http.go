package env

import (
	"time"

	"reel_engine/internal/config"
)

const (
	httpAddressEnvName     = "HTTP_ADDRESS"
	shutdownTimeoutEnvName = "SHUTDOWN_TIMEOUT"

	defaultHTTPAddress     = ":8080"
	defaultShutdownTimeout = 10 * time.Second
)

type httpConfig struct {
	address         string
	shutdownTimeout time.Duration
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	timeout, err := getEnvDuration(shutdownTimeoutEnvName, defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	return &httpConfig{
		address:         getEnv(httpAddressEnvName, defaultHTTPAddress),
		shutdownTimeout: timeout,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return cfg.address
}

func (cfg *httpConfig) ShutdownTimeout() time.Duration {
	return cfg.shutdownTimeout
}
