package env

import "reel_engine/internal/config"

const (
	logEnvName = "LOG_ENV"

	defaultLogEnv = "production"
)

type logConfig struct {
	env string
}

func NewLogConfig() (config.LogConfig, error) {
	return &logConfig{env: getEnv(logEnvName, defaultLogEnv)}, nil
}

func (cfg *logConfig) Env() string {
	return cfg.env
}
