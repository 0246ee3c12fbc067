package config

import (
	"time"

	"reel_engine/internal/model"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
	ShutdownTimeout() time.Duration
}

// PGConfig пустой DSN - журнал в памяти
type PGConfig interface {
	DSN() string
}

// JWTConfig пустой секрет - спин без авторизации
type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	Enabled() bool
}

type RateLimitConfig interface {
	RPS() float64
	Burst() int
}

type LogConfig interface {
	Env() string
}

// PhaseConfig тик и длительность фазы анимации
type PhaseConfig struct {
	TickInterval time.Duration
	Duration     time.Duration
}

type ReelConfig interface {
	Symbols() []model.Symbol
	StartingBalance() int
	Bet() int
	PayoutMultiplier() int
	FastChurn() PhaseConfig
	SlowChurn() PhaseConfig
	HistoryLimit() int
	StatsWindow() int
}
