package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"reel_engine/internal/config"
	"reel_engine/internal/model"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const (
	reelConfigEnvName = "REEL_CONFIG"

	defaultReelConfigPath = "config.yaml"
)

type phaseYAML struct {
	TickMS     int `yaml:"tick_ms"`
	DurationMS int `yaml:"duration_ms"`
}

type reelYAML struct {
	Symbols          []string  `yaml:"symbols"`
	StartingBalance  int       `yaml:"starting_balance"`
	Bet              int       `yaml:"bet"`
	PayoutMultiplier int       `yaml:"payout_multiplier"`
	HistoryLimit     int       `yaml:"history_limit"`
	StatsWindow      int       `yaml:"stats_window"`
	FastChurn        phaseYAML `yaml:"fast_churn"`
	SlowChurn        phaseYAML `yaml:"slow_churn"`
}

type fileYAML struct {
	Reel reelYAML `yaml:"reel"`
}

type reelConfig struct {
	symbols          []model.Symbol
	startingBalance  int
	bet              int
	payoutMultiplier int
	historyLimit     int
	statsWindow      int
	fast             config.PhaseConfig
	slow             config.PhaseConfig
}

// ReelConfigPath путь к файлу барабанов из REEL_CONFIG
func ReelConfigPath() string {
	return getEnv(reelConfigEnvName, defaultReelConfigPath)
}

func NewReelConfigFromYAML(path string) (config.ReelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reel config: %w", err)
	}
	return parseReelConfig(data)
}

func parseReelConfig(data []byte) (config.ReelConfig, error) {
	// значения по умолчанию, файл их переопределяет
	raw := fileYAML{Reel: reelYAML{
		StartingBalance:  1000,
		Bet:              50,
		PayoutMultiplier: 10,
		HistoryLimit:     100,
		StatsWindow:      500,
		FastChurn:        phaseYAML{TickMS: 50, DurationMS: 2000},
		SlowChurn:        phaseYAML{TickMS: 200, DurationMS: 2000},
	}}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse reel config: %w", err)
	}
	r := raw.Reel

	if len(r.Symbols) == 0 {
		return nil, errors.New("reel config: symbols are empty")
	}
	if dup := lo.FindDuplicates(r.Symbols); len(dup) > 0 {
		return nil, fmt.Errorf("reel config: duplicate symbols %v", dup)
	}
	if r.Bet < 0 {
		return nil, fmt.Errorf("reel config: negative bet %d", r.Bet)
	}
	if r.PayoutMultiplier < 0 {
		return nil, fmt.Errorf("reel config: negative payout multiplier %d", r.PayoutMultiplier)
	}
	if r.HistoryLimit <= 0 {
		return nil, fmt.Errorf("reel config: history limit must be positive, got %d", r.HistoryLimit)
	}
	fast, err := toPhase("fast_churn", r.FastChurn)
	if err != nil {
		return nil, err
	}
	slow, err := toPhase("slow_churn", r.SlowChurn)
	if err != nil {
		return nil, err
	}

	return &reelConfig{
		symbols:          lo.Map(r.Symbols, func(s string, _ int) model.Symbol { return model.Symbol(s) }),
		startingBalance:  r.StartingBalance,
		bet:              r.Bet,
		payoutMultiplier: r.PayoutMultiplier,
		historyLimit:     r.HistoryLimit,
		statsWindow:      r.StatsWindow,
		fast:             fast,
		slow:             slow,
	}, nil
}

func toPhase(name string, p phaseYAML) (config.PhaseConfig, error) {
	if p.TickMS <= 0 || p.DurationMS <= 0 {
		return config.PhaseConfig{}, fmt.Errorf("reel config: %s tick and duration must be positive", name)
	}
	return config.PhaseConfig{
		TickInterval: time.Duration(p.TickMS) * time.Millisecond,
		Duration:     time.Duration(p.DurationMS) * time.Millisecond,
	}, nil
}

func (cfg *reelConfig) Symbols() []model.Symbol {
	out := make([]model.Symbol, len(cfg.symbols))
	copy(out, cfg.symbols)
	return out
}

func (cfg *reelConfig) StartingBalance() int {
	return cfg.startingBalance
}

func (cfg *reelConfig) Bet() int {
	return cfg.bet
}

func (cfg *reelConfig) PayoutMultiplier() int {
	return cfg.payoutMultiplier
}

func (cfg *reelConfig) FastChurn() config.PhaseConfig {
	return cfg.fast
}

func (cfg *reelConfig) SlowChurn() config.PhaseConfig {
	return cfg.slow
}

func (cfg *reelConfig) HistoryLimit() int {
	return cfg.historyLimit
}

func (cfg *reelConfig) StatsWindow() int {
	return cfg.statsWindow
}
