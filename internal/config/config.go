// Package config loads runtime settings from VOLTQUEST_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"

	"github.com/abhisek/voltquest/internal/consumption"
	"github.com/abhisek/voltquest/internal/quiz"
	"github.com/abhisek/voltquest/internal/shuffle"
)

// Prefix is prepended to every variable name below.
const Prefix = "VOLTQUEST_"

// Config is the process configuration. Zero Seed means a fresh random seed
// per run.
type Config struct {
	TariffPerKwh decimal.Decimal `env:"TARIFF_PER_KWH" envDefault:"1467.28"`
	DaysPerMonth int             `env:"DAYS_PER_MONTH" envDefault:"30"`
	SessionSize  int             `env:"SESSION_SIZE"   envDefault:"8"`
	PassPercent  float64         `env:"PASS_PERCENT"   envDefault:"70"`
	HistoryCap   int             `env:"HISTORY_CAP"    envDefault:"50"`
	Seed         uint64          `env:"SEED"           envDefault:"0"`

	// QuestionTime is the quiz countdown per question.
	QuestionTime time.Duration `env:"QUESTION_TIME" envDefault:"30s"`

	// QuestionBank is a JSON bank used instead of the embedded one.
	QuestionBank string `env:"QUESTION_BANK"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects non-positive sizes and out-of-range percentages.
func (c *Config) Validate() error {
	switch {
	case !c.TariffPerKwh.IsPositive():
		return fmt.Errorf("config: %sTARIFF_PER_KWH must be positive, got %s", Prefix, c.TariffPerKwh)
	case c.DaysPerMonth <= 0:
		return fmt.Errorf("config: %sDAYS_PER_MONTH must be positive, got %d", Prefix, c.DaysPerMonth)
	case c.SessionSize <= 0:
		return fmt.Errorf("config: %sSESSION_SIZE must be positive, got %d", Prefix, c.SessionSize)
	case c.PassPercent <= 0 || c.PassPercent > 100:
		return fmt.Errorf("config: %sPASS_PERCENT must be in (0,100], got %v", Prefix, c.PassPercent)
	case c.HistoryCap <= 0:
		return fmt.Errorf("config: %sHISTORY_CAP must be positive, got %d", Prefix, c.HistoryCap)
	case c.QuestionTime <= 0:
		return fmt.Errorf("config: %sQUESTION_TIME must be positive, got %s", Prefix, c.QuestionTime)
	}
	return nil
}

// Consumption returns the calculator settings with the configured tariff.
func (c *Config) Consumption() consumption.Config {
	cc := consumption.DefaultConfig()
	cc.TariffPerKwh = c.TariffPerKwh
	cc.DaysPerMonth = c.DaysPerMonth
	return cc
}

// Engine builds the shuffle engine, seeded from Seed when set.
func (c *Config) Engine() (*shuffle.Engine, error) {
	if c.Seed != 0 {
		return shuffle.NewSeeded(c.Seed), nil
	}
	return shuffle.NewRandom()
}

// Bank loads QuestionBank, or the embedded bank when unset.
func (c *Config) Bank() (*quiz.Bank, error) {
	if c.QuestionBank == "" {
		return quiz.DefaultBank()
	}
	return quiz.LoadBankFile(c.QuestionBank)
}
