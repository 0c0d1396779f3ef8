package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/voltquest/internal/shuffle"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.TariffPerKwh.Equal(decimal.RequireFromString("1467.28")))
	assert.Equal(t, 30, cfg.DaysPerMonth)
	assert.Equal(t, 8, cfg.SessionSize)
	assert.Equal(t, 70.0, cfg.PassPercent)
	assert.Equal(t, 50, cfg.HistoryCap)
	assert.Zero(t, cfg.Seed)
	assert.Equal(t, 30*time.Second, cfg.QuestionTime)
	assert.Empty(t, cfg.QuestionBank)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VOLTQUEST_TARIFF_PER_KWH", "1699.53")
	t.Setenv("VOLTQUEST_SESSION_SIZE", "4")
	t.Setenv("VOLTQUEST_SEED", "42")
	t.Setenv("VOLTQUEST_QUESTION_TIME", "45s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "1699.53", cfg.TariffPerKwh.String())
	assert.Equal(t, 4, cfg.SessionSize)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 45*time.Second, cfg.QuestionTime)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unparsable int", "VOLTQUEST_SESSION_SIZE", "many"},
		{"unparsable decimal", "VOLTQUEST_TARIFF_PER_KWH", "cheap"},
		{"zero session", "VOLTQUEST_SESSION_SIZE", "0"},
		{"negative tariff", "VOLTQUEST_TARIFF_PER_KWH", "-1"},
		{"pass above 100", "VOLTQUEST_PASS_PERCENT", "101"},
		{"zero history", "VOLTQUEST_HISTORY_CAP", "0"},
		{"zero days", "VOLTQUEST_DAYS_PER_MONTH", "0"},
		{"zero question time", "VOLTQUEST_QUESTION_TIME", "0s"},
		{"unparsable duration", "VOLTQUEST_QUESTION_TIME", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestConsumptionUsesTariff(t *testing.T) {
	t.Setenv("VOLTQUEST_TARIFF_PER_KWH", "1000")
	t.Setenv("VOLTQUEST_DAYS_PER_MONTH", "31")
	cfg, err := Load()
	require.NoError(t, err)

	cc := cfg.Consumption()
	assert.Equal(t, "1000", cc.TariffPerKwh.String())
	assert.Equal(t, 31, cc.DaysPerMonth)
	assert.NotEmpty(t, cc.Tiers)
}

func TestEngineSeeded(t *testing.T) {
	cfg := &Config{Seed: 7}
	a, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, shuffle.NewSeeded(7).Permutation(10), a.Permutation(10))
}

func TestBank(t *testing.T) {
	cfg := &Config{}
	bank, err := cfg.Bank()
	require.NoError(t, err)
	assert.NotEmpty(t, bank.Questions)

	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"v2.0.0","questions":[]}`), 0o644))
	cfg.QuestionBank = path
	_, err = cfg.Bank()
	assert.Error(t, err)
}
