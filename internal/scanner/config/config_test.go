package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config-scanner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "notifier:\n  provider: log\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 85.0, cfg.Policy.NuclearConfidence)
	assert.Equal(t, 10, cfg.Policy.MaxAlertsPerDay)
	assert.Equal(t, 0.3, cfg.Policy.SecondaryWeight)
	assert.Equal(t, 0.6, cfg.Policy.MinDirectionRatio)
	assert.Equal(t, 99.0, cfg.Policy.ConfidenceCap)
	assert.Equal(t, 150.0, cfg.Policy.StrongNetThreshold)
	assert.Equal(t, 15000.0, cfg.Sources.Congress.MinAmount)
	assert.Equal(t, 3, cfg.Sources.SEC.ClusterMinSize)
	assert.Equal(t, 4*time.Minute, cfg.Scanner.Timeout)
	assert.Equal(t, 7, cfg.Scanner.SeenRetentionDays)
	assert.True(t, cfg.Ledger.PaperTrading)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
notifier:
  provider: log
policy:
  max_alerts_per_day: 3
scanner:
  timeout: 90s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Policy.MaxAlertsPerDay)
	assert.Equal(t, 90*time.Second, cfg.Scanner.Timeout)
}

func TestValidate_NotifierRequirements(t *testing.T) {
	path := writeConfig(t, "notifier:\n  provider: telegram\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.bot_token")

	path = writeConfig(t, "notifier:\n  provider: pigeon\n")
	_, err = Load(path)
	require.Error(t, err)
}
