package cmd_test

import (
	"log/slog"
	"testing"

	"docflow/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "0 * * * * *", cfg.SweepSchedule)
	assert.Equal(t, "none", cfg.OtelExporter)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SWEEP_SCHEDULE", "*/30 * * * * *")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := cmd.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "*/30 * * * * *", cfg.SweepSchedule)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "host=db.internal port=5432 user=postgres password=secret dbname=docflow sslmode=disable", cfg.DSN())
}
