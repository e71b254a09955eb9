package config

import (
	"testing"

	"github.com/Dosada05/finalist-scheduler/timeslot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, dbURL string) {
	t.Helper()
	t.Setenv("DATABASE_URL", dbURL)
	t.Setenv("STORAGE_NAMESPACE", "")
	t.Setenv("SLOT_DURATION_MINUTES", "")
	t.Setenv("NUM_TEAMS_AUTO_SELECTED", "")
	t.Setenv("SCHEDULE_START_TIME", "")
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, "postgres://localhost/finalists")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/finalists", cfg.DatabaseURL)
	assert.Equal(t, "fll.finalists", cfg.StorageNamespace)
	assert.Equal(t, 20, cfg.SlotDurationMinutes)
	assert.Equal(t, 1, cfg.NumTeamsAutoSelected)
	assert.Equal(t, timeslot.NewLocalTime(14, 0), cfg.DefaultStartTime)
}

func TestLoadOverrides(t *testing.T) {
	setEnv(t, "postgres://localhost/finalists")
	t.Setenv("STORAGE_NAMESPACE", "state.test")
	t.Setenv("SLOT_DURATION_MINUTES", "25")
	t.Setenv("NUM_TEAMS_AUTO_SELECTED", "2")
	t.Setenv("SCHEDULE_START_TIME", "09:30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "state.test", cfg.StorageNamespace)
	assert.Equal(t, 25, cfg.SlotDurationMinutes)
	assert.Equal(t, 2, cfg.NumTeamsAutoSelected)
	assert.Equal(t, timeslot.NewLocalTime(9, 30), cfg.DefaultStartTime)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	setEnv(t, "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	setEnv(t, "postgres://localhost/finalists")
	t.Setenv("SLOT_DURATION_MINUTES", "0")
	_, err := Load()
	assert.Error(t, err)

	setEnv(t, "postgres://localhost/finalists")
	t.Setenv("NUM_TEAMS_AUTO_SELECTED", "banana")
	_, err = Load()
	assert.Error(t, err)

	setEnv(t, "postgres://localhost/finalists")
	t.Setenv("SCHEDULE_START_TIME", "25:00")
	_, err = Load()
	assert.Error(t, err)
}
