package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveStateRepository_DefaultsWhenMissing(t *testing.T) {
	repo := NewLiveStateRepository(filepath.Join(t.TempDir(), "live_state.json"), []string{"LOG", "E33"}, "LOG")

	state, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultLiveState("LOG"), state)
}

func TestLiveStateRepository_RoundTripAndFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live_state.json")
	repo := NewLiveStateRepository(path, []string{"LOG", "E33"}, "LOG")

	state := models.LiveState{
		Active:        true,
		Period:        models.WindowWeek,
		Threads:       []string{"E33", "GONE"},
		MsgIDs:        map[string]int64{"E33": 77},
		NextUpdateSec: 45,
	}
	require.NoError(t, repo.Save(state))

	got, err := repo.Load()
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.Equal(t, models.WindowWeek, got.Period)
	assert.Equal(t, []string{"E33"}, got.Threads)
	assert.Equal(t, int64(77), got.MsgIDs["E33"])
	assert.Equal(t, 45, got.NextUpdateSec)
}

func TestLiveStateRepository_PartialFileMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live_state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"active":true,"period":"fortnight"}`), 0o644))

	got, err := NewLiveStateRepository(path, []string{"LOG"}, "LOG").Load()
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.Equal(t, models.WindowDay, got.Period)
	assert.Equal(t, []string{"LOG"}, got.Threads)
	assert.Equal(t, models.DefaultLiveRefreshSec, got.NextUpdateSec)
	assert.NotNil(t, got.MsgIDs)
}

func TestLiveStateRepository_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live_state.json")
	require.NoError(t, os.WriteFile(path, []byte(`[`), 0o644))

	got, err := NewLiveStateRepository(path, []string{"LOG"}, "LOG").Load()
	assert.Error(t, err)
	assert.Equal(t, models.DefaultLiveState("LOG"), got)
}
