package geofence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "e33": {"grids": ["a12", "B3*", " "], "circles": [{"lat": "27.90", "lon": -82.70, "radius_m": 500}]},
  "R33": {"circles": [{"lat": 27.5, "lon": -82.5, "radius_km": 2}]},
  "UNKNOWN": {"grids": ["Z1"]}
}`

func TestParse_JSONFiltersUnknownUnits(t *testing.T) {
	cfg, err := Parse([]byte(sampleJSON), []string{"E33", "R33"})
	require.NoError(t, err)

	require.Len(t, cfg, 2)
	assert.Equal(t, []string{"A12", "B3*"}, cfg["E33"].Grids)
	assert.InDelta(t, 0.5, cfg["E33"].Circles[0].RadiusKm(), 1e-9)
	assert.InDelta(t, 2.0, cfg["R33"].Circles[0].RadiusKm(), 1e-9)
	_, ok := cfg["UNKNOWN"]
	assert.False(t, ok)
}

func TestParse_YAML(t *testing.T) {
	cfg, err := Parse([]byte("E33:\n  grids: [A1]\n"), []string{"E33"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, cfg["E33"].Grids)
}

func TestParse_BadNumber(t *testing.T) {
	_, err := Parse([]byte(`{"E33": {"circles": [{"lat": "north"}]}}`), []string{"E33"})
	assert.Error(t, err)
}

func TestLoad_MissingFileDisables(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"), []string{"E33"})
	require.NoError(t, err)
	assert.Empty(t, cfg)
	assert.False(t, NewMatcher(cfg, 0).Enabled())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geofences.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))

	cfg, err := Load(path, []string{"E33"})
	require.NoError(t, err)
	assert.Len(t, cfg, 1)
}

func TestArea_Contains(t *testing.T) {
	area := Area{
		Grids:   []string{"A12", "B3*"},
		Circles: []Circle{{Lat: 27.9, Lon: -82.7, RadiusM: 500}},
	}

	assert.True(t, area.Contains(models.Incident{Grid: "a12"}))
	assert.False(t, area.Contains(models.Incident{Grid: "A123"}))
	assert.True(t, area.Contains(models.Incident{Grid: "B310"}))
	assert.False(t, area.Contains(models.Incident{Grid: ""}))

	near := models.Incident{Latitude: 27.9020, Longitude: -82.7, HasCoords: true}
	far := models.Incident{Latitude: 27.92, Longitude: -82.7, HasCoords: true}
	assert.True(t, area.Contains(near))
	assert.False(t, area.Contains(far))
	assert.False(t, area.Contains(models.Incident{Latitude: 27.9, Longitude: -82.7}))
}

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 0, HaversineKm(27.9, -82.7, 27.9, -82.7), 1e-9)
	assert.InDelta(t, 111.19, HaversineKm(0, 0, 1, 0), 0.01)
}

func TestMatcher_FiresOncePerPair(t *testing.T) {
	m := NewMatcher(Config{
		"E33": {Grids: []string{"A12"}},
		"R33": {Grids: []string{"A*"}},
	}, 0)
	inc := models.Incident{ID: "INC1", Grid: "A12"}

	alerts := m.Match(inc)
	require.Len(t, alerts, 2)
	assert.Equal(t, "E33", alerts[0].Unit)
	assert.Equal(t, "R33", alerts[1].Unit)

	for i := 0; i < 5; i++ {
		assert.Empty(t, m.Match(inc))
	}

	other := models.Incident{ID: "INC2", Grid: "A12"}
	assert.Len(t, m.Match(other), 2)
}

func TestMatcher_SkipsAssignedUnits(t *testing.T) {
	m := NewMatcher(Config{"E33": {Grids: []string{"A12"}}}, 0)
	inc := models.Incident{ID: "INC1", Grid: "A12", Units: []models.UnitStatus{{ID: "E33", Status: "dispatched"}}}

	assert.Empty(t, m.Match(inc))
	assert.Equal(t, 0, m.Suppressed())
}

func TestMatcher_SuppressionSetBounded(t *testing.T) {
	m := NewMatcher(Config{"E33": {Grids: []string{"A12"}}}, 4)
	for _, id := range []string{"1", "2", "3", "4", "5"} {
		require.Len(t, m.Match(models.Incident{ID: id, Grid: "A12"}), 1)
	}

	assert.Equal(t, 2, m.Suppressed())
	assert.Empty(t, m.Match(models.Incident{ID: "5", Grid: "A12"}))
	assert.Empty(t, m.Match(models.Incident{ID: "4", Grid: "A12"}))
}
