package tracker

import (
	"testing"

	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCompanion(t *testing.T) {
	assert.True(t, IsCompanion("101"))
	assert.False(t, IsCompanion("1010"))
	assert.False(t, IsCompanion("E33"))
	assert.False(t, IsCompanion("10"))
}

func TestCompanionTracker_FirstObservationSilent(t *testing.T) {
	c := NewCompanionTracker([]string{"E33"})

	changes := c.Apply(incident("INC1", base, unit("E33", "dispatched"), unit("101", "dispatched")))
	assert.Empty(t, changes)
	assert.Equal(t, []string{"101"}, c.Companions("INC1", "E33"))

	changes = c.Apply(incident("INC1", base, unit("E33", "onscene"), unit("102", "dispatched")))
	require.Len(t, changes, 2)
	assert.Equal(t, models.CompanionChange{IncidentID: "INC1", PrimaryUnit: "E33", Companion: "102", Added: true}, changes[0])
	assert.Equal(t, models.CompanionChange{IncidentID: "INC1", PrimaryUnit: "E33", Companion: "101", Added: false}, changes[1])
}

func TestCompanionTracker_EmptySetDeletesAndRestartsSilently(t *testing.T) {
	c := NewCompanionTracker([]string{"E33"})
	c.Apply(incident("INC1", base, unit("E33", ""), unit("101", "")))

	changes := c.Apply(incident("INC1", base, unit("E33", "")))
	require.Len(t, changes, 1)
	assert.False(t, changes[0].Added)
	assert.Equal(t, 0, c.Len())

	changes = c.Apply(incident("INC1", base, unit("E33", ""), unit("103", "")))
	assert.Empty(t, changes)
}

func TestCompanionTracker_PrimaryLeavesCleansUp(t *testing.T) {
	c := NewCompanionTracker([]string{"E33", "R33"})
	c.Apply(incident("INC1", base, unit("E33", ""), unit("R33", ""), unit("101", "")))
	assert.Equal(t, 2, c.Len())

	changes := c.Apply(incident("INC1", base, unit("R33", ""), unit("101", "")))
	assert.Empty(t, changes)
	assert.Equal(t, 1, c.Len())
	assert.Empty(t, c.Companions("INC1", "E33"))
}

func TestCompanionTracker_UnwatchedPrimaryIgnored(t *testing.T) {
	c := NewCompanionTracker([]string{"E33"})
	c.Apply(incident("INC1", base, unit("R99", ""), unit("101", "")))
	assert.Equal(t, 0, c.Len())
}

func TestCompanionTracker_Sweep(t *testing.T) {
	c := NewCompanionTracker([]string{"E33"})
	c.Apply(incident("INC1", base, unit("E33", ""), unit("101", "")))
	c.Apply(incident("INC2", base, unit("E33", ""), unit("102", "")))

	c.Sweep(map[string]struct{}{"INC2": {}})
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, []string{"102"}, c.Companions("INC2", "E33"))
}
