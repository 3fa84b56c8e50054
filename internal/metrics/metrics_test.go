package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.FeedFetches.WithLabelValues(FetchOK).Inc()
	m.Notifications.WithLabelValues("new_call", ResultOK).Add(2)
	m.ActiveAssignments.Set(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedFetches.WithLabelValues(FetchOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Notifications.WithLabelValues("new_call", ResultOK)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ActiveAssignments))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "dispatch_feed_fetch_total")
	assert.Contains(t, names, "dispatch_tracker_active_assignments")
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
