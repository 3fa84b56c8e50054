package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shenikar/dispatch_alerts/internal/feed"
	"github.com/shenikar/dispatch_alerts/internal/geofence"
	"github.com/shenikar/dispatch_alerts/internal/metrics"
	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/shenikar/dispatch_alerts/internal/service/mocks"
	"github.com/shenikar/dispatch_alerts/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSweepAfter = 2

type processorFixture struct {
	processor *Processor
	transport *mocks.MockTransport
	units     *tracker.UnitTracker
	ledger    *ShiftLedger
	metrics   *metrics.Metrics
}

func newProcessorFixture(t *testing.T, matcher *geofence.Matcher) *processorFixture {
	m := testMetrics()
	dispatcher, transport := newTestDispatcher(t, m)
	ledger := NewShiftLedger(newMemShiftRepo(), testShiftHour, quietLogger(), at(8, 0))
	watched := []string{"E33", "R33"}
	units := tracker.NewUnitTracker(watched, 7, ledger)
	companions := tracker.NewCompanionTracker(watched)
	return &processorFixture{
		processor: NewProcessor(units, companions, matcher, dispatcher, m, quietLogger(), testSweepAfter),
		transport: transport,
		units:     units,
		ledger:    ledger,
		metrics:   m,
	}
}

func snapshot(incidents ...models.Incident) feed.Snapshot {
	return feed.Snapshot{Incidents: incidents}
}

func TestProcess_NewCallLifecycle(t *testing.T) {
	f := newProcessorFixture(t, nil)
	ctx := context.Background()
	received := time.Date(2026, 3, 10, 6, 45, 0, 0, time.UTC)

	// Первый снимок: уведомление в E33 и LOG, учет вызова и ночного вызова
	f.transport.EXPECT().Send(gomock.Any(), "E33", gomock.Any(), gomock.Any()).Return(int64(1), nil).Times(1)
	f.transport.EXPECT().Send(gomock.Any(), "LOG", gomock.Any(), gomock.Any()).Return(int64(2), nil).Times(1)

	failed := f.processor.Process(ctx, snapshot(call("INC1", received, unitOn("E33", "dispatched"))), at(8, 0))
	require.Zero(t, failed)

	st := f.ledger.Snapshot().Units["E33"]
	assert.Equal(t, int64(1), st.Calls)
	assert.Equal(t, int64(1), st.AfterMidnight)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.ActiveAssignments))

	// Смена статуса: без уведомлений, журнал пополняется
	f.processor.Process(ctx, snapshot(call("INC1", received, unitOn("E33", "enroute"))), at(8, 5))

	a, ok := f.units.Assignment("INC1", "E33")
	require.True(t, ok)
	require.Len(t, a.Events, 2)
	assert.Equal(t, "enroute", a.Events[1].Label)
	assert.Equal(t, int64(1), f.ledger.Snapshot().Units["E33"].Calls)

	// Единица покинула вызов: выезд закрыт, длительность учтена
	f.processor.Process(ctx, snapshot(call("INC1", received, unitOn("X9", "dispatched"))), at(8, 30))

	_, ok = f.units.Assignment("INC1", "E33")
	assert.False(t, ok)
	run, ok := f.units.LastRun("E33")
	require.True(t, ok)
	assert.Equal(t, models.StatusAvailable, run.Events[len(run.Events)-1].Label)
	assert.Equal(t, 30*time.Minute, run.Duration)

	st = f.ledger.Snapshot().Units["E33"]
	assert.Equal(t, int64(1800), st.DurationSec)
	assert.Equal(t, int64(1800), st.MaxSec)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Transitions.WithLabelValues(TransitionCleared)))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Transitions.WithLabelValues(TransitionStatus)))
}

func TestProcess_NewCallAtMostOnce(t *testing.T) {
	f := newProcessorFixture(t, nil)
	inc := call("INC7", at(9, 0), unitOn("R33", "dispatched"))

	f.transport.EXPECT().Send(gomock.Any(), "R33", gomock.Any(), gomock.Any()).Return(int64(1), nil).Times(1)
	f.transport.EXPECT().Send(gomock.Any(), "LOG", gomock.Any(), gomock.Any()).Return(int64(2), nil).Times(1)

	for i := 0; i < 5; i++ {
		f.processor.Process(context.Background(), snapshot(inc), at(9, i))
	}
	assert.Equal(t, int64(0), f.ledger.Snapshot().Units["R33"].AfterMidnight)
}

func TestProcess_UntrackedCallIsSilent(t *testing.T) {
	f := newProcessorFixture(t, nil)
	f.transport.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	f.processor.Process(context.Background(), snapshot(call("INC8", at(9, 0), unitOn("X1", "dispatched"))), at(9, 0))

	assert.Empty(t, f.ledger.Snapshot().Units)
	assert.Equal(t, 1, f.units.ActiveCount())
}

func TestProcess_CompanionSwap(t *testing.T) {
	f := newProcessorFixture(t, nil)
	ctx := context.Background()

	gomock.InOrder(
		f.transport.EXPECT().Send(gomock.Any(), "E33", gomock.Any(), gomock.Any()).Return(int64(1), nil),
		f.transport.EXPECT().Send(gomock.Any(), "LOG", gomock.Any(), gomock.Any()).Return(int64(2), nil),
		f.transport.EXPECT().Send(gomock.Any(), "E33", "SUNSTAR 102 ADDED TO CALL", "").Return(int64(3), nil),
		f.transport.EXPECT().Send(gomock.Any(), "E33", "SUNSTAR 101 REMOVED FROM THE CALL", "").Return(int64(4), nil),
	)

	// Первое наблюдение сопровождающей не уведомляется
	f.processor.Process(ctx, snapshot(call("INC2", at(10, 0), unitOn("E33", "dispatched"), unitOn("101", "dispatched"))), at(10, 0))
	f.processor.Process(ctx, snapshot(call("INC2", at(10, 0), unitOn("E33", "dispatched"), unitOn("101", "dispatched"))), at(10, 1))
	f.processor.Process(ctx, snapshot(call("INC2", at(10, 0), unitOn("E33", "dispatched"), unitOn("102", "dispatched"))), at(10, 2))
}

func TestProcess_SweepAfterRepeatedAbsence(t *testing.T) {
	f := newProcessorFixture(t, nil)
	ctx := context.Background()
	f.transport.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil).Times(2)
	other := call("INC9", at(11, 0), unitOn("X1", "dispatched"))

	f.processor.Process(ctx, snapshot(call("INC3", at(11, 0), unitOn("E33", "dispatched"))), at(11, 0))

	// Неполный и пустой снимки не считаются отсутствием
	f.processor.Process(ctx, feed.Snapshot{Skipped: 1}, at(11, 5))
	f.processor.Process(ctx, snapshot(), at(11, 10))
	_, ok := f.units.Assignment("INC3", "E33")
	assert.True(t, ok)

	f.processor.Process(ctx, snapshot(other), at(11, 15))
	_, ok = f.units.Assignment("INC3", "E33")
	assert.True(t, ok)

	f.processor.Process(ctx, snapshot(other), at(11, 20))
	_, ok = f.units.Assignment("INC3", "E33")
	assert.False(t, ok)
	assert.Equal(t, 1, f.units.ActiveCount())
	assert.Equal(t, int64(1200), f.ledger.Snapshot().Units["E33"].DurationSec)
}

func TestProcess_BriefFeedGapKeepsRun(t *testing.T) {
	f := newProcessorFixture(t, nil)
	ctx := context.Background()
	f.transport.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil).Times(2)
	inc := call("INC1", at(9, 0), unitOn("E33", "dispatched"))
	other := call("INC9", at(9, 0), unitOn("X1", "dispatched"))

	f.processor.Process(ctx, snapshot(inc), at(9, 0))
	f.processor.Process(ctx, snapshot(), at(9, 1))
	f.processor.Process(ctx, snapshot(other), at(9, 2))
	f.processor.Process(ctx, snapshot(inc, other), at(9, 3))

	// Вызов вернулся: счетчик отсутствия сброшен
	f.processor.Process(ctx, snapshot(other), at(9, 4))

	st := f.ledger.Snapshot().Units["E33"]
	assert.Equal(t, int64(1), st.Calls)
	assert.Zero(t, st.DurationSec)
	a, ok := f.units.Assignment("INC1", "E33")
	require.True(t, ok)
	assert.Equal(t, at(9, 0), a.StartedAt)
	assert.Equal(t, float64(0), testutil.ToFloat64(f.metrics.Transitions.WithLabelValues(TransitionCleared)))
}

func TestProcess_EarlyAlertOncePerPair(t *testing.T) {
	cfg := geofence.Config{"R33": {Grids: []string{"G12*"}}}
	f := newProcessorFixture(t, geofence.NewMatcher(cfg, 100))
	ctx := context.Background()

	inc := call("INC4", at(12, 0), unitOn("X1", "dispatched"))
	inc.Grid = "G1234"

	f.transport.EXPECT().Send(gomock.Any(), "R33", "EARLY: Structure Fire", gomock.Any()).Return(int64(1), nil).Times(1)

	for i := 0; i < 3; i++ {
		f.processor.Process(ctx, snapshot(inc), at(12, i))
	}
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.EarlyAlerts))
}
