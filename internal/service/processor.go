package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/feed"
	"github.com/shenikar/dispatch_alerts/internal/geofence"
	"github.com/shenikar/dispatch_alerts/internal/metrics"
	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/shenikar/dispatch_alerts/internal/tracker"
	"github.com/sirupsen/logrus"
)

// Виды переходов назначения
const (
	TransitionDispatched = "dispatched"
	TransitionStatus     = "status_changed"
	TransitionCleared    = "cleared"
)

// Processor применяет снимок ленты к трекерам и передает события диспетчеру
type Processor struct {
	units      *tracker.UnitTracker
	companions *tracker.CompanionTracker
	geofence   *geofence.Matcher
	dispatcher *Dispatcher
	metrics    *metrics.Metrics
	logger     *logrus.Logger

	// sweepAfter - сколько полных снимков подряд вызов должен отсутствовать до закрытия
	sweepAfter int
	absent     map[string]int
}

// NewProcessor создает обработчик снимков. geofence может быть nil.
// sweepAfter <= 0 отключает закрытие исчезнувших вызовов.
func NewProcessor(
	units *tracker.UnitTracker,
	companions *tracker.CompanionTracker,
	matcher *geofence.Matcher,
	dispatcher *Dispatcher,
	m *metrics.Metrics,
	logger *logrus.Logger,
	sweepAfter int,
) *Processor {
	return &Processor{
		units:      units,
		companions: companions,
		geofence:   matcher,
		dispatcher: dispatcher,
		metrics:    m,
		logger:     logger,
		sweepAfter: sweepAfter,
		absent:     make(map[string]int),
	}
}

// Process обрабатывает вызовы в порядке ленты. Ошибка одного вызова не прерывает остальные.
// Возвращает число вызовов, обработка которых завершилась ошибкой.
func (p *Processor) Process(ctx context.Context, snap feed.Snapshot, now time.Time) int {
	failed := 0
	present := make(map[string]struct{}, len(snap.Incidents))
	for _, inc := range snap.Incidents {
		present[inc.ID] = struct{}{}
		if err := p.processIncident(ctx, inc, now); err != nil {
			failed++
			p.metrics.IncidentErrors.Inc()
			p.logger.WithFields(logrus.Fields{
				"component":   "processor",
				"incident_id": inc.ID,
			}).WithError(err).Error("Incident processing failed")
		}
	}

	p.sweep(ctx, snap, present, now)

	p.metrics.ActiveAssignments.Set(float64(p.units.ActiveCount()))
	return failed
}

// sweep закрывает вызовы, отсутствующие в sweepAfter полных непустых снимках подряд.
// Неполный или пустой снимок не меняет счетчики.
func (p *Processor) sweep(ctx context.Context, snap feed.Snapshot, present map[string]struct{}, now time.Time) {
	if p.sweepAfter <= 0 || !snap.Complete() || len(snap.Incidents) == 0 {
		return
	}

	keep := make(map[string]struct{}, len(present))
	for id := range present {
		keep[id] = struct{}{}
	}
	absent := make(map[string]int)
	for _, a := range p.units.Active() {
		id := a.IncidentID
		if _, ok := present[id]; ok {
			continue
		}
		if _, counted := absent[id]; counted {
			continue
		}
		n := p.absent[id] + 1
		absent[id] = n
		if n < p.sweepAfter {
			keep[id] = struct{}{}
		}
	}
	for id, n := range absent {
		if n >= p.sweepAfter {
			delete(absent, id)
		}
	}
	p.absent = absent

	for _, run := range p.units.Sweep(keep, now) {
		p.cleared(ctx, run, now)
	}
	p.companions.Sweep(keep)
}

func (p *Processor) processIncident(ctx context.Context, inc models.Incident, now time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("service: process incident: panic: %v", r)
		}
	}()

	tr := p.units.Apply(inc, now)
	for _, a := range tr.Dispatched {
		p.metrics.Transitions.WithLabelValues(TransitionDispatched).Inc()
		p.dispatcher.Publish(ctx, models.TrackerEvent{
			Kind:       models.EventDispatched,
			IncidentID: a.IncidentID,
			Unit:       a.UnitID,
			Status:     a.Status,
			At:         a.StartedAt,
		})
	}
	for _, c := range tr.Changed {
		p.metrics.Transitions.WithLabelValues(TransitionStatus).Inc()
		p.dispatcher.Publish(ctx, models.TrackerEvent{
			Kind:       models.EventStatusChanged,
			IncidentID: c.IncidentID,
			Unit:       c.UnitID,
			Status:     c.To,
			At:         c.At,
		})
	}
	for _, run := range tr.Completed {
		p.cleared(ctx, run, now)
	}

	p.dispatcher.NotifyNewCall(ctx, inc, now)

	for _, change := range p.companions.Apply(inc) {
		p.dispatcher.NotifyCompanion(ctx, change, now)
	}

	if p.geofence != nil && p.geofence.Enabled() {
		for _, alert := range p.geofence.Match(inc) {
			p.dispatcher.NotifyEarly(ctx, alert, now)
		}
	}
	return nil
}

func (p *Processor) cleared(ctx context.Context, run models.CompletedRun, now time.Time) {
	p.metrics.Transitions.WithLabelValues(TransitionCleared).Inc()
	p.metrics.RunDuration.Observe(run.Duration.Seconds())
	p.dispatcher.Publish(ctx, models.TrackerEvent{
		Kind:        models.EventCleared,
		IncidentID:  run.IncidentID,
		Unit:        run.UnitID,
		Status:      models.StatusAvailable,
		DurationSec: int64(run.Duration / time.Second),
		At:          now,
	})
}
