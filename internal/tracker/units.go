package tracker

import (
	"sort"
	"sync"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/models"
)

// StatsRecorder принимает приращения статистики смены по отслеживаемым единицам
type StatsRecorder interface {
	RecordDispatch(unit string, afterMidnight bool)
	RecordCompletion(unit string, d time.Duration)
}

// Transitions - переходы, вызванные применением одного вызова
type Transitions struct {
	Dispatched []models.Assignment
	Changed    []models.StatusChange
	Completed  []models.CompletedRun
}

// Empty сообщает, что переходов нет
func (t Transitions) Empty() bool {
	return len(t.Dispatched) == 0 && len(t.Changed) == 0 && len(t.Completed) == 0
}

// UnitTracker - владелец живых назначений (вызов, единица) и журналов их статусов
type UnitTracker struct {
	mu         sync.RWMutex
	active     map[string]map[string]*models.Assignment
	lastRun    map[string]models.CompletedRun
	watched    map[string]struct{}
	cutoffHour int
	stats      StatsRecorder
}

// NewUnitTracker создает трекер. cutoffHour - час, до которого вызов считается ночным.
func NewUnitTracker(watched []string, cutoffHour int, stats StatsRecorder) *UnitTracker {
	return &UnitTracker{
		active:     make(map[string]map[string]*models.Assignment),
		lastRun:    make(map[string]models.CompletedRun),
		watched:    toSet(watched),
		cutoffHour: cutoffHour,
		stats:      stats,
	}
}

// IsWatched проверяет, входит ли единица в отслеживаемый состав
func (t *UnitTracker) IsWatched(unit string) bool {
	_, ok := t.watched[unit]
	return ok
}

// Apply применяет текущий состав вызова: открывает новые назначения,
// дописывает смены статусов и закрывает назначения единиц, покинувших вызов.
func (t *UnitTracker) Apply(inc models.Incident, now time.Time) Transitions {
	t.mu.Lock()
	defer t.mu.Unlock()

	var tr Transitions
	live := t.active[inc.ID]
	seen := make(map[string]struct{}, len(inc.Units))

	for _, u := range inc.Units {
		seen[u.ID] = struct{}{}
		rec, ok := live[u.ID]
		if !ok {
			if live == nil {
				live = make(map[string]*models.Assignment)
				t.active[inc.ID] = live
			}
			rec = &models.Assignment{
				IncidentID: inc.ID,
				UnitID:     u.ID,
				Status:     u.Status,
				StartedAt:  now,
				Events:     []models.Event{{Label: models.StatusDispatched, At: now}},
			}
			live[u.ID] = rec
			tr.Dispatched = append(tr.Dispatched, rec.Clone())
			if t.IsWatched(u.ID) && t.stats != nil {
				t.stats.RecordDispatch(u.ID, t.afterMidnight(inc))
			}
			continue
		}
		if rec.Status != u.Status {
			at := appendAt(rec, now)
			tr.Changed = append(tr.Changed, models.StatusChange{
				IncidentID: inc.ID,
				UnitID:     u.ID,
				From:       rec.Status,
				To:         u.Status,
				At:         at,
			})
			rec.Status = u.Status
			rec.Events = append(rec.Events, models.Event{Label: u.Status, At: at})
		}
	}

	for unit := range live {
		if _, ok := seen[unit]; ok {
			continue
		}
		tr.Completed = append(tr.Completed, t.finalize(inc.ID, unit, now))
	}
	sortRuns(tr.Completed)
	return tr
}

// Sweep закрывает назначения вызовов, которых нет в снимке
func (t *UnitTracker) Sweep(present map[string]struct{}, now time.Time) []models.CompletedRun {
	t.mu.Lock()
	defer t.mu.Unlock()

	var done []models.CompletedRun
	for incidentID, live := range t.active {
		if _, ok := present[incidentID]; ok {
			continue
		}
		for unit := range live {
			done = append(done, t.finalize(incidentID, unit, now))
		}
	}
	sortRuns(done)
	return done
}

// finalize вызывается под блокировкой
func (t *UnitTracker) finalize(incidentID, unit string, now time.Time) models.CompletedRun {
	live := t.active[incidentID]
	rec := live[unit]
	delete(live, unit)
	if len(live) == 0 {
		delete(t.active, incidentID)
	}

	at := appendAt(rec, now)
	rec.Status = models.StatusAvailable
	rec.Events = append(rec.Events, models.Event{Label: models.StatusAvailable, At: at})

	run := models.CompletedRun{
		IncidentID: incidentID,
		UnitID:     unit,
		Events:     rec.Events,
		Duration:   rec.Duration(),
	}
	t.lastRun[unit] = run
	if t.IsWatched(unit) && t.stats != nil {
		t.stats.RecordCompletion(unit, run.Duration)
	}
	return run
}

// LastRun возвращает последний завершенный выезд единицы
func (t *UnitTracker) LastRun(unit string) (models.CompletedRun, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	run, ok := t.lastRun[unit]
	if !ok {
		return models.CompletedRun{}, false
	}
	run.Events = append([]models.Event(nil), run.Events...)
	return run, true
}

// Assignment возвращает копию живого назначения
func (t *UnitTracker) Assignment(incidentID, unit string) (models.Assignment, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.active[incidentID][unit]
	if !ok {
		return models.Assignment{}, false
	}
	return rec.Clone(), true
}

// Active возвращает копии всех живых назначений, упорядоченные по вызову и единице
func (t *UnitTracker) Active() []models.Assignment {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]models.Assignment, 0, len(t.active))
	for _, live := range t.active {
		for _, rec := range live {
			out = append(out, rec.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IncidentID != out[j].IncidentID {
			return out[i].IncidentID < out[j].IncidentID
		}
		return out[i].UnitID < out[j].UnitID
	})
	return out
}

// ActiveCount - число живых назначений
func (t *UnitTracker) ActiveCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, live := range t.active {
		n += len(live)
	}
	return n
}

func (t *UnitTracker) afterMidnight(inc models.Incident) bool {
	return !inc.ReceivedAt.IsZero() && inc.ReceivedAt.Hour() < t.cutoffHour
}

// appendAt не дает журналу идти назад во времени
func appendAt(rec *models.Assignment, now time.Time) time.Time {
	if n := len(rec.Events); n > 0 && now.Before(rec.Events[n-1].At) {
		return rec.Events[n-1].At
	}
	return now
}

func sortRuns(runs []models.CompletedRun) {
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].IncidentID != runs[j].IncidentID {
			return runs[i].IncidentID < runs[j].IncidentID
		}
		return runs[i].UnitID < runs[j].UnitID
	})
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
