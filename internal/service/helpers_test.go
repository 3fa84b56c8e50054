package service

import (
	"bytes"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shenikar/dispatch_alerts/internal/metrics"
	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/shenikar/dispatch_alerts/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"go.uber.org/mock/gomock"
)

const testShiftHour = 7

var testChannels = []string{"E33", "R33", "LOG"}

// memShiftRepo - хранилище смен в памяти
type memShiftRepo struct {
	mu      sync.Mutex
	shifts  map[string]models.ShiftStats
	saves   int
	saveErr error
}

func newMemShiftRepo(shifts ...models.ShiftStats) *memShiftRepo {
	r := &memShiftRepo{shifts: make(map[string]models.ShiftStats)}
	for _, s := range shifts {
		r.shifts[s.Date.Format("2006-01-02")] = s.Clone()
	}
	return r
}

func (r *memShiftRepo) Load(date time.Time) (models.ShiftStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.shifts[date.Format("2006-01-02")]; ok {
		return s.Clone(), nil
	}
	return models.NewShiftStats(date), nil
}

func (r *memShiftRepo) Save(stats models.ShiftStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.shifts[stats.Date.Format("2006-01-02")] = stats.Clone()
	return nil
}

func (r *memShiftRepo) ListSince(cutoff time.Time) ([]models.ShiftStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ShiftStats
	for _, s := range r.shifts {
		if cutoff.IsZero() || !s.Date.Before(cutoff) {
			out = append(out, s.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memShiftRepo) get(date time.Time) (models.ShiftStats, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[date.Format("2006-01-02")]
	return s, ok
}

// memLiveRepo - хранилище состояния живой таблицы в памяти
type memLiveRepo struct {
	state models.LiveState
	saved []models.LiveState
}

func (r *memLiveRepo) Load() (models.LiveState, error) {
	if r.state.MsgIDs == nil {
		return models.LiveState{}, nil
	}
	return r.state.Clone(), nil
}

func (r *memLiveRepo) Save(state models.LiveState) error {
	r.state = state.Clone()
	r.saved = append(r.saved, state.Clone())
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func testMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

// newTestDispatcher создает диспетчер с мок-транспортом без зеркала событий и розетки
func newTestDispatcher(t *testing.T, m *metrics.Metrics) (*Dispatcher, *mocks.MockTransport) {
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)
	d := NewDispatcher(transport, NewRenderer("SUNSTAR"), nil, nil, m, quietLogger(), DispatcherConfig{
		LogChannel:    "LOG",
		Channels:      testChannels,
		Watched:       []string{"E33", "R33"},
		SendTimeout:   time.Second,
		NotifiedLimit: 100,
	})
	return d, transport
}

func call(id string, received time.Time, units ...models.UnitStatus) models.Incident {
	return models.Incident{
		ID:         id,
		Type:       "Structure Fire",
		Location:   "100 MAIN ST",
		Received:   received.Format("15:04:05"),
		ReceivedAt: received,
		Units:      units,
	}
}

func unitOn(id, status string) models.UnitStatus {
	return models.UnitStatus{ID: id, Status: status}
}
