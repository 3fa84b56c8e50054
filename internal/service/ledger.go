package service

import (
	"sync"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/leaderboard"
	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/sirupsen/logrus"
)

// ShiftLedger - статистика текущей смены в памяти с записью на диск после каждого изменения.
// Память остается авторитетной, если запись не удалась.
type ShiftLedger struct {
	mu        sync.Mutex
	repo      ShiftRepository
	logger    *logrus.Logger
	shiftHour int
	current   models.ShiftStats
	dirty     bool
}

// NewShiftLedger создает журнал смены и загружает статистику смены, содержащей now
func NewShiftLedger(repo ShiftRepository, shiftHour int, logger *logrus.Logger, now time.Time) *ShiftLedger {
	l := &ShiftLedger{
		repo:      repo,
		logger:    logger,
		shiftHour: shiftHour,
	}
	date := leaderboard.ShiftDate(now, shiftHour)
	stats, err := repo.Load(date)
	if err != nil {
		l.log("Open").WithError(err).Error("Failed to load shift stats, starting from zero")
	}
	if stats.Units == nil {
		stats = models.NewShiftStats(date)
	}
	l.current = stats
	return l
}

// RecordDispatch учитывает новый вызов единицы
func (l *ShiftLedger) RecordDispatch(unit string, afterMidnight bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := l.current.Units[unit]
	st.Calls++
	if afterMidnight {
		st.AfterMidnight++
	}
	l.current.Units[unit] = st
	l.dirty = true
	l.persist("RecordDispatch")
}

// RecordCompletion добавляет длительность завершенного выезда
func (l *ShiftLedger) RecordCompletion(unit string, d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sec := int64(d / time.Second)
	if sec < 0 {
		sec = 0
	}
	st := l.current.Units[unit]
	st.DurationSec += sec
	if sec > st.MaxSec {
		st.MaxSec = sec
	}
	l.current.Units[unit] = st
	l.dirty = true
	l.persist("RecordCompletion")
}

// Snapshot возвращает копию статистики текущей смены
func (l *ShiftLedger) Snapshot() models.ShiftStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current.Clone()
}

// ShiftDate - дата текущей смены
func (l *ShiftLedger) ShiftDate() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current.Date
}

// TakeDirty возвращает и сбрасывает признак изменения статистики
func (l *ShiftLedger) TakeDirty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	d := l.dirty
	l.dirty = false
	return d
}

// Rotate записывает текущую смену, обнуляет счетчики и сразу создает файл новой смены.
// Возвращает статистику закрытой смены. Если смена now совпадает с текущей, только записывает.
func (l *ShiftLedger) Rotate(now time.Time) models.ShiftStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	flushed := l.current.Clone()
	l.persist("Rotate")

	next := leaderboard.ShiftDate(now, l.shiftHour)
	if !next.After(flushed.Date) {
		l.log("Rotate").WithField("shift_date", flushed.Date.Format("2006-01-02")).Warn("Shift boundary not crossed, rotation skipped")
		return flushed
	}

	l.current = models.NewShiftStats(next)
	l.persist("Rotate")
	l.log("Rotate").WithFields(logrus.Fields{
		"closed_shift": flushed.Date.Format("2006-01-02"),
		"new_shift":    next.Format("2006-01-02"),
		"calls":        flushed.TotalCalls(),
	}).Info("Shift rotated")
	return flushed
}

// persist вызывается под блокировкой
func (l *ShiftLedger) persist(method string) {
	if err := l.repo.Save(l.current); err != nil {
		l.log(method).WithError(err).Error("Failed to persist shift stats")
	}
}

func (l *ShiftLedger) log(method string) *logrus.Entry {
	return l.logger.WithFields(logrus.Fields{
		"service": "ledger",
		"method":  method,
	})
}
