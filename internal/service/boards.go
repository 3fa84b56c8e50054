package service

import (
	"fmt"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/leaderboard"
	"github.com/shenikar/dispatch_alerts/internal/models"
)

// Leaderboards строит таблицы по файлам смен, подставляя текущую смену из памяти
type Leaderboards struct {
	repo      ShiftRepository
	ledger    *ShiftLedger
	tracked   []string
	shiftHour int
}

// NewLeaderboards создает построитель таблиц по отслеживаемым единицам
func NewLeaderboards(repo ShiftRepository, ledger *ShiftLedger, tracked []string, shiftHour int) *Leaderboards {
	return &Leaderboards{
		repo:      repo,
		ledger:    ledger,
		tracked:   tracked,
		shiftHour: shiftHour,
	}
}

// Build агрегирует окно w относительно смены, содержащей now
func (b *Leaderboards) Build(w models.Window, now time.Time) (models.Leaderboard, error) {
	shiftDate := leaderboard.ShiftDate(now, b.shiftHour)
	cutoff := leaderboard.Cutoff(w, shiftDate)

	shifts, err := b.repo.ListSince(cutoff)
	if err != nil {
		return models.Leaderboard{}, fmt.Errorf("service: list shift stats: %w", err)
	}

	current := b.ledger.Snapshot()
	replaced := false
	for i := range shifts {
		if shifts[i].Date.Equal(current.Date) {
			shifts[i] = current
			replaced = true
		}
	}
	if !replaced && (cutoff.IsZero() || !current.Date.Before(cutoff)) {
		shifts = append(shifts, current)
	}

	return leaderboard.Build(w, shiftDate, shifts, b.tracked), nil
}

// CurrentShiftRows - строки текущей смены из памяти
func (b *Leaderboards) CurrentShiftRows() []models.LeaderboardRow {
	current := b.ledger.Snapshot()
	filtered := make(map[string]models.UnitStats, len(b.tracked))
	for _, u := range b.tracked {
		if st, ok := current.Units[u]; ok {
			filtered[u] = st
		}
	}
	return leaderboard.Rows(filtered)
}
