package models

import (
	"math"
	"time"
)

// UnitStats - счетчики единицы за смену
type UnitStats struct {
	Calls         int64 `json:"calls"`
	DurationSec   int64 `json:"duration_sec"`
	AfterMidnight int64 `json:"after_midnight"`
	MaxSec        int64 `json:"max_sec"`
}

// ShiftStats - статистика одной смены, Date - дата начала смены
type ShiftStats struct {
	Date  time.Time            `json:"date"`
	Units map[string]UnitStats `json:"units"`
}

// NewShiftStats создает пустую статистику смены
func NewShiftStats(date time.Time) ShiftStats {
	return ShiftStats{Date: date, Units: make(map[string]UnitStats)}
}

// Clone возвращает независимую копию
func (s ShiftStats) Clone() ShiftStats {
	c := NewShiftStats(s.Date)
	for unit, st := range s.Units {
		c.Units[unit] = st
	}
	return c
}

// TotalCalls - сумма вызовов по всем единицам
func (s ShiftStats) TotalCalls() int64 {
	var total int64
	for _, st := range s.Units {
		total += st.Calls
	}
	return total
}

// AverageMinutes - средняя длительность в минутах с точностью до десятых.
// При нуле вызовов возвращает 0.
func AverageMinutes(durationSec, calls int64) float64 {
	if calls <= 0 {
		return 0
	}
	return roundTenth(float64(durationSec) / float64(calls) / 60)
}

// SecondsToMinutes переводит секунды в минуты с точностью до десятых
func SecondsToMinutes(sec int64) float64 {
	return roundTenth(float64(sec) / 60)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
