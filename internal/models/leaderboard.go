package models

import "time"

// Window - окно агрегации таблицы лидеров
type Window string

const (
	WindowDay     Window = "day"
	WindowWeek    Window = "week"
	WindowMonth   Window = "month"
	WindowYear    Window = "year"
	WindowAllTime Window = "alltime"
)

var windowDays = map[Window]int{
	WindowDay:   1,
	WindowWeek:  7,
	WindowMonth: 30,
	WindowYear:  365,
}

var windowLabels = map[Window]string{
	WindowDay:     "Daily",
	WindowWeek:    "Weekly",
	WindowMonth:   "Monthly",
	WindowYear:    "Yearly",
	WindowAllTime: "All-time",
}

// ParseWindow разбирает имя окна
func ParseWindow(s string) (Window, bool) {
	w := Window(s)
	if _, ok := windowLabels[w]; !ok {
		return "", false
	}
	return w, true
}

// Days - длина окна в днях смены, 0 для WindowAllTime
func (w Window) Days() int {
	return windowDays[w]
}

// Label - человекочитаемое имя окна
func (w Window) Label() string {
	if l, ok := windowLabels[w]; ok {
		return l
	}
	return string(w)
}

// LeaderboardRow - строка таблицы лидеров
type LeaderboardRow struct {
	Unit          string  `json:"unit"`
	Calls         int64   `json:"calls"`
	DurationSec   int64   `json:"duration_sec"`
	AfterMidnight int64   `json:"after_midnight"`
	MaxSec        int64   `json:"max_sec"`
	AvgMinutes    float64 `json:"avg_minutes"`
	MaxMinutes    float64 `json:"max_minutes"`
}

// Leaderboard - агрегат за окно. From нулевое для WindowAllTime.
type Leaderboard struct {
	Window Window           `json:"window"`
	From   time.Time        `json:"from"`
	To     time.Time        `json:"to"`
	Rows   []LeaderboardRow `json:"rows"`
}

// Row возвращает строку единицы
func (l Leaderboard) Row(unit string) (LeaderboardRow, bool) {
	for _, r := range l.Rows {
		if r.Unit == unit {
			return r, true
		}
	}
	return LeaderboardRow{}, false
}
