package leaderboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/models"
)

// DateLayout - формат дат в заголовках таблиц
const DateLayout = "02 Jan 2006"

// EmptyBoard - тело таблицы без выездов
const EmptyBoard = "No runs recorded."

// ShiftStart возвращает момент начала смены, содержащей now
func ShiftStart(now time.Time, hour int) time.Time {
	start := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if now.Before(start) {
		start = start.AddDate(0, 0, -1)
	}
	return start
}

// ShiftDate - календарная дата начала смены (полночь)
func ShiftDate(now time.Time, hour int) time.Time {
	return DateOf(ShiftStart(now, hour))
}

// DateOf отбрасывает время суток
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Cutoff - первая дата смены, входящая в окно. Для WindowAllTime нулевое время.
func Cutoff(w models.Window, shiftDate time.Time) time.Time {
	days := w.Days()
	if days == 0 {
		return time.Time{}
	}
	return shiftDate.AddDate(0, 0, -(days - 1))
}

// Build суммирует статистику смен окна по отслеживаемым единицам.
// Максимальная длительность берется как максимум по сменам.
func Build(w models.Window, shiftDate time.Time, shifts []models.ShiftStats, tracked []string) models.Leaderboard {
	allowed := make(map[string]struct{}, len(tracked))
	for _, u := range tracked {
		allowed[u] = struct{}{}
	}
	cutoff := Cutoff(w, shiftDate)

	totals := make(map[string]models.UnitStats)
	for _, shift := range shifts {
		if !cutoff.IsZero() && DateOf(shift.Date).Before(cutoff) {
			continue
		}
		for unit, st := range shift.Units {
			if _, ok := allowed[unit]; !ok {
				continue
			}
			acc := totals[unit]
			acc.Calls += st.Calls
			acc.DurationSec += st.DurationSec
			acc.AfterMidnight += st.AfterMidnight
			if st.MaxSec > acc.MaxSec {
				acc.MaxSec = st.MaxSec
			}
			totals[unit] = acc
		}
	}

	return models.Leaderboard{
		Window: w,
		From:   cutoff,
		To:     shiftDate,
		Rows:   Rows(totals),
	}
}

// Rows строит строки таблицы для единиц с вызовами: по убыванию вызовов, затем по имени
func Rows(stats map[string]models.UnitStats) []models.LeaderboardRow {
	rows := make([]models.LeaderboardRow, 0, len(stats))
	for unit, st := range stats {
		if st.Calls <= 0 {
			continue
		}
		rows = append(rows, models.LeaderboardRow{
			Unit:          unit,
			Calls:         st.Calls,
			DurationSec:   st.DurationSec,
			AfterMidnight: st.AfterMidnight,
			MaxSec:        st.MaxSec,
			AvgMinutes:    models.AverageMinutes(st.DurationSec, st.Calls),
			MaxMinutes:    models.SecondsToMinutes(st.MaxSec),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Calls != rows[j].Calls {
			return rows[i].Calls > rows[j].Calls
		}
		return rows[i].Unit < rows[j].Unit
	})
	return rows
}

// Header - заголовок таблицы окна
func Header(lb models.Leaderboard) string {
	label := lb.Window.Label()
	switch {
	case lb.Window == models.WindowAllTime:
		return fmt.Sprintf("%s runs through %s", label, lb.To.Format(DateLayout))
	case lb.Window.Days() <= 1:
		return fmt.Sprintf("%s runs %s", label, lb.To.Format(DateLayout))
	default:
		return fmt.Sprintf("%s runs %s - %s", label, lb.From.Format(DateLayout), lb.To.Format(DateLayout))
	}
}

// Render - текст таблицы окна
func Render(lb models.Leaderboard) string {
	return RenderRows(Header(lb), lb.Rows)
}

// RenderRows - заголовок и строки "E33: 3  |  avg 12.5 min  |  after 00:00: 1"
func RenderRows(header string, rows []models.LeaderboardRow) string {
	var b strings.Builder
	b.WriteString(header)
	if len(rows) == 0 {
		b.WriteString("\n")
		b.WriteString(EmptyBoard)
		return b.String()
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "\n%s: %d  |  avg %.1f min  |  after 00:00: %d", r.Unit, r.Calls, r.AvgMinutes, r.AfterMidnight)
	}
	return b.String()
}

// LiveTitle - заголовок сообщения живой таблицы
func LiveTitle(w models.Window) string {
	return "LIVE " + strings.ToUpper(w.Label())
}
