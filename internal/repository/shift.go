package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/shenikar/dispatch_alerts/internal/service"
)

const shiftDateLayout = "2006-01-02"

var shiftFilePattern = regexp.MustCompile(`^shift_stats_(\d{4}-\d{2}-\d{2})\.json$`)

// shiftFile - формат файла смены на диске
type shiftFile struct {
	Calls     map[string]float64 `json:"calls"`
	DurSec    map[string]float64 `json:"dur_sec"`
	After0000 map[string]float64 `json:"after_0000"`
	MaxSec    map[string]float64 `json:"max_sec"`
}

// ShiftRepository хранит статистику каждой смены в файле shift_stats_YYYY-MM-DD.json
type ShiftRepository struct {
	dir string
	loc *time.Location
}

// NewShiftRepository создает файловое хранилище статистики смен
func NewShiftRepository(dir string, loc *time.Location) service.ShiftRepository {
	if loc == nil {
		loc = time.Local
	}
	return &ShiftRepository{dir: dir, loc: loc}
}

// FileName возвращает имя файла смены
func FileName(date time.Time) string {
	return "shift_stats_" + date.Format(shiftDateLayout) + ".json"
}

// Load читает статистику смены. Отсутствующий файл дает нулевую статистику без ошибки,
// поврежденный - нулевую статистику и ошибку для журнала.
func (r *ShiftRepository) Load(date time.Time) (models.ShiftStats, error) {
	stats := models.NewShiftStats(date)
	path := filepath.Join(r.dir, FileName(date))

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("failed to read shift stats %s: %w", path, err)
	}

	var f shiftFile
	if err := json.Unmarshal(data, &f); err != nil {
		return models.NewShiftStats(date), fmt.Errorf("corrupt shift stats %s: %w", path, err)
	}
	fill(stats.Units, f.Calls, func(s *models.UnitStats, v int64) { s.Calls = v })
	fill(stats.Units, f.DurSec, func(s *models.UnitStats, v int64) { s.DurationSec = v })
	fill(stats.Units, f.After0000, func(s *models.UnitStats, v int64) { s.AfterMidnight = v })
	fill(stats.Units, f.MaxSec, func(s *models.UnitStats, v int64) { s.MaxSec = v })
	return stats, nil
}

// Save атомарно записывает статистику смены
func (r *ShiftRepository) Save(stats models.ShiftStats) error {
	f := shiftFile{
		Calls:     make(map[string]float64, len(stats.Units)),
		DurSec:    make(map[string]float64, len(stats.Units)),
		After0000: make(map[string]float64, len(stats.Units)),
		MaxSec:    make(map[string]float64, len(stats.Units)),
	}
	for unit, st := range stats.Units {
		f.Calls[unit] = float64(st.Calls)
		f.DurSec[unit] = float64(st.DurationSec)
		f.After0000[unit] = float64(st.AfterMidnight)
		f.MaxSec[unit] = float64(st.MaxSec)
	}
	return writeJSONAtomic(filepath.Join(r.dir, FileName(stats.Date)), f)
}

// ListSince читает все файлы смен с датой не раньше cutoff. Нулевой cutoff - все файлы.
// Поврежденные файлы учитываются как пустые.
func (r *ShiftRepository) ListSince(cutoff time.Time) ([]models.ShiftStats, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift stats in %s: %w", r.dir, err)
	}

	var out []models.ShiftStats
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := shiftFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		date, err := time.ParseInLocation(shiftDateLayout, m[1], r.loc)
		if err != nil {
			continue
		}
		if !cutoff.IsZero() && date.Before(cutoff) {
			continue
		}
		stats, _ := r.Load(date)
		out = append(out, stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func fill(units map[string]models.UnitStats, values map[string]float64, set func(*models.UnitStats, int64)) {
	for unit, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		st := units[unit]
		set(&st, int64(v))
		units[unit] = st
	}
}
