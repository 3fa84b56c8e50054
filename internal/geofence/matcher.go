package geofence

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/shenikar/dispatch_alerts/internal/models"
)

// Contains проверяет попадание вызова в зону: код сетки (точно или по префиксу с "*")
// либо расстояние до центра круга не больше радиуса.
func (a Area) Contains(inc models.Incident) bool {
	grid := strings.ToUpper(strings.TrimSpace(inc.Grid))
	if grid != "" {
		for _, code := range a.Grids {
			if grid == code {
				return true
			}
			if prefix, ok := strings.CutSuffix(code, "*"); ok && strings.HasPrefix(grid, prefix) {
				return true
			}
		}
	}
	if !inc.HasCoords {
		return false
	}
	for _, c := range a.Circles {
		r := c.RadiusKm()
		if r <= 0 {
			continue
		}
		if HaversineKm(inc.Latitude, inc.Longitude, float64(c.Lat), float64(c.Lon)) <= r {
			return true
		}
	}
	return false
}

// HaversineKm - расстояние по большому кругу в километрах
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0
	toRad := func(d float64) float64 { return d * (math.Pi / 180) }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := (math.Sin(dLat/2) * math.Sin(dLat/2)) + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*(math.Sin(dLon/2)*math.Sin(dLon/2))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

// Matcher выдает предварительные оповещения для единиц, еще не назначенных на вызов.
// Каждая пара (вызов, единица) срабатывает не более одного раза.
type Matcher struct {
	mu    sync.Mutex
	cfg   Config
	units []string
	seen  map[models.AssignmentKey]struct{}
	order []models.AssignmentKey
	limit int
}

// NewMatcher создает матчер. limit ограничивает набор подавления, 0 - без ограничения.
func NewMatcher(cfg Config, limit int) *Matcher {
	units := make([]string, 0, len(cfg))
	for u := range cfg {
		units = append(units, u)
	}
	sort.Strings(units)
	return &Matcher{
		cfg:   cfg,
		units: units,
		seen:  make(map[models.AssignmentKey]struct{}),
		limit: limit,
	}
}

// Enabled сообщает, настроена ли хотя бы одна зона
func (m *Matcher) Enabled() bool {
	return len(m.units) > 0
}

// Units возвращает единицы с настроенными зонами
func (m *Matcher) Units() []string {
	return append([]string(nil), m.units...)
}

// Match проверяет вызов по всем зонам и возвращает новые оповещения
func (m *Matcher) Match(inc models.Incident) []models.EarlyAlert {
	m.mu.Lock()
	defer m.mu.Unlock()

	var alerts []models.EarlyAlert
	for _, unit := range m.units {
		if inc.HasUnit(unit) {
			continue
		}
		key := models.AssignmentKey{IncidentID: inc.ID, UnitID: unit}
		if _, ok := m.seen[key]; ok {
			continue
		}
		if !m.cfg[unit].Contains(inc) {
			continue
		}
		alerts = append(alerts, models.EarlyAlert{Unit: unit, Incident: inc})
		m.remember(key)
	}
	return alerts
}

// Suppressed - число запомненных пар
func (m *Matcher) Suppressed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.seen)
}

// remember вызывается под блокировкой. При превышении лимита остается новейшая половина.
func (m *Matcher) remember(key models.AssignmentKey) {
	m.seen[key] = struct{}{}
	m.order = append(m.order, key)
	if m.limit <= 0 || len(m.seen) <= m.limit {
		return
	}
	drop := len(m.order) - m.limit/2
	for _, k := range m.order[:drop] {
		delete(m.seen, k)
	}
	m.order = append([]models.AssignmentKey(nil), m.order[drop:]...)
}
