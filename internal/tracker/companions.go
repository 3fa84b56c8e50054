package tracker

import (
	"regexp"
	"sort"
	"sync"

	"github.com/shenikar/dispatch_alerts/internal/models"
)

var companionPattern = regexp.MustCompile(`^\d{3}$`)

// IsCompanion - сопровождающая единица имеет трехзначный числовой идентификатор
func IsCompanion(unit string) bool {
	return companionPattern.MatchString(unit)
}

// CompanionTracker следит за наборами сопровождающих единиц по паре (вызов, основная единица)
type CompanionTracker struct {
	mu      sync.Mutex
	sets    map[models.AssignmentKey]map[string]struct{}
	watched map[string]struct{}
}

// NewCompanionTracker создает трекер сопровождающих единиц для отслеживаемого состава
func NewCompanionTracker(watched []string) *CompanionTracker {
	return &CompanionTracker{
		sets:    make(map[models.AssignmentKey]map[string]struct{}),
		watched: toSet(watched),
	}
}

// Apply сравнивает текущий набор сопровождающих с прежним. Первое наблюдение набора
// изменений не порождает.
func (c *CompanionTracker) Apply(inc models.Incident) []models.CompanionChange {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := make(map[string]struct{})
	for _, u := range inc.Units {
		if IsCompanion(u.ID) {
			current[u.ID] = struct{}{}
		}
	}

	var changes []models.CompanionChange
	onCall := make(map[string]struct{}, len(inc.Units))
	for _, u := range inc.Units {
		onCall[u.ID] = struct{}{}
		if _, ok := c.watched[u.ID]; !ok {
			continue
		}
		key := models.AssignmentKey{IncidentID: inc.ID, UnitID: u.ID}
		prev := c.sets[key]

		if len(prev) > 0 {
			for _, id := range difference(current, prev) {
				changes = append(changes, models.CompanionChange{IncidentID: inc.ID, PrimaryUnit: u.ID, Companion: id, Added: true})
			}
			for _, id := range difference(prev, current) {
				changes = append(changes, models.CompanionChange{IncidentID: inc.ID, PrimaryUnit: u.ID, Companion: id, Added: false})
			}
		}

		if len(current) > 0 {
			c.sets[key] = copySet(current)
		} else {
			delete(c.sets, key)
		}
	}

	for key := range c.sets {
		if key.IncidentID != inc.ID {
			continue
		}
		if _, ok := onCall[key.UnitID]; !ok {
			delete(c.sets, key)
		}
	}
	return changes
}

// Sweep удаляет наборы вызовов, отсутствующих в снимке
func (c *CompanionTracker) Sweep(present map[string]struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.sets {
		if _, ok := present[key.IncidentID]; !ok {
			delete(c.sets, key)
		}
	}
}

// Companions возвращает текущий набор сопровождающих пары
func (c *CompanionTracker) Companions(incidentID, unit string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	set := c.sets[models.AssignmentKey{IncidentID: incidentID, UnitID: unit}]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len - число отслеживаемых наборов
func (c *CompanionTracker) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sets)
}

func difference(a, b map[string]struct{}) []string {
	var out []string
	for id := range a {
		if _, ok := b[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func copySet(s map[string]struct{}) map[string]struct{} {
	c := make(map[string]struct{}, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}
