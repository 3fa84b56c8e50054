package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shenikar/dispatch_alerts/internal/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// incidentNamespace - пространство имен для детерминированных идентификаторов вызовов без номера
var incidentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("dispatch_alerts/incident"))

// Snapshot - нормализованный снимок ленты
type Snapshot struct {
	Incidents []models.Incident
	// Skipped - число отброшенных записей. Снимок с пропусками не полон.
	Skipped int
}

// Complete сообщает, что все записи снимка разобраны
func (s Snapshot) Complete() bool {
	return s.Skipped == 0
}

// Normalizer извлекает вызовы и единицы из сырых записей ленты
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer создает нормализатор. loc - часовой пояс поля Received.
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc}
}

// Normalize разбирает документ. Некорректные записи пропускаются и учитываются в Skipped.
func (n *Normalizer) Normalize(doc *Document, now time.Time) Snapshot {
	var snap Snapshot
	if doc == nil {
		return snap
	}
	snap.Incidents = make([]models.Incident, 0, len(doc.Records))
	for _, raw := range doc.Records {
		inc, err := n.NormalizeRecord(raw, now)
		if err != nil {
			snap.Skipped++
			continue
		}
		snap.Incidents = append(snap.Incidents, inc)
	}
	return snap
}

// NormalizeRecord разбирает одну запись ленты
func (n *Normalizer) NormalizeRecord(raw json.RawMessage, now time.Time) (models.Incident, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rec map[string]any
	if err := dec.Decode(&rec); err != nil {
		return models.Incident{}, fmt.Errorf("feed: decode record: %w", err)
	}
	if rec == nil {
		return models.Incident{}, fmt.Errorf("feed: record is null")
	}

	inc := models.Incident{
		Type:     cleanText(getPropStr(rec, "Type")),
		Location: cleanText(getPropStr(rec, "Location")),
		Grid:     strings.ToUpper(cleanText(getPropStr(rec, "Grid"))),
		Tac:      cleanText(getPropStr(rec, "Tac")),
		Received: strings.TrimSpace(getPropStr(rec, "Received")),
	}
	if inc.Type == "" {
		inc.Type = "Call"
	}

	inc.ID = strings.TrimSpace(getPropStr(rec, "IncidentNo"))
	if inc.ID == "" {
		inc.ID = FallbackID(getPropStr(rec, "Type"), getPropStr(rec, "Location"), getPropStr(rec, "Received"))
	}

	lat, latOK := toFloat(rec["Lat"])
	lon, lonOK := toFloat(rec["Lon"])
	if latOK && lonOK && (lat != 0 || lon != 0) {
		inc.Latitude, inc.Longitude, inc.HasCoords = lat, lon, true
	}

	if t, ok := ParseReceived(inc.Received, now.In(n.loc)); ok {
		inc.ReceivedAt = t
	}

	units, err := parseUnits(rec["Units"])
	if err != nil {
		return models.Incident{}, fmt.Errorf("feed: incident %s: %w", inc.ID, err)
	}
	inc.Units = units
	return inc, nil
}

// FallbackID - стабильный идентификатор вызова без номера по типу, адресу и времени приема
func FallbackID(callType, location, received string) string {
	return uuid.NewSHA1(incidentNamespace, []byte(callType+"|"+location+"|"+received)).String()
}

// ParseReceived разбирает "HH:MM:SS" как время на дату day
func ParseReceived(hms string, day time.Time) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(hms), ":")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, false
		}
		v[i] = n
	}
	if v[0] < 0 || v[0] > 23 || v[1] < 0 || v[1] > 59 || v[2] < 0 || v[2] > 59 {
		return time.Time{}, false
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, v[0], v[1], v[2], 0, day.Location()), true
}

// parseUnits извлекает единицы. Повторы схлопываются, побеждает последний статус.
func parseUnits(v any) ([]models.UnitStatus, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("units is %T, not a list", v)
	}
	units := make([]models.UnitStatus, 0, len(list))
	index := make(map[string]int, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id := strings.ToUpper(cleanText(getPropStr(m, "ID")))
		if id == "" {
			continue
		}
		status := strings.ToLower(cleanText(getPropStr(m, "Status")))
		if i, dup := index[id]; dup {
			units[i].Status = status
			continue
		}
		index[id] = len(units)
		units = append(units, models.UnitStatus{ID: id, Status: status})
	}
	return units, nil
}

var cleaner = transform.Chain(norm.NFKC, runes.Remove(runes.In(unicode.Cc)))

// cleanText приводит текст ленты к NFKC, удаляет управляющие символы и лишние пробелы
func cleanText(s string) string {
	res, _, err := transform.String(cleaner, s)
	if err != nil {
		res = s
	}
	return strings.Join(strings.Fields(res), " ")
}

func getPropStr(p map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := p[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if strings.TrimSpace(t) != "" {
				return t
			}
		case json.Number:
			return t.String()
		case bool:
			return strconv.FormatBool(t)
		}
	}
	return ""
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f, true
		}
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}
