package models

import "time"

// EventKind - тип события трекера для внешнего зеркала
type EventKind string

const (
	EventNewCall          EventKind = "new_call"
	EventDispatched       EventKind = "dispatched"
	EventStatusChanged    EventKind = "status_changed"
	EventCleared          EventKind = "cleared"
	EventCompanionAdded   EventKind = "companion_added"
	EventCompanionRemoved EventKind = "companion_removed"
	EventEarlyAlert       EventKind = "early_alert"
)

// TrackerEvent - событие, публикуемое во внешнюю очередь
type TrackerEvent struct {
	Kind        EventKind `json:"kind"`
	IncidentID  string    `json:"incident_id"`
	Unit        string    `json:"unit,omitempty"`
	Companion   string    `json:"companion,omitempty"`
	Status      string    `json:"status,omitempty"`
	DurationSec int64     `json:"duration_sec,omitempty"`
	At          time.Time `json:"at"`
	Incident    *Incident `json:"incident,omitempty"`
}

// Command - команда оператора, полученная из канала транспорта
type Command struct {
	UpdateID int64  `json:"update_id"`
	Channel  string `json:"channel"`
	Text     string `json:"text"`
}
