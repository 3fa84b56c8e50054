package models

import "time"

const (
	StatusDispatched = "dispatched"
	StatusAvailable  = "available"
)

// AssignmentKey - пара (вызов, единица)
type AssignmentKey struct {
	IncidentID string `json:"incident_id"`
	UnitID     string `json:"unit_id"`
}

// Event - запись журнала статусов назначения
type Event struct {
	Label string    `json:"label"`
	At    time.Time `json:"at"`
}

// Assignment - живое назначение единицы на вызов
type Assignment struct {
	IncidentID string    `json:"incident_id"`
	UnitID     string    `json:"unit_id"`
	Status     string    `json:"status"`
	StartedAt  time.Time `json:"started_at"`
	Events     []Event   `json:"events"`
}

// Key возвращает ключ назначения
func (a *Assignment) Key() AssignmentKey {
	return AssignmentKey{IncidentID: a.IncidentID, UnitID: a.UnitID}
}

// Duration - разница между первым и последним событием журнала
func (a *Assignment) Duration() time.Duration {
	if len(a.Events) < 2 {
		return 0
	}
	return a.Events[len(a.Events)-1].At.Sub(a.Events[0].At)
}

// Clone возвращает копию назначения с независимым журналом
func (a *Assignment) Clone() Assignment {
	c := *a
	c.Events = append([]Event(nil), a.Events...)
	return c
}

// StatusChange - смена статуса живого назначения
type StatusChange struct {
	IncidentID string    `json:"incident_id"`
	UnitID     string    `json:"unit_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	At         time.Time `json:"at"`
}

// CompletedRun - завершенный выезд, журнал заканчивается событием "available"
type CompletedRun struct {
	IncidentID string        `json:"incident_id"`
	UnitID     string        `json:"unit_id"`
	Events     []Event       `json:"events"`
	Duration   time.Duration `json:"duration"`
}

// CompanionChange - присоединение или отсоединение сопровождающей единицы
type CompanionChange struct {
	IncidentID  string `json:"incident_id"`
	PrimaryUnit string `json:"primary_unit"`
	Companion   string `json:"companion"`
	Added       bool   `json:"added"`
}

// EarlyAlert - предварительное оповещение по геозоне до формального назначения
type EarlyAlert struct {
	Unit     string   `json:"unit"`
	Incident Incident `json:"incident"`
}
