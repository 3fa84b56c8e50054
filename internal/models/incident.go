package models

import (
	"strings"
	"time"
)

// UnitStatus - единица техники в составе вызова и её текущий статус
type UnitStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Incident - нормализованная запись вызова из ленты диспетчерской
type Incident struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	Location   string       `json:"location"`
	Grid       string       `json:"grid"`
	Latitude   float64      `json:"latitude"`
	Longitude  float64      `json:"longitude"`
	HasCoords  bool         `json:"has_coords"`
	Tac        string       `json:"tac"`
	Received   string       `json:"received"`
	ReceivedAt time.Time    `json:"received_at"`
	Units      []UnitStatus `json:"units"`
}

// UnitIDs возвращает идентификаторы назначенных единиц в порядке ленты
func (i Incident) UnitIDs() []string {
	ids := make([]string, 0, len(i.Units))
	for _, u := range i.Units {
		ids = append(ids, u.ID)
	}
	return ids
}

// HasUnit проверяет, назначена ли единица на вызов
func (i Incident) HasUnit(id string) bool {
	for _, u := range i.Units {
		if u.ID == id {
			return true
		}
	}
	return false
}

// IsMedical - медицинские вызовы публикуются без адреса
func (i Incident) IsMedical() bool {
	return strings.HasPrefix(strings.ToUpper(i.Type), "MEDICAL")
}
