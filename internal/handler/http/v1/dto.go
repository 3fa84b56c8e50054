package v1

import "time"

// LeaderboardQuery параметры запроса таблицы лидеров
// @Description Параметры запроса таблицы лидеров
type LeaderboardQuery struct {
	Window string `form:"window" validate:"omitempty,oneof=day week month year alltime"`
}

// LeaderboardRowResponse строка таблицы лидеров
// @Description Строка таблицы лидеров
type LeaderboardRowResponse struct {
	Unit          string  `json:"unit"`
	Calls         int64   `json:"calls"`
	DurationSec   int64   `json:"duration_sec"`
	AvgMinutes    float64 `json:"avg_minutes"`
	AfterMidnight int64   `json:"after_midnight"`
	MaxMinutes    float64 `json:"max_minutes"`
}

// LeaderboardResponse DTO для ответа с таблицей лидеров
// @Description Таблица лидеров за окно
type LeaderboardResponse struct {
	Window string                   `json:"window"`
	Label  string                   `json:"label"`
	From   string                   `json:"from,omitempty"`
	To     string                   `json:"to"`
	Header string                   `json:"header"`
	Rows   []LeaderboardRowResponse `json:"rows"`
}

// ShiftUnitResponse счетчики единицы за смену
// @Description Счетчики единицы за смену
type ShiftUnitResponse struct {
	Unit          string  `json:"unit"`
	Calls         int64   `json:"calls"`
	DurationSec   int64   `json:"duration_sec"`
	AfterMidnight int64   `json:"after_midnight"`
	MaxSec        int64   `json:"max_sec"`
	AvgMinutes    float64 `json:"avg_minutes"`
}

// ShiftResponse DTO для ответа со статистикой текущей смены
// @Description Статистика текущей смены
type ShiftResponse struct {
	Date       string              `json:"date"`
	TotalCalls int64               `json:"total_calls"`
	Units      []ShiftUnitResponse `json:"units"`
}

// EventResponse запись журнала статусов
// @Description Запись журнала статусов
type EventResponse struct {
	Label string    `json:"label"`
	At    time.Time `json:"at"`
}

// AssignmentResponse DTO живого назначения
// @Description Живое назначение единицы на вызов
type AssignmentResponse struct {
	IncidentID string          `json:"incident_id"`
	UnitID     string          `json:"unit_id"`
	Status     string          `json:"status"`
	StartedAt  time.Time       `json:"started_at"`
	Events     []EventResponse `json:"events"`
}

// RunResponse DTO завершенного выезда
// @Description Последний завершенный выезд единицы
type RunResponse struct {
	IncidentID  string          `json:"incident_id"`
	UnitID      string          `json:"unit_id"`
	DurationSec int64           `json:"duration_sec"`
	Events      []EventResponse `json:"events"`
}

// LiveStateResponse DTO состояния живой таблицы
// @Description Состояние живой таблицы лидеров
type LiveStateResponse struct {
	Active        bool             `json:"active"`
	Period        string           `json:"period"`
	Threads       []string         `json:"threads"`
	MsgIDs        map[string]int64 `json:"msg_ids"`
	NextUpdateSec int              `json:"next_update_sec"`
}
