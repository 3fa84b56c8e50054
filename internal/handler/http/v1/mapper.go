package v1

import (
	"sort"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/leaderboard"
	"github.com/shenikar/dispatch_alerts/internal/models"
)

const dateLayout = "2006-01-02"

// ModelToLeaderboardResponse преобразует таблицу лидеров в DTO для ответа
func ModelToLeaderboardResponse(lb models.Leaderboard) LeaderboardResponse {
	rows := make([]LeaderboardRowResponse, len(lb.Rows))
	for i, r := range lb.Rows {
		rows[i] = LeaderboardRowResponse{
			Unit:          r.Unit,
			Calls:         r.Calls,
			DurationSec:   r.DurationSec,
			AvgMinutes:    r.AvgMinutes,
			AfterMidnight: r.AfterMidnight,
			MaxMinutes:    r.MaxMinutes,
		}
	}
	resp := LeaderboardResponse{
		Window: string(lb.Window),
		Label:  lb.Window.Label(),
		To:     lb.To.Format(dateLayout),
		Header: leaderboard.Header(lb),
		Rows:   rows,
	}
	if !lb.From.IsZero() {
		resp.From = lb.From.Format(dateLayout)
	}
	return resp
}

// ModelToShiftResponse преобразует статистику смены в DTO, единицы по алфавиту
func ModelToShiftResponse(s models.ShiftStats) ShiftResponse {
	units := make([]ShiftUnitResponse, 0, len(s.Units))
	for unit, st := range s.Units {
		units = append(units, ShiftUnitResponse{
			Unit:          unit,
			Calls:         st.Calls,
			DurationSec:   st.DurationSec,
			AfterMidnight: st.AfterMidnight,
			MaxSec:        st.MaxSec,
			AvgMinutes:    models.AverageMinutes(st.DurationSec, st.Calls),
		})
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Unit < units[j].Unit })
	return ShiftResponse{
		Date:       s.Date.Format(dateLayout),
		TotalCalls: s.TotalCalls(),
		Units:      units,
	}
}

// ModelsToAssignmentResponses преобразует слайс назначений в слайс DTO
func ModelsToAssignmentResponses(items []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, len(items))
	for i, a := range items {
		responses[i] = AssignmentResponse{
			IncidentID: a.IncidentID,
			UnitID:     a.UnitID,
			Status:     a.Status,
			StartedAt:  a.StartedAt,
			Events:     eventsToResponse(a.Events),
		}
	}
	return responses
}

// ModelToRunResponse преобразует завершенный выезд в DTO
func ModelToRunResponse(run models.CompletedRun) RunResponse {
	return RunResponse{
		IncidentID:  run.IncidentID,
		UnitID:      run.UnitID,
		DurationSec: int64(run.Duration / time.Second),
		Events:      eventsToResponse(run.Events),
	}
}

// ModelToLiveStateResponse преобразует состояние живой таблицы в DTO
func ModelToLiveStateResponse(s models.LiveState) LiveStateResponse {
	return LiveStateResponse{
		Active:        s.Active,
		Period:        string(s.Period),
		Threads:       s.Threads,
		MsgIDs:        s.MsgIDs,
		NextUpdateSec: s.NextUpdateSec,
	}
}

func eventsToResponse(events []models.Event) []EventResponse {
	out := make([]EventResponse, len(events))
	for i, e := range events {
		out[i] = EventResponse{Label: e.Label, At: e.At}
	}
	return out
}
