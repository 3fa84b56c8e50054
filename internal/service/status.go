package service

import (
	"context"
	"errors"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/shenikar/dispatch_alerts/internal/tracker"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=status.go -destination=mocks/mock_status.go -package=mocks

// ErrRunNotFound - у единицы нет завершенных выездов с момента запуска
var ErrRunNotFound = errors.New("service: completed run not found")

// StatusService определяет контракт чтения состояния трекера для API
type StatusService interface {
	Leaderboard(ctx context.Context, w models.Window) (models.Leaderboard, error)
	CurrentShift(ctx context.Context) (models.ShiftStats, error)
	Assignments(ctx context.Context) ([]models.Assignment, error)
	LastRun(ctx context.Context, unit string) (models.CompletedRun, error)
	LiveState(ctx context.Context) (models.LiveState, error)
}

type statusService struct {
	boards *Leaderboards
	ledger *ShiftLedger
	units  *tracker.UnitTracker
	live   *LiveController
	logger *logrus.Logger
	now    func() time.Time
}

// NewStatusService создает сервис чтения. now задает часы для окон таблиц.
func NewStatusService(
	boards *Leaderboards,
	ledger *ShiftLedger,
	units *tracker.UnitTracker,
	live *LiveController,
	logger *logrus.Logger,
	now func() time.Time,
) StatusService {
	if now == nil {
		now = time.Now
	}
	return &statusService{
		boards: boards,
		ledger: ledger,
		units:  units,
		live:   live,
		logger: logger,
		now:    now,
	}
}

// Leaderboard строит таблицу окна w на текущий момент
func (s *statusService) Leaderboard(_ context.Context, w models.Window) (models.Leaderboard, error) {
	lb, err := s.boards.Build(w, s.now())
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "status",
			"method":  "Leaderboard",
			"window":  w,
		}).WithError(err).Error("Failed to build leaderboard")
		return models.Leaderboard{}, err
	}
	return lb, nil
}

func (s *statusService) CurrentShift(_ context.Context) (models.ShiftStats, error) {
	return s.ledger.Snapshot(), nil
}

func (s *statusService) Assignments(_ context.Context) ([]models.Assignment, error) {
	return s.units.Active(), nil
}

// LastRun возвращает последний завершенный выезд единицы или ErrRunNotFound
func (s *statusService) LastRun(_ context.Context, unit string) (models.CompletedRun, error) {
	run, ok := s.units.LastRun(unit)
	if !ok {
		return models.CompletedRun{}, ErrRunNotFound
	}
	return run, nil
}

func (s *statusService) LiveState(_ context.Context) (models.LiveState, error) {
	return s.live.State(), nil
}
