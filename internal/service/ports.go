package service

import (
	"context"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/models"
)

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

// ShiftRepository определяет контракт хранилища статистики смен
type ShiftRepository interface {
	Load(date time.Time) (models.ShiftStats, error)
	Save(stats models.ShiftStats) error
	ListSince(cutoff time.Time) ([]models.ShiftStats, error)
}

// LiveStateRepository определяет контракт хранилища состояния живой таблицы
type LiveStateRepository interface {
	Load() (models.LiveState, error)
	Save(state models.LiveState) error
}

// Transport - канал доставки сообщений с маршрутизацией по темам
type Transport interface {
	Send(ctx context.Context, channel, title, body string) (int64, error)
	Edit(ctx context.Context, channel string, messageID int64, title, body string) error
	Updates(ctx context.Context) ([]models.Command, error)
}

// PlugTrigger запускает импульс умной розетки, не блокируя вызывающего
type PlugTrigger interface {
	Trigger(units []string) bool
}
