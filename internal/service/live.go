package service

import (
	"context"
	"sync"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/leaderboard"
	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/sirupsen/logrus"
)

// LiveController - состояние живой таблицы: выключена или включена с периодическим обновлением.
// Каждый переход сохраняется сразу.
type LiveController struct {
	mu          sync.Mutex
	repo        LiveStateRepository
	boards      *Leaderboards
	dispatcher  *Dispatcher
	logger      *logrus.Logger
	state       models.LiveState
	nextRefresh time.Time
}

// NewLiveController загружает сохраненное состояние живой таблицы
func NewLiveController(repo LiveStateRepository, boards *Leaderboards, dispatcher *Dispatcher, logger *logrus.Logger) *LiveController {
	c := &LiveController{
		repo:       repo,
		boards:     boards,
		dispatcher: dispatcher,
		logger:     logger,
	}
	state, err := repo.Load()
	if err != nil {
		c.log("Load").WithError(err).Error("Failed to load live state, using defaults")
	}
	if state.MsgIDs == nil {
		state = models.DefaultLiveState(dispatcher.LogChannel())
	}
	c.state = state
	return c
}

// State возвращает копию состояния
func (c *LiveController) State() models.LiveState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Arm включает таблицу окна w в каналах threads и сразу обновляет ее
func (c *LiveController) Arm(ctx context.Context, w models.Window, threads []string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Active = true
	c.state.Period = w
	c.state.Threads = append([]string(nil), threads...)
	c.save("Arm")
	c.refresh(ctx, now)
}

// ArmHere включает таблицу текущего окна только в канале channel
func (c *LiveController) ArmHere(ctx context.Context, channel string, now time.Time) models.Window {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Active = true
	c.state.Threads = []string{channel}
	c.save("ArmHere")
	c.refresh(ctx, now)
	return c.state.Period
}

// Disarm выключает таблицу
func (c *LiveController) Disarm() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Active = false
	c.save("Disarm")
}

// MaybeRefresh обновляет включенную таблицу, если статистика изменилась или истек интервал
func (c *LiveController) MaybeRefresh(ctx context.Context, now time.Time, dirty bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Active {
		return false
	}
	if !dirty && now.Before(c.nextRefresh) {
		return false
	}
	c.refresh(ctx, now)
	return true
}

// refresh вызывается под блокировкой
func (c *LiveController) refresh(ctx context.Context, now time.Time) {
	interval := c.state.NextUpdateSec
	if interval <= 0 {
		interval = models.DefaultLiveRefreshSec
	}
	c.nextRefresh = now.Add(time.Duration(interval) * time.Second)

	lb, err := c.boards.Build(c.state.Period, now)
	if err != nil {
		c.log("Refresh").WithError(err).Error("Failed to build live leaderboard")
		return
	}
	title := leaderboard.LiveTitle(c.state.Period)
	body := leaderboard.Render(lb)

	changed := false
	for _, channel := range c.state.Threads {
		if id, ok := c.state.MsgIDs[channel]; ok {
			if err := c.dispatcher.Edit(ctx, KindLive, channel, id, title, body); err == nil {
				continue
			}
		}
		id, err := c.dispatcher.Send(ctx, KindLive, channel, title, body)
		if err != nil {
			continue
		}
		c.state.MsgIDs[channel] = id
		changed = true
	}
	if changed {
		c.save("Refresh")
	}
}

// save вызывается под блокировкой
func (c *LiveController) save(method string) {
	if err := c.repo.Save(c.state.Clone()); err != nil {
		c.log(method).WithError(err).Error("Failed to persist live state")
	}
}

func (c *LiveController) log(method string) *logrus.Entry {
	return c.logger.WithFields(logrus.Fields{
		"service": "live",
		"method":  method,
	})
}
