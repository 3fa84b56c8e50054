package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/leaderboard"
	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	liveBoardTitle = "LIVE BOARD"
	timesTitle     = "TIMES"
)

// RunLookup отдает последний завершенный выезд единицы
type RunLookup interface {
	LastRun(unit string) (models.CompletedRun, bool)
}

// CommandHandler выполняет команды операторов и отвечает в канал команды
type CommandHandler struct {
	boards     *Leaderboards
	live       *LiveController
	runs       RunLookup
	dispatcher *Dispatcher
	logger     *logrus.Logger
	loc        *time.Location
}

// NewCommandHandler создает обработчик команд
func NewCommandHandler(boards *Leaderboards, live *LiveController, runs RunLookup, dispatcher *Dispatcher, logger *logrus.Logger, loc *time.Location) *CommandHandler {
	if loc == nil {
		loc = time.Local
	}
	return &CommandHandler{
		boards:     boards,
		live:       live,
		runs:       runs,
		dispatcher: dispatcher,
		logger:     logger,
		loc:        loc,
	}
}

// ParseCommand нормализует текст команды: первое слово, нижний регистр, без суффикса @bot
func ParseCommand(text string) string {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return ""
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return cmd
}

// Handle выполняет команду. Возвращает false для нераспознанного текста.
func (h *CommandHandler) Handle(ctx context.Context, cmd models.Command, now time.Time) bool {
	name := ParseCommand(cmd.Text)
	log := h.logger.WithFields(logrus.Fields{
		"service": "commands",
		"channel": cmd.Channel,
		"command": name,
	})

	switch {
	case strings.HasPrefix(name, "/live") && name != "/livestop" && name != "/livehere":
		w, ok := models.ParseWindow(strings.TrimPrefix(name, "/live"))
		if !ok {
			return false
		}
		logChannel := h.dispatcher.LogChannel()
		h.live.Arm(ctx, w, []string{logChannel}, now)
		h.reply(ctx, cmd.Channel, liveBoardTitle, fmt.Sprintf("Enabled live %s leaderboard in %s topic.", w.Label(), logChannel))

	case name == "/livestop":
		h.live.Disarm()
		h.reply(ctx, cmd.Channel, liveBoardTitle, "Live leaderboard stopped.")

	case name == "/livehere":
		w := h.live.ArmHere(ctx, cmd.Channel, now)
		h.reply(ctx, cmd.Channel, liveBoardTitle, fmt.Sprintf("Live %s leaderboard will update here.", w.Label()))

	case name == "/times":
		h.reply(ctx, cmd.Channel, timesTitle, h.timesBody(cmd.Channel))

	case strings.HasPrefix(name, "/"):
		w, ok := models.ParseWindow(strings.TrimPrefix(name, "/"))
		if !ok {
			return false
		}
		lb, err := h.boards.Build(w, now)
		if err != nil {
			log.WithError(err).Error("Failed to build leaderboard")
			return true
		}
		h.reply(ctx, cmd.Channel, RecapTitle, leaderboard.Render(lb))

	default:
		return false
	}

	log.Info("Command handled")
	return true
}

func (h *CommandHandler) timesBody(unit string) string {
	run, ok := h.runs.LastRun(unit)
	if !ok || len(run.Events) == 0 {
		return "No completed run recorded."
	}
	lines := make([]string, 0, len(run.Events)+1)
	lines = append(lines, unit+" latest run")
	for _, e := range run.Events {
		lines = append(lines, e.At.In(h.loc).Format("15:04")+"  "+e.Label)
	}
	return strings.Join(lines, "\n")
}

func (h *CommandHandler) reply(ctx context.Context, channel, title, body string) {
	_, _ = h.dispatcher.Send(ctx, KindReply, channel, title, body)
}
