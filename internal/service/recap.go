package service

import (
	"context"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/leaderboard"
	"github.com/sirupsen/logrus"
)

// RecapTitle - заголовок сводок и ответов на запросы таблицы
const RecapTitle = "CALL COUNT"

// NextAt - ближайший момент hour:00 строго после now
func NextAt(hour int, now time.Time) time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if now.Before(t) {
		return t
	}
	return t.AddDate(0, 0, 1)
}

// RecapScheduler дважды в сутки рассылает сводку текущей смены во все каналы.
// Сводка в час смены завершает смену ротацией.
type RecapScheduler struct {
	boards     *Leaderboards
	ledger     *ShiftLedger
	dispatcher *Dispatcher
	logger     *logrus.Logger
	midHour    int
	shiftHour  int
	nextMid    time.Time
	nextShift  time.Time
}

// NewRecapScheduler планирует ближайшие сводки относительно now
func NewRecapScheduler(boards *Leaderboards, ledger *ShiftLedger, dispatcher *Dispatcher, logger *logrus.Logger, midHour, shiftHour int, now time.Time) *RecapScheduler {
	return &RecapScheduler{
		boards:     boards,
		ledger:     ledger,
		dispatcher: dispatcher,
		logger:     logger,
		midHour:    midHour,
		shiftHour:  shiftHour,
		nextMid:    NextAt(midHour, now),
		nextShift:  NextAt(shiftHour, now),
	}
}

// Next возвращает время следующих сводок
func (r *RecapScheduler) Next() (mid, shift time.Time) {
	return r.nextMid, r.nextShift
}

// Check рассылает наступившие сводки. Следующее время считается от now.
func (r *RecapScheduler) Check(ctx context.Context, now time.Time) {
	log := r.logger.WithFields(logrus.Fields{"service": "recap", "method": "Check"})

	if !now.Before(r.nextMid) {
		header := "Mid-shift recap " + now.Format(leaderboard.DateLayout+" 15:04")
		sent := r.dispatcher.Broadcast(ctx, KindRecap, RecapTitle, leaderboard.RenderRows(header, r.boards.CurrentShiftRows()))
		log.WithField("sent", sent).Info("Mid-shift recap sent")
		r.nextMid = NextAt(r.midHour, now)
	}

	if !now.Before(r.nextShift) {
		header := "Daily runs " + r.ledger.ShiftDate().Format(leaderboard.DateLayout)
		sent := r.dispatcher.Broadcast(ctx, KindRecap, RecapTitle, leaderboard.RenderRows(header, r.boards.CurrentShiftRows()))
		log.WithField("sent", sent).Info("End-of-shift recap sent")
		r.ledger.Rotate(now)
		r.nextShift = NextAt(r.shiftHour, now)
	}
}
