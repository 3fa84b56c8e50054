package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/feed"
	"github.com/shenikar/dispatch_alerts/internal/metrics"
	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/shenikar/dispatch_alerts/internal/service"
	"github.com/sirupsen/logrus"
)

// Fetcher получает документ ленты
type Fetcher interface {
	Fetch(ctx context.Context) (*feed.Document, error)
}

// CommandSource отдает новые команды операторов
type CommandSource interface {
	Updates(ctx context.Context) ([]models.Command, error)
}

// Config - параметры цикла опроса
type Config struct {
	PollInterval    time.Duration
	MaxBackoff      time.Duration
	CommandInterval time.Duration
	CommandTimeout  time.Duration
	Location        *time.Location
	// Now и Jitter подменяются в тестах
	Now    func() time.Time
	Jitter func() time.Duration
}

// Runner - внешний цикл: лента, трекеры, команды, живая таблица, сводки
type Runner struct {
	fetcher    Fetcher
	normalizer *feed.Normalizer
	processor  *service.Processor
	commands   CommandSource
	handler    *service.CommandHandler
	live       *service.LiveController
	ledger     *service.ShiftLedger
	recaps     *service.RecapScheduler
	metrics    *metrics.Metrics
	logger     *logrus.Logger
	cfg        Config

	backoff      *Backoff
	nextCommands time.Time
}

// NewRunner создает цикл опроса. commands и handler могут быть nil.
func NewRunner(
	fetcher Fetcher,
	normalizer *feed.Normalizer,
	processor *service.Processor,
	commands CommandSource,
	handler *service.CommandHandler,
	live *service.LiveController,
	ledger *service.ShiftLedger,
	recaps *service.RecapScheduler,
	m *metrics.Metrics,
	logger *logrus.Logger,
	cfg Config,
) *Runner {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		loc := cfg.Location
		cfg.Now = func() time.Time { return time.Now().In(loc) }
	}
	if cfg.Jitter == nil {
		cfg.Jitter = Jitter
	}
	return &Runner{
		fetcher:    fetcher,
		normalizer: normalizer,
		processor:  processor,
		commands:   commands,
		handler:    handler,
		live:       live,
		ledger:     ledger,
		recaps:     recaps,
		metrics:    m,
		logger:     logger,
		cfg:        cfg,
		backoff:    NewBackoff(cfg.PollInterval, cfg.MaxBackoff),
	}
}

// Run крутит цикл до отмены ctx
func (r *Runner) Run(ctx context.Context) error {
	r.logger.WithFields(logrus.Fields{
		"component":     "scheduler",
		"poll_interval": r.cfg.PollInterval.String(),
		"max_backoff":   r.cfg.MaxBackoff.String(),
	}).Info("Polling loop started")

	for {
		delay := r.Tick(ctx)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.WithField("component", "scheduler").Info("Polling loop stopped")
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Tick выполняет один проход цикла и возвращает паузу до следующего
func (r *Runner) Tick(ctx context.Context) time.Duration {
	now := r.cfg.Now()
	log := r.logger.WithField("component", "scheduler")

	doc, err := r.fetcher.Fetch(ctx)
	switch {
	case errors.Is(err, feed.ErrNotModified):
		r.metrics.FeedFetches.WithLabelValues(metrics.FetchNotModified).Inc()
		r.backoff.Success()
	case err != nil:
		r.metrics.FeedFetches.WithLabelValues(metrics.FetchError).Inc()
		delay := r.backoff.Failure()
		log.WithError(err).WithField("backoff", delay.String()).Warn("Feed fetch failed")
	default:
		r.metrics.FeedFetches.WithLabelValues(metrics.FetchOK).Inc()
		r.backoff.Success()
		snap := r.normalizer.Normalize(doc, now)
		if snap.Skipped > 0 {
			log.WithField("skipped", snap.Skipped).Warn("Malformed feed records skipped")
		}
		if failed := r.processor.Process(ctx, snap, now); failed > 0 {
			log.WithField("failed", failed).Warn("Some incidents failed to process")
		}
	}

	r.pollCommands(ctx, now)

	if r.live != nil {
		r.live.MaybeRefresh(ctx, now, r.ledger.TakeDirty())
	}
	if r.recaps != nil {
		r.recaps.Check(ctx, now)
	}

	delay := r.backoff.Current()
	r.metrics.PollBackoff.Set(delay.Seconds())
	return delay + r.cfg.Jitter()
}

func (r *Runner) pollCommands(ctx context.Context, now time.Time) {
	if r.commands == nil || r.handler == nil || now.Before(r.nextCommands) {
		return
	}
	r.nextCommands = now.Add(r.cfg.CommandInterval)

	pollCtx := ctx
	if r.cfg.CommandTimeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, r.cfg.CommandTimeout)
		defer cancel()
	}

	cmds, err := r.commands.Updates(pollCtx)
	if err != nil {
		r.logger.WithField("component", "scheduler").WithError(err).Warn("Command poll failed")
		return
	}
	for _, cmd := range cmds {
		r.handler.Handle(ctx, cmd, now)
	}
}
