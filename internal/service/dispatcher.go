package service

import (
	"context"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/metrics"
	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/shenikar/dispatch_alerts/internal/webhook"
	"github.com/sirupsen/logrus"
)

// Виды уведомлений
const (
	KindNewCall   = "new_call"
	KindCompanion = "companion"
	KindEarly     = "early_alert"
	KindRecap     = "recap"
	KindLive      = "live"
	KindReply     = "reply"
	KindStatus    = "status"
)

// DispatcherConfig - параметры диспетчера уведомлений
type DispatcherConfig struct {
	LogChannel    string
	Channels      []string
	Watched       []string
	SendTimeout   time.Duration
	NotifiedLimit int
}

// Dispatcher превращает события трекера в исходящие сообщения.
// Доставка best-effort: ошибки транспорта журналируются и не откатывают состояние.
type Dispatcher struct {
	transport Transport
	renderer  *Renderer
	publisher webhook.EventPublisher
	plug      PlugTrigger
	metrics   *metrics.Metrics
	logger    *logrus.Logger
	cfg       DispatcherConfig
	watched   map[string]struct{}

	notified      map[string]struct{}
	notifiedOrder []string
}

// NewDispatcher создает диспетчер. publisher и plug могут быть nil.
func NewDispatcher(
	transport Transport,
	renderer *Renderer,
	publisher webhook.EventPublisher,
	plug PlugTrigger,
	m *metrics.Metrics,
	logger *logrus.Logger,
	cfg DispatcherConfig,
) *Dispatcher {
	watched := make(map[string]struct{}, len(cfg.Watched))
	for _, u := range cfg.Watched {
		watched[u] = struct{}{}
	}
	return &Dispatcher{
		transport: transport,
		renderer:  renderer,
		publisher: publisher,
		plug:      plug,
		metrics:   m,
		logger:    logger,
		cfg:       cfg,
		watched:   watched,
		notified:  make(map[string]struct{}),
	}
}

// LogChannel - общий канал журнала
func (d *Dispatcher) LogChannel() string {
	return d.cfg.LogChannel
}

// Notified сообщает, отправлялось ли уже уведомление о новом вызове
func (d *Dispatcher) Notified(incidentID string) bool {
	_, ok := d.notified[incidentID]
	return ok
}

// NotifyNewCall отправляет уведомление о новом вызове каждой отслеживаемой единице на вызове
// и в канал журнала. Не более одного раза на вызов. Возвращает true, если уведомление ушло.
func (d *Dispatcher) NotifyNewCall(ctx context.Context, inc models.Incident, now time.Time) bool {
	if d.Notified(inc.ID) {
		return false
	}

	targets := make([]string, 0, len(inc.Units)+1)
	seen := make(map[string]struct{}, len(inc.Units)+1)
	var onCall []string
	for _, u := range inc.Units {
		onCall = append(onCall, u.ID)
		if _, ok := d.watched[u.ID]; !ok {
			continue
		}
		if _, dup := seen[u.ID]; dup {
			continue
		}
		seen[u.ID] = struct{}{}
		targets = append(targets, u.ID)
	}
	if len(targets) == 0 {
		return false
	}
	if _, ok := seen[d.cfg.LogChannel]; !ok {
		targets = append(targets, d.cfg.LogChannel)
	}

	log := d.logger.WithFields(logrus.Fields{
		"component":   "dispatcher",
		"incident_id": inc.ID,
	})

	title, body, err := d.renderer.NewCall(inc)
	if err != nil {
		log.WithError(err).Error("Failed to render new call notification")
		return false
	}
	for _, ch := range targets {
		_, _ = d.Send(ctx, KindNewCall, ch, title, body)
	}
	d.markNotified(inc.ID)

	incCopy := inc
	d.Publish(ctx, models.TrackerEvent{Kind: models.EventNewCall, IncidentID: inc.ID, At: now, Incident: &incCopy})

	if d.plug != nil && d.plug.Trigger(onCall) {
		log.Info("Plug pulse started for new call")
	}
	return true
}

// NotifyCompanion отправляет основной единице уведомление о сопровождающей
func (d *Dispatcher) NotifyCompanion(ctx context.Context, change models.CompanionChange, now time.Time) {
	title, err := d.renderer.Companion(change)
	if err != nil {
		d.logger.WithError(err).Error("Failed to render companion notification")
		return
	}
	_, _ = d.Send(ctx, KindCompanion, change.PrimaryUnit, title, "")

	kind := models.EventCompanionRemoved
	if change.Added {
		kind = models.EventCompanionAdded
	}
	d.Publish(ctx, models.TrackerEvent{
		Kind:       kind,
		IncidentID: change.IncidentID,
		Unit:       change.PrimaryUnit,
		Companion:  change.Companion,
		At:         now,
	})
}

// NotifyEarly отправляет предварительное оповещение в канал единицы
func (d *Dispatcher) NotifyEarly(ctx context.Context, alert models.EarlyAlert, now time.Time) {
	title, body, err := d.renderer.EarlyAlert(alert)
	if err != nil {
		d.logger.WithError(err).Error("Failed to render early alert")
		return
	}
	_, _ = d.Send(ctx, KindEarly, alert.Unit, title, body)
	if d.metrics != nil {
		d.metrics.EarlyAlerts.Inc()
	}

	incCopy := alert.Incident
	d.Publish(ctx, models.TrackerEvent{
		Kind:       models.EventEarlyAlert,
		IncidentID: alert.Incident.ID,
		Unit:       alert.Unit,
		At:         now,
		Incident:   &incCopy,
	})
}

// Broadcast отправляет сообщение во все настроенные каналы
func (d *Dispatcher) Broadcast(ctx context.Context, kind, title, body string) int {
	sent := 0
	for _, ch := range d.cfg.Channels {
		if _, err := d.Send(ctx, kind, ch, title, body); err == nil {
			sent++
		}
	}
	return sent
}

// Send отправляет одно сообщение с ограничением по времени
func (d *Dispatcher) Send(ctx context.Context, kind, channel, title, body string) (int64, error) {
	sendCtx, cancel := d.withTimeout(ctx)
	defer cancel()

	id, err := d.transport.Send(sendCtx, channel, title, body)
	d.count(kind, err)
	if err != nil {
		d.logger.WithFields(logrus.Fields{
			"component": "dispatcher",
			"kind":      kind,
			"channel":   channel,
		}).WithError(err).Warn("Failed to send notification")
		return 0, err
	}
	return id, nil
}

// Edit редактирует ранее отправленное сообщение с ограничением по времени
func (d *Dispatcher) Edit(ctx context.Context, kind, channel string, messageID int64, title, body string) error {
	editCtx, cancel := d.withTimeout(ctx)
	defer cancel()

	err := d.transport.Edit(editCtx, channel, messageID, title, body)
	d.count(kind, err)
	if err != nil {
		d.logger.WithFields(logrus.Fields{
			"component":  "dispatcher",
			"kind":       kind,
			"channel":    channel,
			"message_id": messageID,
		}).WithError(err).Warn("Failed to edit message")
	}
	return err
}

// Publish зеркалирует событие во внешнюю очередь. Ошибки только журналируются.
func (d *Dispatcher) Publish(ctx context.Context, event models.TrackerEvent) {
	if d.publisher == nil {
		return
	}
	pubCtx, cancel := d.withTimeout(ctx)
	defer cancel()
	if err := d.publisher.Publish(pubCtx, event); err != nil {
		d.logger.WithFields(logrus.Fields{
			"component":   "dispatcher",
			"event_kind":  event.Kind,
			"incident_id": event.IncidentID,
		}).WithError(err).Warn("Failed to publish tracker event")
	}
}

// markNotified запоминает вызов. При превышении лимита остается новейшая половина.
func (d *Dispatcher) markNotified(incidentID string) {
	d.notified[incidentID] = struct{}{}
	d.notifiedOrder = append(d.notifiedOrder, incidentID)
	limit := d.cfg.NotifiedLimit
	if limit <= 0 || len(d.notified) <= limit {
		return
	}
	drop := len(d.notifiedOrder) - limit/2
	for _, id := range d.notifiedOrder[:drop] {
		delete(d.notified, id)
	}
	d.notifiedOrder = append([]string(nil), d.notifiedOrder[drop:]...)
}

func (d *Dispatcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.cfg.SendTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.cfg.SendTimeout)
}

func (d *Dispatcher) count(kind string, err error) {
	if d.metrics == nil {
		return
	}
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}
	d.metrics.Notifications.WithLabelValues(kind, result).Inc()
}
