package plug

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/metrics"
	"github.com/sirupsen/logrus"
)

// switchTimeout ограничивает одну команду реле
const switchTimeout = 10 * time.Second

// Switch - реле умной розетки
type Switch interface {
	TurnOn(ctx context.Context) error
	TurnOff(ctx context.Context) error
}

// HTTPSwitch управляет реле с HTTP-командами в стиле Tasmota: GET /cm?cmnd=Power%20On
type HTTPSwitch struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSwitch создает клиента реле
func NewHTTPSwitch(baseURL string, timeout time.Duration) *HTTPSwitch {
	return &HTTPSwitch{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// TurnOn включает реле
func (s *HTTPSwitch) TurnOn(ctx context.Context) error {
	return s.command(ctx, "Power On")
}

// TurnOff выключает реле
func (s *HTTPSwitch) TurnOff(ctx context.Context) error {
	return s.command(ctx, "Power Off")
}

func (s *HTTPSwitch) command(ctx context.Context, cmnd string) error {
	u := s.baseURL + "/cm?cmnd=" + url.PathEscape(cmnd)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("plug: build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("plug: %s: %w", cmnd, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("plug: %s: unexpected status %d", cmnd, resp.StatusCode)
	}
	return nil
}

// Pulser включает розетку на время hold в отдельной горутине. Импульсы не перекрываются.
type Pulser struct {
	sw       Switch
	triggers map[string]struct{}
	hold     time.Duration
	logger   *logrus.Logger
	metrics  *metrics.Metrics

	running atomic.Bool
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewPulser создает пульсатор. Без реле или без единиц-триггеров Trigger ничего не делает.
func NewPulser(sw Switch, triggers []string, hold time.Duration, logger *logrus.Logger, m *metrics.Metrics) *Pulser {
	set := make(map[string]struct{}, len(triggers))
	for _, u := range triggers {
		set[u] = struct{}{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pulser{
		sw:       sw,
		triggers: set,
		hold:     hold,
		logger:   logger,
		metrics:  m,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Trigger запускает импульс, если units пересекаются с единицами-триггерами.
// Не блокирует и не возвращает ошибок реле. Возвращает true, если импульс запущен.
func (p *Pulser) Trigger(units []string) bool {
	if p.sw == nil || len(p.triggers) == 0 {
		return false
	}
	var hit []string
	for _, u := range units {
		if _, ok := p.triggers[u]; ok {
			hit = append(hit, u)
		}
	}
	if len(hit) == 0 {
		return false
	}

	log := p.logger.WithFields(logrus.Fields{"component": "plug", "units": hit})
	if p.ctx.Err() != nil || !p.running.CompareAndSwap(false, true) {
		log.Info("Plug pulse already running, trigger skipped")
		p.count("skipped")
		return false
	}

	log.Info("Plug triggered")
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.running.Store(false)
		p.pulse(log)
	}()
	return true
}

func (p *Pulser) pulse(log *logrus.Entry) {
	onCtx, cancel := context.WithTimeout(p.ctx, switchTimeout)
	err := p.sw.TurnOn(onCtx)
	cancel()
	if err != nil {
		log.WithError(err).Error("Plug turn on failed")
		p.count("error")
		return
	}

	t := time.NewTimer(p.hold)
	select {
	case <-t.C:
	case <-p.ctx.Done():
		t.Stop()
	}

	// Выключение не зависит от отмены пульсатора
	offCtx, cancel := context.WithTimeout(context.Background(), switchTimeout)
	defer cancel()
	if err := p.sw.TurnOff(offCtx); err != nil {
		log.WithError(err).Error("Plug turn off failed")
		p.count("error")
		return
	}
	log.Info("Plug pulse finished")
	p.count("ok")
}

// Running сообщает, идет ли импульс
func (p *Pulser) Running() bool {
	return p.running.Load()
}

// Close прерывает удержание, выключает розетку и ждет завершения импульса
func (p *Pulser) Close() {
	p.cancel()
	p.wg.Wait()
}

func (p *Pulser) count(result string) {
	if p.metrics != nil {
		p.metrics.PlugPulses.WithLabelValues(result).Inc()
	}
}
