package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/config"
	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(cfg *config.Config) *WebhookWorker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewWebhookWorker(nil, logger, cfg)
}

func payload(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(models.TrackerEvent{
		Kind:       models.EventNewCall,
		IncidentID: "INC1",
		Unit:       "E33",
		At:         time.Date(2024, 3, 10, 6, 45, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return string(raw)
}

func TestDeliver_SignsPayload(t *testing.T) {
	body := payload(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ := io.ReadAll(r.Body)
		assert.Equal(t, body, string(got))
		assert.Equal(t, generateHMACSHA256(body, "s3cret"), r.Header.Get(SignatureHeader))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	w := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookSecret:     "s3cret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	})
	require.NoError(t, w.Deliver(context.Background(), body))
}

func TestDeliver_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	})
	require.NoError(t, w.Deliver(context.Background(), payload(t)))
	assert.Equal(t, int32(3), calls.Load())
}

func TestDeliver_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	w := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 2,
		WebhookBaseDelay:  time.Millisecond,
	})
	assert.Error(t, w.Deliver(context.Background(), payload(t)))
	assert.Equal(t, int32(2), calls.Load())
}

func TestDeliver_NoURLSkips(t *testing.T) {
	w := newTestWorker(&config.Config{WebhookMaxRetries: 3})
	assert.NoError(t, w.Deliver(context.Background(), payload(t)))
}

func TestDeliver_BadPayload(t *testing.T) {
	w := newTestWorker(&config.Config{WebhookURL: "http://localhost"})
	assert.Error(t, w.Deliver(context.Background(), "{"))
}
