package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_ConditionalRequests(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		assert.Equal(t, "1700000000000", r.URL.Query().Get("_time"))
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		switch n {
		case 1:
			assert.Empty(t, r.Header.Get("If-None-Match"))
			w.Header().Set("ETag", `"v1"`)
			w.Header().Set("Last-Modified", "Mon, 01 Jan 2024 00:00:00 GMT")
			_, _ = w.Write([]byte(`{"CallInfo":[{"IncidentNo":"INC1"}]}`))
		default:
			assert.Equal(t, `"v1"`, r.Header.Get("If-None-Match"))
			assert.Equal(t, "Mon, 01 Jan 2024 00:00:00 GMT", r.Header.Get("If-Modified-Since"))
			w.WriteHeader(http.StatusNotModified)
		}
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, time.Second, WithClock(func() time.Time { return time.UnixMilli(1700000000000) }))

	doc, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Records, 1)

	etag, lm := f.Validators()
	assert.Equal(t, `"v1"`, etag)
	assert.NotEmpty(t, lm)

	_, err = f.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNotModified)
}

func TestFetcher_ValidatorsUnchangedOnDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"broken"`)
		_, _ = w.Write([]byte(`{"CallInfo":[`))
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, time.Second)
	_, err := f.Fetch(context.Background())
	require.Error(t, err)

	etag, _ := f.Validators()
	assert.Empty(t, etag)
}

func TestFetcher_MissingCallInfoIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL, time.Second).Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetcher_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL, time.Second).Fetch(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotModified)
}

func TestFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL, 20*time.Millisecond).Fetch(context.Background())
	assert.Error(t, err)
}
