package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotModified - лента не изменилась с прошлого запроса
var ErrNotModified = errors.New("feed: not modified")

const defaultUserAgent = "dispatch-alerts/1.0"

// maxDocumentSize ограничивает размер тела ответа ленты
const maxDocumentSize = 16 << 20

// Document - сырой документ ленты. Записи декодируются нормализатором по одной.
type Document struct {
	Records []json.RawMessage
}

type wireDocument struct {
	CallInfo *[]json.RawMessage `json:"CallInfo"`
}

// Option настраивает Fetcher
type Option func(*Fetcher)

// WithHTTPClient задает HTTP-клиент
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithUserAgent задает заголовок User-Agent
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithClock задает источник времени для параметра сброса кеша
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// Fetcher - условный загрузчик ленты диспетчерской (ETag / Last-Modified)
type Fetcher struct {
	client    *http.Client
	url       string
	userAgent string
	now       func() time.Time

	etag         string
	lastModified string
}

// NewFetcher создает загрузчик ленты. timeout ограничивает каждый запрос.
func NewFetcher(feedURL string, timeout time.Duration, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: timeout},
		url:       feedURL,
		userAgent: defaultUserAgent,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Validators возвращает текущие валидаторы кеша
func (f *Fetcher) Validators() (etag, lastModified string) {
	return f.etag, f.lastModified
}

// Fetch выполняет условный запрос. Возвращает ErrNotModified, если лента не изменилась.
// Валидаторы обновляются только после успешного декодирования документа.
func (f *Fetcher) Fetch(ctx context.Context) (*Document, error) {
	reqURL, err := f.requestURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)
	if f.etag != "" {
		req.Header.Set("If-None-Match", f.etag)
	}
	if f.lastModified != "" {
		req.Header.Set("If-Modified-Since", f.lastModified)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, ErrNotModified
	}
	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("feed: unexpected status %d", resp.StatusCode)
	}

	var wire wireDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDocumentSize)).Decode(&wire); err != nil {
		return nil, fmt.Errorf("feed: decode document: %w", err)
	}
	if wire.CallInfo == nil {
		return nil, fmt.Errorf("feed: decode document: CallInfo is missing")
	}

	if v := resp.Header.Get("ETag"); v != "" {
		f.etag = v
	}
	if v := resp.Header.Get("Last-Modified"); v != "" {
		f.lastModified = v
	}
	return &Document{Records: *wire.CallInfo}, nil
}

func (f *Fetcher) requestURL() (string, error) {
	u, err := url.Parse(f.url)
	if err != nil {
		return "", fmt.Errorf("feed: parse url: %w", err)
	}
	q := u.Query()
	q.Set("_time", strconv.FormatInt(f.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
