package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrUnknownChannel - канал не найден в карте тем
var ErrUnknownChannel = errors.New("telegram: unknown channel")

const notModified = "message is not modified"

// APIError - ответ Bot API с ok=false
type APIError struct {
	Method      string
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram: %s: %d %s", e.Method, e.Code, e.Description)
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

type sendRequest struct {
	ChatID          int64  `json:"chat_id"`
	MessageThreadID int64  `json:"message_thread_id,omitempty"`
	Text            string `json:"text"`
	ParseMode       string `json:"parse_mode"`
}

type editRequest struct {
	ChatID    int64  `json:"chat_id"`
	MessageID int64  `json:"message_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type message struct {
	MessageID       int64  `json:"message_id"`
	MessageThreadID int64  `json:"message_thread_id"`
	Text            string `json:"text"`
}

type update struct {
	UpdateID int64    `json:"update_id"`
	Message  *message `json:"message"`
}

// Client - транспорт сообщений поверх Telegram Bot API с маршрутизацией по темам форума
type Client struct {
	httpClient *http.Client
	baseURL    string
	chatID     int64
	threads    map[string]int64
	byThread   map[int64]string
	logger     *logrus.Logger

	mu     sync.Mutex
	offset int64
}

// NewClient создает клиента. threads - карта канал -> id темы.
func NewClient(apiURL, token string, chatID int64, threads map[string]int64, timeout time.Duration, logger *logrus.Logger) *Client {
	byThread := make(map[int64]string, len(threads))
	for name, id := range threads {
		byThread[id] = name
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(apiURL, "/") + "/bot" + token,
		chatID:     chatID,
		threads:    threads,
		byThread:   byThread,
		logger:     logger,
	}
}

// FormatText - заголовок жирным и тело с новой строки
func FormatText(title, body string) string {
	return "<b>" + title + "</b>\n" + body
}

// Send отправляет сообщение в тему канала и возвращает id сообщения
func (c *Client) Send(ctx context.Context, channel, title, body string) (int64, error) {
	thread, ok := c.threads[channel]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}

	var msg message
	err := c.call(ctx, "sendMessage", sendRequest{
		ChatID:          c.chatID,
		MessageThreadID: thread,
		Text:            FormatText(title, body),
		ParseMode:       "HTML",
	}, &msg)
	if err != nil {
		return 0, err
	}

	c.logger.WithFields(logrus.Fields{
		"component":  "telegram",
		"channel":    channel,
		"message_id": msg.MessageID,
	}).Infof("SENT %s - %s", title, strings.ReplaceAll(body, "\n", " | "))
	return msg.MessageID, nil
}

// Edit заменяет текст ранее отправленного сообщения. Неизмененный текст считается успехом.
func (c *Client) Edit(ctx context.Context, channel string, messageID int64, title, body string) error {
	if _, ok := c.threads[channel]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}

	err := c.call(ctx, "editMessageText", editRequest{
		ChatID:    c.chatID,
		MessageID: messageID,
		Text:      FormatText(title, body),
		ParseMode: "HTML",
	}, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.Contains(apiErr.Description, notModified) {
		err = nil
	}
	if err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"component":  "telegram",
		"channel":    channel,
		"message_id": messageID,
	}).Infof("EDIT %s", title)
	return nil
}

// Updates забирает новые команды операторов. Смещение продвигается за каждое полученное обновление.
func (c *Client) Updates(ctx context.Context) ([]models.Command, error) {
	c.mu.Lock()
	offset := c.offset
	c.mu.Unlock()

	q := url.Values{}
	q.Set("timeout", "0")
	q.Set("offset", strconv.FormatInt(offset, 10))
	q.Set("allowed_updates", `["message"]`)

	var updates []update
	if err := c.get(ctx, "getUpdates", q, &updates); err != nil {
		return nil, err
	}

	var cmds []models.Command
	for _, u := range updates {
		if u.UpdateID >= offset {
			offset = u.UpdateID + 1
		}
		if u.Message == nil || u.Message.Text == "" {
			continue
		}
		channel, ok := c.byThread[u.Message.MessageThreadID]
		if !ok {
			continue
		}
		cmds = append(cmds, models.Command{UpdateID: u.UpdateID, Channel: channel, Text: u.Message.Text})
	}

	c.mu.Lock()
	c.offset = offset
	c.mu.Unlock()
	return cmds, nil
}

func (c *Client) call(ctx context.Context, method string, payload any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram: %s: marshal: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: %s: build request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, method, result)
}

func (c *Client) get(ctx context.Context, method string, q url.Values, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+method+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("telegram: %s: build request: %w", method, err)
	}
	return c.do(req, method, result)
}

func (c *Client) do(req *http.Request, method string, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("telegram: %s: read response: %w", method, err)
	}

	var r apiResponse
	if err := json.Unmarshal(raw, &r); err != nil {
		return fmt.Errorf("telegram: %s: status %d: decode response: %w", method, resp.StatusCode, err)
	}
	if !r.OK {
		return &APIError{Method: method, Code: r.ErrorCode, Description: r.Description}
	}
	if result != nil && len(r.Result) > 0 {
		if err := json.Unmarshal(r.Result, result); err != nil {
			return fmt.Errorf("telegram: %s: decode result: %w", method, err)
		}
	}
	return nil
}
