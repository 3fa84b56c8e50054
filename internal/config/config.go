package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingCredentials - не заданы BOT_TOKEN или CHAT_ID
var ErrMissingCredentials = errors.New("BOT_TOKEN and CHAT_ID environment variables are required")

const defaultThreadIDs = "GENERAL:1,R33:2,E33:3,T33:4,33FD:5,LR36:6,HM33:7,R34:8,E34:9,TR34:10," +
	"E36:11,S36:12,R36:13,E35:14,34FD:15,36FD:16,D35:17,R35:18,35FD:19,LOG:20,E136:7126"

// Config - структура для хранения конфигурации приложения
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	// Telegram
	BotToken       string           `env:"BOT_TOKEN"`
	ChatID         int64            `env:"CHAT_ID"`
	TelegramAPIURL string           `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
	Threads        map[string]int64 `env:"THREAD_IDS"`
	TrackedUnits   []string         `env:"TRACKED_UNITS"`
	LogChannel     string           `env:"LOG_CHANNEL" envDefault:"LOG"`
	SendTimeout    time.Duration    `env:"SEND_TIMEOUT" envDefault:"15s"`

	// Feed
	FeedURL             string        `env:"FEED_URL"`
	PollInterval        time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`
	MaxBackoff          time.Duration `env:"MAX_BACKOFF" envDefault:"60s"`
	FetchTimeout        time.Duration `env:"FETCH_TIMEOUT" envDefault:"20s"`
	CommandPollInterval time.Duration `env:"COMMAND_POLL_INTERVAL" envDefault:"10s"`
	SweepAfterPolls     int           `env:"SWEEP_AFTER_POLLS" envDefault:"3"`

	// Shift
	Timezone                string `env:"TIMEZONE" envDefault:"America/New_York"`
	Location                *time.Location
	ShiftHour               int    `env:"SHIFT_HOUR" envDefault:"7"`
	MidShiftHour            int    `env:"MIDSHIFT_HOUR" envDefault:"19"`
	AfterMidnightCutoffHour int    `env:"AFTER_MIDNIGHT_CUTOFF_HOUR" envDefault:"7"`
	StatsDir                string `env:"STATS_DIR" envDefault:"."`
	LiveStateFile           string `env:"LIVE_STATE_FILE" envDefault:"live_state.json"`

	// Alerts
	GeofenceFile   string `env:"GEOFENCE_FILE" envDefault:"geofences.json"`
	EarlyAlerts    bool   `env:"EARLY_ALERTS" envDefault:"true"`
	CompanionLabel string `env:"COMPANION_LABEL" envDefault:"SUNSTAR"`
	NotifiedLimit  int    `env:"NOTIFIED_LIMIT" envDefault:"5000"`
	EarlySeenLimit int    `env:"EARLY_SEEN_LIMIT" envDefault:"20000"`

	// Smart plug
	PlugURL          string        `env:"PLUG_URL"`
	PlugTriggerUnits []string      `env:"PLUG_TRIGGER_UNITS"`
	PlugHold         time.Duration `env:"PLUG_HOLD" envDefault:"90s"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		HTTPPort:                getEnv("HTTP_PORT", "8080"),
		BotToken:                strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		ChatID:                  getEnvAsInt64("CHAT_ID", 0),
		TelegramAPIURL:          getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		LogChannel:              strings.ToUpper(getEnv("LOG_CHANNEL", "LOG")),
		SendTimeout:             getEnvAsDuration("SEND_TIMEOUT", 15*time.Second),
		FeedURL:                 getEnv("FEED_URL", "https://911.pinellas.gov/files/Activity.json"),
		PollInterval:            getEnvAsDuration("POLL_INTERVAL", 5*time.Second),
		MaxBackoff:              getEnvAsDuration("MAX_BACKOFF", 60*time.Second),
		FetchTimeout:            getEnvAsDuration("FETCH_TIMEOUT", 20*time.Second),
		CommandPollInterval:     getEnvAsDuration("COMMAND_POLL_INTERVAL", 10*time.Second),
		SweepAfterPolls:         getEnvAsInt("SWEEP_AFTER_POLLS", 3),
		Timezone:                getEnv("TIMEZONE", "America/New_York"),
		ShiftHour:               getEnvAsInt("SHIFT_HOUR", 7),
		MidShiftHour:            getEnvAsInt("MIDSHIFT_HOUR", 19),
		AfterMidnightCutoffHour: getEnvAsInt("AFTER_MIDNIGHT_CUTOFF_HOUR", 7),
		StatsDir:                getEnv("STATS_DIR", "."),
		LiveStateFile:           getEnv("LIVE_STATE_FILE", "live_state.json"),
		GeofenceFile:            getEnv("GEOFENCE_FILE", "geofences.json"),
		EarlyAlerts:             getEnvAsBool("EARLY_ALERTS", true),
		CompanionLabel:          getEnv("COMPANION_LABEL", "SUNSTAR"),
		NotifiedLimit:           getEnvAsInt("NOTIFIED_LIMIT", 5000),
		EarlySeenLimit:          getEnvAsInt("EARLY_SEEN_LIMIT", 20000),
		PlugURL:                 strings.TrimSpace(os.Getenv("PLUG_URL")),
		PlugTriggerUnits:        splitUpperCSV(os.Getenv("PLUG_TRIGGER_UNITS")),
		PlugHold:                getEnvAsDuration("PLUG_HOLD", 90*time.Second),
		RedisAddr:               os.Getenv("REDIS_ADDR"),
		RedisPass:               os.Getenv("REDIS_PASSWORD"),
		RedisDB:                 getEnvAsInt("REDIS_DB", 0),
		WebhookURL:              os.Getenv("WEBHOOK_URL"),
		WebhookSecret:           os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:          getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:       getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:        getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
	}

	threads, err := ParseThreadIDs(getEnv("THREAD_IDS", defaultThreadIDs))
	if err != nil {
		return nil, err
	}
	cfg.Threads = threads

	if v := os.Getenv("TRACKED_UNITS"); strings.TrimSpace(v) != "" {
		cfg.TrackedUnits = splitUpperCSV(v)
	} else {
		cfg.TrackedUnits = DefaultTrackedUnits(threads)
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("некорректный TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры и диапазоны
func (c *Config) Validate() error {
	if c.BotToken == "" || c.ChatID == 0 {
		return ErrMissingCredentials
	}
	for name, h := range map[string]int{
		"SHIFT_HOUR":                 c.ShiftHour,
		"MIDSHIFT_HOUR":              c.MidShiftHour,
		"AFTER_MIDNIGHT_CUTOFF_HOUR": c.AfterMidnightCutoffHour,
	} {
		if h < 0 || h > 23 {
			return fmt.Errorf("%s must be within 0..23, got %d", name, h)
		}
	}
	if c.MidShiftHour == c.ShiftHour {
		return fmt.Errorf("MIDSHIFT_HOUR must differ from SHIFT_HOUR, both are %d", c.ShiftHour)
	}
	if _, ok := c.Threads[c.LogChannel]; !ok {
		return fmt.Errorf("LOG_CHANNEL %q has no entry in THREAD_IDS", c.LogChannel)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive")
	}
	if c.MaxBackoff < c.PollInterval {
		c.MaxBackoff = c.PollInterval
	}
	return nil
}

// Channels возвращает имена всех каналов в стабильном порядке
func (c *Config) Channels() []string {
	out := make([]string, 0, len(c.Threads))
	for name := range c.Threads {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return c.Threads[out[i]] < c.Threads[out[j]] })
	return out
}

// ParseThreadIDs разбирает строку вида "E33:3,LOG:20"
func ParseThreadIDs(value string) (map[string]int64, error) {
	threads := make(map[string]int64)
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, idStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("некорректная запись THREAD_IDS: %q", part)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("некорректный id темы для %q: %w", name, err)
		}
		threads[strings.ToUpper(strings.TrimSpace(name))] = id
	}
	if len(threads) == 0 {
		return nil, fmt.Errorf("THREAD_IDS is empty")
	}
	return threads, nil
}

// DefaultTrackedUnits - все каналы, кроме общего
func DefaultTrackedUnits(threads map[string]int64) []string {
	out := make([]string, 0, len(threads))
	for name := range threads {
		if name == "GENERAL" {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitUpperCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
