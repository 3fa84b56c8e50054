package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/dispatch_alerts/internal/config"
	"github.com/shenikar/dispatch_alerts/internal/feed"
	"github.com/shenikar/dispatch_alerts/internal/geofence"
	v1 "github.com/shenikar/dispatch_alerts/internal/handler/http/v1"
	"github.com/shenikar/dispatch_alerts/internal/metrics"
	"github.com/shenikar/dispatch_alerts/internal/plug"
	"github.com/shenikar/dispatch_alerts/internal/repository"
	"github.com/shenikar/dispatch_alerts/internal/scheduler"
	"github.com/shenikar/dispatch_alerts/internal/service"
	"github.com/shenikar/dispatch_alerts/internal/telegram"
	"github.com/shenikar/dispatch_alerts/internal/tracker"
	"github.com/shenikar/dispatch_alerts/internal/webhook"
	"github.com/shenikar/dispatch_alerts/pkg/logger"
	redisclient "github.com/shenikar/dispatch_alerts/pkg/redis"

	_ "github.com/shenikar/dispatch_alerts/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	exitFatal  = 1
	exitConfig = 2
)

// @title Dispatch Alerts API
// @version 1.0
// @description Read-only admin API of the dispatch feed tracker.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to load config")
		if errors.Is(err, config.ErrMissingCredentials) {
			os.Exit(exitConfig)
		}
		os.Exit(exitFatal)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("Fatal startup error")
		os.Exit(exitFatal)
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	// Контекст для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Метрики
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Транспорт уведомлений
	transport := telegram.NewClient(cfg.TelegramAPIURL, cfg.BotToken, cfg.ChatID, cfg.Threads, cfg.SendTimeout, log)

	// Умная розетка
	var plugTrigger service.PlugTrigger
	if cfg.PlugURL != "" {
		pulser := plug.NewPulser(plug.NewHTTPSwitch(cfg.PlugURL, cfg.SendTimeout), cfg.PlugTriggerUnits, cfg.PlugHold, log, m)
		defer pulser.Close()
		plugTrigger = pulser
		log.WithField("triggers", cfg.PlugTriggerUnits).Info("Smart plug enabled")
	}

	// Зеркало событий через Redis
	publisher, stopMirror := startEventMirror(ctx, cfg, log)
	defer stopMirror()

	// Геозоны
	var matcher *geofence.Matcher
	if cfg.EarlyAlerts {
		geoCfg, err := geofence.Load(cfg.GeofenceFile, cfg.Channels())
		if err != nil {
			log.WithError(err).Error("Failed to load geofences, early alerts disabled")
		} else {
			matcher = geofence.NewMatcher(geoCfg, cfg.EarlySeenLimit)
			log.WithField("units", matcher.Units()).Info("Geofence early alerts configured")
		}
	}

	now := time.Now().In(cfg.Location)

	// Инициализация репозиториев
	shiftRepo := repository.NewShiftRepository(cfg.StatsDir, cfg.Location)
	liveRepo := repository.NewLiveStateRepository(cfg.LiveStateFile, cfg.Channels(), cfg.LogChannel)

	// Инициализация сервисов
	ledger := service.NewShiftLedger(shiftRepo, cfg.ShiftHour, log, now)
	units := tracker.NewUnitTracker(cfg.TrackedUnits, cfg.AfterMidnightCutoffHour, ledger)
	companions := tracker.NewCompanionTracker(cfg.TrackedUnits)
	dispatcher := service.NewDispatcher(transport, service.NewRenderer(cfg.CompanionLabel), publisher, plugTrigger, m, log, service.DispatcherConfig{
		LogChannel:    cfg.LogChannel,
		Channels:      cfg.Channels(),
		Watched:       cfg.TrackedUnits,
		SendTimeout:   cfg.SendTimeout,
		NotifiedLimit: cfg.NotifiedLimit,
	})
	boards := service.NewLeaderboards(shiftRepo, ledger, cfg.TrackedUnits, cfg.ShiftHour)
	live := service.NewLiveController(liveRepo, boards, dispatcher, log)
	recaps := service.NewRecapScheduler(boards, ledger, dispatcher, log, cfg.MidShiftHour, cfg.ShiftHour, now)
	commands := service.NewCommandHandler(boards, live, units, dispatcher, log, cfg.Location)
	processor := service.NewProcessor(units, companions, matcher, dispatcher, m, log, cfg.SweepAfterPolls)
	statusService := service.NewStatusService(boards, ledger, units, live, log, func() time.Time { return time.Now().In(cfg.Location) })

	runner := scheduler.NewRunner(
		feed.NewFetcher(cfg.FeedURL, cfg.FetchTimeout),
		feed.NewNormalizer(cfg.Location),
		processor,
		transport,
		commands,
		live,
		ledger,
		recaps,
		m,
		log,
		scheduler.Config{
			PollInterval:    cfg.PollInterval,
			MaxBackoff:      cfg.MaxBackoff,
			CommandInterval: cfg.CommandPollInterval,
			CommandTimeout:  cfg.SendTimeout,
			Location:        cfg.Location,
		},
	)

	// Admin API
	var srv *http.Server
	if cfg.HTTPPort != "" {
		handler := v1.NewHandler(statusService, log, cfg)

		// Настройка Gin роутера
		router := gin.New()
		router.Use(gin.Recovery())
		api := router.Group("/api/v1")
		handler.RegisterRoutes(api)

		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
		// Добавление маршрута для Swagger UI
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		srv = &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Запуск сервера в горутине
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("HTTP server failed")
			}
		}()
		log.Infof("HTTP server started on port %s", cfg.HTTPPort)
	}

	_, _ = dispatcher.Send(ctx, service.KindStatus, cfg.LogChannel, "SCRIPT STATUS",
		"Dispatch alert service started successfully at "+now.Format("2006-01-02 15:04:05"))

	log.WithFields(logrus.Fields{
		"feed_url":   cfg.FeedURL,
		"tracked":    cfg.TrackedUnits,
		"shift_date": ledger.ShiftDate().Format("2006-01-02"),
	}).Info("Dispatch tracker started")

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("Received shutdown signal, shutting down...")

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Server forced to shutdown")
		}
	}

	log.Info("Service gracefully stopped")
	return nil
}

// startEventMirror подключает Redis и запускает воркер вебхуков. Недоступный Redis
// отключает зеркало событий и не останавливает трекер.
func startEventMirror(ctx context.Context, cfg *config.Config, log *logrus.Logger) (webhook.EventPublisher, func()) {
	if cfg.RedisAddr == "" {
		return nil, func() {}
	}

	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Error("Failed to connect to Redis, event mirror disabled")
		return nil, func() {}
	}
	log.Info("Successfully connected to Redis")

	// Инициализация и запуск воркера вебхуков
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	return webhook.NewRedisEventPublisher(redisClient), func() {
		<-webhookWorker.Done()
		_ = redisClient.Close()
	}
}
