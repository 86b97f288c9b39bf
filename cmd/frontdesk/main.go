package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frontdesk/internal/billing"
	"frontdesk/internal/config"
	"frontdesk/internal/database"
	"frontdesk/internal/domain"
	"frontdesk/internal/events"
	"frontdesk/internal/export"
	"frontdesk/internal/logging"
	"frontdesk/internal/metrics"
	"frontdesk/internal/service"
	"frontdesk/internal/session"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	store, err := database.Open(cfg.Database.Path, &logger)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	sessionRepo := initSessionRepository(ctx, cfg, &logger)
	sessions := session.NewService(
		store,
		sessionRepo,
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		cfg.Session.MaxLoginAttempts,
		time.Duration(cfg.Session.LoginWindowSecs)*time.Second,
		&logger,
	)

	eventBus := events.NewEventBus()
	subscribeEvents(eventBus, &logger)

	// Менеджеры сущностей — их встраивает оболочка форм.
	guests := service.NewGuestService(store, &logger)
	rooms := service.NewRoomService(store, &logger)
	catalog := service.NewCatalogService(store, eventBus, &logger)
	bookings := service.NewBookingService(store, store, store, eventBus, &logger)
	bills := service.NewBillService(store, &logger)
	calculator := billing.NewCalculator(store, eventBus, &logger)
	reporter := export.NewReporter(store, cfg.Exports, &logger)

	app := &Application{
		Config:     cfg,
		Sessions:   sessions,
		Guests:     guests,
		Rooms:      rooms,
		Catalog:    catalog,
		Bookings:   bookings,
		Bills:      bills,
		Calculator: calculator,
		Reporter:   reporter,
	}
	if err := app.logInventory(ctx, &logger); err != nil {
		return err
	}

	if cfg.Backup.Enabled {
		backupService := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backupService.Start(ctx)
	}

	if cfg.Monitoring.PrometheusEnabled {
		go serveMetrics(cfg.Monitoring.PrometheusPort, &logger)
	}

	logger.Info().Str("database", cfg.Database.Path).Msg("front desk ready")

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	return nil
}

// Application bundles everything the desktop forms shell needs: the login
// gate plus one manager per entity. The shell holds the Session returned by
// Sessions.Login and passes it to each form it opens.
type Application struct {
	Config     *config.Config
	Sessions   *session.Service
	Guests     *service.GuestService
	Rooms      *service.RoomService
	Catalog    *service.CatalogService
	Bookings   *service.BookingService
	Bills      *service.BillService
	Calculator *billing.Calculator
	Reporter   *export.Reporter
}

func (a *Application) logInventory(ctx context.Context, logger *zerolog.Logger) error {
	rooms, err := a.Rooms.List(ctx, "")
	if err != nil {
		return err
	}
	services, err := a.Catalog.List(ctx, "")
	if err != nil {
		return err
	}

	logger.Info().
		Int("rooms", len(rooms)).
		Int("services", len(services)).
		Msg("inventory loaded")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "main").Logger()

	return cfg, logger, closer, nil
}

func initSessionRepository(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) domain.SessionRepository {
	memory := session.NewMemoryRepository()
	if !cfg.Redis.Enabled {
		logger.Info().Msg("redis disabled, sessions kept in memory")
		return memory
	}

	client := session.NewRedisClient(cfg.Redis)
	if err := session.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, sessions kept in memory")
		return memory
	}

	logger.Info().Str("address", cfg.Redis.Address).Msg("redis session store connected")
	return session.NewFailoverRepository(session.NewRedisRepository(client), memory, logger)
}

func subscribeEvents(bus *events.EventBus, logger *zerolog.Logger) {
	logEvent := func(event *events.Event) error {
		payload := map[string]any{}
		_ = json.Unmarshal(event.Payload, &payload)
		logger.Info().
			Str("event", event.Type).
			Interface("payload", payload).
			Msg("event")
		metrics.IncOperation("events", event.Type)
		return nil
	}

	bus.Subscribe(events.EventBillCreated, logEvent)
	bus.Subscribe(events.EventBookingStatusChanged, logEvent)
	bus.Subscribe(events.EventServiceRevoked, logEvent)
}

func serveMetrics(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info().Str("addr", addr).Msg("metrics listener started")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("metrics listener failed")
	}
}
