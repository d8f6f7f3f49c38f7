package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"barberpro/internal/api"
	"barberpro/internal/config"
	"barberpro/internal/domain"
	"barberpro/internal/events"
	"barberpro/internal/export"
	"barberpro/internal/logging"
	"barberpro/internal/metrics"
	"barberpro/internal/repository"
	"barberpro/internal/service"
	"barberpro/internal/session"
	"barberpro/internal/storage"
	"barberpro/internal/store"
	"barberpro/internal/wizard"
	"barberpro/internal/worker"

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

	if err := prepareDirectories(cfg); err != nil {
		logger.Error().Err(err).Msg("failed to prepare directories")
		return err
	}

	kv, err := storage.NewSQLiteKV(cfg.Database.Path)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open blob store")
		return err
	}
	defer kv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := initSessionRepository(ctx, cfg, logger)
	eventBus := events.NewEventBus()
	metrics.Register()

	appointments := store.NewAppointmentStore(kv, logger)
	services := store.NewServiceStore(kv, logger)
	products := store.NewProductStore(kv, logger)
	staff := store.NewStaffStore(kv, logger)

	auth := session.NewManager(cfg.Session.JWTSecret, cfg.Session.TokenTTL, logger)
	bookingWizard := wizard.New(sessions, staff, services, appointments, eventBus, logger)
	adminService := service.NewAdminService(services, products, staff, eventBus, logger)
	financeService := service.NewFinanceService(appointments, products, logger)
	loyaltyService := service.NewLoyaltyService(kv, logger)
	checkoutService := service.NewCheckoutService(kv, products, eventBus, logger)

	exporter := export.NewLedgerExporter(appointments, cfg.Exports.Path, logger)
	ledgerWorker := worker.NewLedgerWorker(exporter, worker.RetryPolicy{}, cfg.Exports.Schedule, logger)
	ledgerWorker.Subscribe(eventBus)
	loyaltyService.SubscribeAccrual(ctx, eventBus)
	go ledgerWorker.Start(ctx)

	if cfg.Backup.Enabled {
		backupService := storage.NewBackupService(cfg.Database.Path, cfg.Backup, logger)
		go backupService.Start(ctx)
	}

	server := api.NewServer(cfg.Server, cfg.RateLimit, api.Deps{
		Auth:         auth,
		Wizard:       bookingWizard,
		Appointments: appointments,
		Services:     services,
		Products:     products,
		Staff:        staff,
		Admin:        adminService,
		Finance:      financeService,
		Loyalty:      loyaltyService,
		Checkout:     checkoutService,
	}, logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
	}

	logger.Info().Msg("Shutdown complete.")
	return nil
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := baseLogger.With().Str("component", "server-main").Logger()

	return cfg, &logger, closer, nil
}

func prepareDirectories(cfg *config.Config) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Dir(cfg.Exports.Path), 0o755)
}

func initSessionRepository(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) domain.SessionRepository {
	fallback := repository.NewMemorySessionRepository(cfg.Session.WizardTTL)
	if cfg.Redis.Address == "" {
		logger.Info().Msg("Redis not configured, using in-memory wizard sessions")
		return fallback
	}

	client := repository.NewRedisClient(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := repository.Ping(pingCtx, client); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, failover repository will recover when it returns")
	}

	primary := repository.NewRedisSessionRepository(client, cfg.Session.WizardTTL)
	return repository.NewFailoverSessionRepository(primary, fallback, logger)
}
