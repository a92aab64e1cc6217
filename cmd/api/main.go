package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/contact-api/internal/api"
	"github.com/baharkarakas/contact-api/internal/auth"
	"github.com/baharkarakas/contact-api/internal/config"
	"github.com/baharkarakas/contact-api/internal/db"
	"github.com/baharkarakas/contact-api/internal/logger"
	"github.com/baharkarakas/contact-api/internal/metrics"
	repo "github.com/baharkarakas/contact-api/internal/repository"
	"github.com/baharkarakas/contact-api/internal/repository/memory"
	"github.com/baharkarakas/contact-api/internal/repository/postgres"
	"github.com/baharkarakas/contact-api/internal/services"
	"github.com/baharkarakas/contact-api/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	wp := worker.NewPool(cfg.AuditWorkers, cfg.AuditQueueSize)
	// runs before closeStore so queued audit writes still have a connection
	defer wp.Stop()

	auditor := services.NewAuditor(repos.AuditLogs, wp)
	userSvc := services.NewUserService(repos.Users, auth.NewHasher(cfg.BcryptCost), auditor)
	contactSvc := services.NewContactService(repos.Contacts, auditor)
	addressSvc := services.NewAddressService(repos.Addresses, contactSvc, auditor)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:        cfg,
		UserSvc:    userSvc,
		ContactSvc: contactSvc,
		AddressSvc: addressSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStorage returns the configured backend and a func that releases it.
func openStorage(ctx context.Context, cfg config.Config) (repo.Repositories, func(), error) {
	switch cfg.Storage {
	case config.StorageMemory:
		slog.Warn("using in-memory storage; data is lost on exit")
		return memory.NewRepositories(memory.NewStore()), func() {}, nil
	case config.StoragePostgres:
	default:
		return repo.Repositories{}, nil, errors.New("unknown STORAGE " + cfg.Storage)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return repo.Repositories{}, nil, err
	}
	sqlDB := db.OpenDB(pool)
	closeAll := func() {
		_ = sqlDB.Close()
		pool.Close()
	}

	if cfg.Migrate {
		if err := migrate(ctx, sqlDB); err != nil {
			closeAll()
			return repo.Repositories{}, nil, err
		}
	}
	return postgres.NewRepositories(sqlDB), closeAll, nil
}

func migrate(ctx context.Context, sqlDB *sql.DB) error {
	start := time.Now()
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return err
	}
	slog.Info("migrations applied", "took", time.Since(start))
	return nil
}
