package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/eventos-marketplace/internal/audit"
	"github.com/BruksfildServices01/eventos-marketplace/internal/config"
	dbpkg "github.com/BruksfildServices01/eventos-marketplace/internal/db"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/infra/memory"
	"github.com/BruksfildServices01/eventos-marketplace/internal/infra/reminder"
	infraRepo "github.com/BruksfildServices01/eventos-marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/eventos-marketplace/internal/jobs"
	"github.com/BruksfildServices01/eventos-marketplace/internal/logger"
	"github.com/BruksfildServices01/eventos-marketplace/internal/routes"
	ucRequest "github.com/BruksfildServices01/eventos-marketplace/internal/usecase/servicerequest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("application terminated with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// STORAGE
	// ======================================================
	deps := routes.Dependencies{
		Config: cfg,
		Logger: log,
		Rules:  servicerequest.NewRules(cfg.Location(), log),
	}

	switch cfg.StorageDriver {
	case config.StorageMemory:
		store := memory.NewStore()
		deps.Requests = store
		deps.Calendar = store
		deps.Notifications = store
		deps.AuditStore = store
		log.Warn("using in-memory storage; data is lost on restart")

	default:
		db, err := dbpkg.NewDB(cfg, log)
		if err != nil {
			return err
		}
		defer dbpkg.Close(db)

		deps.Requests = infraRepo.NewServiceRequestGormRepository(db)
		deps.Calendar = infraRepo.NewCalendarGormRepository(db)
		deps.Notifications = infraRepo.NewNotificationGormRepository(db)
		deps.AuditStore = infraRepo.NewAuditGormRepository(db)
	}

	deps.Audit = audit.NewDispatcher(audit.New(deps.AuditStore), log, cfg.AuditQueueSize)
	defer deps.Audit.Close()

	dedupe, closeDedupe, err := buildDeduper(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDedupe()

	// ======================================================
	// JOBS
	// ======================================================
	jobDeps := ucRequest.Deps{
		Repo:          deps.Requests,
		Calendar:      deps.Calendar,
		Notifications: deps.Notifications,
		Audit:         deps.Audit,
		Rules:         deps.Rules,
		Logger:        log,
	}

	scheduler := jobs.NewScheduler(cfg.Location(), log)
	if err := scheduler.Add("reminders", cfg.ReminderSchedule, ucRequest.NewSendReminders(jobDeps, dedupe)); err != nil {
		return err
	}
	if err := scheduler.Add("expiry", cfg.ExpirySchedule, ucRequest.NewExpirePendingRequests(jobDeps)); err != nil {
		return err
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		scheduler.Start()
		<-ctx.Done()

		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		scheduler.Stop(stopCtx)
		return nil
	})

	g.Go(func() error {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("timezone", cfg.Timezone))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		log.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}

// buildDeduper usa Redis quando REDIS_ADDR está definido, para que várias
// instâncias não repitam lembretes; sem ele, deduplica em memória.
func buildDeduper(ctx context.Context, cfg *config.Config, log *zap.Logger) (reminder.Deduper, func(), error) {
	if cfg.RedisAddr == "" {
		return reminder.NewMemoryDeduper(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info("reminder dedupe on redis", zap.String("addr", cfg.RedisAddr))
	return reminder.NewRedisDeduper(client), func() { _ = client.Close() }, nil
}
