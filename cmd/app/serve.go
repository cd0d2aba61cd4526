package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/QuizDuel_Go/internal/bootstrap"
	"github.com/osse101/QuizDuel_Go/internal/config"
	"github.com/osse101/QuizDuel_Go/internal/database"
	"github.com/osse101/QuizDuel_Go/internal/eventlog"
	"github.com/osse101/QuizDuel_Go/internal/handler"
	"github.com/osse101/QuizDuel_Go/internal/identity"
	"github.com/osse101/QuizDuel_Go/internal/server"
	"github.com/osse101/QuizDuel_Go/internal/sse"
)

const shutdownTimeout = 15 * time.Second

// @title QuizDuel API
// @version 1.0
// @description Asynchronous quiz duels between friends.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func newServeCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the expiry sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on startup")
	return cmd
}

func runServe(parent context.Context, skipMigrations bool) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if warnings, err := cfg.Validate(); err != nil {
		slog.Warn("Environment validation failed", "error", err)
	} else {
		for _, w := range warnings {
			slog.Warn(w)
		}
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbPool.Close()

	if !skipMigrations {
		if err := database.Migrate(ctx, dbPool); err != nil {
			return err
		}
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	locker, redisClient, err := bootstrap.InitializeLocker(ctx, cfg)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool, cfg)
	duelService := bootstrap.InitializeDuelService(cfg, repos, locker, publisher)

	hub := sse.NewHub()
	hub.Start()

	history := eventlog.NewService(repos.EventLog)

	background := bootstrap.InitializeBackgroundJobs(cfg, duelService)
	background.EventLogCleanup = eventlog.NewCleanupJob(history, cfg.EventLogRetention)
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:       bus,
		Hub:            hub,
		DeadlineWorker: background.DeadlineWorker,
		EventLog:       history,
	}); err != nil {
		return err
	}
	background.Start()

	handler.InitValidator()
	opts := server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		History:        history,
	}
	if redisClient != nil {
		opts.ReadinessChecks = append(opts.ReadinessChecks, handler.ReadinessCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	srv := server.NewServer(opts, dbPool, duelService, identity.NewVerifier(cfg.JWTSecret), hub)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
			Hub:                hub,
			Server:             srv,
			Background:         background,
			ResilientPublisher: publisher,
			RedisClient:        redisClient,
		})
		return nil
	})

	return g.Wait()
}
