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

	"go.uber.org/zap"

	"github.com/neomorfeo/dealerops/internal/adapter/auth"
	"github.com/neomorfeo/dealerops/internal/adapter/fsm"
	handler "github.com/neomorfeo/dealerops/internal/adapter/http"
	oteladapter "github.com/neomorfeo/dealerops/internal/adapter/otel"
	riveradapter "github.com/neomorfeo/dealerops/internal/adapter/river"
	"github.com/neomorfeo/dealerops/internal/adapter/sqlite"
	"github.com/neomorfeo/dealerops/internal/app"
	"github.com/neomorfeo/dealerops/internal/config"
	"github.com/neomorfeo/dealerops/internal/logger"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dealerops: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		Service:     "dealerops",
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	// --- Telemetry ---
	providers, err := oteladapter.Setup(ctx, oteladapter.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Warn("otel shutdown", zap.Error(err))
		}
	}()

	// --- Adapters (out) ---
	db, err := oteladapter.OpenDB(sqlite.DSN(cfg.DatabasePath))
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	store, err := sqlite.NewFromDB(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("database: %w", err)
	}
	defer store.Close()

	riverClient, err := riveradapter.Setup(ctx, db, cfg.RiverWorkers, log)
	if err != nil {
		return fmt.Errorf("river: %w", err)
	}
	if err := riverClient.Start(ctx); err != nil {
		return fmt.Errorf("river start: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := riverClient.Stop(stopCtx); err != nil {
			log.Warn("river stop", zap.Error(err))
		}
	}()

	// --- Application ---
	svc := app.New(app.Deps{
		Store:     oteladapter.NewTracingStore(store),
		Validator: fsm.New(),
		Publisher: oteladapter.NewTracingPublisher(riveradapter.NewPublisher(riverClient)),
		Logger:    log,
	})

	if cfg.AdminPhone != "" {
		admin, err := svc.Dealers.EnsureSystemAccount(ctx, cfg.AdminName, cfg.AdminPhone, cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("system account: %w", err)
		}
		log.Info("system account ready", zap.String("dealer_id", admin.ID))
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return fmt.Errorf("tokens: %w", err)
	}

	// --- Adapters (in) ---
	router := handler.NewRouter(handler.Options{
		Services: svc,
		Tokens:   tokens,
		Logger:   log.Named("http"),
		Version:  version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("dealerops listening",
			zap.String("addr", srv.Addr),
			zap.String("docs", "http://localhost:"+cfg.Port+"/docs"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("stopped")
	return nil
}
