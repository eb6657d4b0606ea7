// Command server starts the FlowSpace HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kp4ws/FlowSpace/internal/auth"
	"github.com/kp4ws/FlowSpace/internal/config"
	"github.com/kp4ws/FlowSpace/internal/migrate"
	"github.com/kp4ws/FlowSpace/internal/repository"
	"github.com/kp4ws/FlowSpace/internal/repository/postgres"
	"github.com/kp4ws/FlowSpace/internal/repository/sqlite"
	"github.com/kp4ws/FlowSpace/internal/seed"
	httpserver "github.com/kp4ws/FlowSpace/internal/server/http"
	"github.com/kp4ws/FlowSpace/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, runs migrations, and starts the HTTP server.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.ListenAddr),
		zap.Bool("permissive", cfg.Permissive()),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		clientRepo  repository.ClientRepository
		invoiceRepo repository.InvoiceRepository
		noteRepo    repository.NoteRepository
		shareRepo   repository.ShareRepository
	)
	if cfg.DatabaseURL != "" {
		if err := migrate.Postgres(ctx, cfg.DatabaseURL); err != nil {
			logger.Fatal("migrate postgres", zap.Error(err))
		}
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("connect postgres", zap.Error(err))
		}
		defer db.Close()
		clientRepo = postgres.NewClientRepo(db)
		invoiceRepo = postgres.NewInvoiceRepo(db)
		noteRepo = postgres.NewNoteRepo(db)
		shareRepo = postgres.NewShareRepo(db)
	} else {
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			logger.Fatal("open sqlite", zap.Error(err))
		}
		defer func() { _ = store.Close() }()
		if err := migrate.SQLite(ctx, store.DB()); err != nil {
			logger.Fatal("migrate sqlite", zap.Error(err))
		}
		logger.Info("using embedded store", zap.String("path", cfg.SQLitePath))
		clientRepo = sqlite.NewClientRepo(store)
		invoiceRepo = sqlite.NewInvoiceRepo(store)
		noteRepo = sqlite.NewNoteRepo(store)
		shareRepo = sqlite.NewShareRepo(store)
	}

	// The verification strategy is chosen once; permissive mode is the
	// only path through which the mock identity can enter.
	jwks := auth.NewJWKSClient(cfg.JWKSURL(), logger)
	strict := auth.NewStrictVerifier(jwks)
	var verifier auth.Verifier = strict
	if cfg.Permissive() {
		verifier = auth.NewPermissiveVerifier(strict)
		if err := seed.Run(ctx, logger, clientRepo, invoiceRepo, noteRepo); err != nil {
			logger.Warn("seed", zap.Error(err))
		}
	}

	srv := httpserver.New(httpserver.Deps{
		Log:            logger,
		Verifier:       verifier,
		Clients:        service.NewClientService(clientRepo),
		Invoices:       service.NewInvoiceService(invoiceRepo, clientRepo),
		Notes:          service.NewNoteService(noteRepo, clientRepo),
		Marketplace:    service.NewMarketplaceService(shareRepo),
		AI:             service.NewAIService(cfg.OpenAIKey),
		AllowedOrigins: cfg.AllowedOrigins,
		DevMode:        cfg.Development(),
	})

	hs := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		errCh <- hs.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
