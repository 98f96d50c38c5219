package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/efreitasn/auctionhouse/internal/config"
	"github.com/efreitasn/auctionhouse/internal/engine"
	"github.com/efreitasn/auctionhouse/internal/handler"
	"github.com/efreitasn/auctionhouse/internal/ledger"
	"github.com/efreitasn/auctionhouse/internal/registry"
	"github.com/efreitasn/auctionhouse/internal/service"
	"github.com/efreitasn/auctionhouse/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load .env if present; real environment variables take precedence.
	_ = godotenv.Load()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Instantiate stores and the in-memory ledger/registry adapters.
	marketplaceStore := store.NewMarketplaceStore()
	listingStore := store.NewListingStore()
	webhookStore := store.NewWebhookStore()
	fundsLedger := ledger.NewMemory()
	assetRegistry := registry.NewMemory()

	// Webhook service first: it is the event sink for everything else.
	webhookSvc := service.NewWebhookService(webhookStore, cfg.WebhookTimeout)

	// Engine.
	eng := engine.NewEngine(marketplaceStore, listingStore, fundsLedger, assetRegistry, webhookSvc)

	// Services.
	marketplaceSvc := service.NewMarketplaceService(marketplaceStore, webhookSvc)
	listingSvc := service.NewListingService(eng, listingStore)
	accountSvc := service.NewAccountService(fundsLedger, assetRegistry)

	// Finalizer (completes expired auctions in the background).
	finalizer := engine.NewFinalizer(cfg.FinalizeInterval, eng, listingStore, logger)

	// Router.
	router := handler.NewRouter(marketplaceSvc, listingSvc, accountSvc, webhookSvc, logger)

	// Start finalizer goroutine with cancellable context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	finalizer.Start(ctx)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop HTTP server, cancel context (stops finalizer).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}
