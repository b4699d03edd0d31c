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

	"coinwatch/internal/config"
	"coinwatch/internal/database"
	"coinwatch/internal/kvstore"
	"coinwatch/internal/logger"
	"coinwatch/internal/market"
	"coinwatch/internal/portfolio"
	"coinwatch/internal/scheduler"
	"coinwatch/internal/server"
	"coinwatch/internal/services"
	"coinwatch/internal/validator"

	_ "coinwatch/internal/docs" // Import swagger docs
)

// @title           Coinwatch API
// @version         1.0
// @description     Coinwatch is a crypto paper-trading portfolio: buy and sell coins with virtual cash and track profit and loss at live market prices.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Required on mutating routes when the server is started with API_KEY.

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("Failed to close database", "error", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	store := kvstore.NewGormStore(dbManager.DB())

	// Load the ledger
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledger := portfolio.Open(ctx, store, portfolio.Options{
		Sync:     appConfig.PersistSync,
		Retries:  appConfig.PersistRetries,
		Backoff:  appConfig.PersistBackoff,
		Currency: appConfig.MarketCurrency,
	})
	go func() {
		for err := range ledger.Errors() {
			log.Errorw("Portfolio persistence failed", "error", err)
		}
	}()

	// Initialize services
	marketClient := market.NewClient(
		appConfig.MarketAPIURL,
		appConfig.MarketAPIKey,
		appConfig.MarketCurrency,
		&http.Client{Timeout: appConfig.RequestTimeout},
	)
	coinService := services.NewCoinService(marketClient, ledger)
	favoritesService := services.NewFavoritesService(store)

	validator.Register()
	if appConfig.APIKey == "" {
		log.Warn("API_KEY is not set; mutating routes are open")
	}

	router := server.NewRouter(server.Deps{
		Portfolio: ledger,
		Coins:     coinService,
		Favorites: favoritesService,
		APIKey:    appConfig.APIKey,
	})

	// Background jobs
	sched := scheduler.New(appConfig.RequestTimeout)
	if appConfig.PriceRefreshSchedule != "" {
		refresh := scheduler.NewPriceRefreshJob(coinService)
		if err := sched.AddJob(appConfig.PriceRefreshSchedule, refresh); err != nil {
			return fmt.Errorf("failed to schedule price refresh: %w", err)
		}
		// Mark holdings once at startup instead of waiting for the first tick.
		go func() {
			if err := sched.RunNow(refresh); err != nil {
				log.Warnw("Initial price refresh failed", "error", err)
			}
		}()
	}
	sched.Start()

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("Starting Coinwatch server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			sched.Stop()
			_ = ledger.Close(context.Background())
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	sched.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("HTTP server shutdown failed", "error", err)
	}
	if err := ledger.Close(shutdownCtx); err != nil {
		log.Errorw("Failed to flush portfolio on shutdown", "error", err)
	}

	log.Info("Server stopped")
	return nil
}
