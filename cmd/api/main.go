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

	"github.com/redis/go-redis/v9"

	"github.com/jkeats/budgetbuddy/internal/balance"
	"github.com/jkeats/budgetbuddy/internal/events"
	"github.com/jkeats/budgetbuddy/internal/goals"
	"github.com/jkeats/budgetbuddy/internal/ledger"
	"github.com/jkeats/budgetbuddy/internal/profile"
	"github.com/jkeats/budgetbuddy/internal/settings"
	"github.com/jkeats/budgetbuddy/internal/store"
	"github.com/jkeats/budgetbuddy/internal/transport/httpapi"
	"github.com/jkeats/budgetbuddy/internal/transport/httpapi/handler"
	"github.com/jkeats/budgetbuddy/pkg/config"
	"github.com/jkeats/budgetbuddy/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting Budget Buddy API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"backend", cfg.StorageBackend,
	)

	// Initialize the storage backend
	var kv store.KV
	switch cfg.StorageBackend {
	case config.BackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		log.Info("Redis connection established")
		kv = store.NewRedis(redisClient, cfg.StoreNamespace)

	case config.BackendPostgres:
		pool, err := store.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		log.Info("Database connection established")
		kv = store.NewPostgres(pool, cfg.StoreNamespace)

	default:
		log.Info("Using in-memory storage; data will not survive restarts")
		kv = store.NewMemory()
	}

	st := store.New(kv, log)
	bus := events.NewBus(log)

	// Settings own the category and account lists the ledgers draw from
	settingsSvc := settings.NewService(st, log)

	incomeLedger := ledger.NewService(ledger.Config{
		Section:    ledger.SectionIncome,
		StorageKey: store.KeyIncomeRows,
		Type:       ledger.TypeIncome,
	}, st, settingsSvc, bus, log)

	fixedLedger := ledger.NewService(ledger.Config{
		Section:    ledger.SectionFixed,
		StorageKey: store.KeyFixedRows,
		Type:       ledger.TypeExpense,
	}, st, settingsSvc, bus, log)

	discretionaryLedger := ledger.NewService(ledger.Config{
		Section:    ledger.SectionDiscretionary,
		StorageKey: store.KeyDiscretionaryRows,
		Type:       ledger.TypeExpense,
	}, st, settingsSvc, bus, log)

	// The deletion guard consults every section
	settingsSvc.BindRowSources(incomeLedger, fixedLedger, discretionaryLedger)

	expenseSources := []balance.RowSource{fixedLedger, discretionaryLedger}
	balanceSvc := balance.NewService(st, settingsSvc, incomeLedger, expenseSources, bus, log)
	balanceSvc.Start(ctx)

	goalsSvc := goals.NewService(st, balanceSvc, log)
	profileSvc := profile.NewService(st, log)

	// Build the router
	router := httpapi.New(httpapi.Config{
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
		HealthHandler:  handler.NewHealthHandler(kv),
		LedgerHandler: handler.NewLedgerHandler(map[ledger.Section]*ledger.Service{
			ledger.SectionIncome:        incomeLedger,
			ledger.SectionFixed:         fixedLedger,
			ledger.SectionDiscretionary: discretionaryLedger,
		}, balanceSvc),
		BalanceHandler:  handler.NewBalanceHandler(balanceSvc),
		ReportsHandler:  handler.NewReportsHandler(incomeLedger, expenseSources),
		SettingsHandler: handler.NewSettingsHandler(settingsSvc),
		GoalsHandler:    handler.NewGoalsHandler(goalsSvc, settingsSvc),
		ProfileHandler:  handler.NewProfileHandler(profileSvc),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}
