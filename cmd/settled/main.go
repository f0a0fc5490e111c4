package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/clearlane/settleledger/internal/gateway"
	"github.com/clearlane/settleledger/internal/runtime"
	"github.com/clearlane/settleledger/internal/settlement"
	"github.com/clearlane/settleledger/internal/state"
	"github.com/clearlane/settleledger/pkg/config"
	"github.com/clearlane/settleledger/pkg/db"
	"github.com/clearlane/settleledger/pkg/events"
	"github.com/clearlane/settleledger/pkg/logger"
	"github.com/clearlane/settleledger/pkg/metrics"
	"github.com/clearlane/settleledger/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "settled"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "settled",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var relay events.Publisher = events.NopPublisher{}
	if cfg.Events.PubSubEnabled {
		pub, err := events.NewPubSubPublisher(context.Background(), cfg.GCP.ProjectID, cfg.Events.Topic, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub event relay", err)
			os.Exit(1)
		}
		relay = pub
	}
	defer func() {
		if err := relay.Close(); err != nil {
			logg.Error(context.Background(), "error closing event relay", err)
		}
	}()

	var registry *prometheus.Registry
	var invocationMetrics *metrics.InvocationMetrics
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		invocationMetrics = metrics.NewInvocationMetrics(registry)
	}

	contract, err := settlement.NewContract(logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create settlement contract", err)
		os.Exit(1)
	}

	node, err := runtime.NewNode(runtime.Params{
		Store:    state.NewGormStore(dbClient.DB()),
		EventLog: state.NewGormEventLog(dbClient.DB()),
		Relay:    relay,
		Contract: contract,
		Logger:   logg,
		Metrics:  invocationMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger node", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lctx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(lctx, "starting settlement ledger node")

	var gatherer prometheus.Gatherer
	if registry != nil {
		gatherer = registry
	}
	server := &http.Server{
		Addr:    addr,
		Handler: gateway.NewRouter(logg, node, dbClient, gatherer),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(lctx, "node stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(lctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(lctx, "graceful shutdown failed", err)
		}
	}
}
