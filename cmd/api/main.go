package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pratik-mahalle/cloudspend/internal/api/handlers"
	"github.com/pratik-mahalle/cloudspend/internal/api/router"
	"github.com/pratik-mahalle/cloudspend/internal/config"
	"github.com/pratik-mahalle/cloudspend/internal/notify"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudspend/internal/repository/sqlite"
	"github.com/pratik-mahalle/cloudspend/internal/services"
	"github.com/pratik-mahalle/cloudspend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	dsn := cfg.Database.DSN
	if cfg.Database.Driver == "sqlite" {
		dsn = cfg.Database.Path
	}
	db, err := sqlite.Open(cfg.Database.Driver, dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	tenantRepo := sqlite.NewTenantRepository(db)
	costRepo := sqlite.NewCostRepository(db)
	anomalyRepo := sqlite.NewAnomalyRepository(db)
	forecastRepo := sqlite.NewForecastRepository(db)
	budgetRepo := sqlite.NewBudgetRepository(db)
	remediationRepo := sqlite.NewRemediationRepository(db)

	hub := notify.NewHub(log)

	anomalyService := services.NewAnomalyService(
		anomalyRepo, costRepo, hub,
		cfg.Jobs.AnomalySensitivity, cfg.Jobs.AnomalyLookbackDays, log,
	)
	forecastService := services.NewForecastService(
		forecastRepo, costRepo,
		cfg.Jobs.ForecastLookbackDays, cfg.Jobs.ForecastHorizonDays, log,
	)
	budgetService := services.NewBudgetService(budgetRepo, costRepo, hub, log)
	remediationService := services.NewRemediationService(remediationRepo, hub, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := worker.NewScheduler(tenantRepo, anomalyService, forecastService, budgetService, cfg.Jobs, log)
	scheduler.Start(ctx)

	retention := worker.NewRetentionWorker(anomalyRepo, forecastRepo, cfg.Jobs.RetentionSchedule, cfg.Jobs.RetentionMaxAge, log)
	if err := retention.Start(ctx); err != nil {
		log.Fatalf("failed to start retention worker: %v", err)
	}

	handler := router.New(cfg, router.Deps{
		Anomalies:    handlers.NewAnomalyHandler(anomalyService),
		Budgets:      handlers.NewBudgetHandler(budgetService),
		Forecasts:    handlers.NewForecastHandler(forecastService),
		Remediations: handlers.NewRemediationHandler(remediationService),
		Costs:        handlers.NewCostHandler(costRepo, hub, log),
		WebSocket:    handlers.NewWebSocketHandler(hub, log),
	})

	// Read/write timeouts stay off the server itself so the websocket
	// endpoint can hold connections open; handlers set their own deadlines.
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	go func() {
		log.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "HTTP server shutdown failed")
	}

	scheduler.Wait()
	log.Info("Shutdown complete")
}
