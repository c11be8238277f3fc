package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pratik-mahalle/cloudspend/internal/domain/anomaly"
	"github.com/pratik-mahalle/cloudspend/internal/domain/forecast"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
)

// RetentionWorker periodically purges resolved anomalies and superseded
// forecasts past their retention age
type RetentionWorker struct {
	anomalyRepo  anomaly.Repository
	forecastRepo forecast.Repository
	schedule     string
	maxAge       time.Duration
	logger       *logger.Logger

	cron *cron.Cron
}

// NewRetentionWorker creates a retention worker on a cron schedule
func NewRetentionWorker(
	anomalyRepo anomaly.Repository,
	forecastRepo forecast.Repository,
	schedule string,
	maxAge time.Duration,
	log *logger.Logger,
) *RetentionWorker {
	return &RetentionWorker{
		anomalyRepo:  anomalyRepo,
		forecastRepo: forecastRepo,
		schedule:     schedule,
		maxAge:       maxAge,
		logger:       log,
	}
}

// Start schedules the retention sweep and stops it when ctx is cancelled
func (w *RetentionWorker) Start(ctx context.Context) error {
	w.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	if _, err := w.cron.AddFunc(w.schedule, func() { w.sweep(ctx) }); err != nil {
		return err
	}

	w.cron.Start()
	w.logger.WithFields(map[string]interface{}{
		"schedule": w.schedule,
		"max_age":  w.maxAge.String(),
	}).Info("Retention worker started")

	go func() {
		<-ctx.Done()
		stopCtx := w.cron.Stop()
		<-stopCtx.Done()
		w.logger.Info("Retention worker stopped")
	}()

	return nil
}

func (w *RetentionWorker) sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-w.maxAge)

	removedAnomalies, err := w.anomalyRepo.DeleteResolvedBefore(ctx, cutoff)
	if err != nil {
		w.logger.ErrorWithErr(err, "Failed to purge resolved anomalies")
	}

	removedForecasts, err := w.forecastRepo.DeleteGeneratedBefore(ctx, cutoff)
	if err != nil {
		w.logger.ErrorWithErr(err, "Failed to purge old forecasts")
	}

	w.logger.WithFields(map[string]interface{}{
		"anomalies": removedAnomalies,
		"forecasts": removedForecasts,
		"cutoff":    cutoff.Format(time.RFC3339),
	}).Info("Retention sweep completed")
}
