package worker

import (
	"context"
	"sync"
	"time"

	"github.com/pratik-mahalle/cloudspend/internal/config"
	"github.com/pratik-mahalle/cloudspend/internal/domain/tenant"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/metrics"
	"github.com/pratik-mahalle/cloudspend/internal/services"
)

// Job names used in logs and metrics
const (
	JobAnomalyDetection = "anomaly_detection"
	JobForecast         = "forecast"
	JobBudgetCheck      = "budget_check"
)

// Scheduler drives the three recurring analytics jobs. Each job runs in its
// own goroutine on its own interval; a stalled or failing job never affects
// the other two.
type Scheduler struct {
	tenantRepo tenant.Repository
	anomalies  *services.AnomalyService
	forecasts  *services.ForecastService
	budgets    *services.BudgetService
	cfg        config.JobsConfig
	logger     *logger.Logger

	wg sync.WaitGroup
}

// NewScheduler creates a new job scheduler
func NewScheduler(
	tenantRepo tenant.Repository,
	anomalies *services.AnomalyService,
	forecasts *services.ForecastService,
	budgets *services.BudgetService,
	cfg config.JobsConfig,
	log *logger.Logger,
) *Scheduler {
	return &Scheduler{
		tenantRepo: tenantRepo,
		anomalies:  anomalies,
		forecasts:  forecasts,
		budgets:    budgets,
		cfg:        cfg,
		logger:     log,
	}
}

// Start launches the three job loops. They run until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting analytics job scheduler")

	s.spawn(ctx, JobAnomalyDetection, s.cfg.AnomalyInterval, s.runAnomalyDetection)
	s.spawn(ctx, JobForecast, s.cfg.ForecastInterval, s.runForecast)
	s.spawn(ctx, JobBudgetCheck, s.cfg.BudgetCheckInterval, s.runBudgetCheck)
}

// Wait blocks until all job loops have stopped
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) spawn(ctx context.Context, name string, interval time.Duration, fn func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx, name, interval, fn)
	}()
}

// runLoop runs fn immediately and then repeatedly, waiting interval after
// each completion. Because the timer is reset only when a run finishes, a
// long run delays the next tick instead of overlapping it.
func (s *Scheduler) runLoop(ctx context.Context, name string, interval time.Duration, fn func(context.Context)) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.WithFields(map[string]interface{}{"job": name}).Info("Job loop stopped")
			return
		case <-timer.C:
		}

		s.logger.WithFields(map[string]interface{}{"job": name}).Info("Running job")
		started := time.Now()

		fn(ctx)

		metrics.JobRunsTotal.WithLabelValues(name).Inc()
		metrics.JobDuration.WithLabelValues(name).Observe(time.Since(started).Seconds())

		timer.Reset(interval)
	}
}

// runAnomalyDetection runs detection for every tenant. A failure on one
// tenant is counted and logged but never aborts the rest of the run.
func (s *Scheduler) runAnomalyDetection(ctx context.Context) {
	tenants, err := s.tenantRepo.List(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list tenants for anomaly detection")
		return
	}

	for _, t := range tenants {
		if err := s.anomalies.DetectForTenant(ctx, t.ID); err != nil {
			metrics.JobTenantFailures.WithLabelValues(JobAnomalyDetection).Inc()
			s.logger.WithFields(map[string]interface{}{
				"tenant_id": t.ID,
			}).ErrorWithErr(err, "Anomaly detection failed for tenant")
		}
	}
}

// runForecast generates forecasts for every tenant with the same per-tenant
// failure isolation
func (s *Scheduler) runForecast(ctx context.Context) {
	tenants, err := s.tenantRepo.List(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list tenants for forecasting")
		return
	}

	for _, t := range tenants {
		if err := s.forecasts.GenerateForTenant(ctx, t.ID); err != nil {
			metrics.JobTenantFailures.WithLabelValues(JobForecast).Inc()
			s.logger.WithFields(map[string]interface{}{
				"tenant_id": t.ID,
			}).ErrorWithErr(err, "Forecast failed for tenant")
		}
	}
}

// runBudgetCheck evaluates every active budget
func (s *Scheduler) runBudgetCheck(ctx context.Context) {
	if err := s.budgets.EvaluateAll(ctx, time.Now().UTC()); err != nil {
		s.logger.ErrorWithErr(err, "Budget check run failed")
	}
}
