package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pratik-mahalle/cloudspend/internal/detector"
	"github.com/pratik-mahalle/cloudspend/internal/domain/anomaly"
	"github.com/pratik-mahalle/cloudspend/internal/domain/cost"
	"github.com/pratik-mahalle/cloudspend/internal/notify"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/metrics"
)

// AnomalyService runs rolling z-score detection over tenant spend and
// persists and broadcasts what it finds
type AnomalyService struct {
	anomalyRepo  anomaly.Repository
	costRepo     cost.Repository
	hub          *notify.Hub
	detector     *detector.AnomalyDetector
	lookbackDays int
	logger       *logger.Logger
}

// NewAnomalyService creates a new anomaly service
func NewAnomalyService(
	anomalyRepo anomaly.Repository,
	costRepo cost.Repository,
	hub *notify.Hub,
	sensitivity float64,
	lookbackDays int,
	log *logger.Logger,
) *AnomalyService {
	return &AnomalyService{
		anomalyRepo:  anomalyRepo,
		costRepo:     costRepo,
		hub:          hub,
		detector:     detector.NewAnomalyDetector(sensitivity),
		lookbackDays: lookbackDays,
		logger:       log,
	}
}

// DetectForTenant fetches the tenant's recent daily totals, runs detection
// and persists any anomalies as a single batch. High and critical anomalies
// additionally publish an anomaly_alert. A series too short to score is
// skipped, not an error.
func (s *AnomalyService) DetectForTenant(ctx context.Context, tenantID string) error {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -s.lookbackDays)

	points, err := s.costRepo.DailyTotals(ctx, tenantID, start, end)
	if err != nil {
		return err
	}

	if len(points) <= detector.WindowSize {
		s.logger.WithFields(map[string]interface{}{
			"tenant_id": tenantID,
			"points":    len(points),
		}).Info("Not enough history for anomaly detection, skipping tenant")
		return nil
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Amount
	}

	detected := s.detector.Detect(values)
	if len(detected) == 0 {
		return nil
	}

	now := time.Now().UTC()
	batch := make([]*anomaly.Anomaly, 0, len(detected))
	for _, d := range detected {
		batch = append(batch, &anomaly.Anomaly{
			ID:             uuid.New().String(),
			TenantID:       tenantID,
			Date:           points[d.Index].Date,
			ActualAmount:   d.Value,
			ExpectedAmount: d.Expected,
			Deviation:      d.Deviation,
			DeviationPct:   d.DeviationPct,
			Score:          d.Score,
			Severity:       d.Severity,
			Status:         anomaly.StatusOpen,
			DetectedAt:     now,
		})
	}

	if err := s.anomalyRepo.CreateBatch(ctx, batch); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"tenant_id": tenantID,
		"count":     len(batch),
	}).Info("Detected anomalies")

	for _, a := range batch {
		metrics.AnomaliesDetectedTotal.WithLabelValues(a.Severity).Inc()

		if a.Severity == anomaly.SeverityHigh || a.Severity == anomaly.SeverityCritical {
			s.hub.PublishAnomalyAlert(tenantID, map[string]interface{}{
				"severity": a.Severity,
				"date":     a.Date.Format("2006-01-02"),
				"actual":   a.ActualAmount,
				"expected": a.ExpectedAmount,
				"score":    a.Score,
			})
		}
	}

	return nil
}

// List retrieves recent anomalies for a tenant
func (s *AnomalyService) List(ctx context.Context, tenantID string, limit int) ([]*anomaly.Anomaly, error) {
	return s.anomalyRepo.ListByTenant(ctx, tenantID, limit)
}

// UpdateStatus updates the status of an anomaly
func (s *AnomalyService) UpdateStatus(ctx context.Context, tenantID, id, status string) error {
	if err := s.anomalyRepo.UpdateStatus(ctx, tenantID, id, status); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update anomaly status")
		return err
	}
	return nil
}
