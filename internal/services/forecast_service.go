package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pratik-mahalle/cloudspend/internal/domain/cost"
	"github.com/pratik-mahalle/cloudspend/internal/domain/forecast"
	"github.com/pratik-mahalle/cloudspend/internal/forecaster"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
)

// ForecastService fits spend forecasts per tenant and stores the results
type ForecastService struct {
	forecastRepo forecast.Repository
	costRepo     cost.Repository
	lookbackDays int
	horizonDays  int
	logger       *logger.Logger
}

// NewForecastService creates a new forecast service
func NewForecastService(
	forecastRepo forecast.Repository,
	costRepo cost.Repository,
	lookbackDays, horizonDays int,
	log *logger.Logger,
) *ForecastService {
	return &ForecastService{
		forecastRepo: forecastRepo,
		costRepo:     costRepo,
		lookbackDays: lookbackDays,
		horizonDays:  horizonDays,
		logger:       log,
	}
}

// GenerateForTenant fits a model to the tenant's spend history and stores a
// dated forecast. Tenants with too little history are skipped quietly; model
// fitting failures are logged and skipped so one tenant cannot stall a run.
func (s *ForecastService) GenerateForTenant(ctx context.Context, tenantID string) error {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -s.lookbackDays)

	points, err := s.costRepo.DailyTotals(ctx, tenantID, start, end)
	if err != nil {
		return err
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Amount
	}

	result, err := forecaster.Generate(values, s.horizonDays)
	if err != nil {
		if errors.IsInsufficientData(err) {
			s.logger.WithFields(map[string]interface{}{
				"tenant_id": tenantID,
				"points":    len(points),
			}).Info("Not enough history for forecasting, skipping tenant")
			return nil
		}
		s.logger.WithFields(map[string]interface{}{
			"tenant_id": tenantID,
		}).ErrorWithErr(err, "Forecast generation failed")
		return err
	}

	// Predicted points start the day after the last historical date.
	lastDate := end
	if len(points) > 0 {
		lastDate = points[len(points)-1].Date
	}

	var total float64
	predictions := make([]forecast.Point, len(result.Predicted))
	for i := range result.Predicted {
		predictions[i] = forecast.Point{
			Date:       lastDate.AddDate(0, 0, i+1),
			Predicted:  result.Predicted[i],
			LowerBound: result.Lower[i],
			UpperBound: result.Upper[i],
		}
		total += result.Predicted[i]
	}

	f := &forecast.Forecast{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		GeneratedAt:     time.Now().UTC(),
		ModelVersion:    forecaster.ModelVersion,
		Granularity:     forecast.GranularityDaily,
		Points:          predictions,
		TotalForecasted: total,
		ConfidenceLevel: result.Confidence,
		Currency:        "USD",
	}

	if err := s.forecastRepo.Create(ctx, f); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"tenant_id":        tenantID,
		"total_forecasted": total,
		"horizon_days":     s.horizonDays,
	}).Info("Generated forecast")

	return nil
}

// Latest returns the most recent forecast for a tenant
func (s *ForecastService) Latest(ctx context.Context, tenantID string) (*forecast.Forecast, error) {
	return s.forecastRepo.Latest(ctx, tenantID)
}
