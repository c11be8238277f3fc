package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pratik-mahalle/cloudspend/internal/domain/forecast"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
)

type ForecastRepository struct {
	db *sql.DB
}

func NewForecastRepository(db *sql.DB) forecast.Repository {
	return &ForecastRepository{db: db}
}

func (r *ForecastRepository) Create(ctx context.Context, f *forecast.Forecast) error {
	f.CreatedAt = time.Now().UTC()

	points, err := json.Marshal(f.Points)
	if err != nil {
		return errors.Internal("Failed to encode forecast points", err)
	}

	query := `INSERT INTO forecasts
(id, tenant_id, generated_at, model_version, granularity, points, total_forecasted, confidence_level, currency, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		f.ID, f.TenantID, f.GeneratedAt.Format(time.RFC3339),
		f.ModelVersion, f.Granularity, string(points),
		f.TotalForecasted, f.ConfidenceLevel, f.Currency,
		f.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create forecast", err)
	}
	return nil
}

func (r *ForecastRepository) Latest(ctx context.Context, tenantID string) (*forecast.Forecast, error) {
	query := `SELECT id, tenant_id, generated_at, model_version, granularity, points, total_forecasted, confidence_level, currency
FROM forecasts WHERE tenant_id = ? ORDER BY generated_at DESC LIMIT 1`

	var f forecast.Forecast
	var generatedAt, points string
	err := r.db.QueryRowContext(ctx, query, tenantID).Scan(
		&f.ID, &f.TenantID, &generatedAt, &f.ModelVersion, &f.Granularity,
		&points, &f.TotalForecasted, &f.ConfidenceLevel, &f.Currency,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Forecast")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get latest forecast", err)
	}

	f.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
	if err := json.Unmarshal([]byte(points), &f.Points); err != nil {
		return nil, errors.Internal("Failed to decode forecast points", err)
	}
	return &f, nil
}

func (r *ForecastRepository) DeleteGeneratedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM forecasts WHERE generated_at < ?`

	result, err := r.db.ExecContext(ctx, query, cutoff.Format(time.RFC3339))
	if err != nil {
		return 0, errors.DatabaseError("Failed to delete old forecasts", err)
	}
	return result.RowsAffected()
}
