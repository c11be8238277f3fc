package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/cloudspend/internal/domain/anomaly"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
)

type AnomalyRepository struct {
	db *sql.DB
}

func NewAnomalyRepository(db *sql.DB) anomaly.Repository {
	return &AnomalyRepository{db: db}
}

// CreateBatch writes the batch inside one transaction so a partial run never
// leaves a half-written set of anomalies behind.
func (r *AnomalyRepository) CreateBatch(ctx context.Context, anomalies []*anomaly.Anomaly) error {
	if len(anomalies) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to begin transaction", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO cost_anomalies
(id, tenant_id, date, actual_amount, expected_amount, deviation, deviation_pct, score, severity, status, detected_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return errors.DatabaseError("Failed to prepare anomaly insert", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, a := range anomalies {
		a.CreatedAt = now
		_, err := stmt.ExecContext(ctx,
			a.ID, a.TenantID, a.Date.Format(dateLayout),
			a.ActualAmount, a.ExpectedAmount, a.Deviation, a.DeviationPct,
			a.Score, a.Severity, a.Status,
			a.DetectedAt.Format(time.RFC3339), a.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return errors.DatabaseError("Failed to insert anomaly", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit anomaly batch", err)
	}
	return nil
}

func (r *AnomalyRepository) ListByTenant(ctx context.Context, tenantID string, limit int) ([]*anomaly.Anomaly, error) {
	query := `SELECT id, tenant_id, date, actual_amount, expected_amount, deviation, deviation_pct, score, severity, status, detected_at
FROM cost_anomalies WHERE tenant_id = ? ORDER BY detected_at DESC, date DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, tenantID, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list anomalies", err)
	}
	defer rows.Close()

	var result []*anomaly.Anomaly
	for rows.Next() {
		var a anomaly.Anomaly
		var date, detectedAt string
		if err := rows.Scan(&a.ID, &a.TenantID, &date, &a.ActualAmount, &a.ExpectedAmount,
			&a.Deviation, &a.DeviationPct, &a.Score, &a.Severity, &a.Status, &detectedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan anomaly", err)
		}
		a.Date, _ = time.Parse(dateLayout, date)
		a.DetectedAt, _ = time.Parse(time.RFC3339, detectedAt)
		result = append(result, &a)
	}

	return result, rows.Err()
}

func (r *AnomalyRepository) UpdateStatus(ctx context.Context, tenantID, id, status string) error {
	query := `UPDATE cost_anomalies SET status = ? WHERE tenant_id = ? AND id = ?`

	result, err := r.db.ExecContext(ctx, query, status, tenantID, id)
	if err != nil {
		return errors.DatabaseError("Failed to update anomaly status", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NotFound("Anomaly")
	}
	return nil
}

func (r *AnomalyRepository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM cost_anomalies WHERE status = ? AND detected_at < ?`

	result, err := r.db.ExecContext(ctx, query, anomaly.StatusResolved, cutoff.Format(time.RFC3339))
	if err != nil {
		return 0, errors.DatabaseError("Failed to delete resolved anomalies", err)
	}
	return result.RowsAffected()
}
