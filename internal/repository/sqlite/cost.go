package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/cloudspend/internal/domain/cost"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
)

const dateLayout = "2006-01-02"

type CostRepository struct {
	db *sql.DB
}

func NewCostRepository(db *sql.DB) cost.Repository {
	return &CostRepository{db: db}
}

func (r *CostRepository) CreateEntry(ctx context.Context, e *cost.Entry) error {
	e.CreatedAt = time.Now().UTC()

	query := `INSERT INTO cost_entries (id, tenant_id, provider, service, date, amount, currency, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.TenantID, e.Provider, e.Service,
		e.Date.Format(dateLayout), e.Amount, e.Currency,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create cost entry", err)
	}
	return nil
}

func (r *CostRepository) DailyTotals(ctx context.Context, tenantID string, start, end time.Time) ([]cost.Point, error) {
	query := `SELECT date, SUM(amount) FROM cost_entries
WHERE tenant_id = ? AND date >= ? AND date <= ?
GROUP BY date ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query, tenantID, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, errors.DatabaseError("Failed to query daily totals", err)
	}
	defer rows.Close()

	var points []cost.Point
	for rows.Next() {
		var date string
		var amount float64
		if err := rows.Scan(&date, &amount); err != nil {
			return nil, errors.DatabaseError("Failed to scan daily total", err)
		}
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, errors.DatabaseError("Failed to parse cost date", err)
		}
		points = append(points, cost.Point{Date: d, Amount: amount})
	}

	return points, rows.Err()
}

func (r *CostRepository) PeriodTotal(ctx context.Context, tenantID string, start, end time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM cost_entries
WHERE tenant_id = ? AND date >= ? AND date <= ?`

	var total float64
	err := r.db.QueryRowContext(ctx, query, tenantID, start.Format(dateLayout), end.Format(dateLayout)).Scan(&total)
	if err != nil {
		return 0, errors.DatabaseError("Failed to query period total", err)
	}
	return total, nil
}
