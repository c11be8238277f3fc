package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/cloudspend/internal/domain/budget"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
)

type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) budget.Repository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	b.CreatedAt = time.Now().UTC()

	query := `INSERT INTO budgets (id, tenant_id, name, amount, period, current_spend, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.TenantID, b.Name, b.Amount, b.Period,
		b.CurrentSpend, b.Status, b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create budget", err)
	}
	return nil
}

// ListActive returns every budget regardless of derived status. Warning and
// exceeded budgets must keep being re-evaluated each period, so there is
// deliberately no status filter; "active" here means not deleted.
func (r *BudgetRepository) ListActive(ctx context.Context) ([]*budget.Budget, error) {
	query := `SELECT id, tenant_id, name, amount, period, current_spend, status, created_at
FROM budgets ORDER BY created_at`

	return r.queryBudgets(ctx, query)
}

func (r *BudgetRepository) ListByTenant(ctx context.Context, tenantID string) ([]*budget.Budget, error) {
	query := `SELECT id, tenant_id, name, amount, period, current_spend, status, created_at
FROM budgets WHERE tenant_id = ? ORDER BY created_at`

	return r.queryBudgets(ctx, query, tenantID)
}

func (r *BudgetRepository) UpdateSpend(ctx context.Context, id string, spend float64, status string) error {
	query := `UPDATE budgets SET current_spend = ?, status = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, spend, status, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return errors.DatabaseError("Failed to update budget spend", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NotFound("Budget")
	}
	return nil
}

func (r *BudgetRepository) queryBudgets(ctx context.Context, query string, args ...interface{}) ([]*budget.Budget, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list budgets", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget
	for rows.Next() {
		var b budget.Budget
		var createdAt string
		if err := rows.Scan(&b.ID, &b.TenantID, &b.Name, &b.Amount, &b.Period,
			&b.CurrentSpend, &b.Status, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan budget", err)
		}
		b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		budgets = append(budgets, &b)
	}

	return budgets, rows.Err()
}
