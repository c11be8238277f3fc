package budget

import "context"

// Repository defines the interface for budget data access
type Repository interface {
	// Create creates a new budget
	Create(ctx context.Context, b *Budget) error

	// ListActive retrieves all budgets across tenants, including those
	// already in warning or exceeded status — they must keep being
	// re-evaluated so their spend tracks the period
	ListActive(ctx context.Context) ([]*Budget, error)

	// ListByTenant retrieves budgets for one tenant
	ListByTenant(ctx context.Context, tenantID string) ([]*Budget, error)

	// UpdateSpend updates the accumulated spend and derived status of a budget
	UpdateSpend(ctx context.Context, id string, spend float64, status string) error
}
