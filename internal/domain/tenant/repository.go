package tenant

import "context"

// Repository defines the interface for tenant data access
type Repository interface {
	// Create creates a new tenant
	Create(ctx context.Context, t *Tenant) error

	// GetByID retrieves a tenant by ID
	GetByID(ctx context.Context, id string) (*Tenant, error)

	// List retrieves all tenants ordered by creation time
	List(ctx context.Context) ([]*Tenant, error)
}
