package anomaly

import (
	"context"
	"time"
)

// Repository defines the interface for anomaly data access
type Repository interface {
	// CreateBatch inserts a batch of anomalies in a single transaction.
	// Either all records are written or none are.
	CreateBatch(ctx context.Context, anomalies []*Anomaly) error

	// ListByTenant retrieves anomalies for a tenant, newest first
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]*Anomaly, error)

	// UpdateStatus updates the status of an anomaly
	UpdateStatus(ctx context.Context, tenantID, id, status string) error

	// DeleteResolvedBefore removes resolved anomalies detected before cutoff.
	// Returns the number of rows removed.
	DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
