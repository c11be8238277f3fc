package cost

import (
	"context"
	"time"
)

// Repository defines the interface for cost data access
type Repository interface {
	// CreateEntry records a raw cost entry
	CreateEntry(ctx context.Context, e *Entry) error

	// DailyTotals returns per-day spend totals for a tenant within [start, end],
	// ordered by ascending date
	DailyTotals(ctx context.Context, tenantID string, start, end time.Time) ([]Point, error)

	// PeriodTotal returns the total spend for a tenant within [start, end]
	PeriodTotal(ctx context.Context, tenantID string, start, end time.Time) (float64, error)
}
