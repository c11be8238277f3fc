package forecast

import (
	"context"
	"time"
)

// Repository defines the interface for forecast data access
type Repository interface {
	// Create stores a forecast run
	Create(ctx context.Context, f *Forecast) error

	// Latest returns the most recent forecast for a tenant
	Latest(ctx context.Context, tenantID string) (*Forecast, error)

	// DeleteGeneratedBefore removes forecasts generated before cutoff.
	// Returns the number of rows removed.
	DeleteGeneratedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
