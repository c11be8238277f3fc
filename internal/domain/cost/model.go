package cost

import "time"

// Point is one day of aggregated spend for a tenant
type Point struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// Entry represents a single raw cost record as ingested from a billing feed
type Entry struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Provider  string    `json:"provider"`
	Service   string    `json:"service"`
	Date      time.Time `json:"date"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}
