package budget

import "time"

// Budget represents a spend limit for a tenant over a recurring period
type Budget struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Name         string    `json:"name"`
	Amount       float64   `json:"amount"`
	Period       string    `json:"period"`
	CurrentSpend float64   `json:"current_spend"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// Period kinds; anything else is treated as annual
const (
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodAnnual    = "annual"
)

// Status values derived from the spend/amount ratio
const (
	StatusActive   = "active"
	StatusWarning  = "warning"
	StatusExceeded = "exceeded"
)
