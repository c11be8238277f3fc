package anomaly

import "time"

// Anomaly represents a detected cost anomaly for one day of tenant spend
type Anomaly struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	Date           time.Time `json:"date"`
	ActualAmount   float64   `json:"actual_amount"`
	ExpectedAmount float64   `json:"expected_amount"`
	Deviation      float64   `json:"deviation"`
	DeviationPct   float64   `json:"deviation_pct"`
	Score          float64   `json:"score"`
	Severity       string    `json:"severity"`
	Status         string    `json:"status"`
	DetectedAt     time.Time `json:"detected_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// Severity levels
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Status
const (
	StatusOpen         = "open"
	StatusAcknowledged = "acknowledged"
	StatusResolved     = "resolved"
)
