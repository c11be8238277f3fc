package forecast

import "time"

// Point is one predicted day of spend with its interval bounds
type Point struct {
	Date       time.Time `json:"date"`
	Predicted  float64   `json:"predicted"`
	LowerBound float64   `json:"lower_bound"`
	UpperBound float64   `json:"upper_bound"`
}

// Forecast represents a stored forecast run for a tenant
type Forecast struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"tenant_id"`
	GeneratedAt     time.Time `json:"generated_at"`
	ModelVersion    string    `json:"model_version"`
	Granularity     string    `json:"granularity"`
	Points          []Point   `json:"points"`
	TotalForecasted float64   `json:"total_forecasted"`
	ConfidenceLevel float64   `json:"confidence_level"`
	Currency        string    `json:"currency"`
	CreatedAt       time.Time `json:"created_at"`
}

// GranularityDaily is the only granularity produced by the engine
const GranularityDaily = "daily"
