package notification

import "time"

// Kind identifies the type of a real-time notification
type Kind string

// All notification kinds share the same Message envelope; the payload shape
// is up to the publisher.
const (
	KindCostUpdate        Kind = "cost_update"
	KindAnomalyAlert      Kind = "anomaly_alert"
	KindBudgetAlert       Kind = "budget_alert"
	KindRecommendation    Kind = "recommendation"
	KindRemediationUpdate Kind = "remediation_update"
	KindPolicyViolation   Kind = "policy_violation"
)

// Message is the envelope fanned out to a tenant's live subscribers.
// Messages are transient: never persisted, never replayed.
type Message struct {
	Kind      Kind                   `json:"type"`
	TenantID  string                 `json:"tenant_id"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}
