package remediation

import "time"

// Action represents a proposed remediation of a wasteful or risky resource
type Action struct {
	ID               string       `json:"id"`
	TenantID         string       `json:"tenant_id"`
	Type             string       `json:"type"`
	ResourceID       string       `json:"resource_id"`
	Description      string       `json:"description,omitempty"`
	EstimatedSavings float64      `json:"estimated_savings"`
	Currency         string       `json:"currency"`
	Risk             string       `json:"risk"`
	Status           string       `json:"status"`
	AutoApproved     bool         `json:"auto_approved"`
	ApprovalRule     string       `json:"approval_rule,omitempty"`
	RequestedBy      string       `json:"requested_by,omitempty"`
	ApprovedBy       string       `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time   `json:"approved_at,omitempty"`
	AuditLog         []AuditEntry `json:"audit_log"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at,omitempty"`
}

// AuditEntry is one entry in an action's audit trail
type AuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
}

// Action statuses
const (
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
	StatusExecuted        = "executed"
)

// Risk levels
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// AutoApprovalRule is a named condition set that lets matching proposals
// bypass manual approval
type AutoApprovalRule struct {
	ID         string         `json:"id"`
	TenantID   string         `json:"tenant_id"`
	Name       string         `json:"name"`
	Enabled    bool           `json:"enabled"`
	Conditions RuleConditions `json:"conditions"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at,omitempty"`
}

// RuleConditions holds the optional clauses of an auto-approval rule.
// An absent clause is vacuously satisfied.
type RuleConditions struct {
	MaxSavings   *float64 `json:"max_savings,omitempty"`
	AllowedTypes []string `json:"allowed_types,omitempty"`
	AllowedRisks []string `json:"allowed_risks,omitempty"`
}

// Matches reports whether the proposal satisfies every present clause
func (c RuleConditions) Matches(a *Action) bool {
	if c.MaxSavings != nil && a.EstimatedSavings > *c.MaxSavings {
		return false
	}
	if len(c.AllowedTypes) > 0 && !contains(c.AllowedTypes, a.Type) {
		return false
	}
	if len(c.AllowedRisks) > 0 && !contains(c.AllowedRisks, a.Risk) {
		return false
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
