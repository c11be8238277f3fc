package remediation

import "context"

// Repository defines the interface for remediation data access
type Repository interface {
	// CreateAction creates a remediation action
	CreateAction(ctx context.Context, a *Action) error

	// GetAction retrieves an action by ID
	GetAction(ctx context.Context, tenantID, id string) (*Action, error)

	// ListActions retrieves actions for a tenant, newest first
	ListActions(ctx context.Context, tenantID string) ([]*Action, error)

	// ApproveAction marks an action approved and replaces its audit log
	ApproveAction(ctx context.Context, tenantID, id, approverID, ruleName string, log []AuditEntry) (*Action, error)

	// ActiveRules retrieves enabled auto-approval rules for a tenant in
	// evaluation order
	ActiveRules(ctx context.Context, tenantID string) ([]*AutoApprovalRule, error)

	// CreateRule creates an auto-approval rule
	CreateRule(ctx context.Context, r *AutoApprovalRule) error
}
