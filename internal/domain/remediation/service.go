package remediation

import "context"

// Service defines the interface for remediation business logic
type Service interface {
	// Propose creates a remediation action and evaluates auto-approval
	// rules against it. The first matching enabled rule approves the action;
	// otherwise it stays pending.
	Propose(ctx context.Context, a *Action) (*Action, error)

	// Approve manually approves a pending action
	Approve(ctx context.Context, tenantID, id, approverID string) (*Action, error)

	// List retrieves actions for a tenant
	List(ctx context.Context, tenantID string) ([]*Action, error)
}
