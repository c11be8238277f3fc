package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pratik-mahalle/cloudspend/internal/domain/remediation"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
)

type RemediationRepository struct {
	db *sql.DB
}

func NewRemediationRepository(db *sql.DB) remediation.Repository {
	return &RemediationRepository{db: db}
}

func (r *RemediationRepository) CreateAction(ctx context.Context, a *remediation.Action) error {
	a.CreatedAt = time.Now().UTC()

	auditLog, err := json.Marshal(a.AuditLog)
	if err != nil {
		return errors.Internal("Failed to encode audit log", err)
	}

	query := `INSERT INTO remediation_actions
(id, tenant_id, type, resource_id, description, estimated_savings, currency, risk, status, auto_approved, approval_rule, requested_by, audit_log, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.TenantID, a.Type, a.ResourceID, a.Description,
		a.EstimatedSavings, a.Currency, a.Risk, a.Status,
		boolToInt(a.AutoApproved), a.ApprovalRule, a.RequestedBy,
		string(auditLog), a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create remediation action", err)
	}
	return nil
}

func (r *RemediationRepository) GetAction(ctx context.Context, tenantID, id string) (*remediation.Action, error) {
	query := actionSelect + ` WHERE tenant_id = ? AND id = ?`

	row := r.db.QueryRowContext(ctx, query, tenantID, id)
	a, err := scanAction(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Remediation action")
	}
	return a, err
}

func (r *RemediationRepository) ListActions(ctx context.Context, tenantID string) ([]*remediation.Action, error) {
	query := actionSelect + ` WHERE tenant_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list remediation actions", err)
	}
	defer rows.Close()

	var actions []*remediation.Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}

	return actions, rows.Err()
}

func (r *RemediationRepository) ApproveAction(ctx context.Context, tenantID, id, approverID, ruleName string, log []remediation.AuditEntry) (*remediation.Action, error) {
	auditLog, err := json.Marshal(log)
	if err != nil {
		return nil, errors.Internal("Failed to encode audit log", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	query := `UPDATE remediation_actions
SET status = ?, auto_approved = ?, approval_rule = ?, approved_by = ?, approved_at = ?, audit_log = ?, updated_at = ?
WHERE tenant_id = ? AND id = ?`

	result, err := r.db.ExecContext(ctx, query,
		remediation.StatusApproved, boolToInt(ruleName != ""), ruleName,
		approverID, now, string(auditLog), now, tenantID, id,
	)
	if err != nil {
		return nil, errors.DatabaseError("Failed to approve remediation action", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, errors.NotFound("Remediation action")
	}

	return r.GetAction(ctx, tenantID, id)
}

// ActiveRules returns enabled rules newest first; rule precedence is the
// listing order.
func (r *RemediationRepository) ActiveRules(ctx context.Context, tenantID string) ([]*remediation.AutoApprovalRule, error) {
	query := `SELECT id, tenant_id, name, enabled, conditions, created_at
FROM auto_approval_rules WHERE tenant_id = ? AND enabled = 1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list auto-approval rules", err)
	}
	defer rows.Close()

	var rules []*remediation.AutoApprovalRule
	for rows.Next() {
		var rule remediation.AutoApprovalRule
		var enabled int
		var conditions, createdAt string
		if err := rows.Scan(&rule.ID, &rule.TenantID, &rule.Name, &enabled, &conditions, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan auto-approval rule", err)
		}
		rule.Enabled = enabled != 0
		rule.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if err := json.Unmarshal([]byte(conditions), &rule.Conditions); err != nil {
			return nil, errors.Internal("Failed to decode rule conditions", err)
		}
		rules = append(rules, &rule)
	}

	return rules, rows.Err()
}

func (r *RemediationRepository) CreateRule(ctx context.Context, rule *remediation.AutoApprovalRule) error {
	rule.CreatedAt = time.Now().UTC()

	conditions, err := json.Marshal(rule.Conditions)
	if err != nil {
		return errors.Internal("Failed to encode rule conditions", err)
	}

	query := `INSERT INTO auto_approval_rules (id, tenant_id, name, enabled, conditions, created_at)
VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rule.ID, rule.TenantID, rule.Name, boolToInt(rule.Enabled),
		string(conditions), rule.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create auto-approval rule", err)
	}
	return nil
}

const actionSelect = `SELECT id, tenant_id, type, resource_id, description, estimated_savings, currency, risk, status, auto_approved, approval_rule, requested_by, approved_by, approved_at, audit_log, created_at
FROM remediation_actions`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAction(row rowScanner) (*remediation.Action, error) {
	var a remediation.Action
	var autoApproved int
	var description, approvalRule, requestedBy, approvedBy, approvedAt sql.NullString
	var auditLog, createdAt string

	err := row.Scan(&a.ID, &a.TenantID, &a.Type, &a.ResourceID, &description,
		&a.EstimatedSavings, &a.Currency, &a.Risk, &a.Status, &autoApproved,
		&approvalRule, &requestedBy, &approvedBy, &approvedAt, &auditLog, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to scan remediation action", err)
	}

	a.AutoApproved = autoApproved != 0
	a.Description = description.String
	a.ApprovalRule = approvalRule.String
	a.RequestedBy = requestedBy.String
	a.ApprovedBy = approvedBy.String
	if approvedAt.Valid {
		if t, err := time.Parse(time.RFC3339, approvedAt.String); err == nil {
			a.ApprovedAt = &t
		}
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if err := json.Unmarshal([]byte(auditLog), &a.AuditLog); err != nil {
		return nil, errors.Internal("Failed to decode audit log", err)
	}

	return &a, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
