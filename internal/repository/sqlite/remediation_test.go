package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pratik-mahalle/cloudspend/internal/domain/remediation"
)

func TestRemediationRepository_ActionRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewRemediationRepository(db)
	ctx := context.Background()

	a := &remediation.Action{
		ID:               uuid.New().String(),
		TenantID:         "tenant-1",
		Type:             "resize",
		ResourceID:       "i-abc123",
		Description:      "downsize an idle instance",
		EstimatedSavings: 42.5,
		Currency:         "USD",
		Risk:             remediation.RiskLow,
		Status:           remediation.StatusPendingApproval,
		RequestedBy:      "user-1",
		AuditLog: []remediation.AuditEntry{
			{Timestamp: time.Now().UTC(), Actor: "user-1", Action: "proposed"},
		},
	}
	if err := repo.CreateAction(ctx, a); err != nil {
		t.Fatalf("CreateAction() error = %v", err)
	}

	got, err := repo.GetAction(ctx, "tenant-1", a.ID)
	if err != nil {
		t.Fatalf("GetAction() error = %v", err)
	}

	if got.Type != "resize" || got.ResourceID != "i-abc123" {
		t.Errorf("GetAction() = %q/%q, want resize/i-abc123", got.Type, got.ResourceID)
	}
	if got.EstimatedSavings != 42.5 {
		t.Errorf("EstimatedSavings = %v, want 42.5", got.EstimatedSavings)
	}
	if got.Status != remediation.StatusPendingApproval {
		t.Errorf("Status = %q, want %q", got.Status, remediation.StatusPendingApproval)
	}
	if len(got.AuditLog) != 1 || got.AuditLog[0].Action != "proposed" {
		t.Errorf("AuditLog = %+v, want single proposed entry", got.AuditLog)
	}
	if got.ApprovedAt != nil {
		t.Errorf("ApprovedAt = %v, want nil before approval", got.ApprovedAt)
	}
}

func TestRemediationRepository_GetAction_WrongTenant(t *testing.T) {
	db := newTestDB(t)
	repo := NewRemediationRepository(db)
	ctx := context.Background()

	a := &remediation.Action{
		ID:       uuid.New().String(),
		TenantID: "tenant-1",
		Type:     "resize",
		Status:   remediation.StatusPendingApproval,
	}
	if err := repo.CreateAction(ctx, a); err != nil {
		t.Fatalf("CreateAction() error = %v", err)
	}

	if _, err := repo.GetAction(ctx, "tenant-2", a.ID); err == nil {
		t.Error("GetAction() with wrong tenant succeeded, want not found")
	}
}

func TestRemediationRepository_ApproveAction(t *testing.T) {
	db := newTestDB(t)
	repo := NewRemediationRepository(db)
	ctx := context.Background()

	a := &remediation.Action{
		ID:       uuid.New().String(),
		TenantID: "tenant-1",
		Type:     "resize",
		Status:   remediation.StatusPendingApproval,
	}
	if err := repo.CreateAction(ctx, a); err != nil {
		t.Fatalf("CreateAction() error = %v", err)
	}

	log := []remediation.AuditEntry{
		{Timestamp: time.Now().UTC(), Actor: "system", Action: "auto_approved", Details: "Auto-approved by rule: small savings"},
	}
	approved, err := repo.ApproveAction(ctx, "tenant-1", a.ID, "system", "small savings", log)
	if err != nil {
		t.Fatalf("ApproveAction() error = %v", err)
	}

	if approved.Status != remediation.StatusApproved {
		t.Errorf("Status = %q, want %q", approved.Status, remediation.StatusApproved)
	}
	if !approved.AutoApproved {
		t.Error("AutoApproved = false, want true when a rule name is recorded")
	}
	if approved.ApprovalRule != "small savings" {
		t.Errorf("ApprovalRule = %q, want small savings", approved.ApprovalRule)
	}
	if approved.ApprovedAt == nil {
		t.Error("ApprovedAt = nil after approval")
	}
	if len(approved.AuditLog) != 1 || approved.AuditLog[0].Action != "auto_approved" {
		t.Errorf("AuditLog = %+v, want the auto_approved entry", approved.AuditLog)
	}
}

func TestRemediationRepository_ApproveAction_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewRemediationRepository(db)

	if _, err := repo.ApproveAction(context.Background(), "tenant-1", "missing", "user-1", "", nil); err == nil {
		t.Error("ApproveAction() on missing action succeeded, want not found")
	}
}

func TestRemediationRepository_ActiveRules(t *testing.T) {
	db := newTestDB(t)
	repo := NewRemediationRepository(db)
	ctx := context.Background()

	max := 100.0
	if err := repo.CreateRule(ctx, &remediation.AutoApprovalRule{
		ID:         uuid.New().String(),
		TenantID:   "tenant-1",
		Name:       "enabled rule",
		Enabled:    true,
		Conditions: remediation.RuleConditions{MaxSavings: &max, AllowedRisks: []string{remediation.RiskLow}},
	}); err != nil {
		t.Fatalf("CreateRule() error = %v", err)
	}
	if err := repo.CreateRule(ctx, &remediation.AutoApprovalRule{
		ID:       uuid.New().String(),
		TenantID: "tenant-1",
		Name:     "disabled rule",
		Enabled:  false,
	}); err != nil {
		t.Fatalf("CreateRule() error = %v", err)
	}

	rules, err := repo.ActiveRules(ctx, "tenant-1")
	if err != nil {
		t.Fatalf("ActiveRules() error = %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("ActiveRules() returned %d rules, want 1", len(rules))
	}

	rule := rules[0]
	if rule.Name != "enabled rule" {
		t.Errorf("Name = %q, want enabled rule", rule.Name)
	}
	if rule.Conditions.MaxSavings == nil || *rule.Conditions.MaxSavings != 100 {
		t.Errorf("Conditions.MaxSavings = %v, want 100", rule.Conditions.MaxSavings)
	}
	if len(rule.Conditions.AllowedRisks) != 1 || rule.Conditions.AllowedRisks[0] != remediation.RiskLow {
		t.Errorf("Conditions.AllowedRisks = %v, want [low]", rule.Conditions.AllowedRisks)
	}
}
