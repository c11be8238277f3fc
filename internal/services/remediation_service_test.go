package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pratik-mahalle/cloudspend/internal/domain/notification"
	"github.com/pratik-mahalle/cloudspend/internal/domain/remediation"
	"github.com/pratik-mahalle/cloudspend/internal/notify"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudspend/internal/testutil"
)

func floatPtr(v float64) *float64 { return &v }

func newRemediationFixture() (*testutil.MockRemediationRepository, *notify.Hub, remediation.Service) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	repo := testutil.NewMockRemediationRepository()
	hub := notify.NewHub(log)
	return repo, hub, NewRemediationService(repo, hub, log)
}

func TestRemediationService_Propose_AutoApprovesOnMatch(t *testing.T) {
	repo, hub, svc := newRemediationFixture()

	repo.Rules = append(repo.Rules, &remediation.AutoApprovalRule{
		ID:       "r-1",
		TenantID: "tenant-1",
		Name:     "small low-risk savings",
		Enabled:  true,
		Conditions: remediation.RuleConditions{
			MaxSavings:   floatPtr(100),
			AllowedRisks: []string{remediation.RiskLow},
		},
	})

	sub := hub.Subscribe("tenant-1")
	defer sub.Close()

	action, err := svc.Propose(context.Background(), &remediation.Action{
		TenantID:         "tenant-1",
		Type:             "resize",
		ResourceID:       "i-abc123",
		EstimatedSavings: 50,
		Risk:             remediation.RiskLow,
		RequestedBy:      "user-1",
	})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	if action.Status != remediation.StatusApproved {
		t.Errorf("Status = %q, want %q", action.Status, remediation.StatusApproved)
	}
	if !action.AutoApproved {
		t.Error("AutoApproved = false, want true")
	}
	if action.ApprovalRule != "small low-risk savings" {
		t.Errorf("ApprovalRule = %q, want rule name", action.ApprovalRule)
	}
	if action.ApprovedBy != SystemActor {
		t.Errorf("ApprovedBy = %q, want %q", action.ApprovedBy, SystemActor)
	}

	// The audit trail names the responsible rule.
	last := action.AuditLog[len(action.AuditLog)-1]
	if last.Actor != SystemActor {
		t.Errorf("audit actor = %q, want %q", last.Actor, SystemActor)
	}
	if !strings.Contains(last.Details, "small low-risk savings") {
		t.Errorf("audit details %q does not name the rule", last.Details)
	}

	select {
	case msg := <-sub.C():
		if msg.Kind != notification.KindRemediationUpdate {
			t.Errorf("Kind = %q, want %q", msg.Kind, notification.KindRemediationUpdate)
		}
	default:
		t.Error("no remediation_update published for auto-approval")
	}
}

func TestRemediationService_Propose_NoMatchStaysPending(t *testing.T) {
	repo, hub, svc := newRemediationFixture()

	repo.Rules = append(repo.Rules, &remediation.AutoApprovalRule{
		ID:         "r-1",
		TenantID:   "tenant-1",
		Name:       "small savings only",
		Enabled:    true,
		Conditions: remediation.RuleConditions{MaxSavings: floatPtr(100)},
	})

	sub := hub.Subscribe("tenant-1")
	defer sub.Close()

	action, err := svc.Propose(context.Background(), &remediation.Action{
		TenantID:         "tenant-1",
		Type:             "terminate",
		ResourceID:       "i-abc123",
		EstimatedSavings: 150,
		Risk:             remediation.RiskHigh,
		RequestedBy:      "user-1",
	})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	if action.Status != remediation.StatusPendingApproval {
		t.Errorf("Status = %q, want %q", action.Status, remediation.StatusPendingApproval)
	}
	if action.AutoApproved {
		t.Error("AutoApproved = true, want false")
	}

	select {
	case msg := <-sub.C():
		t.Errorf("pending action published an update: %+v", msg)
	default:
	}
}

func TestRemediationService_Propose_FirstMatchingRuleWins(t *testing.T) {
	repo, _, svc := newRemediationFixture()

	repo.Rules = append(repo.Rules,
		&remediation.AutoApprovalRule{
			ID:         "r-1",
			TenantID:   "tenant-1",
			Name:       "types rule",
			Enabled:    true,
			Conditions: remediation.RuleConditions{AllowedTypes: []string{"snapshot"}},
		},
		&remediation.AutoApprovalRule{
			ID:         "r-2",
			TenantID:   "tenant-1",
			Name:       "first matching",
			Enabled:    true,
			Conditions: remediation.RuleConditions{MaxSavings: floatPtr(500)},
		},
		&remediation.AutoApprovalRule{
			ID:         "r-3",
			TenantID:   "tenant-1",
			Name:       "also matching",
			Enabled:    true,
			Conditions: remediation.RuleConditions{},
		},
	)

	action, err := svc.Propose(context.Background(), &remediation.Action{
		TenantID:         "tenant-1",
		Type:             "resize",
		ResourceID:       "i-abc123",
		EstimatedSavings: 100,
		Risk:             remediation.RiskLow,
	})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	if action.ApprovalRule != "first matching" {
		t.Errorf("ApprovalRule = %q, want first match in listing order", action.ApprovalRule)
	}
}

func TestRemediationService_Propose_DisabledRuleIsSkipped(t *testing.T) {
	repo, _, svc := newRemediationFixture()

	repo.Rules = append(repo.Rules, &remediation.AutoApprovalRule{
		ID:         "r-1",
		TenantID:   "tenant-1",
		Name:       "catch all",
		Enabled:    false,
		Conditions: remediation.RuleConditions{},
	})

	action, err := svc.Propose(context.Background(), &remediation.Action{
		TenantID:   "tenant-1",
		Type:       "resize",
		ResourceID: "i-abc123",
	})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if action.Status != remediation.StatusPendingApproval {
		t.Errorf("Status = %q, want %q", action.Status, remediation.StatusPendingApproval)
	}
}

func TestRemediationService_Propose_RulesErrorLeavesActionPending(t *testing.T) {
	repo, _, svc := newRemediationFixture()
	repo.RulesError = fmt.Errorf("query timeout")

	action, err := svc.Propose(context.Background(), &remediation.Action{
		TenantID:   "tenant-1",
		Type:       "resize",
		ResourceID: "i-abc123",
	})
	if err != nil {
		t.Fatalf("Propose() error = %v, want pending action despite rules failure", err)
	}
	if action.Status != remediation.StatusPendingApproval {
		t.Errorf("Status = %q, want %q", action.Status, remediation.StatusPendingApproval)
	}
}

func TestRemediationService_Approve_Manual(t *testing.T) {
	_, hub, svc := newRemediationFixture()

	action, err := svc.Propose(context.Background(), &remediation.Action{
		TenantID:   "tenant-1",
		Type:       "resize",
		ResourceID: "i-abc123",
	})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	sub := hub.Subscribe("tenant-1")
	defer sub.Close()

	approved, err := svc.Approve(context.Background(), "tenant-1", action.ID, "user-2")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	if approved.Status != remediation.StatusApproved {
		t.Errorf("Status = %q, want %q", approved.Status, remediation.StatusApproved)
	}
	if approved.AutoApproved {
		t.Error("AutoApproved = true for manual approval")
	}
	if approved.ApprovedBy != "user-2" {
		t.Errorf("ApprovedBy = %q, want user-2", approved.ApprovedBy)
	}

	last := approved.AuditLog[len(approved.AuditLog)-1]
	if last.Actor != "user-2" || last.Action != "approved" {
		t.Errorf("audit entry = %+v, want manual approval by user-2", last)
	}

	select {
	case msg := <-sub.C():
		if msg.Kind != notification.KindRemediationUpdate {
			t.Errorf("Kind = %q, want %q", msg.Kind, notification.KindRemediationUpdate)
		}
	default:
		t.Error("no remediation_update published for manual approval")
	}
}
