package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pratik-mahalle/cloudspend/internal/domain/remediation"
	"github.com/pratik-mahalle/cloudspend/internal/notify"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
)

// SystemActor is the audit-log actor recorded for automated decisions
const SystemActor = "system"

// RemediationService implements remediation.Service
type RemediationService struct {
	repo   remediation.Repository
	hub    *notify.Hub
	logger *logger.Logger
}

// NewRemediationService creates a new remediation service
func NewRemediationService(repo remediation.Repository, hub *notify.Hub, log *logger.Logger) remediation.Service {
	return &RemediationService{
		repo:   repo,
		hub:    hub,
		logger: log,
	}
}

// Propose creates a remediation action and evaluates the tenant's enabled
// auto-approval rules against it, in listing order. The first matching rule
// approves the action and the audit log records which rule was responsible.
// With no match the action stays pending manual approval.
func (s *RemediationService) Propose(ctx context.Context, a *remediation.Action) (*remediation.Action, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.Status = remediation.StatusPendingApproval
	a.AuditLog = append(a.AuditLog, remediation.AuditEntry{
		Timestamp: time.Now().UTC(),
		Actor:     a.RequestedBy,
		Action:    "proposed",
	})

	if err := s.repo.CreateAction(ctx, a); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create remediation action")
		return nil, err
	}

	rules, err := s.repo.ActiveRules(ctx, a.TenantID)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to load auto-approval rules")
		// The action exists; rule evaluation can be retried via manual
		// approval, so report the action as pending.
		return a, nil
	}

	for _, rule := range rules {
		if !rule.Enabled || !rule.Conditions.Matches(a) {
			continue
		}

		log := append(a.AuditLog, remediation.AuditEntry{
			Timestamp: time.Now().UTC(),
			Actor:     SystemActor,
			Action:    "auto_approved",
			Details:   fmt.Sprintf("Auto-approved by rule: %s", rule.Name),
		})

		approved, err := s.repo.ApproveAction(ctx, a.TenantID, a.ID, SystemActor, rule.Name, log)
		if err != nil {
			s.logger.ErrorWithErr(err, "Failed to auto-approve remediation action")
			return nil, err
		}

		s.logger.WithFields(map[string]interface{}{
			"action_id": a.ID,
			"tenant_id": a.TenantID,
			"rule":      rule.Name,
		}).Info("Remediation action auto-approved")

		s.hub.PublishRemediationUpdate(a.TenantID, map[string]interface{}{
			"action_id": approved.ID,
			"status":    approved.Status,
			"rule":      rule.Name,
		})

		return approved, nil
	}

	return a, nil
}

// Approve manually approves a pending action
func (s *RemediationService) Approve(ctx context.Context, tenantID, id, approverID string) (*remediation.Action, error) {
	existing, err := s.repo.GetAction(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	log := append(existing.AuditLog, remediation.AuditEntry{
		Timestamp: time.Now().UTC(),
		Actor:     approverID,
		Action:    "approved",
		Details:   "Manually approved",
	})

	approved, err := s.repo.ApproveAction(ctx, tenantID, id, approverID, "", log)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to approve remediation action")
		return nil, err
	}

	s.hub.PublishRemediationUpdate(tenantID, map[string]interface{}{
		"action_id": approved.ID,
		"status":    approved.Status,
	})

	return approved, nil
}

// List retrieves a tenant's remediation actions
func (s *RemediationService) List(ctx context.Context, tenantID string) ([]*remediation.Action, error) {
	return s.repo.ListActions(ctx, tenantID)
}
