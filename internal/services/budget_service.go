package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pratik-mahalle/cloudspend/internal/domain/budget"
	"github.com/pratik-mahalle/cloudspend/internal/domain/cost"
	"github.com/pratik-mahalle/cloudspend/internal/notify"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
)

// BudgetService evaluates budgets against accumulated spend and raises
// warning and exceeded alerts
type BudgetService struct {
	budgetRepo budget.Repository
	costRepo   cost.Repository
	hub        *notify.Hub
	logger     *logger.Logger
}

// NewBudgetService creates a new budget service
func NewBudgetService(
	budgetRepo budget.Repository,
	costRepo cost.Repository,
	hub *notify.Hub,
	log *logger.Logger,
) *BudgetService {
	return &BudgetService{
		budgetRepo: budgetRepo,
		costRepo:   costRepo,
		hub:        hub,
		logger:     log,
	}
}

// Create creates a budget for a tenant
func (s *BudgetService) Create(ctx context.Context, b *budget.Budget) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = budget.StatusActive
	}
	return s.budgetRepo.Create(ctx, b)
}

// ListByTenant retrieves a tenant's budgets
func (s *BudgetService) ListByTenant(ctx context.Context, tenantID string) ([]*budget.Budget, error) {
	return s.budgetRepo.ListByTenant(ctx, tenantID)
}

// EvaluateAll evaluates every active budget against the current period's
// spend. A failure evaluating one budget is logged and does not stop the
// remaining ones.
func (s *BudgetService) EvaluateAll(ctx context.Context, now time.Time) error {
	budgets, err := s.budgetRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	for _, b := range budgets {
		if err := s.Evaluate(ctx, b, now); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"budget_id": b.ID,
				"tenant_id": b.TenantID,
			}).ErrorWithErr(err, "Failed to evaluate budget")
		}
	}

	return nil
}

// Evaluate computes the budget's current period spend, persists the derived
// status and publishes a budget_alert when spend crosses the warning or
// exceeded threshold.
func (s *BudgetService) Evaluate(ctx context.Context, b *budget.Budget, now time.Time) error {
	periodStart, periodEnd := budget.PeriodBounds(b.Period, now)

	spend, err := s.costRepo.PeriodTotal(ctx, b.TenantID, periodStart, periodEnd)
	if err != nil {
		return err
	}

	pct := budget.SpendPct(spend, b.Amount)
	status := budget.StatusForPct(pct)

	if err := s.budgetRepo.UpdateSpend(ctx, b.ID, spend, status); err != nil {
		return err
	}

	if status == budget.StatusWarning || status == budget.StatusExceeded {
		s.hub.PublishBudgetAlert(b.TenantID, map[string]interface{}{
			"budget_name":   b.Name,
			"budget_amount": b.Amount,
			"current_spend": spend,
			"spend_pct":     pct,
			"status":        status,
		})

		s.logger.WithFields(map[string]interface{}{
			"budget_id": b.ID,
			"tenant_id": b.TenantID,
			"spend_pct": pct,
			"status":    status,
		}).Warn("Budget threshold crossed")
	}

	return nil
}
