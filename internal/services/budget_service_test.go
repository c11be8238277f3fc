package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pratik-mahalle/cloudspend/internal/domain/budget"
	"github.com/pratik-mahalle/cloudspend/internal/domain/notification"
	"github.com/pratik-mahalle/cloudspend/internal/notify"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudspend/internal/testutil"
)

func TestBudgetService_Evaluate_StatusTransitions(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		spend      float64
		wantStatus string
		wantAlert  bool
	}{
		{"under warning", 1000, 500, budget.StatusActive, false},
		{"just under warning", 1000, 799.9, budget.StatusActive, false},
		{"at warning", 1000, 800, budget.StatusWarning, true},
		{"at exceeded", 1000, 1000, budget.StatusExceeded, true},
		{"overspent", 1000, 1500, budget.StatusExceeded, true},
		{"zero amount stays active", 0, 500, budget.StatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := logger.New(logger.Config{Level: "error", Format: "json"})
			budgetRepo := testutil.NewMockBudgetRepository()
			costRepo := testutil.NewMockCostRepository()
			hub := notify.NewHub(log)

			b := &budget.Budget{
				ID:       "b-1",
				TenantID: "tenant-1",
				Name:     "prod",
				Amount:   tt.amount,
				Period:   budget.PeriodMonthly,
				Status:   budget.StatusActive,
			}
			budgetRepo.Budgets = append(budgetRepo.Budgets, b)
			costRepo.Totals["tenant-1"] = tt.spend

			sub := hub.Subscribe("tenant-1")
			defer sub.Close()

			svc := NewBudgetService(budgetRepo, costRepo, hub, log)
			if err := svc.Evaluate(context.Background(), b, time.Now().UTC()); err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}

			update, ok := budgetRepo.Updates["b-1"]
			if !ok {
				t.Fatal("budget spend was not persisted")
			}
			if update.Status != tt.wantStatus {
				t.Errorf("persisted status = %q, want %q", update.Status, tt.wantStatus)
			}
			if update.Spend != tt.spend {
				t.Errorf("persisted spend = %v, want %v", update.Spend, tt.spend)
			}

			select {
			case msg := <-sub.C():
				if !tt.wantAlert {
					t.Fatalf("unexpected alert: %+v", msg)
				}
				if msg.Kind != notification.KindBudgetAlert {
					t.Errorf("Kind = %q, want %q", msg.Kind, notification.KindBudgetAlert)
				}
				if msg.Data["budget_name"] != "prod" {
					t.Errorf("Data[budget_name] = %v, want prod", msg.Data["budget_name"])
				}
				if msg.Data["status"] != tt.wantStatus {
					t.Errorf("Data[status] = %v, want %q", msg.Data["status"], tt.wantStatus)
				}
				if msg.Data["current_spend"] != tt.spend {
					t.Errorf("Data[current_spend] = %v, want %v", msg.Data["current_spend"], tt.spend)
				}
			default:
				if tt.wantAlert {
					t.Error("no budget_alert published")
				}
			}
		})
	}
}

func TestBudgetService_EvaluateAll_FailureIsolation(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	budgetRepo := testutil.NewMockBudgetRepository()
	costRepo := testutil.NewMockCostRepository()
	hub := notify.NewHub(log)

	budgetRepo.Budgets = append(budgetRepo.Budgets,
		&budget.Budget{ID: "b-1", TenantID: "tenant-1", Name: "broken", Amount: 1000, Period: budget.PeriodMonthly},
		&budget.Budget{ID: "b-2", TenantID: "tenant-2", Name: "fine", Amount: 1000, Period: budget.PeriodMonthly},
	)
	costRepo.PerTenant["tenant-1"] = fmt.Errorf("query timeout")
	costRepo.Totals["tenant-2"] = 300

	svc := NewBudgetService(budgetRepo, costRepo, hub, log)
	if err := svc.EvaluateAll(context.Background(), time.Now().UTC()); err != nil {
		t.Fatalf("EvaluateAll() error = %v, want per-budget isolation", err)
	}

	if _, ok := budgetRepo.Updates["b-1"]; ok {
		t.Error("failing budget was updated")
	}
	update, ok := budgetRepo.Updates["b-2"]
	if !ok {
		t.Fatal("healthy budget was not evaluated after the failing one")
	}
	if update.Status != budget.StatusActive {
		t.Errorf("b-2 status = %q, want %q", update.Status, budget.StatusActive)
	}
}

func TestBudgetService_Create_AppliesDefaults(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	budgetRepo := testutil.NewMockBudgetRepository()
	costRepo := testutil.NewMockCostRepository()
	hub := notify.NewHub(log)

	svc := NewBudgetService(budgetRepo, costRepo, hub, log)
	b := &budget.Budget{TenantID: "tenant-1", Name: "prod", Amount: 1000, Period: budget.PeriodMonthly}
	if err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if b.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if b.Status != budget.StatusActive {
		t.Errorf("Status = %q, want %q", b.Status, budget.StatusActive)
	}
	if len(budgetRepo.Budgets) != 1 {
		t.Errorf("stored %d budgets, want 1", len(budgetRepo.Budgets))
	}
}
