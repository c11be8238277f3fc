package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pratik-mahalle/cloudspend/internal/api/middleware"
	"github.com/pratik-mahalle/cloudspend/internal/auth"
	"github.com/pratik-mahalle/cloudspend/internal/domain/budget"
	"github.com/pratik-mahalle/cloudspend/internal/notify"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudspend/internal/services"
	"github.com/pratik-mahalle/cloudspend/internal/testutil"
)

func newBudgetFixture() (*testutil.MockBudgetRepository, *BudgetHandler) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	budgetRepo := testutil.NewMockBudgetRepository()
	costRepo := testutil.NewMockCostRepository()
	hub := notify.NewHub(log)
	service := services.NewBudgetService(budgetRepo, costRepo, hub, log)
	return budgetRepo, NewBudgetHandler(service)
}

func authedRequest(method, target string, body []byte, tenantID string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	claims := &auth.Claims{UserID: "user-1", TenantID: tenantID}
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

func TestBudgetHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid budget",
			body:           `{"name":"prod","amount":1000,"period":"monthly"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "period defaults to monthly",
			body:           `{"name":"prod","amount":1000}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           `{"amount":1000}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero amount",
			body:           `{"name":"prod","amount":0}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown period",
			body:           `{"name":"prod","amount":1000,"period":"weekly"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, handler := newBudgetFixture()

			req := authedRequest(http.MethodPost, "/api/budgets", []byte(tt.body), "tenant-1")
			rr := httptest.NewRecorder()

			handler.Create(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d, body %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}

			if rr.Code == http.StatusCreated {
				var b budget.Budget
				if err := json.NewDecoder(rr.Body).Decode(&b); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if b.TenantID != "tenant-1" {
					t.Errorf("TenantID = %q, want tenant-1 from claims", b.TenantID)
				}
				if b.Period != budget.PeriodMonthly {
					t.Errorf("Period = %q, want %q", b.Period, budget.PeriodMonthly)
				}
				if b.ID == "" {
					t.Error("response budget has no ID")
				}
			}
		})
	}
}

func TestBudgetHandler_Create_MissingClaims(t *testing.T) {
	_, handler := newBudgetFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/budgets",
		bytes.NewReader([]byte(`{"name":"prod","amount":1000}`)))
	rr := httptest.NewRecorder()

	handler.Create(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestBudgetHandler_List_ScopedToTenant(t *testing.T) {
	budgetRepo, handler := newBudgetFixture()
	budgetRepo.Budgets = append(budgetRepo.Budgets,
		&budget.Budget{ID: "b-1", TenantID: "tenant-1", Name: "mine"},
		&budget.Budget{ID: "b-2", TenantID: "tenant-2", Name: "theirs"},
	)

	req := authedRequest(http.MethodGet, "/api/budgets", nil, "tenant-1")
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var budgets []*budget.Budget
	if err := json.NewDecoder(rr.Body).Decode(&budgets); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(budgets) != 1 || budgets[0].ID != "b-1" {
		t.Errorf("List() = %+v, want only tenant-1's budget", budgets)
	}
}
