package testutil

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pratik-mahalle/cloudspend/internal/domain/anomaly"
	"github.com/pratik-mahalle/cloudspend/internal/domain/budget"
	"github.com/pratik-mahalle/cloudspend/internal/domain/cost"
	"github.com/pratik-mahalle/cloudspend/internal/domain/forecast"
	"github.com/pratik-mahalle/cloudspend/internal/domain/remediation"
	"github.com/pratik-mahalle/cloudspend/internal/domain/tenant"
)

// MockTenantRepository is a mock implementation of tenant.Repository
type MockTenantRepository struct {
	Tenants   []*tenant.Tenant
	ListError error
}

func NewMockTenantRepository() *MockTenantRepository {
	return &MockTenantRepository{}
}

func (m *MockTenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	m.Tenants = append(m.Tenants, t)
	return nil
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	for _, t := range m.Tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("tenant not found")
}

func (m *MockTenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.Tenants, nil
}

// MockCostRepository is a mock implementation of cost.Repository
type MockCostRepository struct {
	// Series maps tenant ID to its full daily series
	Series      map[string][]cost.Point
	Totals      map[string]float64
	QueryError  error
	PerTenant   map[string]error
	CreateError error
	Entries     []*cost.Entry
}

func NewMockCostRepository() *MockCostRepository {
	return &MockCostRepository{
		Series:    make(map[string][]cost.Point),
		Totals:    make(map[string]float64),
		PerTenant: make(map[string]error),
	}
}

// SetSeries installs a daily series for a tenant ending today
func (m *MockCostRepository) SetSeries(tenantID string, values []float64) {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	points := make([]cost.Point, len(values))
	for i, v := range values {
		points[i] = cost.Point{
			Date:   end.AddDate(0, 0, i-len(values)+1),
			Amount: v,
		}
	}
	m.Series[tenantID] = points
}

func (m *MockCostRepository) CreateEntry(ctx context.Context, e *cost.Entry) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Entries = append(m.Entries, e)
	return nil
}

func (m *MockCostRepository) DailyTotals(ctx context.Context, tenantID string, start, end time.Time) ([]cost.Point, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	if err := m.PerTenant[tenantID]; err != nil {
		return nil, err
	}
	return m.Series[tenantID], nil
}

func (m *MockCostRepository) PeriodTotal(ctx context.Context, tenantID string, start, end time.Time) (float64, error) {
	if m.QueryError != nil {
		return 0, m.QueryError
	}
	if err := m.PerTenant[tenantID]; err != nil {
		return 0, err
	}
	return m.Totals[tenantID], nil
}

// MockAnomalyRepository is a mock implementation of anomaly.Repository
type MockAnomalyRepository struct {
	Anomalies   []*anomaly.Anomaly
	CreateError error
}

func NewMockAnomalyRepository() *MockAnomalyRepository {
	return &MockAnomalyRepository{}
}

func (m *MockAnomalyRepository) CreateBatch(ctx context.Context, anomalies []*anomaly.Anomaly) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Anomalies = append(m.Anomalies, anomalies...)
	return nil
}

func (m *MockAnomalyRepository) ListByTenant(ctx context.Context, tenantID string, limit int) ([]*anomaly.Anomaly, error) {
	var result []*anomaly.Anomaly
	for _, a := range m.Anomalies {
		if a.TenantID == tenantID {
			result = append(result, a)
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockAnomalyRepository) UpdateStatus(ctx context.Context, tenantID, id, status string) error {
	for _, a := range m.Anomalies {
		if a.TenantID == tenantID && a.ID == id {
			a.Status = status
			return nil
		}
	}
	return fmt.Errorf("anomaly not found")
}

func (m *MockAnomalyRepository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var kept []*anomaly.Anomaly
	var removed int64
	for _, a := range m.Anomalies {
		if a.Status == anomaly.StatusResolved && a.DetectedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	m.Anomalies = kept
	return removed, nil
}

// MockForecastRepository is a mock implementation of forecast.Repository
type MockForecastRepository struct {
	Forecasts   []*forecast.Forecast
	CreateError error
}

func NewMockForecastRepository() *MockForecastRepository {
	return &MockForecastRepository{}
}

func (m *MockForecastRepository) Create(ctx context.Context, f *forecast.Forecast) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Forecasts = append(m.Forecasts, f)
	return nil
}

func (m *MockForecastRepository) Latest(ctx context.Context, tenantID string) (*forecast.Forecast, error) {
	var result []*forecast.Forecast
	for _, f := range m.Forecasts {
		if f.TenantID == tenantID {
			result = append(result, f)
		}
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("forecast not found")
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].GeneratedAt.After(result[j].GeneratedAt)
	})
	return result[0], nil
}

func (m *MockForecastRepository) DeleteGeneratedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var kept []*forecast.Forecast
	var removed int64
	for _, f := range m.Forecasts {
		if f.GeneratedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	m.Forecasts = kept
	return removed, nil
}

// MockBudgetRepository is a mock implementation of budget.Repository
type MockBudgetRepository struct {
	Budgets     []*budget.Budget
	UpdateError error
	Updates     map[string]struct {
		Spend  float64
		Status string
	}
}

func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Updates: make(map[string]struct {
			Spend  float64
			Status string
		}),
	}
}

func (m *MockBudgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	m.Budgets = append(m.Budgets, b)
	return nil
}

func (m *MockBudgetRepository) ListActive(ctx context.Context) ([]*budget.Budget, error) {
	return m.Budgets, nil
}

func (m *MockBudgetRepository) ListByTenant(ctx context.Context, tenantID string) ([]*budget.Budget, error) {
	var result []*budget.Budget
	for _, b := range m.Budgets {
		if b.TenantID == tenantID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *MockBudgetRepository) UpdateSpend(ctx context.Context, id string, spend float64, status string) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	for _, b := range m.Budgets {
		if b.ID == id {
			b.CurrentSpend = spend
			b.Status = status
			m.Updates[id] = struct {
				Spend  float64
				Status string
			}{spend, status}
			return nil
		}
	}
	return fmt.Errorf("budget not found")
}

// MockRemediationRepository is a mock implementation of remediation.Repository
type MockRemediationRepository struct {
	Actions     map[string]*remediation.Action
	Rules       []*remediation.AutoApprovalRule
	CreateError error
	RulesError  error
}

func NewMockRemediationRepository() *MockRemediationRepository {
	return &MockRemediationRepository{
		Actions: make(map[string]*remediation.Action),
	}
}

func (m *MockRemediationRepository) CreateAction(ctx context.Context, a *remediation.Action) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	a.CreatedAt = time.Now().UTC()
	m.Actions[a.ID] = a
	return nil
}

func (m *MockRemediationRepository) GetAction(ctx context.Context, tenantID, id string) (*remediation.Action, error) {
	a, ok := m.Actions[id]
	if !ok || a.TenantID != tenantID {
		return nil, fmt.Errorf("action not found")
	}
	return a, nil
}

func (m *MockRemediationRepository) ListActions(ctx context.Context, tenantID string) ([]*remediation.Action, error) {
	var result []*remediation.Action
	for _, a := range m.Actions {
		if a.TenantID == tenantID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockRemediationRepository) ApproveAction(ctx context.Context, tenantID, id, approverID, ruleName string, log []remediation.AuditEntry) (*remediation.Action, error) {
	a, err := m.GetAction(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	a.Status = remediation.StatusApproved
	a.AutoApproved = ruleName != ""
	a.ApprovalRule = ruleName
	a.ApprovedBy = approverID
	a.ApprovedAt = &now
	a.AuditLog = log
	return a, nil
}

func (m *MockRemediationRepository) ActiveRules(ctx context.Context, tenantID string) ([]*remediation.AutoApprovalRule, error) {
	if m.RulesError != nil {
		return nil, m.RulesError
	}
	var result []*remediation.AutoApprovalRule
	for _, r := range m.Rules {
		if r.TenantID == tenantID && r.Enabled {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *MockRemediationRepository) CreateRule(ctx context.Context, r *remediation.AutoApprovalRule) error {
	m.Rules = append(m.Rules, r)
	return nil
}
