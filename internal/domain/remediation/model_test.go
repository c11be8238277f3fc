package remediation

import "testing"

func fptr(v float64) *float64 { return &v }

func TestRuleConditions_Matches(t *testing.T) {
	tests := []struct {
		name       string
		conditions RuleConditions
		action     Action
		want       bool
	}{
		{
			name:       "empty conditions match anything",
			conditions: RuleConditions{},
			action:     Action{Type: "terminate", EstimatedSavings: 9999, Risk: RiskHigh},
			want:       true,
		},
		{
			name:       "savings under cap",
			conditions: RuleConditions{MaxSavings: fptr(100)},
			action:     Action{EstimatedSavings: 50},
			want:       true,
		},
		{
			name:       "savings at cap",
			conditions: RuleConditions{MaxSavings: fptr(100)},
			action:     Action{EstimatedSavings: 100},
			want:       true,
		},
		{
			name:       "savings over cap",
			conditions: RuleConditions{MaxSavings: fptr(100)},
			action:     Action{EstimatedSavings: 150},
			want:       false,
		},
		{
			name:       "type allowed",
			conditions: RuleConditions{AllowedTypes: []string{"resize", "terminate"}},
			action:     Action{Type: "resize"},
			want:       true,
		},
		{
			name:       "type not allowed",
			conditions: RuleConditions{AllowedTypes: []string{"resize"}},
			action:     Action{Type: "terminate"},
			want:       false,
		},
		{
			name:       "risk allowed",
			conditions: RuleConditions{AllowedRisks: []string{RiskLow, RiskMedium}},
			action:     Action{Risk: RiskMedium},
			want:       true,
		},
		{
			name:       "risk not allowed",
			conditions: RuleConditions{AllowedRisks: []string{RiskLow}},
			action:     Action{Risk: RiskHigh},
			want:       false,
		},
		{
			name: "all clauses satisfied",
			conditions: RuleConditions{
				MaxSavings:   fptr(500),
				AllowedTypes: []string{"resize"},
				AllowedRisks: []string{RiskLow},
			},
			action: Action{Type: "resize", EstimatedSavings: 200, Risk: RiskLow},
			want:   true,
		},
		{
			name: "one failing clause rejects",
			conditions: RuleConditions{
				MaxSavings:   fptr(500),
				AllowedTypes: []string{"resize"},
				AllowedRisks: []string{RiskLow},
			},
			action: Action{Type: "resize", EstimatedSavings: 200, Risk: RiskHigh},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conditions.Matches(&tt.action); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
