package budget

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodBounds(t *testing.T) {
	tests := []struct {
		name      string
		period    string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "monthly mid-month",
			period:    PeriodMonthly,
			now:       day(2024, time.March, 15),
			wantStart: day(2024, time.March, 1),
			wantEnd:   day(2024, time.March, 31),
		},
		{
			name:      "monthly leap february",
			period:    PeriodMonthly,
			now:       day(2024, time.February, 15),
			wantStart: day(2024, time.February, 1),
			wantEnd:   day(2024, time.February, 29),
		},
		{
			name:      "monthly non-leap february",
			period:    PeriodMonthly,
			now:       day(2023, time.February, 28),
			wantStart: day(2023, time.February, 1),
			wantEnd:   day(2023, time.February, 28),
		},
		{
			name:      "quarterly first quarter",
			period:    PeriodQuarterly,
			now:       day(2024, time.February, 10),
			wantStart: day(2024, time.January, 1),
			wantEnd:   day(2024, time.March, 31),
		},
		{
			name:      "quarterly last quarter",
			period:    PeriodQuarterly,
			now:       day(2024, time.November, 1),
			wantStart: day(2024, time.October, 1),
			wantEnd:   day(2024, time.December, 31),
		},
		{
			name:      "annual",
			period:    PeriodAnnual,
			now:       day(2024, time.July, 4),
			wantStart: day(2024, time.January, 1),
			wantEnd:   day(2024, time.December, 31),
		},
		{
			name:      "unknown period treated as annual",
			period:    "weekly",
			now:       day(2024, time.July, 4),
			wantStart: day(2024, time.January, 1),
			wantEnd:   day(2024, time.December, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := PeriodBounds(tt.period, tt.now)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestSpendPct(t *testing.T) {
	tests := []struct {
		name   string
		spend  float64
		amount float64
		want   float64
	}{
		{"half spent", 500, 1000, 50},
		{"fully spent", 1000, 1000, 100},
		{"overspent", 1500, 1000, 150},
		{"zero amount", 500, 0, 0},
		{"negative amount", 500, -100, 0},
		{"zero spend", 0, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpendPct(tt.spend, tt.amount); got != tt.want {
				t.Errorf("SpendPct(%v, %v) = %v, want %v", tt.spend, tt.amount, got, tt.want)
			}
		})
	}
}

func TestStatusForPct(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, StatusActive},
		{79.99, StatusActive},
		{80, StatusWarning},
		{99.99, StatusWarning},
		{100, StatusExceeded},
		{150, StatusExceeded},
	}

	for _, tt := range tests {
		if got := StatusForPct(tt.pct); got != tt.want {
			t.Errorf("StatusForPct(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
