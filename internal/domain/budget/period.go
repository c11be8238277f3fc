package budget

import "time"

// Status thresholds as percentages of the budget amount
const (
	warningPct  = 80.0
	exceededPct = 100.0
)

// PeriodBounds computes the inclusive [start, end] date range the budget
// applies to, given a reference date. Monthly covers the reference date's
// calendar month, quarterly its calendar quarter, anything else the calendar
// year.
func PeriodBounds(period string, now time.Time) (time.Time, time.Time) {
	y, m, _ := now.Date()
	loc := now.Location()

	switch period {
	case PeriodMonthly:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
		return start, end
	case PeriodQuarterly:
		qm := time.Month((int(m)-1)/3*3 + 1)
		start := time.Date(y, qm, 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 3, 0).AddDate(0, 0, -1)
		return start, end
	default:
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end := time.Date(y, time.December, 31, 0, 0, 0, 0, loc)
		return start, end
	}
}

// SpendPct returns spend as a percentage of amount, or 0 when the budget
// amount is not positive.
func SpendPct(spend, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	return spend / amount * 100
}

// StatusForPct maps a spend percentage to a budget status
func StatusForPct(pct float64) string {
	switch {
	case pct >= exceededPct:
		return StatusExceeded
	case pct >= warningPct:
		return StatusWarning
	default:
		return StatusActive
	}
}
