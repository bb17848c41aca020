package policy

import (
	"time"

	"planejao/internal/domain/entities"
)

const (
	HighRiskBudget = 500_000.0
	LowRiskBudget  = 100_000.0
	HighRiskMonths = 6
	LowRiskMonths  = 3
)

// CalculateRisk classifies a project from its budget and schedule length.
//
// The high check runs first, so an expensive short project is still high risk.
func CalculateRisk(budget float64, startDate, dueDate time.Time) entities.RiskLevel {
	months := WholeMonthsBetween(startDate, dueDate)

	if budget > HighRiskBudget || months > HighRiskMonths {
		return entities.RiskAlto
	}
	if budget <= LowRiskBudget && months <= LowRiskMonths {
		return entities.RiskBaixo
	}
	return entities.RiskMedio
}

// WholeMonthsBetween counts full calendar months from start to end.
//
// The end is walked back by the calendar month difference; when that lands before
// start the last month is not full. A February end on day 28 or later is walked
// back as day 30, and an end on the last day of its month completes a single
// month (Jan 31 -> Feb 29 is one month, Jan 31 -> Apr 30 is two).
// The result is negative when end is before start.
func WholeMonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return -WholeMonthsBetween(end, start)
	}

	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	from := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)

	months := (ey-sy)*12 + int(em) - int(sm)
	if months < 1 {
		return 0
	}

	if em == time.February && ed > 27 {
		to = time.Date(ey, em, 30, 0, 0, 0, 0, time.UTC)
	}
	back := time.Date(to.Year(), to.Month()-time.Month(months), to.Day(), 0, 0, 0, 0, time.UTC)
	lastNotFull := back.Before(from)
	if lastNotFull && months == 1 && isLastDayOfMonth(end) && end.After(start) {
		lastNotFull = false
	}
	if lastNotFull {
		months--
	}
	return months
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}
