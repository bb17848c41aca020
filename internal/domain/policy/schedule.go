package policy

import (
	"time"

	"planejao/internal/domain/entities"
)

// IsProjectDelayed reports whether a project missed its planned end date.
//
// A closed project is late when it finished after the plan; a running project
// (started, planned or in progress) is late once today passes the plan.
func IsProjectDelayed(p entities.Project, today time.Time) bool {
	switch p.Status {
	case entities.ProjectStatusEncerrado:
		return p.ActualEndDate != nil && p.ActualEndDate.After(p.PlannedEndDate)
	case entities.ProjectStatusIniciado, entities.ProjectStatusPlanejado, entities.ProjectStatusEmAndamento:
		return today.After(p.PlannedEndDate)
	}
	return false
}

// IsRunning reports whether a project counts as active in the portfolio KPIs.
func IsRunning(status entities.ProjectStatus) bool {
	switch status {
	case entities.ProjectStatusIniciado, entities.ProjectStatusPlanejado, entities.ProjectStatusEmAndamento:
		return true
	}
	return false
}

// DurationDays is the number of whole days between two dates.
func DurationDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
