package policy

import (
	"errors"
	"strings"
	"time"

	"planejao/internal/domain/entities"
)

var (
	ErrNameRequired           = errors.New("project name is required")
	ErrDescriptionRequired    = errors.New("project description is required")
	ErrInvalidBudget          = errors.New("budget must be greater than zero")
	ErrStartDateRequired      = errors.New("start date is required")
	ErrPlannedEndDateRequired = errors.New("planned end date is required")
	ErrInvalidSchedule        = errors.New("planned end date must be after start date")
	ErrInvalidActualEndDate   = errors.New("actual end date must not be before start date")
	ErrManagerRequired        = errors.New("manager is required")
)

// Draft is a project as submitted for creation, before ids and risk are assigned.
type Draft struct {
	Name           string
	Description    string
	StartDate      time.Time
	PlannedEndDate time.Time
	ActualEndDate  *time.Time
	Budget         float64
	ManagerID      string
	MemberIDs      []string
}

// ValidateDraft runs every field rule and joins all failures, so a form can show
// each problem at once. errors.Is matches any of the joined sentinels.
func ValidateDraft(d Draft) error {
	var errs []error

	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if strings.TrimSpace(d.Description) == "" {
		errs = append(errs, ErrDescriptionRequired)
	}
	if err := ValidateBudget(d.Budget); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateSchedule(d.StartDate, d.PlannedEndDate, d.ActualEndDate); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(d.ManagerID) == "" {
		errs = append(errs, ErrManagerRequired)
	}
	if !ValidateMembersCount(d.MemberIDs) {
		errs = append(errs, ErrMemberCountOutOfRange)
	}

	return errors.Join(errs...)
}

// ValidateBudget rejects zero and negative budgets.
func ValidateBudget(budget float64) error {
	if budget <= 0 {
		return ErrInvalidBudget
	}
	return nil
}

// ValidateSchedule checks the project dates. actualEnd may be nil.
func ValidateSchedule(start, plannedEnd time.Time, actualEnd *time.Time) error {
	if start.IsZero() {
		return ErrStartDateRequired
	}
	if plannedEnd.IsZero() {
		return ErrPlannedEndDateRequired
	}
	if !plannedEnd.After(start) {
		return ErrInvalidSchedule
	}
	if actualEnd != nil && actualEnd.Before(start) {
		return ErrInvalidActualEndDate
	}
	return nil
}

// RecalculateRisk refreshes p.Risk from its budget and dates.
func RecalculateRisk(p *entities.Project) {
	p.Risk = CalculateRisk(p.Budget, p.StartDate, p.PlannedEndDate)
}
