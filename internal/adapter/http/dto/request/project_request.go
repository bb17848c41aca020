package request

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"planejao/internal/domain/entities"
	"planejao/internal/domain/policy"
	"planejao/internal/usecase"
)

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// CreateProjectRequest is the body of POST /v1/projects. Status and risk are
// never accepted from the client.
type CreateProjectRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	StartDate      string   `json:"start_date"`
	PlannedEndDate string   `json:"planned_end_date"`
	ActualEndDate  *string  `json:"actual_end_date,omitempty"`
	Budget         float64  `json:"budget"`
	ManagerID      string   `json:"manager_id"`
	MemberIDs      []string `json:"member_ids"`
}

func (r CreateProjectRequest) ToDraft() (policy.Draft, error) {
	start, err := parseOptionalDate("start_date", r.StartDate)
	if err != nil {
		return policy.Draft{}, err
	}
	plannedEnd, err := parseOptionalDate("planned_end_date", r.PlannedEndDate)
	if err != nil {
		return policy.Draft{}, err
	}
	actualEnd, err := parseDatePtr("actual_end_date", r.ActualEndDate)
	if err != nil {
		return policy.Draft{}, err
	}

	return policy.Draft{
		Name:           r.Name,
		Description:    r.Description,
		StartDate:      start,
		PlannedEndDate: plannedEnd,
		ActualEndDate:  actualEnd,
		Budget:         r.Budget,
		ManagerID:      r.ManagerID,
		MemberIDs:      r.MemberIDs,
	}, nil
}

// NewCreateProjectRequest builds the wire payload for a draft.
func NewCreateProjectRequest(d policy.Draft) CreateProjectRequest {
	r := CreateProjectRequest{
		Name:           d.Name,
		Description:    d.Description,
		StartDate:      FormatDate(d.StartDate),
		PlannedEndDate: FormatDate(d.PlannedEndDate),
		Budget:         d.Budget,
		ManagerID:      d.ManagerID,
		MemberIDs:      d.MemberIDs,
	}
	if d.ActualEndDate != nil {
		s := FormatDate(*d.ActualEndDate)
		r.ActualEndDate = &s
	}
	return r
}

// UpdateProjectRequest is the body of PUT /v1/projects/:id. Absent fields keep
// their stored value.
type UpdateProjectRequest struct {
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	StartDate      *string  `json:"start_date,omitempty"`
	PlannedEndDate *string  `json:"planned_end_date,omitempty"`
	ActualEndDate  *string  `json:"actual_end_date,omitempty"`
	Budget         *float64 `json:"budget,omitempty"`
	ManagerID      *string  `json:"manager_id,omitempty"`
}

func (r UpdateProjectRequest) ToInput() (usecase.UpdateProjectInput, error) {
	in := usecase.UpdateProjectInput{
		Name:        r.Name,
		Description: r.Description,
		Budget:      r.Budget,
		ManagerID:   r.ManagerID,
	}

	var err error
	if in.StartDate, err = parseDatePtr("start_date", r.StartDate); err != nil {
		return usecase.UpdateProjectInput{}, err
	}
	if in.PlannedEndDate, err = parseDatePtr("planned_end_date", r.PlannedEndDate); err != nil {
		return usecase.UpdateProjectInput{}, err
	}
	if in.ActualEndDate, err = parseDatePtr("actual_end_date", r.ActualEndDate); err != nil {
		return usecase.UpdateProjectInput{}, err
	}
	return in, nil
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r ChangeStatusRequest) ResolveStatus() entities.ProjectStatus {
	return entities.ProjectStatus(strings.ToUpper(strings.TrimSpace(r.Status)))
}

// ListProjectsRequest binds the query string of GET /v1/projects.
type ListProjectsRequest struct {
	Page   int    `form:"page"`
	Size   int    `form:"size"`
	Status string `form:"status"`
	Search string `form:"search"`
}

func (r ListProjectsRequest) ToQuery() usecase.ListProjectsQuery {
	return usecase.ListProjectsQuery{
		Page:   r.Page,
		Size:   r.Size,
		Status: entities.ProjectStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
		Search: r.Search,
	}
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// ParseDate reads a YYYY-MM-DD date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// parseOptionalDate leaves blank dates zero so the draft rules can report them.
func parseOptionalDate(field, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

func parseDatePtr(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &t, nil
}
