package response

import (
	"time"

	"planejao/internal/adapter/http/dto/request"
	"planejao/internal/domain/entities"
	"planejao/internal/infrastructure/locale"
	"planejao/internal/usecase"
)

type ProjectResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StartDate       string    `json:"start_date"`
	PlannedEndDate  string    `json:"planned_end_date"`
	ActualEndDate   *string   `json:"actual_end_date,omitempty"`
	Budget          float64   `json:"budget"`
	BudgetFormatted string    `json:"budget_formatted"`
	Status          string    `json:"status"`
	StatusLabel     string    `json:"status_label"`
	Risk            string    `json:"risk"`
	ManagerID       string    `json:"manager_id"`
	MemberIDs       []string  `json:"member_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromProject(p entities.Project) ProjectResponse {
	res := ProjectResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		StartDate:       request.FormatDate(p.StartDate),
		PlannedEndDate:  request.FormatDate(p.PlannedEndDate),
		Budget:          p.Budget,
		BudgetFormatted: locale.Currency(p.Budget),
		Status:          string(p.Status),
		StatusLabel:     p.Status.Label(),
		Risk:            string(p.Risk),
		ManagerID:       p.ManagerID,
		MemberIDs:       p.MemberIDs,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if res.MemberIDs == nil {
		res.MemberIDs = []string{}
	}
	if p.ActualEndDate != nil {
		s := request.FormatDate(*p.ActualEndDate)
		res.ActualEndDate = &s
	}
	return res
}

// ToProject converts a decoded response back into the domain entity.
func (r ProjectResponse) ToProject() (entities.Project, error) {
	p := entities.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Budget:      r.Budget,
		Status:      entities.ProjectStatus(r.Status),
		Risk:        entities.RiskLevel(r.Risk),
		ManagerID:   r.ManagerID,
		MemberIDs:   r.MemberIDs,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	var err error
	if r.StartDate != "" {
		if p.StartDate, err = request.ParseDate(r.StartDate); err != nil {
			return entities.Project{}, err
		}
	}
	if r.PlannedEndDate != "" {
		if p.PlannedEndDate, err = request.ParseDate(r.PlannedEndDate); err != nil {
			return entities.Project{}, err
		}
	}
	if r.ActualEndDate != nil && *r.ActualEndDate != "" {
		d, err := request.ParseDate(*r.ActualEndDate)
		if err != nil {
			return entities.Project{}, err
		}
		p.ActualEndDate = &d
	}
	return p, nil
}

type ProjectPageResponse struct {
	Content       []ProjectResponse `json:"content"`
	TotalElements int               `json:"total_elements"`
	TotalPages    int               `json:"total_pages"`
	Size          int               `json:"size"`
	Number        int               `json:"number"`
}

func FromProjectPage(page usecase.ProjectPage) ProjectPageResponse {
	content := make([]ProjectResponse, 0, len(page.Content))
	for _, p := range page.Content {
		content = append(content, FromProject(p))
	}
	return ProjectPageResponse{
		Content:       content,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		Size:          page.Size,
		Number:        page.Number,
	}
}
