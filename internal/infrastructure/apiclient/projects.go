package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"planejao/internal/adapter/http/dto/request"
	"planejao/internal/adapter/http/dto/response"
	"planejao/internal/domain/entities"
	"planejao/internal/domain/policy"
	"planejao/internal/usecase"
)

// ListOptions filters GET /projects. Zero values are left to the server defaults.
type ListOptions struct {
	Page   int
	Size   int
	Status entities.ProjectStatus
	Search string
}

func (c *Client) ListProjects(ctx context.Context, opts ListOptions) (usecase.ProjectPage, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Size > 0 {
		q.Set("size", strconv.Itoa(opts.Size))
	}
	if opts.Status != "" {
		q.Set("status", string(opts.Status))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}

	var res response.ProjectPageResponse
	if err := c.do(ctx, http.MethodGet, "/projects", q, nil, &res); err != nil {
		return usecase.ProjectPage{}, err
	}

	page := usecase.ProjectPage{
		Content:       make([]entities.Project, 0, len(res.Content)),
		TotalElements: res.TotalElements,
		TotalPages:    res.TotalPages,
		Size:          res.Size,
		Number:        res.Number,
	}
	for _, item := range res.Content {
		p, err := item.ToProject()
		if err != nil {
			return usecase.ProjectPage{}, fmt.Errorf("project %s: %w", item.ID, err)
		}
		page.Content = append(page.Content, p)
	}
	return page, nil
}

// AllProjects walks every page of the listing.
func (c *Client) AllProjects(ctx context.Context, status entities.ProjectStatus) ([]entities.Project, error) {
	var out []entities.Project
	for page := 0; ; page++ {
		res, err := c.ListProjects(ctx, ListOptions{Page: page, Size: usecase.MaxPageSize, Status: status})
		if err != nil {
			return nil, err
		}
		out = append(out, res.Content...)
		if page+1 >= res.TotalPages || len(res.Content) == 0 {
			return out, nil
		}
	}
}

func (c *Client) GetProject(ctx context.Context, id string) (entities.Project, error) {
	return c.projectCall(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil)
}

// CreateProject validates the draft locally and sends nothing when it fails.
func (c *Client) CreateProject(ctx context.Context, d policy.Draft) (entities.Project, error) {
	if err := policy.ValidateDraft(d); err != nil {
		return entities.Project{}, err
	}
	return c.projectCall(ctx, http.MethodPost, "/projects", request.NewCreateProjectRequest(d))
}

func (c *Client) UpdateProject(ctx context.Context, id string, in usecase.UpdateProjectInput) (entities.Project, error) {
	body := request.UpdateProjectRequest{
		Name:        in.Name,
		Description: in.Description,
		Budget:      in.Budget,
		ManagerID:   in.ManagerID,
	}
	body.StartDate = formatDatePtr(in.StartDate)
	body.PlannedEndDate = formatDatePtr(in.PlannedEndDate)
	body.ActualEndDate = formatDatePtr(in.ActualEndDate)
	return c.projectCall(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), body)
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil, nil)
}

// ChangeStatus checks the transition from current locally before calling the API.
func (c *Client) ChangeStatus(ctx context.Context, id string, current, target entities.ProjectStatus) (entities.Project, error) {
	if err := policy.ValidateStatusChange(current, target); err != nil {
		return entities.Project{}, err
	}
	return c.projectCall(ctx, http.MethodPatch, "/projects/"+url.PathEscape(id)+"/status",
		request.ChangeStatusRequest{Status: string(target)})
}

func (c *Client) AddMember(ctx context.Context, projectID, memberID string) (entities.Project, error) {
	return c.projectCall(ctx, http.MethodPost, memberPath(projectID, memberID), nil)
}

func (c *Client) RemoveMember(ctx context.Context, projectID, memberID string) (entities.Project, error) {
	return c.projectCall(ctx, http.MethodDelete, memberPath(projectID, memberID), nil)
}

func (c *Client) Report(ctx context.Context) (entities.PortfolioReport, error) {
	var res response.ReportResponse
	if err := c.do(ctx, http.MethodGet, "/projects/report", nil, nil, &res); err != nil {
		return entities.PortfolioReport{}, err
	}
	return res.ToReport(), nil
}

func (c *Client) projectCall(ctx context.Context, method, path string, body any) (entities.Project, error) {
	var res response.ProjectResponse
	if err := c.do(ctx, method, path, nil, body, &res); err != nil {
		return entities.Project{}, err
	}
	return res.ToProject()
}

func memberPath(projectID, memberID string) string {
	return "/projects/" + url.PathEscape(projectID) + "/members/" + url.PathEscape(memberID)
}
