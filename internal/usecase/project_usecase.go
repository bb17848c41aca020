package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"planejao/internal/domain/entities"
	"planejao/internal/domain/policy"
	"planejao/internal/infrastructure/logging"
	"planejao/internal/infrastructure/metrics"
	"planejao/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrInvalidProjectID      = errors.New("invalid project id")
	ErrManagerNotFound       = errors.New("manager not found")
	ErrInvalidPage           = errors.New("invalid page")
	ErrMemberAlreadyAssigned = errors.New("member already assigned to project")
	ErrMemberNotAssigned     = errors.New("member not assigned to project")
)

// ListProjectsQuery selects one page of projects. Page is zero-based.
type ListProjectsQuery struct {
	Page   int
	Size   int
	Status entities.ProjectStatus
	Search string
}

// ProjectPage is one page of a project listing.
type ProjectPage struct {
	Content       []entities.Project
	TotalElements int
	TotalPages    int
	Size          int
	Number        int
}

// UpdateProjectInput carries a partial update. Nil fields are left unchanged.
// Team membership and status have their own operations.
type UpdateProjectInput struct {
	Name           *string
	Description    *string
	StartDate      *time.Time
	PlannedEndDate *time.Time
	ActualEndDate  *time.Time
	Budget         *float64
	ManagerID      *string
}

// IProjectUseCase exposes the project read/write operations behind the board,
// the project forms and the detail view.
type IProjectUseCase interface {
	List(ctx context.Context, q ListProjectsQuery) (ProjectPage, error)
	GetByID(ctx context.Context, id string) (entities.Project, error)
	Create(ctx context.Context, draft policy.Draft) (entities.Project, error)
	Update(ctx context.Context, id string, in UpdateProjectInput) (entities.Project, error)
	Delete(ctx context.Context, id string) error
	ChangeStatus(ctx context.Context, id string, status entities.ProjectStatus) (entities.Project, error)
	AddMember(ctx context.Context, projectID, memberID string) (entities.Project, error)
	RemoveMember(ctx context.Context, projectID, memberID string) (entities.Project, error)
}

type ProjectUseCase struct {
	repo    interfaces.IProjectRepository
	members interfaces.IMemberRepository
	now     func() time.Time
}

var _ IProjectUseCase = (*ProjectUseCase)(nil)

func NewProjectUseCase(repo interfaces.IProjectRepository, members interfaces.IMemberRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, members: members, now: time.Now}
}

func (u *ProjectUseCase) List(ctx context.Context, q ListProjectsQuery) (ProjectPage, error) {
	if q.Page < 0 {
		return ProjectPage{}, ErrInvalidPage
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	if q.Status != "" && !q.Status.IsValid() {
		return ProjectPage{}, fmt.Errorf("%w: %q", policy.ErrInvalidStatus, q.Status)
	}

	all, err := u.repo.List(ctx, interfaces.ProjectFilter{Status: q.Status})
	if err != nil {
		return ProjectPage{}, err
	}

	matched := all[:0:0]
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range all {
		if search == "" ||
			strings.Contains(strings.ToLower(p.Name), search) ||
			strings.Contains(strings.ToLower(p.Description), search) {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].StartDate.Equal(matched[j].StartDate) {
			return matched[i].StartDate.Before(matched[j].StartDate)
		}
		return matched[i].Name < matched[j].Name
	})

	page := ProjectPage{
		Content:       []entities.Project{},
		TotalElements: len(matched),
		TotalPages:    (len(matched) + q.Size - 1) / q.Size,
		Size:          q.Size,
		Number:        q.Page,
	}
	start := q.Page * q.Size
	if start < len(matched) {
		end := start + q.Size
		if end > len(matched) {
			end = len(matched)
		}
		page.Content = matched[start:end]
	}
	return page, nil
}

func (u *ProjectUseCase) GetByID(ctx context.Context, id string) (entities.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Project{}, ErrInvalidProjectID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Project{}, err
	}
	if p.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (u *ProjectUseCase) Create(ctx context.Context, draft policy.Draft) (entities.Project, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Description = strings.TrimSpace(draft.Description)
	draft.ManagerID = strings.TrimSpace(draft.ManagerID)
	if err := policy.ValidateDraft(draft); err != nil {
		return entities.Project{}, err
	}

	manager, team, err := u.resolveTeam(ctx, draft.ManagerID, draft.MemberIDs)
	if err != nil {
		return entities.Project{}, err
	}
	if err := policy.ValidateTeam(manager, team, nil); err != nil {
		return entities.Project{}, err
	}

	now := u.now().UTC()
	p := entities.Project{
		ID:             uuid.NewString(),
		Name:           draft.Name,
		Description:    draft.Description,
		StartDate:      dateOnly(draft.StartDate),
		PlannedEndDate: dateOnly(draft.PlannedEndDate),
		ActualEndDate:  dateOnlyPtr(draft.ActualEndDate),
		Budget:         draft.Budget,
		Status:         entities.ProjectStatusEmAnalise,
		ManagerID:      manager.ID,
		MemberIDs:      teamIDs(team),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	policy.RecalculateRisk(&p)

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		return entities.Project{}, err
	}
	metrics.RecordProjectCreated(string(created.Risk))
	logging.Logger.Infof("[project][usecase] created project_id=%s risk=%s members=%d", created.ID, created.Risk, len(created.MemberIDs))
	return created, nil
}

func (u *ProjectUseCase) Update(ctx context.Context, id string, in UpdateProjectInput) (entities.Project, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Project{}, err
	}

	next := current
	if in.Name != nil {
		next.Name = strings.TrimSpace(*in.Name)
		if next.Name == "" {
			return entities.Project{}, policy.ErrNameRequired
		}
	}
	if in.Description != nil {
		next.Description = strings.TrimSpace(*in.Description)
		if next.Description == "" {
			return entities.Project{}, policy.ErrDescriptionRequired
		}
	}
	if in.Budget != nil {
		if err := policy.ValidateBudget(*in.Budget); err != nil {
			return entities.Project{}, err
		}
		next.Budget = *in.Budget
	}
	if in.StartDate != nil {
		next.StartDate = dateOnly(*in.StartDate)
	}
	if in.PlannedEndDate != nil {
		next.PlannedEndDate = dateOnly(*in.PlannedEndDate)
	}
	if in.ActualEndDate != nil {
		next.ActualEndDate = dateOnlyPtr(in.ActualEndDate)
	}
	if err := policy.ValidateSchedule(next.StartDate, next.PlannedEndDate, next.ActualEndDate); err != nil {
		return entities.Project{}, err
	}

	if in.ManagerID != nil && strings.TrimSpace(*in.ManagerID) != current.ManagerID {
		manager, err := u.getMember(ctx, strings.TrimSpace(*in.ManagerID), ErrManagerNotFound)
		if err != nil {
			return entities.Project{}, err
		}
		if err := policy.ValidateManager(manager); err != nil {
			return entities.Project{}, err
		}
		next.ManagerID = manager.ID
	}

	policy.RecalculateRisk(&next)
	next.UpdatedAt = u.now().UTC()

	updated, err := u.repo.Update(ctx, next)
	if err != nil {
		return entities.Project{}, err
	}
	if updated.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	logging.Logger.Infof("[project][usecase] updated project_id=%s risk=%s", updated.ID, updated.Risk)
	return updated, nil
}

func (u *ProjectUseCase) Delete(ctx context.Context, id string) error {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDeleteProject(current.Status) {
		return fmt.Errorf("%w: %s", policy.ErrProjectNotDeletable, current.Status)
	}

	deleted, err := u.repo.Delete(ctx, current.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProjectNotFound
	}
	metrics.RecordProjectDeleted()
	logging.Logger.Infof("[project][usecase] deleted project_id=%s status=%s", current.ID, current.Status)
	return nil
}

func (u *ProjectUseCase) ChangeStatus(ctx context.Context, id string, status entities.ProjectStatus) (entities.Project, error) {
	if !status.IsValid() {
		return entities.Project{}, fmt.Errorf("%w: %q", policy.ErrInvalidStatus, status)
	}

	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Project{}, err
	}
	if current.Status == status {
		return current, nil
	}
	if err := policy.ValidateStatusChange(current.Status, status); err != nil {
		metrics.RecordStatusTransition(string(current.Status), string(status), metrics.TransitionRejected)
		logging.Logger.Warnf("[project][usecase] status change rejected project_id=%s from=%s to=%s", current.ID, current.Status, status)
		return entities.Project{}, err
	}

	next := current
	next.Status = status
	now := u.now().UTC()
	if status == entities.ProjectStatusEncerrado && next.ActualEndDate == nil {
		end := dateOnly(now)
		// a project closed before its start date ends on the start date
		if end.Before(next.StartDate) {
			end = next.StartDate
		}
		next.ActualEndDate = &end
	}
	next.UpdatedAt = now

	updated, err := u.repo.Update(ctx, next)
	if err != nil {
		return entities.Project{}, err
	}
	if updated.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	metrics.RecordStatusTransition(string(current.Status), string(status), metrics.TransitionAccepted)
	logging.Logger.Infof("[project][usecase] status changed project_id=%s from=%s to=%s", updated.ID, current.Status, updated.Status)
	return updated, nil
}

func (u *ProjectUseCase) AddMember(ctx context.Context, projectID, memberID string) (entities.Project, error) {
	project, err := u.GetByID(ctx, projectID)
	if err != nil {
		return entities.Project{}, err
	}
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return entities.Project{}, ErrInvalidMemberID
	}
	if project.HasMember(memberID) {
		return entities.Project{}, ErrMemberAlreadyAssigned
	}
	if len(project.MemberIDs)+1 > policy.MaxTeamSize {
		return entities.Project{}, fmt.Errorf("%w: got %d", policy.ErrMemberCountOutOfRange, len(project.MemberIDs)+1)
	}

	member, err := u.getMember(ctx, memberID, ErrMemberNotFound)
	if err != nil {
		return entities.Project{}, err
	}
	counts, err := u.repo.ActiveAssignments(ctx)
	if err != nil {
		return entities.Project{}, err
	}
	member.ActiveProjects = counts[member.ID]
	if err := policy.ValidateTeamMember(member, false); err != nil {
		return entities.Project{}, err
	}

	next := project
	next.MemberIDs = append(append([]string(nil), project.MemberIDs...), member.ID)
	next.UpdatedAt = u.now().UTC()

	updated, err := u.repo.Update(ctx, next)
	if err != nil {
		return entities.Project{}, err
	}
	if updated.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	metrics.RecordMemberAssignment(metrics.AssignmentAdded)
	logging.Logger.Infof("[project][usecase] member added project_id=%s member_id=%s", updated.ID, member.ID)
	return updated, nil
}

func (u *ProjectUseCase) RemoveMember(ctx context.Context, projectID, memberID string) (entities.Project, error) {
	project, err := u.GetByID(ctx, projectID)
	if err != nil {
		return entities.Project{}, err
	}
	memberID = strings.TrimSpace(memberID)
	if !project.HasMember(memberID) {
		return entities.Project{}, ErrMemberNotAssigned
	}
	if len(project.MemberIDs)-1 < policy.MinTeamSize {
		return entities.Project{}, fmt.Errorf("%w: got %d", policy.ErrMemberCountOutOfRange, len(project.MemberIDs)-1)
	}

	next := project
	next.MemberIDs = make([]string, 0, len(project.MemberIDs)-1)
	for _, id := range project.MemberIDs {
		if id != memberID {
			next.MemberIDs = append(next.MemberIDs, id)
		}
	}
	next.UpdatedAt = u.now().UTC()

	updated, err := u.repo.Update(ctx, next)
	if err != nil {
		return entities.Project{}, err
	}
	if updated.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	metrics.RecordMemberAssignment(metrics.AssignmentRemoved)
	logging.Logger.Infof("[project][usecase] member removed project_id=%s member_id=%s", updated.ID, memberID)
	return updated, nil
}

// resolveTeam loads the manager and team members and fills their active project counts.
func (u *ProjectUseCase) resolveTeam(ctx context.Context, managerID string, memberIDs []string) (entities.Member, []entities.Member, error) {
	manager, err := u.getMember(ctx, managerID, ErrManagerNotFound)
	if err != nil {
		return entities.Member{}, nil, err
	}

	team := make([]entities.Member, 0, len(memberIDs))
	for _, id := range memberIDs {
		m, err := u.getMember(ctx, strings.TrimSpace(id), ErrMemberNotFound)
		if err != nil {
			return entities.Member{}, nil, err
		}
		team = append(team, m)
	}

	counts, err := u.repo.ActiveAssignments(ctx)
	if err != nil {
		return entities.Member{}, nil, err
	}
	for i := range team {
		team[i].ActiveProjects = counts[team[i].ID]
	}
	return manager, team, nil
}

// teamIDs returns the stored ids of the resolved team, in submission order.
func teamIDs(team []entities.Member) []string {
	ids := make([]string, 0, len(team))
	for _, m := range team {
		ids = append(ids, m.ID)
	}
	return ids
}

func (u *ProjectUseCase) getMember(ctx context.Context, id string, notFound error) (entities.Member, error) {
	if id == "" {
		return entities.Member{}, ErrInvalidMemberID
	}
	m, err := u.members.GetByID(ctx, id)
	if err != nil {
		return entities.Member{}, err
	}
	if m.ID == "" {
		return entities.Member{}, fmt.Errorf("%w: %s", notFound, id)
	}
	return m, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dateOnly(*t)
	return &d
}
