package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"planejao/internal/domain/entities"
	"planejao/internal/infrastructure/logging"
	"planejao/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrInvalidMemberID   = errors.New("invalid member id")
	ErrInvalidMemberName = errors.New("invalid member name")
	ErrInvalidMemberRole = errors.New("invalid member role")
)

// IMemberUseCase exposes the member read service (plus creation).
type IMemberUseCase interface {
	Create(ctx context.Context, name string, role entities.MemberRole) (entities.Member, error)
	GetByID(ctx context.Context, id string) (entities.Member, error)
	List(ctx context.Context) ([]entities.Member, error)
	ListByRole(ctx context.Context, role entities.MemberRole) ([]entities.Member, error)
}

type MemberUseCase struct {
	repo     interfaces.IMemberRepository
	projects interfaces.IProjectRepository
}

var _ IMemberUseCase = (*MemberUseCase)(nil)

func NewMemberUseCase(repo interfaces.IMemberRepository, projects interfaces.IProjectRepository) *MemberUseCase {
	return &MemberUseCase{repo: repo, projects: projects}
}

func (u *MemberUseCase) Create(ctx context.Context, name string, role entities.MemberRole) (entities.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Member{}, ErrInvalidMemberName
	}
	role = entities.MemberRole(strings.ToLower(strings.TrimSpace(string(role))))
	if !role.IsValid() {
		return entities.Member{}, ErrInvalidMemberRole
	}

	m := entities.Member{
		ID:        uuid.NewString(),
		Name:      name,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	created, err := u.repo.Create(ctx, m)
	if err != nil {
		return entities.Member{}, err
	}
	logging.Logger.Infof("[member][usecase] created member_id=%s role=%s", created.ID, created.Role)
	return created, nil
}

func (u *MemberUseCase) GetByID(ctx context.Context, id string) (entities.Member, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Member{}, ErrInvalidMemberID
	}

	m, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Member{}, err
	}
	if m.ID == "" {
		return entities.Member{}, ErrMemberNotFound
	}

	counts, err := u.projects.ActiveAssignments(ctx)
	if err != nil {
		return entities.Member{}, err
	}
	m.ActiveProjects = counts[m.ID]
	return m, nil
}

func (u *MemberUseCase) List(ctx context.Context) ([]entities.Member, error) {
	members, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return u.withActiveProjects(ctx, members)
}

func (u *MemberUseCase) ListByRole(ctx context.Context, role entities.MemberRole) ([]entities.Member, error) {
	role = entities.MemberRole(strings.ToLower(strings.TrimSpace(string(role))))
	if !role.IsValid() {
		return nil, ErrInvalidMemberRole
	}

	members, err := u.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return u.withActiveProjects(ctx, members)
}

func (u *MemberUseCase) withActiveProjects(ctx context.Context, members []entities.Member) ([]entities.Member, error) {
	if len(members) == 0 {
		return []entities.Member{}, nil
	}
	counts, err := u.projects.ActiveAssignments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].ActiveProjects = counts[members[i].ID]
	}
	return members, nil
}
