package interfaces

import (
	"context"
	"planejao/internal/domain/entities"
)

// IMemberRepository abstracts persistence for Member.
//
// ActiveProjects is never persisted; implementations leave it at zero.

type IMemberRepository interface {
	Create(ctx context.Context, m entities.Member) (entities.Member, error)
	GetByID(ctx context.Context, id string) (entities.Member, error)
	List(ctx context.Context) ([]entities.Member, error)
	ListByRole(ctx context.Context, role entities.MemberRole) ([]entities.Member, error)
}
