package interfaces

import (
	"context"
	"planejao/internal/domain/entities"
)

// ProjectFilter narrows a project listing. Zero values mean "no filter".
type ProjectFilter struct {
	Status entities.ProjectStatus
}

// IProjectRepository abstracts persistence for Project.
//
// Lookups that miss return a zero Project (empty ID) and a nil error; the use case
// decides whether that is a not-found condition.

type IProjectRepository interface {
	Create(ctx context.Context, p entities.Project) (entities.Project, error)
	GetByID(ctx context.Context, id string) (entities.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]entities.Project, error)
	Update(ctx context.Context, p entities.Project) (entities.Project, error)
	Delete(ctx context.Context, id string) (bool, error)
	// ActiveAssignments counts, per member id, the team slots held on projects that
	// are neither closed nor cancelled.
	ActiveAssignments(ctx context.Context) (map[string]int, error)
}
