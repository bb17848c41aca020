// Package board keeps the Kanban view of the portfolio: one column per status,
// with optimistic moves reconciled against the API.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"planejao/internal/domain/entities"
	"planejao/internal/domain/policy"
	"planejao/internal/infrastructure/logging"
)

var ErrCardNotFound = errors.New("project not on the board")

// Remote is the slice of the API the board needs.
type Remote interface {
	AllProjects(ctx context.Context, status entities.ProjectStatus) ([]entities.Project, error)
	ChangeStatus(ctx context.Context, id string, current, target entities.ProjectStatus) (entities.Project, error)
}

type Column struct {
	Status   entities.ProjectStatus
	Label    string
	Projects []entities.Project
}

// Board is safe for concurrent use. The lock is never held across a remote call.
type Board struct {
	mu       sync.Mutex
	remote   Remote
	notifier Notifier
	projects []entities.Project
}

func New(remote Remote, notifier Notifier) *Board {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Board{remote: remote, notifier: notifier}
}

// Load replaces the local cards with the current server listing.
func (b *Board) Load(ctx context.Context) error {
	projects, err := b.remote.AllProjects(ctx, "")
	if err != nil {
		b.notifier.Error("Erro ao carregar projetos. Tente novamente.", err)
		return err
	}

	b.mu.Lock()
	b.projects = projects
	b.mu.Unlock()

	logging.Logger.Debugf("[board] loaded projects=%d", len(projects))
	return nil
}

// Projects returns a copy of the local cards.
func (b *Board) Projects() []entities.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entities.Project(nil), b.projects...)
}

// Columns groups the cards by status, in lifecycle order, keeping empty columns.
func (b *Board) Columns() []Column {
	b.mu.Lock()
	defer b.mu.Unlock()

	cols := make([]Column, 0, len(entities.AllProjectStatuses))
	for _, s := range entities.AllProjectStatuses {
		col := Column{Status: s, Label: s.Label(), Projects: []entities.Project{}}
		for _, p := range b.projects {
			if p.Status == s {
				col.Projects = append(col.Projects, p)
			}
		}
		cols = append(cols, col)
	}
	return cols
}

// Move drops a card on the target column.
//
// A drop on the current column is a no-op. A transition refused by the status
// rule is reported and nothing changes. Otherwise the card moves at once and the
// API is called; on failure the card goes back to its previous column unless it
// was moved again in the meantime.
func (b *Board) Move(ctx context.Context, projectID string, target entities.ProjectStatus) (entities.Project, error) {
	b.mu.Lock()
	idx := b.indexOf(projectID)
	if idx < 0 {
		b.mu.Unlock()
		return entities.Project{}, fmt.Errorf("%w: %s", ErrCardNotFound, projectID)
	}
	card := b.projects[idx]
	previous := card.Status
	if previous == target {
		b.mu.Unlock()
		return card, nil
	}
	if err := policy.ValidateStatusChange(previous, target); err != nil {
		b.mu.Unlock()
		b.notifier.Error("Mudança de status não permitida pelas regras de negócio", err)
		return card, err
	}
	b.projects[idx].Status = target
	b.mu.Unlock()

	logging.Logger.Debugf("[board] optimistic move project_id=%s from=%s to=%s", projectID, previous, target)

	updated, err := b.remote.ChangeStatus(ctx, projectID, previous, target)

	b.mu.Lock()
	idx = b.indexOf(projectID)
	if err != nil {
		if idx >= 0 && b.projects[idx].Status == target {
			b.projects[idx].Status = previous
		}
		if idx >= 0 {
			card = b.projects[idx]
		}
		b.mu.Unlock()
		b.notifier.Error("Erro ao mover projeto. Tente novamente.", err)
		return card, err
	}
	if idx >= 0 && b.projects[idx].Status == target {
		b.projects[idx] = updated
	}
	b.mu.Unlock()

	b.notifier.Success(fmt.Sprintf("Projeto movido para: %s", target.Label()))
	return updated, nil
}

func (b *Board) indexOf(id string) int {
	for i := range b.projects {
		if b.projects[i].ID == id {
			return i
		}
	}
	return -1
}
