package board

import (
	"context"
	"errors"
	"sync"
	"testing"

	"planejao/internal/domain/entities"
	"planejao/internal/domain/policy"
)

type fakeRemote struct {
	projects []entities.Project
	listErr  error

	// onChange runs inside ChangeStatus, before the answer is returned.
	onChange  func()
	changeErr error
	calls     []entities.ProjectStatus
}

func (f *fakeRemote) AllProjects(_ context.Context, _ entities.ProjectStatus) ([]entities.Project, error) {
	return f.projects, f.listErr
}

func (f *fakeRemote) ChangeStatus(_ context.Context, id string, _, target entities.ProjectStatus) (entities.Project, error) {
	f.calls = append(f.calls, target)
	if f.onChange != nil {
		f.onChange()
	}
	if f.changeErr != nil {
		return entities.Project{}, f.changeErr
	}
	return entities.Project{ID: id, Name: "server copy", Status: target}, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string, _ error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func loadedBoard(t *testing.T, remote *fakeRemote) (*Board, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	b := New(remote, n)
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return b, n
}

func statusOf(b *Board, id string) entities.ProjectStatus {
	for _, p := range b.Projects() {
		if p.ID == id {
			return p.Status
		}
	}
	return ""
}

func TestColumns(t *testing.T) {
	b, _ := loadedBoard(t, &fakeRemote{projects: []entities.Project{
		{ID: "p1", Status: entities.ProjectStatusPlanejado},
		{ID: "p2", Status: entities.ProjectStatusEmAnalise},
		{ID: "p3", Status: entities.ProjectStatusPlanejado},
	}})

	cols := b.Columns()
	if len(cols) != len(entities.AllProjectStatuses) {
		t.Fatalf("expected one column per status, got %d", len(cols))
	}
	if cols[0].Status != entities.ProjectStatusEmAnalise || cols[0].Label != "Em Análise" || len(cols[0].Projects) != 1 {
		t.Fatalf("unexpected first column: %+v", cols[0])
	}
	planned := cols[4]
	if planned.Status != entities.ProjectStatusPlanejado || len(planned.Projects) != 2 || planned.Projects[0].ID != "p1" {
		t.Fatalf("unexpected planned column: %+v", planned)
	}
	if cols[7].Projects == nil || len(cols[7].Projects) != 0 {
		t.Fatalf("expected empty cancelled column, got %+v", cols[7])
	}
}

func TestLoad_Error(t *testing.T) {
	n := &recordingNotifier{}
	b := New(&fakeRemote{listErr: errors.New("offline")}, n)
	if err := b.Load(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if len(n.errors) != 1 {
		t.Fatalf("expected error notification")
	}
}

func TestMove(t *testing.T) {
	t.Run("same column is a no-op", func(t *testing.T) {
		remote := &fakeRemote{projects: []entities.Project{{ID: "p1", Status: entities.ProjectStatusPlanejado}}}
		b, n := loadedBoard(t, remote)

		if _, err := b.Move(context.Background(), "p1", entities.ProjectStatusPlanejado); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(remote.calls) != 0 || len(n.successes)+len(n.errors) != 0 {
			t.Fatalf("expected no call and no notification")
		}
	})

	t.Run("unknown card", func(t *testing.T) {
		b, _ := loadedBoard(t, &fakeRemote{})
		if _, err := b.Move(context.Background(), "nope", entities.ProjectStatusPlanejado); !errors.Is(err, ErrCardNotFound) {
			t.Fatalf("expected ErrCardNotFound, got %v", err)
		}
	})

	t.Run("backward move is rejected locally", func(t *testing.T) {
		remote := &fakeRemote{projects: []entities.Project{{ID: "p1", Status: entities.ProjectStatusEmAndamento}}}
		b, n := loadedBoard(t, remote)

		_, err := b.Move(context.Background(), "p1", entities.ProjectStatusPlanejado)
		if !errors.Is(err, policy.ErrInvalidStatusTransition) {
			t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
		}
		if len(remote.calls) != 0 || statusOf(b, "p1") != entities.ProjectStatusEmAndamento || len(n.errors) != 1 {
			t.Fatalf("expected untouched card and one error notification")
		}
	})

	t.Run("cancelled is absorbing", func(t *testing.T) {
		remote := &fakeRemote{projects: []entities.Project{{ID: "p1", Status: entities.ProjectStatusCancelado}}}
		b, _ := loadedBoard(t, remote)

		if _, err := b.Move(context.Background(), "p1", entities.ProjectStatusEmAnalise); !errors.Is(err, policy.ErrInvalidStatusTransition) {
			t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
		}
	})

	t.Run("accepted move adopts the server copy", func(t *testing.T) {
		remote := &fakeRemote{projects: []entities.Project{{ID: "p1", Name: "local", Status: entities.ProjectStatusPlanejado}}}
		b, n := loadedBoard(t, remote)

		p, err := b.Move(context.Background(), "p1", entities.ProjectStatusEmAndamento)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != "server copy" || b.Projects()[0].Name != "server copy" || statusOf(b, "p1") != entities.ProjectStatusEmAndamento {
			t.Fatalf("expected server copy on the board, got %+v", b.Projects())
		}
		if len(n.successes) != 1 || n.successes[0] != "Projeto movido para: Em Andamento" {
			t.Fatalf("unexpected notifications: %+v", n.successes)
		}
	})

	t.Run("skip to closed is optimistic and reverts on remote failure", func(t *testing.T) {
		remote := &fakeRemote{projects: []entities.Project{{ID: "p1", Status: entities.ProjectStatusEmAnalise}}, changeErr: errors.New("500")}
		b, n := loadedBoard(t, remote)

		var during entities.ProjectStatus
		remote.onChange = func() { during = statusOf(b, "p1") }

		p, err := b.Move(context.Background(), "p1", entities.ProjectStatusEncerrado)
		if err == nil {
			t.Fatalf("expected error")
		}
		if during != entities.ProjectStatusEncerrado {
			t.Fatalf("expected optimistic ENCERRADO during the call, got %s", during)
		}
		if len(remote.calls) != 1 || remote.calls[0] != entities.ProjectStatusEncerrado {
			t.Fatalf("expected remote call with ENCERRADO, got %v", remote.calls)
		}
		if statusOf(b, "p1") != entities.ProjectStatusEmAnalise || p.Status != entities.ProjectStatusEmAnalise {
			t.Fatalf("expected revert to EM_ANALISE, got %s", statusOf(b, "p1"))
		}
		if len(n.errors) != 1 || n.errors[0] != "Erro ao mover projeto. Tente novamente." {
			t.Fatalf("unexpected notifications: %+v", n.errors)
		}
	})

	t.Run("failure does not revert a newer move", func(t *testing.T) {
		remote := &fakeRemote{projects: []entities.Project{{ID: "p1", Status: entities.ProjectStatusPlanejado}}, changeErr: errors.New("timeout")}
		b, _ := loadedBoard(t, remote)

		remote.onChange = func() {
			b.mu.Lock()
			b.projects[0].Status = entities.ProjectStatusCancelado
			b.mu.Unlock()
		}

		if _, err := b.Move(context.Background(), "p1", entities.ProjectStatusEmAndamento); err == nil {
			t.Fatalf("expected error")
		}
		if statusOf(b, "p1") != entities.ProjectStatusCancelado {
			t.Fatalf("expected newer status to survive, got %s", statusOf(b, "p1"))
		}
	})
}

func TestLogNotifier(t *testing.T) {
	n := LogNotifier{}
	n.Success("ok")
	n.Error("falhou", errors.New("boom"))
}
