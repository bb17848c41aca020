package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"planejao/internal/domain/entities"
	"planejao/internal/domain/policy"
	mock_interfaces "planejao/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

const fixtureYAML = `
members:
  - {id: m1, name: Ana Silva, role: funcionario}
  - {id: g1, name: Carlos Santos, role: Gerente}
projects:
  - id: p1
    name: Portal do Cliente
    description: Portal web
    start_date: "2024-03-01"
    planned_end_date: "2024-05-01"
    budget: 120000
    status: iniciado
    manager_id: g1
    member_ids: [m1]
`

func TestParse(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		f, err := Parse([]byte(fixtureYAML))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.Members) != 2 || len(f.Projects) != 1 || f.Projects[0].MemberIDs[0] != "m1" {
			t.Fatalf("unexpected fixture: %+v", f)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		doc := strings.Replace(fixtureYAML, "status: iniciado", "status: pausado", 1)
		if _, err := Parse([]byte(doc)); err == nil || !strings.Contains(err.Error(), "unknown status") {
			t.Fatalf("expected unknown status error, got %v", err)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		doc := strings.Replace(fixtureYAML, "role: Gerente", "role: diretor", 1)
		if _, err := Parse([]byte(doc)); err == nil || !strings.Contains(err.Error(), "unknown role") {
			t.Fatalf("expected unknown role error, got %v", err)
		}
	})

	t.Run("invalid schedule", func(t *testing.T) {
		doc := strings.Replace(fixtureYAML, `planned_end_date: "2024-05-01"`, `planned_end_date: "2024-02-01"`, 1)
		if _, err := Parse([]byte(doc)); !errors.Is(err, policy.ErrInvalidSchedule) {
			t.Fatalf("expected ErrInvalidSchedule, got %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		if _, err := Parse([]byte("members: [")); err == nil {
			t.Fatalf("expected parse error")
		}
	})
}

func TestLoad_BundledFixture(t *testing.T) {
	f, err := Load(filepath.Join("..", "..", "..", "seeds", "planejao.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Members) == 0 || len(f.Projects) == 0 {
		t.Fatalf("expected bundled fixture to carry data")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestApply(t *testing.T) {
	f, err := Parse([]byte(fixtureYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	projects := mock_interfaces.NewMockIProjectRepository(ctrl)
	members := mock_interfaces.NewMockIMemberRepository(ctrl)

	members.EXPECT().GetByID(gomock.Any(), "m1").Return(entities.Member{ID: "m1"}, nil)
	members.EXPECT().GetByID(gomock.Any(), "g1").Return(entities.Member{}, nil)
	members.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Member{})).DoAndReturn(
		func(_ context.Context, m entities.Member) (entities.Member, error) {
			if m.ID != "g1" || m.Role != entities.MemberRoleGerente || !m.CreatedAt.Equal(now) {
				t.Fatalf("unexpected member: %+v", m)
			}
			return m, nil
		},
	)
	projects.EXPECT().GetByID(gomock.Any(), "p1").Return(entities.Project{}, nil)
	projects.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Project{})).DoAndReturn(
		func(_ context.Context, p entities.Project) (entities.Project, error) {
			if p.Status != entities.ProjectStatusIniciado || p.Risk != entities.RiskMedio || p.ManagerID != "g1" {
				t.Fatalf("unexpected project: %+v", p)
			}
			return p, nil
		},
	)

	res, err := Apply(context.Background(), f, projects, members, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Members != 1 || res.Projects != 1 || res.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestApply_RepositoryFailure(t *testing.T) {
	f, err := Parse([]byte(fixtureYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	members := mock_interfaces.NewMockIMemberRepository(ctrl)
	members.EXPECT().GetByID(gomock.Any(), "m1").Return(entities.Member{}, errors.New("db down"))

	if _, err := Apply(context.Background(), f, nil, members, time.Now()); err == nil {
		t.Fatalf("expected error")
	}
}
