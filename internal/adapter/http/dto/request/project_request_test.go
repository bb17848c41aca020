package request

import (
	"errors"
	"testing"
	"time"

	"planejao/internal/domain/entities"
)

func TestCreateProjectRequest_ToDraft(t *testing.T) {
	t.Run("parses dates", func(t *testing.T) {
		end := "2024-04-10"
		r := CreateProjectRequest{
			Name:           "ERP",
			StartDate:      "2024-01-15",
			PlannedEndDate: " 2024-04-15 ",
			ActualEndDate:  &end,
			Budget:         10,
			ManagerID:      "g1",
			MemberIDs:      []string{"m1"},
		}

		d, err := r.ToDraft()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !d.StartDate.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected start: %v", d.StartDate)
		}
		if d.ActualEndDate == nil || FormatDate(*d.ActualEndDate) != "2024-04-10" {
			t.Fatalf("unexpected actual end: %v", d.ActualEndDate)
		}
	})

	t.Run("blank dates stay zero", func(t *testing.T) {
		d, err := CreateProjectRequest{}.ToDraft()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !d.StartDate.IsZero() || !d.PlannedEndDate.IsZero() || d.ActualEndDate != nil {
			t.Fatalf("expected zero dates: %+v", d)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := CreateProjectRequest{StartDate: "15/01/2024"}.ToDraft()
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
	})
}

func TestNewCreateProjectRequest(t *testing.T) {
	d, err := CreateProjectRequest{StartDate: "2024-01-15", PlannedEndDate: "2024-04-15", Name: "ERP"}.ToDraft()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := NewCreateProjectRequest(d)
	if r.StartDate != "2024-01-15" || r.PlannedEndDate != "2024-04-15" || r.ActualEndDate != nil || r.Name != "ERP" {
		t.Fatalf("unexpected request: %+v", r)
	}
}

func TestUpdateProjectRequest_ToInput(t *testing.T) {
	name := "Novo nome"
	start := "2024-02-01"
	in, err := UpdateProjectRequest{Name: &name, StartDate: &start}.ToInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Name == nil || *in.Name != name || in.StartDate == nil || in.PlannedEndDate != nil || in.Budget != nil {
		t.Fatalf("unexpected input: %+v", in)
	}

	bad := "2024-13-01"
	if _, err := (UpdateProjectRequest{PlannedEndDate: &bad}).ToInput(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestStatusAndQueryNormalization(t *testing.T) {
	if got := (ChangeStatusRequest{Status: " em_andamento "}).ResolveStatus(); got != entities.ProjectStatusEmAndamento {
		t.Fatalf("unexpected status: %s", got)
	}
	q := ListProjectsRequest{Page: 1, Size: 5, Status: "planejado", Search: "erp"}.ToQuery()
	if q.Status != entities.ProjectStatusPlanejado || q.Page != 1 || q.Size != 5 || q.Search != "erp" {
		t.Fatalf("unexpected query: %+v", q)
	}
	if got := (CreateMemberRequest{Role: " Gerente"}).ResolveRole(); got != entities.MemberRoleGerente {
		t.Fatalf("unexpected role: %s", got)
	}
}
