package repository

import (
	"testing"
	"time"

	"planejao/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestProjectItemMapping(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	p := entities.Project{
		ID:             "p1",
		Name:           "ERP",
		Description:    "Migração",
		StartDate:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PlannedEndDate: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		ActualEndDate:  &end,
		Budget:         150000.5,
		Status:         entities.ProjectStatusEncerrado,
		Risk:           entities.RiskMedio,
		ManagerID:      "g1",
		MemberIDs:      []string{"m1", "m2"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	it := toProjectItem(p)
	if it.StartDate != "2024-01-15" || it.ActualEndDate != "2024-04-10" || it.Budget != "150000.5" {
		t.Fatalf("unexpected item: %+v", it)
	}

	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, ok := av["member_ids"].(*types.AttributeValueMemberL); !ok {
		t.Fatalf("expected member_ids stored as a list, got %T", av["member_ids"])
	}

	back := fromProjectItem(it)
	if !back.StartDate.Equal(p.StartDate) || back.ActualEndDate == nil || !back.ActualEndDate.Equal(end) {
		t.Fatalf("unexpected dates: %+v", back)
	}
	if back.Budget != p.Budget || back.Status != p.Status || len(back.MemberIDs) != 2 || !back.CreatedAt.Equal(now) {
		t.Fatalf("unexpected project: %+v", back)
	}
}

func TestProjectItemMapping_OptionalFields(t *testing.T) {
	it := toProjectItem(entities.Project{ID: "p1"})
	if it.ActualEndDate != "" || it.MemberIDs == nil {
		t.Fatalf("unexpected item: %+v", it)
	}

	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, ok := av["actual_end_date"]; ok {
		t.Fatalf("expected actual_end_date to be omitted")
	}
	if fromProjectItem(it).ActualEndDate != nil {
		t.Fatalf("expected nil actual end date")
	}
}

func TestMemberItemMapping(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	m := fromMemberItem(toMemberItem(entities.Member{ID: "m1", Name: "Ana", Role: entities.MemberRoleGerente, ActiveProjects: 2, CreatedAt: now}))
	if m.ID != "m1" || m.Role != entities.MemberRoleGerente || m.ActiveProjects != 0 || !m.CreatedAt.Equal(now) {
		t.Fatalf("unexpected member: %+v", m)
	}
}

func TestMergeNames(t *testing.T) {
	got := mergeNames(map[string]string{"#a": "a"}, map[string]string{"#id": "id"})
	if len(got) != 2 || got["#a"] != "a" || got["#id"] != "id" {
		t.Fatalf("unexpected names: %v", got)
	}
	if len(mergeNames(nil, map[string]string{"#id": "id"})) != 1 {
		t.Fatalf("expected b when a is empty")
	}
}
