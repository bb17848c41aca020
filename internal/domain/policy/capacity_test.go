package policy

import (
	"errors"
	"fmt"
	"testing"

	"planejao/internal/domain/entities"
)

func staff(id string, active int) entities.Member {
	return entities.Member{ID: id, Name: id, Role: entities.MemberRoleFuncionario, ActiveProjects: active}
}

func TestCanAssignMemberToProject(t *testing.T) {
	if CanAssignMemberToProject(staff("m1", 3)) {
		t.Fatalf("expected member with 3 active projects to be rejected")
	}
	if !CanAssignMemberToProject(staff("m1", 2)) {
		t.Fatalf("expected member with 2 active projects to be accepted")
	}
}

func TestValidateMembersCount(t *testing.T) {
	ids := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("m%d", i)
		}
		return out
	}

	if ValidateMembersCount(ids(0)) {
		t.Fatalf("expected empty team to be rejected")
	}
	if ValidateMembersCount(ids(11)) {
		t.Fatalf("expected 11 members to be rejected")
	}
	if !ValidateMembersCount(ids(1)) || !ValidateMembersCount(ids(10)) {
		t.Fatalf("expected 1 and 10 members to be accepted")
	}
}

func TestValidateTeam(t *testing.T) {
	manager := entities.Member{ID: "g1", Role: entities.MemberRoleGerente}

	t.Run("manager role", func(t *testing.T) {
		err := ValidateTeam(staff("x", 0), []entities.Member{staff("m1", 0)}, nil)
		if !errors.Is(err, ErrManagerRoleRequired) {
			t.Fatalf("expected ErrManagerRoleRequired, got %v", err)
		}
	})

	t.Run("empty team", func(t *testing.T) {
		err := ValidateTeam(manager, nil, nil)
		if !errors.Is(err, ErrMemberCountOutOfRange) {
			t.Fatalf("expected ErrMemberCountOutOfRange, got %v", err)
		}
	})

	t.Run("contractor rejected", func(t *testing.T) {
		c := entities.Member{ID: "c1", Role: entities.MemberRoleTerceirizado}
		err := ValidateTeam(manager, []entities.Member{c}, nil)
		if !errors.Is(err, ErrStaffRoleRequired) {
			t.Fatalf("expected ErrStaffRoleRequired, got %v", err)
		}
	})

	t.Run("manager in team rejected", func(t *testing.T) {
		err := ValidateTeam(manager, []entities.Member{manager}, nil)
		if !errors.Is(err, ErrStaffRoleRequired) {
			t.Fatalf("expected ErrStaffRoleRequired, got %v", err)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		err := ValidateTeam(manager, []entities.Member{staff("m1", 0), staff("m1", 0)}, nil)
		if !errors.Is(err, ErrDuplicateMember) {
			t.Fatalf("expected ErrDuplicateMember, got %v", err)
		}
	})

	t.Run("at capacity", func(t *testing.T) {
		err := ValidateTeam(manager, []entities.Member{staff("m1", 3)}, nil)
		if !errors.Is(err, ErrMemberAtCapacity) {
			t.Fatalf("expected ErrMemberAtCapacity, got %v", err)
		}
	})

	t.Run("at capacity but already assigned", func(t *testing.T) {
		err := ValidateTeam(manager, []entities.Member{staff("m1", 3)}, []string{"m1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("valid", func(t *testing.T) {
		err := ValidateTeam(manager, []entities.Member{staff("m1", 0), staff("m2", 2)}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
