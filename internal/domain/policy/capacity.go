package policy

import (
	"errors"
	"fmt"

	"planejao/internal/domain/entities"
)

const (
	MaxActiveProjectsPerMember = 3
	MinTeamSize                = 1
	MaxTeamSize                = 10
)

var (
	ErrMemberCountOutOfRange = errors.New("project must have between 1 and 10 members")
	ErrMemberAtCapacity      = errors.New("member already has the maximum number of active projects")
	ErrManagerRoleRequired   = errors.New("manager must have the gerente role")
	ErrStaffRoleRequired     = errors.New("team members must have the funcionario role")
	ErrDuplicateMember       = errors.New("member listed more than once")
)

// CanAssignMemberToProject reports whether the member is below the active project cap.
func CanAssignMemberToProject(member entities.Member) bool {
	return member.ActiveProjects < MaxActiveProjectsPerMember
}

// ValidateMembersCount reports whether a team size is within 1..10.
func ValidateMembersCount(memberIDs []string) bool {
	return len(memberIDs) >= MinTeamSize && len(memberIDs) <= MaxTeamSize
}

// ValidateManager checks the manager slot of a project.
func ValidateManager(manager entities.Member) error {
	if manager.Role != entities.MemberRoleGerente {
		return fmt.Errorf("%w: %s is %s", ErrManagerRoleRequired, manager.ID, manager.Role)
	}
	return nil
}

// ValidateTeamMember checks a single team member. alreadyAssigned is true when the
// member was on this same project before the edit, which exempts them from the cap.
func ValidateTeamMember(member entities.Member, alreadyAssigned bool) error {
	if member.Role != entities.MemberRoleFuncionario {
		return fmt.Errorf("%w: %s is %s", ErrStaffRoleRequired, member.ID, member.Role)
	}
	if !alreadyAssigned && !CanAssignMemberToProject(member) {
		return fmt.Errorf("%w: %s has %d", ErrMemberAtCapacity, member.ID, member.ActiveProjects)
	}
	return nil
}

// ValidateTeam checks the manager and the whole team of a project.
//
// alreadyAssigned lists the member ids the project held before the edit (empty on creation).
func ValidateTeam(manager entities.Member, members []entities.Member, alreadyAssigned []string) error {
	if err := ValidateManager(manager); err != nil {
		return err
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	if !ValidateMembersCount(ids) {
		return fmt.Errorf("%w: got %d", ErrMemberCountOutOfRange, len(ids))
	}

	before := make(map[string]struct{}, len(alreadyAssigned))
	for _, id := range alreadyAssigned {
		before[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateMember, m.ID)
		}
		seen[m.ID] = struct{}{}

		_, assigned := before[m.ID]
		if err := ValidateTeamMember(m, assigned); err != nil {
			return err
		}
	}
	return nil
}
