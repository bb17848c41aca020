package entities

import "time"

// MemberRole is the role tag of a person in the company.

type MemberRole string

const (
	MemberRoleFuncionario  MemberRole = "funcionario"
	MemberRoleGerente      MemberRole = "gerente"
	MemberRoleTerceirizado MemberRole = "terceirizado"
)

// IsValid reports whether r is a known role.
func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleFuncionario, MemberRoleGerente, MemberRoleTerceirizado:
		return true
	}
	return false
}

// Member is a person that can manage or staff projects.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (role-index): role
//
// ActiveProjects is not persisted. It is filled on read from the projects that
// still hold the member on their team.
type Member struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Role           MemberRole `json:"role"`
	ActiveProjects int        `json:"active_projects"`
	CreatedAt      time.Time  `json:"created_at"`
}
