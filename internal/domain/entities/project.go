package entities

import "time"

// ProjectStatus represents a phase of the project lifecycle.
//
// Domain notes:
//   - The forward order is EM_ANALISE -> ANALISE_REALIZADA -> ANALISE_APROVADA -> INICIADO ->
//     PLANEJADO -> EM_ANDAMENTO -> ENCERRADO.
//   - CANCELADO sits outside the order and is terminal.
//   - Wire values are the ones the dashboard already speaks.

type ProjectStatus string

const (
	ProjectStatusEmAnalise        ProjectStatus = "EM_ANALISE"
	ProjectStatusAnaliseRealizada ProjectStatus = "ANALISE_REALIZADA"
	ProjectStatusAnaliseAprovada  ProjectStatus = "ANALISE_APROVADA"
	ProjectStatusIniciado         ProjectStatus = "INICIADO"
	ProjectStatusPlanejado        ProjectStatus = "PLANEJADO"
	ProjectStatusEmAndamento      ProjectStatus = "EM_ANDAMENTO"
	ProjectStatusEncerrado        ProjectStatus = "ENCERRADO"
	ProjectStatusCancelado        ProjectStatus = "CANCELADO"
)

// AllProjectStatuses lists every status in board column order.
var AllProjectStatuses = []ProjectStatus{
	ProjectStatusEmAnalise,
	ProjectStatusAnaliseRealizada,
	ProjectStatusAnaliseAprovada,
	ProjectStatusIniciado,
	ProjectStatusPlanejado,
	ProjectStatusEmAndamento,
	ProjectStatusEncerrado,
	ProjectStatusCancelado,
}

var projectStatusLabels = map[ProjectStatus]string{
	ProjectStatusEmAnalise:        "Em Análise",
	ProjectStatusAnaliseRealizada: "Análise Realizada",
	ProjectStatusAnaliseAprovada:  "Análise Aprovada",
	ProjectStatusIniciado:         "Iniciado",
	ProjectStatusPlanejado:        "Planejado",
	ProjectStatusEmAndamento:      "Em Andamento",
	ProjectStatusEncerrado:        "Encerrado",
	ProjectStatusCancelado:        "Cancelado",
}

// IsValid reports whether s is one of the known statuses.
func (s ProjectStatus) IsValid() bool {
	_, ok := projectStatusLabels[s]
	return ok
}

// Label returns the pt-BR display name, or the raw value for unknown statuses.
func (s ProjectStatus) Label() string {
	if l, ok := projectStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// RiskLevel is the derived risk tier of a project.
type RiskLevel string

const (
	RiskBaixo RiskLevel = "baixo"
	RiskMedio RiskLevel = "medio"
	RiskAlto  RiskLevel = "alto"
)

// Project is the portfolio item tracked on the board.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Risk is never set from input; it is recomputed from Budget, StartDate and
// PlannedEndDate whenever one of them changes.
//
// MemberIDs holds the team (staff only). The manager is referenced separately and
// does not count towards the 1..10 team size.
type Project struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	StartDate      time.Time     `json:"start_date"`
	PlannedEndDate time.Time     `json:"planned_end_date"`
	ActualEndDate  *time.Time    `json:"actual_end_date,omitempty"`
	Budget         float64       `json:"budget"`
	Status         ProjectStatus `json:"status"`
	Risk           RiskLevel     `json:"risk"`
	ManagerID      string        `json:"manager_id"`
	MemberIDs      []string      `json:"member_ids"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// HasMember reports whether memberID is part of the team.
func (p Project) HasMember(memberID string) bool {
	for _, id := range p.MemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}

// IsActiveAssignment reports whether the project still occupies its team members.
// Closed and cancelled projects release their members.
func (p Project) IsActiveAssignment() bool {
	return p.Status != ProjectStatusEncerrado && p.Status != ProjectStatusCancelado
}
