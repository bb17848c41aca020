// Package policy holds the portfolio business rules: the status state machine,
// the risk classifier, team capacity limits and the deletion guard.
//
// Every function here is pure. Callers run these checks before touching storage
// or the network, so a rejection never leaves partial state behind.
package policy

import (
	"errors"
	"fmt"

	"planejao/internal/domain/entities"
)

var (
	ErrInvalidStatus           = errors.New("invalid project status")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
	ErrProjectNotDeletable     = errors.New("project status does not allow deletion")
)

// statusOrder is the forward lifecycle. CANCELADO is intentionally absent.
var statusOrder = []entities.ProjectStatus{
	entities.ProjectStatusEmAnalise,
	entities.ProjectStatusAnaliseRealizada,
	entities.ProjectStatusAnaliseAprovada,
	entities.ProjectStatusIniciado,
	entities.ProjectStatusPlanejado,
	entities.ProjectStatusEmAndamento,
	entities.ProjectStatusEncerrado,
}

var protectedStatuses = map[entities.ProjectStatus]struct{}{
	entities.ProjectStatusIniciado:    {},
	entities.ProjectStatusEmAndamento: {},
	entities.ProjectStatusEncerrado:   {},
}

func statusIndex(s entities.ProjectStatus) int {
	for i, v := range statusOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// CanChangeStatus decides whether a project may move from current to target.
//
// Any status may be cancelled, a cancelled project never moves again, and otherwise
// the target must not come before current in the forward order. Staying in place
// and skipping ahead are both allowed.
func CanChangeStatus(current, target entities.ProjectStatus) bool {
	if target == entities.ProjectStatusCancelado {
		return true
	}
	if current == entities.ProjectStatusCancelado {
		return false
	}

	ci, ti := statusIndex(current), statusIndex(target)
	if ci < 0 || ti < 0 {
		return false
	}
	return ti >= ci
}

// ValidateStatusChange is CanChangeStatus with an error describing the rejection.
func ValidateStatusChange(current, target entities.ProjectStatus) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	if !CanChangeStatus(current, target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current, target)
	}
	return nil
}

// CanDeleteProject is false for started, in-progress and closed projects.
func CanDeleteProject(status entities.ProjectStatus) bool {
	_, protected := protectedStatuses[status]
	return !protected
}
