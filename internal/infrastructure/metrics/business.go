package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Package-level business counters. They stay nil until RegisterBusinessMetrics
// runs, and the record helpers skip nil collectors so use cases can be exercised
// without a registry.
var (
	statusTransitionsTotal *prometheus.CounterVec
	projectsCreatedTotal   *prometheus.CounterVec
	projectsDeletedTotal   prometheus.Counter
	memberAssignmentsTotal *prometheus.CounterVec
)

// Transition results.
const (
	TransitionAccepted = "accepted"
	TransitionRejected = "rejected"
)

// Member assignment actions.
const (
	AssignmentAdded   = "added"
	AssignmentRemoved = "removed"
)

// RegisterBusinessMetrics registers the portfolio counters on reg. A nil reg is a no-op.
func RegisterBusinessMetrics(reg *prometheus.Registry) {
	if reg == nil {
		return
	}

	statusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planejao_status_transitions_total",
			Help: "Project status change requests by origin, target and result.",
		},
		[]string{"from", "to", "result"},
	)
	projectsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planejao_projects_created_total",
			Help: "Projects created, by computed risk.",
		},
		[]string{"risk"},
	)
	projectsDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "planejao_projects_deleted_total",
			Help: "Projects deleted.",
		},
	)
	memberAssignmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planejao_member_assignments_total",
			Help: "Team membership changes by action.",
		},
		[]string{"action"},
	)

	reg.MustRegister(statusTransitionsTotal, projectsCreatedTotal, projectsDeletedTotal, memberAssignmentsTotal)
}

// RecordStatusTransition counts a status change request.
func RecordStatusTransition(from, to, result string) {
	if statusTransitionsTotal == nil {
		return
	}
	statusTransitionsTotal.WithLabelValues(from, to, result).Inc()
}

// RecordProjectCreated counts a created project.
func RecordProjectCreated(risk string) {
	if projectsCreatedTotal == nil {
		return
	}
	projectsCreatedTotal.WithLabelValues(risk).Inc()
}

// RecordProjectDeleted counts a deleted project.
func RecordProjectDeleted() {
	if projectsDeletedTotal == nil {
		return
	}
	projectsDeletedTotal.Inc()
}

// RecordMemberAssignment counts a team membership change.
func RecordMemberAssignment(action string) {
	if memberAssignmentsTotal == nil {
		return
	}
	memberAssignmentsTotal.WithLabelValues(action).Inc()
}
