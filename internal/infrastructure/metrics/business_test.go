package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBusinessMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterBusinessMetrics(reg)

	RecordStatusTransition("EM_ANALISE", "ENCERRADO", TransitionAccepted)
	RecordStatusTransition("CANCELADO", "EM_ANALISE", TransitionRejected)
	RecordStatusTransition("CANCELADO", "EM_ANALISE", TransitionRejected)
	RecordProjectCreated("alto")
	RecordProjectDeleted()
	RecordMemberAssignment(AssignmentAdded)

	assert.Equal(t, 2.0, testutil.ToFloat64(statusTransitionsTotal.WithLabelValues("CANCELADO", "EM_ANALISE", TransitionRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(projectsCreatedTotal.WithLabelValues("alto")))
	assert.Equal(t, 1.0, testutil.ToFloat64(projectsDeletedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(memberAssignmentsTotal.WithLabelValues(AssignmentAdded)))
}
