package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncSessionsStarted()
	m.IncSessionsStarted()
	m.AddSessionsExpired(3)
	m.SetActiveSessions(4)
	m.IncPhaseTransition("personal_info", "document_info")
	m.IncValidationFailure("phoneNumber", "cross_field")
	m.IncAttachmentRejection("too_large")
	m.IncSubmission("success")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsStarted))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SessionsExpired))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.ActiveSessions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PhaseTransitions.WithLabelValues("personal_info", "document_info")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("phoneNumber", "cross_field")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AttachmentRejections.WithLabelValues("too_large")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("success")))
}

func TestNewPerRegistry(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
