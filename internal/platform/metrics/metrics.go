package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the applicant intake metrics.
type Metrics struct {
	SessionsStarted      prometheus.Counter
	SessionsExpired      prometheus.Counter
	ActiveSessions       prometheus.Gauge
	PhaseTransitions     *prometheus.CounterVec
	ValidationFailures   *prometheus.CounterVec
	AttachmentRejections *prometheus.CounterVec
	Submissions          *prometheus.CounterVec
}

// New registers the metrics with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SessionsStarted: f.NewCounter(prometheus.CounterOpts{
			Name: "insurtech_applicant_sessions_started_total",
			Help: "Total number of applicant form sessions started",
		}),
		SessionsExpired: f.NewCounter(prometheus.CounterOpts{
			Name: "insurtech_applicant_sessions_expired_total",
			Help: "Total number of idle applicant form sessions removed",
		}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "insurtech_applicant_sessions_active",
			Help: "Number of applicant form sessions held in memory",
		}),
		PhaseTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "insurtech_applicant_phase_transitions_total",
			Help: "Workflow phase transitions",
		}, []string{"from", "to"}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "insurtech_applicant_validation_failures_total",
			Help: "Validation failures recorded on guarded transitions",
		}, []string{"field", "kind"}),
		AttachmentRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "insurtech_applicant_attachment_rejections_total",
			Help: "Attachments rejected by size or type constraints",
		}, []string{"reason"}),
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "insurtech_applicant_submissions_total",
			Help: "Submission handoffs by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncSessionsStarted() {
	m.SessionsStarted.Inc()
}

// AddSessionsExpired counts sessions removed by the idle sweeper.
func (m *Metrics) AddSessionsExpired(n int) {
	m.SessionsExpired.Add(float64(n))
}

func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}

func (m *Metrics) IncPhaseTransition(from, to string) {
	m.PhaseTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) IncValidationFailure(field, kind string) {
	m.ValidationFailures.WithLabelValues(field, kind).Inc()
}

func (m *Metrics) IncAttachmentRejection(reason string) {
	m.AttachmentRejections.WithLabelValues(reason).Inc()
}

// IncSubmission records a handoff outcome: success or failure.
func (m *Metrics) IncSubmission(outcome string) {
	m.Submissions.WithLabelValues(outcome).Inc()
}
