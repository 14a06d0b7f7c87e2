package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Decision("confirmed")
	m.Decision("confirmed")
	m.Decision("rejected")
	m.SeatsAssigned(3)
	m.SeatsAssigned(0)
	m.Verdict("admitted")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.decisions.WithLabelValues("confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues("rejected")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.seats))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.verdicts.WithLabelValues("admitted")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Login("success")
		m.ApplicationSubmitted()
		m.ObserveHTTP("GET", "/x", "200", 0.1)
		m.AuditFailed()
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ApplicationSubmitted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "exam_admission_applications_submitted_total 1")
}
