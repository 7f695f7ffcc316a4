package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	m := New()

	m.RecordMutation("project", "create")
	m.RecordMutation("project", "create")
	m.RecordMutation("payment", "delete")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EntityMutations.WithLabelValues("project", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntityMutations.WithLabelValues("payment", "delete")))

	m.RecordPublish(nil)
	m.RecordPublish(errors.New("closed"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("failed")))

	m.IncRateLimited()
	m.IncSuspicious()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SuspiciousRequests))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.RecordHTTPRequest(http.MethodGet, "GET /api/projects", http.StatusOK, 5*time.Millisecond)
	m.ObserveDashboard(time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `http_request_duration_seconds_count{method="GET",route="GET /api/projects",status="200"} 1`)
	assert.Contains(t, body, "dashboard_compute_duration_seconds_count 1")
	assert.Contains(t, body, "go_goroutines")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordMutation("client", "create")
		m.RecordPublish(nil)
		m.RecordHTTPRequest("GET", "/", 200, time.Second)
		m.ObserveDashboard(time.Second)
		m.IncRateLimited()
		m.IncSuspicious()
	})
	assert.Nil(t, m.Registry())

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
