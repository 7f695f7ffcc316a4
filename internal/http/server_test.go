package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contracting/internal/config"
	"contracting/internal/core"
	"contracting/internal/dashboard"
	"contracting/internal/metrics"
	"contracting/internal/services"
	"contracting/internal/store"
	"contracting/internal/store/memory"
)

func newTestServer(t *testing.T, st store.Store, mutate func(*config.Config)) *Server {
	t.Helper()
	if st == nil {
		st = memory.New()
	}
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	m := metrics.New()
	srv := NewServer(cfg, Deps{
		Resources: services.New(st, nil, nil, m),
		Dashboard: dashboard.NewService(st, nil, m),
		Metrics:   m,
	})
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.RemoteAddr = "192.0.2.10:5000"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeJSON[MessageBody](t, rec).Message
}

func TestRootAndProbes(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := do(t, srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, core.HealthMessage, message(t, rec))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := do(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec = do(t, srv, http.MethodGet, "/api/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, core.MsgRouteNotFound, message(t, rec))

	rec = do(t, srv, http.MethodPut, "/api/clients", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientAndProjectFlow(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := do(t, srv, http.MethodPost, "/api/clients", `{"name":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, core.MsgClientRequired, message(t, rec))

	rec = do(t, srv, http.MethodPost, "/api/clients", `{"name":"شركة","email":"a@b.c"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	client := decodeJSON[core.Client](t, rec)
	assert.Equal(t, int64(1), client.ID)

	rec = do(t, srv, http.MethodPost, "/api/projects", `{"code":"P-1","name":"Tower","clientId":1,"progress":150}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	project := decodeJSON[core.Project](t, rec)
	assert.Equal(t, 100, project.Progress)
	assert.Equal(t, core.ProjectPlanned, project.Status)

	rec = do(t, srv, http.MethodPost, "/api/projects", `{"code":"P-1","name":"Again","clientId":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, core.MsgDuplicateCode, message(t, rec))

	rec = do(t, srv, http.MethodPost, "/api/projects", `{"code":"P-2","name":"Lost","clientId":7}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, core.MsgClientNotFound, message(t, rec))

	rec = do(t, srv, http.MethodGet, "/api/projects/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeJSON[core.ProjectView](t, rec)
	require.NotNil(t, view.Client)
	assert.Equal(t, "شركة", view.Client.Name)

	for _, path := range []string{"/api/projects/99", "/api/projects/abc"} {
		rec = do(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, core.MsgProjectMissing, message(t, rec))
	}

	rec = do(t, srv, http.MethodPatch, "/api/projects/1", `{"progress":-5,"status":"ON_HOLD"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	project = decodeJSON[core.Project](t, rec)
	assert.Equal(t, 0, project.Progress)
	assert.Equal(t, core.ProjectOnHold, project.Status)
	assert.Equal(t, "Tower", project.Name)

	rec = do(t, srv, http.MethodPatch, "/api/projects/1", `{"progress":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, core.MsgInvalidBody, message(t, rec))

	rec = do(t, srv, http.MethodPatch, "/api/projects/5", `{"name":"X"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectDeleteCascadesOverHTTP(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/clients", `{"name":"C"}`).Code)
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/projects", `{"code":"A","name":"A","clientId":1}`).Code)

	rec := do(t, srv, http.MethodPost, "/api/statements", `{"projectId":9,"number":"1","amount":10,"date":"2026-01-01"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, core.MsgStatementProject, message(t, rec))

	rec = do(t, srv, http.MethodPost, "/api/statements", `{"projectId":1,"number":"1","amount":10,"date":"2026-01-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, core.StatementReview, decodeJSON[core.Statement](t, rec).Status)

	rec = do(t, srv, http.MethodGet, "/api/statements", "")
	views := decodeJSON[[]core.StatementView](t, rec)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Project)

	rec = do(t, srv, http.MethodDelete, "/api/projects/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A", decodeJSON[core.Project](t, rec).Code)

	rec = do(t, srv, http.MethodGet, "/api/statements", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, srv, http.MethodDelete, "/api/projects/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOtherResources(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	tests := []struct {
		path     string
		create   string
		patch    string
		missing  string
		required string
	}{
		{"/api/suppliers", `{"companyName":"Steel"}`, `{"balance":10}`, core.MsgSupplierMissing, core.MsgSupplierRequired},
		{"/api/employees", `{"name":"Ali","jobTitle":"Mason","specialization":"Masonry","dailyWage":300}`, `{"status":"INACTIVE"}`, core.MsgEmployeeMissing, core.MsgEmployeeRequired},
		{"/api/equipment", `{"name":"Crane","type":"Lift","dailyCost":900}`, `{"status":"IN_USE"}`, core.MsgEquipmentMissing, core.MsgEquipmentRequired},
		{"/api/payments", `{"type":"OUTGOING","amount":5,"date":"2026-01-01","paymentMethod":"CASH","status":"PENDING"}`, `{"status":"COMPLETED"}`, core.MsgPaymentMissing, core.MsgPaymentRequired},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, tt.path, `{}`)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.required, message(t, rec))

			rec = do(t, srv, http.MethodPost, tt.path, tt.create)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			rec = do(t, srv, http.MethodPatch, tt.path+"/1", tt.patch)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			rec = do(t, srv, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Len(t, decodeJSON[[]map[string]any](t, rec), 1)

			rec = do(t, srv, http.MethodDelete, tt.path+"/1", "")
			require.Equal(t, http.StatusOK, rec.Code)

			rec = do(t, srv, http.MethodPatch, tt.path+"/1", tt.patch)
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, tt.missing, message(t, rec))

			rec = do(t, srv, http.MethodGet, tt.path, "")
			assert.JSONEq(t, `[]`, rec.Body.String())
		})
	}
}

func TestDashboardEndpoints(t *testing.T) {
	st, err := memory.NewSeeded(context.Background(), store.DefaultDataset())
	require.NoError(t, err)
	srv := newTestServer(t, st, nil)

	rec := do(t, srv, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	overview := decodeJSON[dashboard.Overview](t, rec)
	assert.Equal(t, 1, overview.Projects.Total)
	assert.Equal(t, 100000.0, overview.ProfitLoss.Revenue)
	assert.True(t, overview.Samples.Sample)

	rec = do(t, srv, http.MethodGet, "/api/dashboard/labor", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []dashboard.LaborGroup{{Specialization: "عمالة عامة", Count: 1}}, decodeJSON[[]dashboard.LaborGroup](t, rec))

	for _, path := range []string{"/api/dashboard/projects", "/api/dashboard/profit-loss"} {
		assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, path, "").Code, path)
	}

	rec = do(t, srv, http.MethodGet, "/api/dashboard/sample-series", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sample":true`)
}

func TestRateLimitAppliesToWritesOnly(t *testing.T) {
	srv := newTestServer(t, nil, func(c *config.Config) { c.RateLimitPerMinute = 2 })

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/clients", `{"name":"C"}`).Code)
	}
	rec := do(t, srv, http.MethodPost, "/api/clients", `{"name":"C"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, core.MsgRateLimited, message(t, rec))
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/clients", "").Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/projects/1", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	do(t, srv, http.MethodPost, "/api/clients", `{"name":"C"}`)
	do(t, srv, http.MethodGet, "/api/clients", "")

	rec := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `http_request_duration_seconds_count{method="POST",route="POST /api/clients",status="201"} 1`)
	assert.Contains(t, body, `entity_mutations_total{action="create",entity="client"} 1`)
}
