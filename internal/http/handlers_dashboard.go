package http

import (
	"context"
	"net/http"
	"time"

	"contracting/internal/dashboard"
	applog "contracting/internal/log"
)

const dashboardTimeout = 7 * time.Second

func (s *Server) dashboardRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/dashboard", view(s, s.dashboard.Overview))
	mux.HandleFunc("GET /api/dashboard/projects", view(s, s.dashboard.ProjectStats))
	mux.HandleFunc("GET /api/dashboard/labor", view(s, s.dashboard.Labor))
	mux.HandleFunc("GET /api/dashboard/profit-loss", view(s, s.dashboard.ProfitLoss))
	mux.HandleFunc("GET /api/dashboard/sample-series", func(w http.ResponseWriter, r *http.Request) {
		OK(dashboard.SampleData()).Write(w)
	})
}

func view[T any](s *Server, fn func(context.Context) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
		defer cancel()

		v, err := fn(ctx)
		if err != nil {
			s.fail(w, r, err, "dashboard", applog.OpRead)
			return
		}
		OK(v).Write(w)
	}
}
