package security

import (
	"net/http"
	"strings"
)

// CORSConfig controls cross-origin access to the API.
type CORSConfig struct {
	// AllowedOrigin is "*" or a comma-separated list of exact origins.
	AllowedOrigin string
	Methods       []string
	Headers       []string
	MaxAge        string
}

func DefaultCORSConfig(allowedOrigin string) CORSConfig {
	return CORSConfig{
		AllowedOrigin: allowedOrigin,
		Methods:       []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		Headers:       []string{"Content-Type", "X-Request-ID"},
		MaxAge:        "600",
	}
}

// CORS answers preflight requests with 204 and decorates every response
// from an allowed origin.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	allowAll := strings.TrimSpace(cfg.AllowedOrigin) == "*" || strings.TrimSpace(cfg.AllowedOrigin) == ""
	allowed := map[string]bool{}
	for _, o := range strings.Split(cfg.AllowedOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}
	methods := strings.Join(cfg.Methods, ", ")
	headers := strings.Join(cfg.Headers, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()
			switch {
			case allowAll:
				h.Set("Access-Control-Allow-Origin", "*")
			case origin != "" && allowed[origin]:
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Expose-Headers", "X-Request-ID")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				if cfg.MaxAge != "" {
					h.Set("Access-Control-Max-Age", cfg.MaxAge)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
