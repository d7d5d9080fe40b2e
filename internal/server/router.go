// Package server assembles the HTTP surface: Connect services, health and
// metrics endpoints, and the middleware in front of them.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/mmynk/groupspend/internal/config"
	"github.com/mmynk/groupspend/internal/middleware"
)

// Service is a Connect handler and the path prefix it serves, as returned by
// the apiconnect New*Handler constructors.
type Service struct {
	Path    string
	Handler http.Handler
}

// Pinger reports whether a dependency is healthy.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams holds what NewRouter needs.
type RouterParams struct {
	Config   *config.Config
	Logger   *slog.Logger
	Services []Service
	Metrics  http.Handler
	Health   Pinger
}

// NewRouter constructs the chi router.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        p.Config.IsProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !p.Config.IsProduction(),
	})

	r.Use(
		chimw.RealIP,
		chimw.RequestID,
		chimw.Recoverer,
		requestLogger(p.Logger),
		secureMiddleware.Handler,
		corsMiddleware(p.Config.CORSOrigin),
		httprate.Limit(p.Config.RateLimitPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)),
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if p.Health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := p.Health.Ping(ctx); err != nil {
				p.Logger.Error("Health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", p.Metrics)
	}

	for _, svc := range p.Services {
		r.Handle(strings.TrimSuffix(svc.Path, "/")+"/*", svc.Handler)
	}

	return r
}

// requestLogger logs all incoming requests
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"request_id", chimw.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
			w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, "+middleware.SplitReasonHeader)
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
