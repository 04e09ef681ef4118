package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/soft-m/softm-api/internal/apidocs"
	"github.com/soft-m/softm-api/internal/clients"
	"github.com/soft-m/softm-api/internal/observability"
	"github.com/soft-m/softm-api/internal/platform/httpx"
	"github.com/soft-m/softm-api/jobs"
)

// APIPrefix is where versioned resources are mounted.
const APIPrefix = "/api/v1"

// DocsPrefix is where the documentation UI is mounted.
const DocsPrefix = "/api/docs"

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	DB             Pinger
	ClientsHandler *clients.Handler
	DocsHandler    *apidocs.Handler
	JobsHandler    *jobs.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.NotFound(httpx.NotFoundHandler)
	r.MethodNotAllowed(httpx.MethodNotAllowedHandler)

	r.Get("/healthz", healthz(params.DB, params.Logger))

	r.Route(APIPrefix, func(r chi.Router) {
		if params.ClientsHandler != nil {
			params.ClientsHandler.MountRoutes(r)
		}
		if params.JobsHandler != nil {
			r.Route("/jobs", params.JobsHandler.MountRoutes)
		}
	})
	if params.DocsHandler != nil {
		r.Route(DocsPrefix, params.DocsHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}

func healthz(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				if logger != nil {
					logger.Warn("health check failed", slog.Any("error", err))
				}
				httpx.JSON(w, http.StatusServiceUnavailable, httpx.ErrorBody{
					StatusCode: http.StatusServiceUnavailable,
					Message:    "Database unavailable",
				})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
