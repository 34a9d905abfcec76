package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cargohub/cargohub/internal/api"
	"github.com/cargohub/cargohub/internal/auth"
	"github.com/cargohub/cargohub/internal/observability"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger   *slog.Logger
	Config   *Config
	Provider *auth.Provider
	API      *api.Handler
	Metrics  *observability.Metrics
}

// NewRouter constructs the chi.Router with the full middleware chain.
// Everything under /api/v1 requires a resolvable API key.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(params.Provider, params.Config.APIKeyHeader))
		params.API.MountRoutes(r)
	})

	return r
}
