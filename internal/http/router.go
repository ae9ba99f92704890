package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"georef/internal/geo"
	"georef/internal/platform/health"
	"georef/internal/platform/metrics"
	ratelimit "georef/internal/ratelimit/middleware"
	"georef/internal/registry"
	"georef/pkg/platform/httputil"
	"georef/pkg/platform/middleware/accesslog"
	"georef/pkg/platform/middleware/metadata"
	"georef/pkg/platform/middleware/recovery"
	"georef/pkg/platform/middleware/requestid"
	"georef/pkg/platform/middleware/requesttime"
)

// Deps is everything the router needs from the composition root.
type Deps struct {
	Resolver    registry.Resolver
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	RateLimiter *ratelimit.Middleware
	Checks      []health.Check

	// Proxies may set X-Forwarded-For and X-Real-IP. Nil trusts nobody.
	Proxies metadata.TrustedProxies
}

// NewRouter builds the HTTP surface: the banner, probes, metrics and the
// geographic API. It fails if any controller cannot be resolved.
func NewRouter(d Deps) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata(d.Proxies))
	r.Use(accesslog.Middleware(d.Logger))
	r.Use(recovery.Middleware(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteMessage(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteMessage(w, http.StatusOK, "georef api")
	})
	r.Get("/healthz", health.Live)
	r.Get("/readyz", health.Ready(d.Checks...))
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(d.Gatherer))
	}

	var err error
	r.Group(func(api chi.Router) {
		if d.RateLimiter != nil {
			api.Use(d.RateLimiter.RateLimit)
		}
		err = geo.Routes(d.Resolver, api)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
