// Package httptransport assembles the root router. Feature handlers mount
// themselves; this package only owns the shared middleware chain and the
// operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"domainfolio/internal/platform/metrics"
	"domainfolio/internal/platform/middleware"
)

// Mounter is anything that can register routes on the router.
type Mounter interface {
	Register(r chi.Router)
}

// NewRouter wires the middleware chain, operational endpoints, and all
// feature handlers.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, handlers ...Mounter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	if m != nil {
		r.Use(middleware.Latency(m))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}
