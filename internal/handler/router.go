package handler

import (
	"net/http"

	"github.com/boddenberg/taxcalc-bff-go/internal/infra/observability"
	"github.com/boddenberg/taxcalc-bff-go/internal/render"
	"github.com/boddenberg/taxcalc-bff-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
// Page routes answer HTMX requests with HTML fragments and everything else
// with JSON; /v1 routes always answer JSON.
func NewRouter(
	calcs *service.Calculations,
	renderer *render.Renderer,
	deps []Dependency,
	metrics *observability.Metrics,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler(deps, logger))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- Page ---
	r.Get("/", pageHandler(calcs, renderer, logger))
	r.Post("/panels/{panelID}/calculate", calculateHandler(calcs, renderer, logger, true))
	r.Post("/panels/{panelID}/visibility", visibilityHandler(calcs, logger))
	r.Post("/fields/amount", amountHandler(calcs, renderer, metrics, logger))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Get("/panels", panelsHandler(calcs))
		r.Post("/panels/{panelID}/calculate", calculateHandler(calcs, renderer, logger, false))
		r.Get("/metrics/calculations", calculationMetricsHandler(calcs))
	})

	return r
}
