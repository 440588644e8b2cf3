package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/boddenberg/taxcalc-bff-go/internal/domain"
	"github.com/boddenberg/taxcalc-bff-go/internal/port"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const readinessTimeout = 2 * time.Second

// Dependency is a backend checked by /readyz. The service is unhealthy when
// a critical dependency is down and degraded when any other one is.
type Dependency struct {
	Name     string
	Pinger   port.Pinger
	Critical bool
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   "healthy",
			Services: []domain.ServiceHealth{{Name: "taxcalc-bff", Status: "healthy"}},
		})
	}
}

// readyzHandler pings every dependency concurrently.
func readyzHandler(deps []Dependency, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		services := make([]domain.ServiceHealth, len(deps))
		var g errgroup.Group
		for i, d := range deps {
			g.Go(func() error {
				start := time.Now()
				err := d.Pinger.Ping(ctx)
				services[i] = domain.ServiceHealth{
					Name:      d.Name,
					Status:    "healthy",
					LatencyMs: time.Since(start).Milliseconds(),
				}
				if err != nil {
					services[i].Status = "unhealthy"
					services[i].Error = err.Error()
					logger.Warn("readiness check failed", zap.String("dependency", d.Name), zap.Error(err))
				}
				return nil
			})
		}
		g.Wait()

		overall := "healthy"
		for i, s := range services {
			if s.Status != "unhealthy" {
				continue
			}
			if deps[i].Critical {
				overall = "unhealthy"
				break
			}
			overall = "degraded"
		}

		status := http.StatusOK
		if overall == "unhealthy" {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, domain.HealthStatus{Status: overall, Services: services})
	}
}
