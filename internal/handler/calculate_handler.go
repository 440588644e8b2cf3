package handler

import (
	"bytes"
	"net/http"

	"github.com/boddenberg/taxcalc-bff-go/internal/panel"
	"github.com/boddenberg/taxcalc-bff-go/internal/render"
	"github.com/boddenberg/taxcalc-bff-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Page: GET /
// ============================================================

func pageHandler(calcs *service.Calculations, renderer *render.Renderer, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := render.NewPage(calcs.Layout(), uuid.NewString())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var buf bytes.Buffer
		if err := renderer.Page(&buf, page); err != nil {
			logger.Error("failed to render page", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		buf.WriteTo(w)
	}
}

// ============================================================
// Calculation: POST /panels/{panelID}/calculate
//              POST /v1/panels/{panelID}/calculate
// ============================================================

// calculateHandler runs one calculation. A failed remote calculation is a
// rendered outcome, so it is answered with 200 and the error view; only an
// unknown panel or an unreadable body is an HTTP error. With html set, HTMX
// requests get the fragment to swap in, or 204 when a newer calculation
// from the same page overtook this one.
func calculateHandler(calcs *service.Calculations, renderer *render.Renderer, logger *zap.Logger, html bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /panels/{panelID}/calculate")
		defer span.End()

		panelID := chi.URLParam(r, "panelID")
		span.SetAttributes(attribute.String("panel.id", panelID))

		form, err := readForm(w, r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		frag := &render.Fragment{}
		calc, err := calcs.Calculate(ctx, panelID, form.Get("_region"), panel.FormValues(form), frag)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.Header().Set("X-Calculation-ID", calc.ID)

		if html && isHTMX(r) {
			if calc.Superseded {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			var buf bytes.Buffer
			if err := frag.WriteHTML(&buf, renderer); err != nil {
				logger.Error("failed to render fragment", zap.String("panel", panelID), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			buf.WriteTo(w)
			return
		}

		resp := frag.Response(calc.ID, panelID, calc.State)
		resp.Superseded = calc.Superseded
		writeJSON(w, http.StatusOK, resp)
	}
}

// ============================================================
// Conditional sections: POST /panels/{panelID}/visibility
// ============================================================

func visibilityHandler(calcs *service.Calculations, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := readForm(w, r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		sections, err := calcs.Visibility(chi.URLParam(r, "panelID"), panel.FormValues(form))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, sections)
	}
}

// ============================================================
// Catalogue & metrics: /v1
// ============================================================

func panelsHandler(calcs *service.Calculations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, calcs.Panels())
	}
}

func calculationMetricsHandler(calcs *service.Calculations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, calcs.Stats())
	}
}
