package handler

import (
	"bytes"
	"net/http"

	"github.com/boddenberg/taxcalc-bff-go/internal/domain"
	"github.com/boddenberg/taxcalc-bff-go/internal/infra/observability"
	"github.com/boddenberg/taxcalc-bff-go/internal/render"
	"github.com/boddenberg/taxcalc-bff-go/internal/service"

	"go.uber.org/zap"
)

// amountHandler masks one amount input per input event. The form names the
// field in _field (and its panel in _panel) and carries the raw text under
// the field's own name.
func amountHandler(calcs *service.Calculations, renderer *render.Renderer, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := readForm(w, r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		field := form.Get("_field")
		if field == "" {
			handleServiceError(w, &domain.ErrValidation{Field: "_field", Message: "is required"}, logger)
			return
		}
		panelID := form.Get("_panel")

		label := field
		if p, ok := calcs.Layout().Panel(panelID); ok {
			if c, ok := p.Control(field); ok {
				label = c.Label
			}
		}

		a := render.NewAmountField(panelID, field, label, form.Get(field))
		metrics.IncrAmountFormat()

		if !isHTMX(r) {
			writeJSON(w, http.StatusOK, a)
			return
		}
		var buf bytes.Buffer
		if err := renderer.Amount(&buf, a); err != nil {
			logger.Error("failed to render amount field", zap.String("field", field), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		buf.WriteTo(w)
	}
}
