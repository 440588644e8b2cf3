package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/boddenberg/taxcalc-bff-go/internal/domain"
	"github.com/boddenberg/taxcalc-bff-go/internal/infra/observability"
	"github.com/boddenberg/taxcalc-bff-go/internal/layout"
	"github.com/boddenberg/taxcalc-bff-go/internal/panel"
	"github.com/boddenberg/taxcalc-bff-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service/calculations")

// Calculation identifies one triggered calculation and how it ended.
type Calculation struct {
	ID      string
	PanelID string
	State   panel.State
	// Superseded is set when a newer calculation for the same page region
	// started before this one finished; nothing was rendered.
	Superseded bool
}

// Calculations runs the calculator panels of the page.
type Calculations struct {
	calculators []panel.Calculator
	byID        map[string]panel.Calculator
	layout      *layout.Layout
	guards      port.Cache[*panel.Guard]
	guardsMu    sync.Mutex
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewCalculations wires the calculators to their form layout. It fails when
// a calculator reads a control the layout does not define.
func NewCalculations(
	calculators []panel.Calculator,
	l *layout.Layout,
	guards port.Cache[*panel.Guard],
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*Calculations, error) {
	byID := make(map[string]panel.Calculator, len(calculators))
	for _, c := range calculators {
		if err := l.Check(c); err != nil {
			return nil, err
		}
		byID[c.ID()] = c
	}
	return &Calculations{
		calculators: calculators,
		byID:        byID,
		layout:      l,
		guards:      guards,
		metrics:     metrics,
		logger:      logger,
	}, nil
}

// Layout returns the form layout the calculators were checked against.
func (s *Calculations) Layout() *layout.Layout {
	return s.layout
}

// Calculate runs one calculation of panelID, rendering into dst. When
// region is set, calculations sharing panel and region are latest-wins:
// one that is overtaken renders nothing. Failures of the remote calculator
// are rendered into dst, never returned; the only error is an unknown panel.
func (s *Calculations) Calculate(ctx context.Context, panelID, region string, src panel.FieldSource, dst panel.RenderTarget) (*Calculation, error) {
	c, ok := s.byID[panelID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "panel", ID: panelID}
	}

	calc := &Calculation{ID: uuid.NewString(), PanelID: panelID}

	ctx, span := tracer.Start(ctx, "Calculations.Calculate")
	defer span.End()
	span.SetAttributes(
		attribute.String("panel.id", panelID),
		attribute.String("calculation.id", calc.ID),
	)

	target := &tracking{dst: dst}
	var out panel.RenderTarget = target
	if region != "" {
		out = s.guard(panelID, region).Claim(target)
	}

	start := time.Now()
	outcome := c.Calculate(ctx, src, out)
	elapsed := time.Since(start)

	calc.State = outcome.State
	calc.Superseded = !target.shown
	s.metrics.RecordCalculation(panelID, outcome.State.String(), elapsed)
	span.SetAttributes(attribute.String("calculation.state", outcome.State.String()))

	if outcome.Err != nil {
		s.metrics.IncrExternalError(c.Endpoint())
		s.logger.Warn("calculation failed",
			zap.String("calculation_id", calc.ID),
			zap.String("panel", panelID),
			zap.Duration("elapsed", elapsed),
			zap.Error(outcome.Err),
		)
	} else {
		s.logger.Info("calculation rendered",
			zap.String("calculation_id", calc.ID),
			zap.String("panel", panelID),
			zap.Duration("elapsed", elapsed),
		)
	}
	if calc.Superseded {
		s.logger.Debug("calculation superseded",
			zap.String("calculation_id", calc.ID),
			zap.String("panel", panelID),
			zap.String("region", region),
		)
	}
	return calc, nil
}

func (s *Calculations) guard(panelID, region string) *panel.Guard {
	key := fmt.Sprintf("guard:%s:%s", region, panelID)

	s.guardsMu.Lock()
	defer s.guardsMu.Unlock()
	g, ok := s.guards.Get(key)
	if !ok {
		g = &panel.Guard{}
	}
	// Set on every use so an active region never expires.
	s.guards.Set(key, g)
	return g
}

// Visibility evaluates the conditional sections of a panel's form.
func (s *Calculations) Visibility(panelID string, src panel.FieldSource) (map[string]bool, error) {
	return s.layout.Visibility(panelID, src)
}

// Panels describes every calculator.
func (s *Calculations) Panels() []domain.PanelInfo {
	out := make([]domain.PanelInfo, 0, len(s.calculators))
	for _, c := range s.calculators {
		controls := make([]string, 0, len(c.Controls()))
		for _, ctl := range c.Controls() {
			controls = append(controls, ctl.ID)
		}
		out = append(out, domain.PanelInfo{
			ID:       c.ID(),
			Title:    c.Title(),
			Endpoint: c.Endpoint(),
			Controls: controls,
		})
	}
	return out
}

// Stats summarises calculation outcomes per panel.
func (s *Calculations) Stats() *domain.CalculationStats {
	ids := make([]string, 0, len(s.calculators))
	for _, c := range s.calculators {
		ids = append(ids, c.ID())
	}
	return s.metrics.Snapshot(ids)
}

// StateLogger reports every state a calculation enters at debug level.
func StateLogger(logger *zap.Logger) func(panelID string, st panel.State) {
	return func(panelID string, st panel.State) {
		logger.Debug("calculation state", zap.String("panel", panelID), zap.Stringer("state", st))
	}
}

// tracking records whether any result or error reached the target.
type tracking struct {
	dst   panel.RenderTarget
	shown bool
}

func (t *tracking) Hide() {
	t.shown = false
	t.dst.Hide()
}

func (t *tracking) ShowResult(v panel.View) {
	t.shown = true
	t.dst.ShowResult(v)
}

func (t *tracking) ShowError(e panel.ErrorView) {
	t.shown = true
	t.dst.ShowError(e)
}
