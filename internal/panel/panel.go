// Package panel implements the request/render pipeline shared by every
// calculator: collect the form into a request, call the remote calculator
// once, and render either the result table or an error block.
package panel

import (
	"context"

	"github.com/boddenberg/taxcalc-bff-go/internal/port"
)

// State is the position of one calculation in the pipeline.
type State int

const (
	Idle State = iota
	Collecting
	Requesting
	Rendered
	ErrorShown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Collecting:
		return "collecting"
	case Requesting:
		return "requesting"
	case Rendered:
		return "rendered"
	case ErrorShown:
		return "error_shown"
	default:
		return "unknown"
	}
}

// RenderTarget is the output region a panel owns.
type RenderTarget interface {
	// Hide clears whatever result or error the region currently shows.
	Hide()
	ShowResult(v View)
	ShowError(e ErrorView)
}

// Outcome reports how a calculation ended. Err is set for ErrorShown and
// has already been rendered; callers only log or count it.
type Outcome struct {
	State   State
	Request any
	Err     error
}

// Calculator is a panel with its request and response types erased.
type Calculator interface {
	ID() string
	Title() string
	Endpoint() string
	Controls() []Control
	Calculate(ctx context.Context, src FieldSource, dst RenderTarget) Outcome
}

// Definition is the static configuration of one calculator panel.
type Definition[Req, Resp any] struct {
	ID       string
	Title    string
	Endpoint string
	Fields   []Field[Req]
	Rows     []Row[Resp]
	Headline func(req Req, resp Resp) Headline
	Footnote func(req Req, resp Resp) string
	// Hint is shown under every error message.
	Hint string
}

// Option configures a Panel.
type Option func(*options)

type options struct {
	observer func(panelID string, s State)
}

// WithObserver reports every state a calculation enters to fn.
func WithObserver(fn func(panelID string, s State)) Option {
	return func(o *options) { o.observer = fn }
}

// Panel runs a Definition against a Transport.
type Panel[Req, Resp any] struct {
	def       Definition[Req, Resp]
	transport port.Transport
	opts      options
}

// New creates a panel for def that calls t.
func New[Req, Resp any](def Definition[Req, Resp], t port.Transport, opts ...Option) *Panel[Req, Resp] {
	p := &Panel[Req, Resp]{def: def, transport: t}
	for _, o := range opts {
		o(&p.opts)
	}
	return p
}

func (p *Panel[Req, Resp]) ID() string       { return p.def.ID }
func (p *Panel[Req, Resp]) Title() string    { return p.def.Title }
func (p *Panel[Req, Resp]) Endpoint() string { return p.def.Endpoint }

// Controls lists the form controls the panel reads, in reading order.
func (p *Panel[Req, Resp]) Controls() []Control {
	out := make([]Control, len(p.def.Fields))
	for i, f := range p.def.Fields {
		out[i] = Control{ID: f.ID, Kind: f.Kind}
	}
	return out
}

// Collect reads every field in order into a fresh request.
func (p *Panel[Req, Resp]) Collect(src FieldSource) Req {
	var req Req
	for _, f := range p.def.Fields {
		f.read(src, &req)
	}
	return req
}

// Render turns a response into the view shown in the panel's region.
func (p *Panel[Req, Resp]) Render(req Req, resp Resp) View {
	v := View{
		PanelID: p.def.ID,
		Rows:    RenderRows(p.def.Rows, resp),
	}
	if p.def.Headline != nil {
		v.Headline = p.def.Headline(req, resp)
	}
	if p.def.Footnote != nil {
		v.Footnote = p.def.Footnote(req, resp)
	}
	return v
}

// Calculate runs one triggered calculation. The region is hidden before the
// call is issued, exactly one call is made, and any failure is rendered as
// an error block instead of being returned to the caller.
func (p *Panel[Req, Resp]) Calculate(ctx context.Context, src FieldSource, dst RenderTarget) Outcome {
	p.enter(Collecting)
	req := p.Collect(src)

	p.enter(Requesting)
	dst.Hide()

	var resp Resp
	if err := p.transport.Call(ctx, p.def.Endpoint, req, &resp); err != nil {
		dst.ShowError(ErrorView{
			PanelID: p.def.ID,
			Message: Message(err),
			Hint:    p.def.Hint,
		})
		p.enter(ErrorShown)
		return Outcome{State: ErrorShown, Request: req, Err: err}
	}

	dst.ShowResult(p.Render(req, resp))
	p.enter(Rendered)
	return Outcome{State: Rendered, Request: req}
}

func (p *Panel[Req, Resp]) enter(s State) {
	if p.opts.observer != nil {
		p.opts.observer(p.def.ID, s)
	}
}
