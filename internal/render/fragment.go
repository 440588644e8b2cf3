package render

import (
	"io"

	"github.com/boddenberg/taxcalc-bff-go/internal/panel"
)

// Fragment is the render region of one calculation request. It keeps only
// the last thing shown, so a Hide followed by ShowError leaves no trace of
// an earlier result.
type Fragment struct {
	view *panel.View
	err  *panel.ErrorView
}

func (f *Fragment) Hide() {
	f.view, f.err = nil, nil
}

func (f *Fragment) ShowResult(v panel.View) {
	f.view, f.err = &v, nil
}

func (f *Fragment) ShowError(e panel.ErrorView) {
	f.view, f.err = nil, &e
}

// Empty reports whether nothing is shown, as when a newer calculation for
// the same region superseded this one.
func (f *Fragment) Empty() bool {
	return f.view == nil && f.err == nil
}

// WriteHTML writes whichever fragment is shown.
func (f *Fragment) WriteHTML(w io.Writer, r *Renderer) error {
	switch {
	case f.err != nil:
		return r.Error(w, *f.err)
	case f.view != nil:
		return r.Result(w, *f.view)
	}
	return nil
}

// Response is the JSON form of a calculation.
type Response struct {
	CalculationID string           `json:"calculationId"`
	PanelID       string           `json:"panelId"`
	State         string           `json:"state"`
	Superseded    bool             `json:"superseded,omitempty"`
	Result        *panel.View      `json:"result,omitempty"`
	Error         *panel.ErrorView `json:"error,omitempty"`
}

// Response describes the fragment as JSON.
func (f *Fragment) Response(calculationID, panelID string, state panel.State) Response {
	return Response{
		CalculationID: calculationID,
		PanelID:       panelID,
		State:         state.String(),
		Result:        f.view,
		Error:         f.err,
	}
}
