// Package render turns calculation outcomes and the form layout into the
// HTML the page swaps in, or into JSON for API clients.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/boddenberg/taxcalc-bff-go/internal/amount"
	"github.com/boddenberg/taxcalc-bff-go/internal/layout"
	"github.com/boddenberg/taxcalc-bff-go/internal/panel"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded templates. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("base").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page writes the full calculator page.
func (r *Renderer) Page(w io.Writer, p Page) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", p)
}

// Result writes the result fragment of a successful calculation.
func (r *Renderer) Result(w io.Writer, v panel.View) error {
	return r.tmpl.ExecuteTemplate(w, "result", v)
}

// Error writes the error fragment of a failed calculation.
func (r *Renderer) Error(w io.Writer, e panel.ErrorView) error {
	return r.tmpl.ExecuteTemplate(w, "error", e)
}

// Amount writes a masked amount input with its magnitude label.
func (r *Renderer) Amount(w io.Writer, a AmountField) error {
	return r.tmpl.ExecuteTemplate(w, "amount", a)
}

// AmountField is the state of one masked input after an input event.
type AmountField struct {
	PanelID   string `json:"panelId,omitempty"`
	ID        string `json:"id"`
	Label     string `json:"-"`
	Value     int64  `json:"value"`
	Display   string `json:"display"`
	Magnitude string `json:"magnitude"`
}

// DOMID is the element id of the input. Control ids repeat across panels,
// so element ids carry the panel id.
func (a AmountField) DOMID() string {
	return domID(a.PanelID, a.ID)
}

// NewAmountField masks text the way the page's amount inputs do.
func NewAmountField(panelID, id, label, text string) AmountField {
	in := amount.NewTextInput(text)
	f, detach := amount.Bind(in, nil)
	defer detach()
	return AmountField{
		PanelID:   panelID,
		ID:        id,
		Label:     label,
		Value:     f.Value(),
		Display:   in.Text(),
		Magnitude: amount.MagnitudeLabel(f.Value()),
	}
}

// Page is the data of the full calculator page.
type Page struct {
	// Region identifies this page load; calculations from one page are
	// latest-wins per panel.
	Region string
	Panels []PagePanel
}

type PagePanel struct {
	ID          string
	Title       string
	Description string
	Sections    []PageSection
}

type PageSection struct {
	ID       string
	Title    string
	Visible  bool
	Controls []PageControl
}

type PageControl struct {
	layout.Control
	PanelID string
	Amount  AmountField
}

func (c PageControl) DOMID() string {
	return domID(c.PanelID, c.ID)
}

// NewPage lays out every panel with its default values, evaluating the
// section rules against those defaults.
func NewPage(l *layout.Layout, region string) (Page, error) {
	page := Page{Region: region}
	for _, p := range l.Panels() {
		defaults := url.Values{}
		for _, c := range p.Controls {
			if c.Default != "" {
				defaults.Set(c.ID, c.Default)
			}
		}
		visible, err := l.Visibility(p.ID, panel.FormValues(defaults))
		if err != nil {
			return Page{}, err
		}

		pp := PagePanel{ID: p.ID, Title: p.Title, Description: p.Description}
		for _, s := range p.Sections {
			ps := PageSection{ID: s.ID, Title: s.Title, Visible: visible[s.ID]}
			for _, c := range p.SectionControls(s.ID) {
				pc := PageControl{Control: c, PanelID: p.ID}
				if c.Kind == panel.KindAmount {
					pc.Amount = NewAmountField(p.ID, c.ID, c.Label, c.Default)
				}
				ps.Controls = append(ps.Controls, pc)
			}
			pp.Sections = append(pp.Sections, ps)
		}
		page.Panels = append(page.Panels, pp)
	}
	return page, nil
}

func domID(panelID, controlID string) string {
	return panelID + "-" + controlID
}
