package panel

// RenderedRow is one line of the result table. Section rows carry only a
// label and span both columns.
type RenderedRow struct {
	Label    string `json:"label"`
	SubLabel string `json:"subLabel,omitempty"`
	Value    string `json:"value,omitempty"`
	Section  bool   `json:"section,omitempty"`
}

// Row is a declarative table row: a predicate deciding inclusion and the
// renderers for its cells.
type Row[Resp any] struct {
	When     func(Resp) bool
	Label    string
	SubLabel func(Resp) string
	Value    func(Resp) string
	Section  bool
}

// Section is a header row separating groups of values.
func Section[Resp any](label string) Row[Resp] {
	return Row[Resp]{Label: label, Section: true}
}

// Value is a label/value row.
func Value[Resp any](label string, value func(Resp) string) Row[Resp] {
	return Row[Resp]{Label: label, Value: value}
}

// If restricts the row to responses matching pred.
func (r Row[Resp]) If(pred func(Resp) bool) Row[Resp] {
	r.When = pred
	return r
}

// Sub adds a secondary label under the row label.
func (r Row[Resp]) Sub(sub func(Resp) string) Row[Resp] {
	r.SubLabel = sub
	return r
}

// RenderRows evaluates specs against resp in order.
func RenderRows[Resp any](specs []Row[Resp], resp Resp) []RenderedRow {
	out := make([]RenderedRow, 0, len(specs))
	for _, s := range specs {
		if s.When != nil && !s.When(resp) {
			continue
		}
		row := RenderedRow{Label: s.Label, Section: s.Section}
		if s.SubLabel != nil {
			row.SubLabel = s.SubLabel(resp)
		}
		if !s.Section && s.Value != nil {
			row.Value = s.Value(resp)
		}
		out = append(out, row)
	}
	return out
}
