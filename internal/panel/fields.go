package panel

import (
	"net/url"
	"strings"

	"github.com/boddenberg/taxcalc-bff-go/internal/amount"
)

// FieldSource gives read access to the panel's form controls.
type FieldSource interface {
	// Value returns the current value of a text input or select.
	Value(id string) string
	// Checked reports whether a checkbox is ticked.
	Checked(id string) bool
	// RadioValue returns the value of the checked option of a radio group.
	// ok is false when no option is checked.
	RadioValue(name string) (value string, ok bool)
}

// Kind is the type of form control a field reads.
type Kind string

const (
	KindText     Kind = "text"
	KindSelect   Kind = "select"
	KindDate     Kind = "date"
	KindInt      Kind = "int"
	KindAmount   Kind = "amount"
	KindCheckbox Kind = "checkbox"
	KindRadio    Kind = "radio"
)

// Control identifies one form control read by a panel.
type Control struct {
	ID   string
	Kind Kind
}

// Field reads one control into the request being built.
type Field[Req any] struct {
	ID   string
	Kind Kind
	read func(src FieldSource, req *Req)
}

// Text reads a text input verbatim.
func Text[Req any](id string, set func(*Req, string)) Field[Req] {
	return Field[Req]{ID: id, Kind: KindText, read: func(src FieldSource, req *Req) {
		set(req, src.Value(id))
	}}
}

// Select reads the selected option of a dropdown.
func Select[Req any](id string, set func(*Req, string)) Field[Req] {
	f := Text(id, set)
	f.Kind = KindSelect
	return f
}

// Date reads a YYYY-MM-DD date input.
func Date[Req any](id string, set func(*Req, string)) Field[Req] {
	f := Text(id, set)
	f.Kind = KindDate
	return f
}

// Int reads a small whole number, such as a count of years.
func Int[Req any](id string, set func(*Req, int64)) Field[Req] {
	return Field[Req]{ID: id, Kind: KindInt, read: func(src FieldSource, req *Req) {
		set(req, amount.Parse(src.Value(id)))
	}}
}

// Amount reads the value of a masked currency input.
func Amount[Req any](id string, set func(*Req, int64)) Field[Req] {
	return Field[Req]{ID: id, Kind: KindAmount, read: func(src FieldSource, req *Req) {
		set(req, amount.Parse(src.Value(id)))
	}}
}

// Checkbox reads a tick box.
func Checkbox[Req any](id string, set func(*Req, bool)) Field[Req] {
	return Field[Req]{ID: id, Kind: KindCheckbox, read: func(src FieldSource, req *Req) {
		set(req, src.Checked(id))
	}}
}

// Radio reads a yes/no radio group whose options carry the values "true"
// and "false". An unanswered group yields nil, never false.
func Radio[Req any](name string, set func(*Req, *bool)) Field[Req] {
	return Field[Req]{ID: name, Kind: KindRadio, read: func(src FieldSource, req *Req) {
		v, ok := src.RadioValue(name)
		if !ok {
			set(req, nil)
			return
		}
		b := v == "true"
		set(req, &b)
	}}
}

// FormValues adapts a submitted HTML form to FieldSource. Browsers omit
// unticked checkboxes and unanswered radio groups from the submission.
type FormValues url.Values

func (f FormValues) Value(id string) string {
	return strings.TrimSpace(url.Values(f).Get(id))
}

func (f FormValues) Checked(id string) bool {
	if !url.Values(f).Has(id) {
		return false
	}
	switch strings.ToLower(f.Value(id)) {
	case "false", "off", "0":
		return false
	}
	return true
}

func (f FormValues) RadioValue(name string) (string, bool) {
	v := f.Value(name)
	return v, v != ""
}
