// Package layout loads the calculator page's form layout: which controls
// every panel shows, grouped into sections, and the rules deciding when a
// conditional section is visible.
package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/boddenberg/taxcalc-bff-go/internal/domain"
	"github.com/boddenberg/taxcalc-bff-go/internal/panel"

	"gopkg.in/yaml.v3"
)

//go:embed panels.yaml
var defaultLayout []byte

// Option is one choice of a select or radio control. In YAML an option is
// either a plain string, used as both value and label, or a mapping with
// value and label.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

func (o *Option) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		o.Value, o.Label = n.Value, n.Value
		return nil
	}
	type plain Option
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	*o = Option(p)
	if o.Label == "" {
		o.Label = o.Value
	}
	return nil
}

// Control is one form input.
type Control struct {
	ID      string     `yaml:"id"`
	Kind    panel.Kind `yaml:"kind"`
	Label   string     `yaml:"label"`
	Section string     `yaml:"section"`
	Default string     `yaml:"default"`
	Options []Option   `yaml:"options"`
}

// Section groups controls. VisibleWhen is a CEL expression; empty means
// always visible.
type Section struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	VisibleWhen string `yaml:"visible_when"`
}

// Panel is the form of one calculator tab.
type Panel struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Sections    []Section `yaml:"sections"`
	Controls    []Control `yaml:"controls"`
}

// SectionControls returns the controls of section id in layout order.
func (p Panel) SectionControls(id string) []Control {
	var out []Control
	for _, c := range p.Controls {
		if c.Section == id {
			out = append(out, c)
		}
	}
	return out
}

// Control looks up a control by id.
func (p Panel) Control(id string) (Control, bool) {
	for _, c := range p.Controls {
		if c.ID == id {
			return c, true
		}
	}
	return Control{}, false
}

type layoutFile struct {
	Version int     `yaml:"version"`
	Panels  []Panel `yaml:"panels"`
}

// Layout is a validated form layout. It is safe for concurrent use.
type Layout struct {
	panels []Panel
	byID   map[string]int
	rules  *rules
}

// Load reads the layout at path, or the built-in layout when path is empty.
func Load(path string) (*Layout, error) {
	if path == "" {
		return Parse(defaultLayout)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML layout. Every visibility rule is
// compiled up front so that a broken expression fails at startup.
func Parse(b []byte) (*Layout, error) {
	var f layoutFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if f.Version != 1 {
		return nil, errors.New("layout: unsupported version")
	}
	if len(f.Panels) == 0 {
		return nil, errors.New("layout: no panels")
	}

	r, err := newRules()
	if err != nil {
		return nil, err
	}
	l := &Layout{panels: f.Panels, byID: make(map[string]int, len(f.Panels)), rules: r}
	for i, p := range f.Panels {
		if err := validatePanel(p); err != nil {
			return nil, err
		}
		if _, dup := l.byID[p.ID]; dup {
			return nil, fmt.Errorf("layout: duplicate panel %q", p.ID)
		}
		l.byID[p.ID] = i
		for _, s := range p.Sections {
			if s.VisibleWhen == "" {
				continue
			}
			if _, err := r.program(s.VisibleWhen); err != nil {
				return nil, fmt.Errorf("layout: panel %q section %q: %w", p.ID, s.ID, err)
			}
		}
	}
	return l, nil
}

func validatePanel(p Panel) error {
	if p.ID == "" || p.Title == "" {
		return errors.New("layout: panel requires id and title")
	}
	sections := make(map[string]bool, len(p.Sections))
	for _, s := range p.Sections {
		if s.ID == "" || sections[s.ID] {
			return fmt.Errorf("layout: panel %q has an empty or duplicate section id", p.ID)
		}
		sections[s.ID] = true
	}
	seen := make(map[string]bool, len(p.Controls))
	for _, c := range p.Controls {
		if c.ID == "" || seen[c.ID] {
			return fmt.Errorf("layout: panel %q has an empty or duplicate control id %q", p.ID, c.ID)
		}
		seen[c.ID] = true
		if !sections[c.Section] {
			return fmt.Errorf("layout: control %q.%q references unknown section %q", p.ID, c.ID, c.Section)
		}
		switch c.Kind {
		case panel.KindSelect, panel.KindRadio:
			if len(c.Options) == 0 {
				return fmt.Errorf("layout: control %q.%q needs options", p.ID, c.ID)
			}
		case panel.KindText, panel.KindDate, panel.KindInt, panel.KindAmount, panel.KindCheckbox:
		default:
			return fmt.Errorf("layout: control %q.%q has unknown kind %q", p.ID, c.ID, c.Kind)
		}
	}
	return nil
}

// Panels returns the panels in page order.
func (l *Layout) Panels() []Panel {
	return l.panels
}

// Panel looks up a panel by id.
func (l *Layout) Panel(id string) (Panel, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Panel{}, false
	}
	return l.panels[i], true
}

// Check verifies that every control a calculator reads is present in the
// layout with the same kind.
func (l *Layout) Check(c panel.Calculator) error {
	p, ok := l.Panel(c.ID())
	if !ok {
		return fmt.Errorf("layout: no panel for calculator %q", c.ID())
	}
	var missing []string
	for _, want := range c.Controls() {
		got, ok := p.Control(want.ID)
		switch {
		case !ok:
			missing = append(missing, want.ID)
		case got.Kind != want.Kind:
			return fmt.Errorf("layout: control %q.%q is %s, calculator reads %s", p.ID, want.ID, got.Kind, want.Kind)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("layout: panel %q is missing controls %s", p.ID, strings.Join(missing, ", "))
	}
	return nil
}

// Visibility evaluates the section rules of a panel against the submitted
// form. Sections without a rule are always visible.
func (l *Layout) Visibility(panelID string, src panel.FieldSource) (map[string]bool, error) {
	p, ok := l.Panel(panelID)
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "panel", ID: panelID}
	}
	form := FormMap(p, src)
	out := make(map[string]bool, len(p.Sections))
	for _, s := range p.Sections {
		if s.VisibleWhen == "" {
			out[s.ID] = true
			continue
		}
		v, err := l.rules.eval(s.VisibleWhen, form)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.ID, err)
		}
		out[s.ID] = v
	}
	return out, nil
}

// FormMap reads every control of p into the map visibility rules see.
// Checkboxes read as "true" or "false"; an unanswered radio reads as "".
func FormMap(p Panel, src panel.FieldSource) map[string]string {
	form := make(map[string]string, len(p.Controls))
	for _, c := range p.Controls {
		switch c.Kind {
		case panel.KindCheckbox:
			form[c.ID] = fmt.Sprint(src.Checked(c.ID))
		case panel.KindRadio:
			v, _ := src.RadioValue(c.ID)
			form[c.ID] = v
		default:
			form[c.ID] = src.Value(c.ID)
		}
	}
	return form
}
