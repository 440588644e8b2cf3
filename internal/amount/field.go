package amount

// Input is the text control an amount field is bound to.
type Input interface {
	Text() string
	SetText(text string)
	// OnInput registers fn for input-change events and returns a function
	// that removes it.
	OnInput(fn func()) (remove func())
}

// Field keeps the numeric value of a masked input in sync with its text.
// Fields are driven by their input's events and are not safe for
// concurrent use.
type Field struct {
	in       Input
	onChange func(int64)
	value    int64
}

// Bind attaches a masking field to in. Every input event rewrites the text
// from scratch (the caret position is not preserved) and reports the new
// value to onChange. The pre-filled text is normalised once before Bind
// returns. The returned function detaches the field.
func Bind(in Input, onChange func(int64)) (*Field, func()) {
	f := &Field{in: in, onChange: onChange}
	remove := in.OnInput(f.refresh)
	f.refresh()
	return f, remove
}

// Value returns the value derived from the last input event.
func (f *Field) Value() int64 {
	return f.value
}

func (f *Field) refresh() {
	v, display := Reformat(f.in.Text())
	f.in.SetText(display)
	f.value = v
	if f.onChange != nil {
		f.onChange(v)
	}
}

// TextInput is an in-memory Input. It backs the amount endpoint, where a
// single request carries the text of one input event.
type TextInput struct {
	text      string
	listeners map[int]func()
	nextID    int
}

// NewTextInput returns an input pre-filled with text.
func NewTextInput(text string) *TextInput {
	return &TextInput{text: text, listeners: make(map[int]func())}
}

func (t *TextInput) Text() string { return t.text }

func (t *TextInput) SetText(text string) { t.text = text }

func (t *TextInput) OnInput(fn func()) func() {
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	return func() { delete(t.listeners, id) }
}

// Type replaces the text and fires an input event.
func (t *TextInput) Type(text string) {
	t.text = text
	for _, fn := range t.listeners {
		fn()
	}
}
