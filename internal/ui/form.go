package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/notes/internal/model"
)

const (
	fieldTitle = iota
	fieldSubtitle
	fieldCount
)

// form is the two-field editor shared by the Add and Edit screens.
type form struct {
	inputs  [fieldCount]textinput.Model
	labels  [fieldCount]string
	focus   int
	button  string
	strict  bool // create rule; otherwise the edit rule
	tried   bool // a submit was attempted; only then are errors shown
	message string
}

func newForm() form {
	var f form
	f.labels = [fieldCount]string{"Todo", "Details"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 200
		ti.Width = 40
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].Placeholder = "What needs doing?"
	f.inputs[fieldSubtitle].Placeholder = "Details..."
	return f
}

// reset prepares the form for a new screen and focuses the first field.
func (f *form) reset(title, subtitle, button string, strict bool) tea.Cmd {
	f.inputs[fieldTitle].SetValue(title)
	f.inputs[fieldSubtitle].SetValue(subtitle)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
	f.button = button
	f.strict = strict
	f.tried = false
	f.message = ""
	return f.setFocus(fieldTitle)
}

func (f *form) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *form) values() (string, string) {
	return f.inputs[fieldTitle].Value(), f.inputs[fieldSubtitle].Value()
}

// validate runs the form's rule and records the inline message.
func (f *form) validate() error {
	f.tried = true
	title, subtitle := f.values()
	var err error
	if f.strict {
		err = model.ValidateNew(title, subtitle)
	} else {
		err = model.ValidateEdit(title, subtitle)
	}
	f.message = ""
	if err != nil {
		f.message = model.Message(err)
	}
	return err
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// fieldInvalid highlights short fields once a submit was attempted.
func (f *form) fieldInvalid(i int) bool {
	return f.tried && utf8.RuneCountInString(f.inputs[i].Value()) < model.MinFieldLength
}

// ready mirrors the Add button's enabled state.
func (f *form) ready() bool {
	title, subtitle := f.values()
	if f.strict {
		return model.ValidateNew(title, subtitle) == nil
	}
	return model.ValidateEdit(title, subtitle) == nil
}

func (f *form) view() string {
	t := Current()
	var b strings.Builder
	for i := range f.inputs {
		label := f.labels[i]
		if f.fieldInvalid(i) {
			label = t.Error.Render(label)
		} else if i == f.focus {
			label = t.Accent.Render(label)
		}
		b.WriteString(label + "\n")
		b.WriteString(f.inputs[i].View() + "\n\n")
	}

	btn := "[ " + f.button + " ]"
	if f.ready() {
		btn = t.Title.Render(btn)
	} else {
		btn = t.Muted.Render(btn)
	}
	b.WriteString(btn)

	if f.message != "" {
		b.WriteString("\n" + t.Error.Render(f.message))
	}
	return b.String()
}
