package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a vertical stack of text inputs with one focused at a time.
// Tab/down move forward, shift+tab/up move back, enter on the last field
// submits.
type form struct {
	title  string
	inputs []textinput.Model
	focus  int
}

func newInput(placeholder string, password bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Width = 32
	if password {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func newLoginForm() form {
	return form{
		title: "Log in",
		inputs: []textinput.Model{
			newInput("username", false),
			newInput("password", true),
		},
	}
}

func newSignupForm() form {
	return form{
		title: "Create account",
		inputs: []textinput.Model{
			newInput("name", false),
			newInput("username", false),
			newInput("password", true),
		},
	}
}

func newSubmitForm(author string) form {
	f := form{
		title: "Submit a story",
		inputs: []textinput.Model{
			newInput("author", false),
			newInput("title", false),
			newInput("url", false),
		},
	}
	f.inputs[0].SetValue(author)
	return f
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
}

func (f *form) activate() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
	return textinput.Blink
}

func (f *form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (f *form) onLastField() bool {
	return f.focus == len(f.inputs)-1
}

func (f *form) cycleFocus(back bool) tea.Cmd {
	f.inputs[f.focus].Blur()
	if back {
		f.focus--
		if f.focus < 0 {
			f.focus = len(f.inputs) - 1
		}
	} else {
		f.focus = (f.focus + 1) % len(f.inputs)
	}
	return f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i := range f.inputs {
		var cmd tea.Cmd
		f.inputs[i], cmd = f.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render(f.title))
	b.WriteString("\n")
	for i := range f.inputs {
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString(formHintStyle.Render("tab next field · enter submit · esc cancel"))
	return formCardStyle.Render(b.String())
}
