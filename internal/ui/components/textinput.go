package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// AnswerInput wraps bubbles/textinput for typed answers. With BlockPaste
// set, bracketed pastes and ctrl+v are dropped and Pasted reports it.
type AnswerInput struct {
	Model      textinput.Model
	BlockPaste bool
	pasted     bool
}

// NewAnswerInput creates a focused input limited to charLimit runes.
func NewAnswerInput(placeholder string, charLimit, width int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	if width > 0 {
		ti.SetWidth(width)
	}
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if _, ok := msg.(tea.PasteMsg); ok && a.BlockPaste {
		a.pasted = true
		return a, nil
	}
	if k, ok := msg.(tea.KeyPressMsg); ok {
		if a.BlockPaste && k.String() == "ctrl+v" {
			a.pasted = true
			return a, nil
		}
		a.pasted = false
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the text input.
func (a AnswerInput) View() string {
	return a.Model.View()
}

// Value returns the current input value.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Reset clears the value and the paste flag.
func (a *AnswerInput) Reset() {
	a.Model.Reset()
	a.pasted = false
}

// Pasted reports whether the last paste was rejected.
func (a AnswerInput) Pasted() bool {
	return a.pasted
}
