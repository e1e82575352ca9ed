package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickedMsg struct{ index int }

func TestMenu_NavigationAndAction(t *testing.T) {
	items := []MenuItem{
		{Label: "one", Action: func() tea.Cmd { return func() tea.Msg { return pickedMsg{0} } }},
		{Label: "two", Dim: true, Action: func() tea.Cmd { return func() tea.Msg { return pickedMsg{1} } }},
	}
	m := NewMenu(items)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, m.Selected, "dim rows stay selectable")
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, m.Selected)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg{1}, cmd())
}

func TestMenu_SetItemsClampsCursor(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	m.Selected = 2
	m.SetItems([]MenuItem{{Label: "a"}})
	assert.Equal(t, 0, m.Selected)
}

func TestMenu_ViewShowsDetails(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Day 1", Detail: "10 terms"}})
	view := m.View()
	assert.Contains(t, view, "Day 1")
	assert.Contains(t, view, "10 terms")
}

func TestProgressBar_Fraction(t *testing.T) {
	assert.Equal(t, 0.5, NewProgressBar("", 10, 20, 40).Fraction())
	assert.Equal(t, 1.0, NewProgressBar("", 30, 20, 40).Fraction())
	assert.Equal(t, 0.0, NewProgressBar("", 3, 0, 40).Fraction())
	assert.True(t, strings.Contains(NewProgressBar("copies", 3, 20, 40).View(), "3/20"))
}

func TestAnswerInput_BlocksPaste(t *testing.T) {
	in := NewAnswerInput("", 100, 40)
	in.BlockPaste = true

	in, _ = in.Update(tea.PasteMsg{Content: "word - meaning"})
	assert.True(t, in.Pasted())
	assert.Empty(t, in.Value())

	in, _ = in.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	assert.False(t, in.Pasted())
	assert.Equal(t, "a", in.Value())

	in.Reset()
	assert.Empty(t, in.Value())
}

func TestAnswerInput_AllowsPasteByDefault(t *testing.T) {
	in := NewAnswerInput("", 100, 40)
	in, _ = in.Update(tea.PasteMsg{Content: "hello"})
	assert.False(t, in.Pasted())
	assert.Equal(t, "hello", in.Value())
}

func TestAnswerInput_BlocksCtrlV(t *testing.T) {
	in := NewAnswerInput("", 100, 40)
	in.BlockPaste = true

	in, cmd := in.Update(tea.KeyPressMsg{Code: 'v', Mod: tea.ModCtrl})
	assert.Nil(t, cmd)
	assert.True(t, in.Pasted())
}
