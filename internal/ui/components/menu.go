package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/ui/theme"
)

// MenuItem represents a single row in a menu. Dim rows stay selectable.
type MenuItem struct {
	Label  string
	Detail string
	Dim    bool
	Action func() tea.Cmd
}

// Menu is a vertical list with a cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the cursor on the first item.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// SetItems replaces the rows, keeping the cursor in range.
func (m *Menu) SetItems(items []MenuItem) {
	m.Items = items
	m.Selected = min(m.Selected, max(len(items)-1, 0))
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			if item := m.Items[m.Selected]; item.Action != nil {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

// View renders the menu with details aligned in a second column.
func (m Menu) View() string {
	labelWidth := 0
	for _, item := range m.Items {
		labelWidth = max(labelWidth, lipgloss.Width(item.Label))
	}

	var b strings.Builder
	for i, item := range m.Items {
		label := item.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(item.Label))
		style := theme.Unselected
		prefix := "    "
		switch {
		case i == m.Selected:
			style = theme.Selected
			prefix = "  ▸ "
		case item.Dim:
			style = theme.Locked
		}
		b.WriteString(style.Render(prefix + label))
		if item.Detail != "" {
			b.WriteString("   " + theme.Hint.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
