// Package topics implements the topic selection screen.
package topics

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens/history"
	"github.com/abhisek/lexiz/internal/screens/plan"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

type topicChosenMsg struct {
	ID string
}

// TopicsScreen lists topics with their term counts and progress.
type TopicsScreen struct {
	machine    *session.Machine
	history    history.Lister
	menu       components.Menu
	confirming bool
	status     string
}

var (
	_ screen.Screen          = (*TopicsScreen)(nil)
	_ screen.KeyHintProvider = (*TopicsScreen)(nil)
	_ screen.Resumer         = (*TopicsScreen)(nil)
)

// New creates the topic screen. A nil lister hides the session history.
func New(m *session.Machine, lister history.Lister) *TopicsScreen {
	s := &TopicsScreen{machine: m, history: lister}
	s.menu = components.NewMenu(s.items())
	return s
}

func (s *TopicsScreen) Init() tea.Cmd { return nil }

func (s *TopicsScreen) Title() string { return "Topics" }

// Resume refreshes progress details after returning from the plan.
func (s *TopicsScreen) Resume() tea.Cmd {
	s.menu.SetItems(s.items())
	return nil
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset everything"},
			{Key: "N", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
	}
	if s.history != nil {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "History"})
	}
	return append(hints,
		layout.KeyHint{Key: "R", Description: "Reset progress"},
		layout.KeyHint{Key: "Q", Description: "Quit"},
	)
}

func (s *TopicsScreen) items() []components.MenuItem {
	topics := s.machine.Topics()
	items := make([]components.MenuItem, 0, len(topics))
	for _, t := range topics {
		id := t.ID
		days := s.machine.DayCount(id)
		done := s.machine.CompletedCount(id)
		items = append(items, components.MenuItem{
			Label:  t.Name,
			Detail: fmt.Sprintf("%d terms · %d/%d days", t.TermCount, done, days),
			Dim:    days > 0 && done == days,
			Action: func() tea.Cmd {
				return func() tea.Msg { return topicChosenMsg{ID: id} }
			},
		})
	}
	return items
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topicChosenMsg:
		if err := s.machine.SelectTopic(msg.ID); err != nil {
			s.status = err.Error()
			return s, nil
		}
		s.status = ""
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: plan.New(s.machine)}
		}

	case tea.KeyPressMsg:
		if s.confirming {
			return s.handleConfirm(msg)
		}
		switch msg.String() {
		case "R", "r":
			s.confirming = true
			s.status = ""
			return s, nil
		case "h", "H":
			if s.history != nil {
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(s.history)}
				}
			}
		case "q":
			return s, tea.Quit
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *TopicsScreen) handleConfirm(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		s.confirming = false
		if err := s.machine.ResetProgress(context.Background()); err != nil {
			s.status = "Reset failed: " + err.Error()
		} else {
			s.status = "All progress has been reset."
		}
		s.menu.SetItems(s.items())
	case "n", "N", "esc":
		s.confirming = false
	}
	return s, nil
}

func (s *TopicsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Choose a topic"))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, s.menu.View()))

	if s.confirming {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Width(width).Align(lipgloss.Center).
			Render("Reset all progress? Every day will be locked again. (y/n)"))
	}
	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(width).Render(s.status))
	}
	return b.String()
}
