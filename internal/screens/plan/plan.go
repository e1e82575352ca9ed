// Package plan implements the day plan screen for one topic.
package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens/drill"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

type dayChosenMsg struct {
	Day int
}

// DayStatus is the display state of a day unit.
type DayStatus int

const (
	StatusLocked DayStatus = iota
	StatusUnlocked
	StatusCompleted
)

func (d DayStatus) String() string {
	switch d {
	case StatusCompleted:
		return "completed"
	case StatusUnlocked:
		return "unlocked"
	default:
		return "locked"
	}
}

// PlanScreen lists the days of the selected topic.
type PlanScreen struct {
	machine *session.Machine
	topicID string
	menu    components.Menu
	status  string
}

var (
	_ screen.Screen          = (*PlanScreen)(nil)
	_ screen.KeyHintProvider = (*PlanScreen)(nil)
	_ screen.Resumer         = (*PlanScreen)(nil)
)

// New creates the plan screen for the machine's selected topic.
func New(m *session.Machine) *PlanScreen {
	s := &PlanScreen{machine: m, topicID: m.State().TopicID}
	s.menu = components.NewMenu(s.items())
	s.menu.Selected = s.nextDayIndex()
	return s
}

func (s *PlanScreen) Init() tea.Cmd { return nil }

func (s *PlanScreen) Title() string {
	for _, t := range s.machine.Topics() {
		if t.ID == s.topicID {
			return t.Name
		}
	}
	return s.topicID
}

// Resume refreshes day statuses and moves the cursor to the next open day.
func (s *PlanScreen) Resume() tea.Cmd {
	s.menu.SetItems(s.items())
	s.menu.Selected = s.nextDayIndex()
	return nil
}

func (s *PlanScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start day"},
		{Key: "Esc", Description: "Topics"},
	}
}

// Status returns the display state of a day.
func (s *PlanScreen) Status(day int) DayStatus {
	switch {
	case s.machine.IsCompleted(s.topicID, day):
		return StatusCompleted
	case s.machine.IsUnlocked(s.topicID, day):
		return StatusUnlocked
	default:
		return StatusLocked
	}
}

func (s *PlanScreen) items() []components.MenuItem {
	days := s.machine.DayCount(s.topicID)
	items := make([]components.MenuItem, 0, days)
	for day := 1; day <= days; day++ {
		st := s.Status(day)
		mark := "·"
		switch st {
		case StatusCompleted:
			mark = "✔"
		case StatusLocked:
			mark = "🔒"
		}
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%s Day %d", mark, day),
			Detail: fmt.Sprintf("%d terms · %s", s.machine.DaySize(s.topicID, day), st),
			Dim:    st == StatusLocked,
			Action: func() tea.Cmd {
				return func() tea.Msg { return dayChosenMsg{Day: day} }
			},
		})
	}
	return items
}

// nextDayIndex points at the first unlocked day not yet completed.
func (s *PlanScreen) nextDayIndex() int {
	for day := 1; day <= s.machine.DayCount(s.topicID); day++ {
		if s.Status(day) == StatusUnlocked {
			return day - 1
		}
	}
	return 0
}

func (s *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dayChosenMsg:
		return s.startDay(msg.Day)

	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			if err := s.machine.BackToTopics(); err != nil {
				s.status = err.Error()
				return s, nil
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *PlanScreen) startDay(day int) (screen.Screen, tea.Cmd) {
	err := s.machine.StartDay(context.Background(), day)
	switch {
	case errors.Is(err, session.ErrDayLocked):
		s.status = fmt.Sprintf("Day %d is locked. Finish day %d first.", day, day-1)
		return s, nil
	case err != nil:
		s.status = err.Error()
		return s, nil
	}
	s.status = ""
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: drill.New(s.machine)}
	}
}

func (s *PlanScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	done := s.machine.CompletedCount(s.topicID)
	total := s.machine.DayCount(s.topicID)
	b.WriteString(theme.Title.Width(width).Render(s.Title()))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("%d of %d days completed", done, total)))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, s.menu.View()))
	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(width).Render(s.status))
	}
	return b.String()
}
