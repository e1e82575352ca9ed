// Package welcome shows the banner and the rules of the drill before the
// first day is played.
package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

const revealInterval = 400 * time.Millisecond

type tickMsg time.Time

// Rules returns the drill rules for the given thinking time and punishment
// policy.
func Rules(thinkingTime, base, step int) []string {
	return []string{
		"Study the day's cards. Flip each one to see its meaning.",
		fmt.Sprintf("Quiz: type the term for each meaning within %d seconds.", thinkingTime),
		fmt.Sprintf("Every miss must be copied out %d times, exactly, no pasting.", base),
		fmt.Sprintf("Then a retest. Fail it and the copy-out grows by %d.", step),
		"Clear the queue to complete the day and unlock the next.",
	}
}

// WelcomeScreen reveals the rules one line at a time, then hands over to
// the screen built by next on any key.
type WelcomeScreen struct {
	rules        []string
	next         func() screen.Screen
	shown        int
	transitioned bool
}

var (
	_ screen.Screen          = (*WelcomeScreen)(nil)
	_ screen.KeyHintProvider = (*WelcomeScreen)(nil)
)

// New creates a WelcomeScreen.
func New(rules []string, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{rules: rules, next: next}
}

func (w *WelcomeScreen) Title() string {
	return "Welcome"
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(revealInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.shown >= len(w.rules) {
			return w, nil
		}
		w.shown++
		return w, tick()

	case tea.KeyPressMsg:
		// The first key shows every rule; the next one moves on.
		if w.shown < len(w.rules) {
			w.shown = len(w.rules)
			return w, nil
		}
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	s := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: s}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{RenderBanner(width), ""}

	for i, rule := range w.rules[:w.shown] {
		sections = append(sections, theme.Body.Render(fmt.Sprintf("%d. %s", i+1, rule)))
	}

	if w.shown >= len(w.rules) {
		sections = append(sections, "", theme.Hint.Render("press any key to continue"))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
