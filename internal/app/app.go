package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens/history"
	"github.com/abhisek/lexiz/internal/screens/topics"
	"github.com/abhisek/lexiz/internal/screens/welcome"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Machine *session.Machine

	// History is the session log behind the history screen; nil hides it.
	History history.Lister
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	machine *session.Machine
	width   int
	height  int
}

// newAppModel creates the root model. The rules are shown first until a
// day has been completed; the topic list then sits at the bottom of the
// stack.
func newAppModel(opts Options) AppModel {
	m := opts.Machine
	var root screen.Screen = topics.New(m, opts.History)
	if m.TotalCompleted() == 0 {
		rules := welcome.Rules(m.Config().ThinkingTime, session.PunishmentBase, session.PunishmentStep)
		root = welcome.New(rules, func() screen.Screen { return topics.New(m, opts.History) })
	}
	return AppModel{
		router:  router.New(root),
		machine: m,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render lays out the header, the active screen and the footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.machine.TotalCompleted(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
