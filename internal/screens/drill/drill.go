// Package drill implements the screen for one day unit: study cards, the
// timed quiz, the result overview, punishment copy-out and retests.
package drill

import (
	"context"
	"fmt"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
)

const (
	answerCharLimit = 120
	inputWidth      = 48

	pasteNotice = "Pasting is disabled here. Type it out."
)

// DrillScreen drives a session.Machine through a day.
type DrillScreen struct {
	machine *session.Machine
	input   components.AnswerInput
	prompt  int

	// notice is a one-line message under the input, cleared on the next key.
	notice string

	confirmLeave bool
	left         bool

	schedule func([]session.Wakeup) tea.Cmd
}

var (
	_ screen.Screen          = (*DrillScreen)(nil)
	_ screen.KeyHintProvider = (*DrillScreen)(nil)
)

// New creates the drill screen for the day the machine has just started.
func New(m *session.Machine) *DrillScreen {
	s := &DrillScreen{
		machine:  m,
		input:    components.NewAnswerInput("Type the term...", answerCharLimit, inputWidth),
		prompt:   m.State().Prompt,
		schedule: scheduleWakeups,
	}
	s.syncInput()
	return s
}

func (s *DrillScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *DrillScreen) Title() string {
	st := s.machine.State()
	return fmt.Sprintf("Day %d · %s", st.Day, modeTitle(st.Mode))
}

func modeTitle(m session.Mode) string {
	switch m {
	case session.ModeStudy:
		return "Study"
	case session.ModeQuiz:
		return "Quiz"
	case session.ModeResult:
		return "Result"
	case session.ModePunishment:
		return "Punishment"
	case session.ModeRetest:
		return "Retest"
	default:
		return m.String()
	}
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	if s.confirmLeave {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave day"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.machine.State().Mode {
	case session.ModeStudy:
		return []layout.KeyHint{
			{Key: "Space", Description: "Flip"},
			{Key: "←→", Description: "Prev/Next"},
			{Key: "Esc", Description: "Leave"},
		}
	case session.ModeResult:
		desc := "Finish day"
		if s.machine.QueueLen() > 0 {
			desc = "Start punishment"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: desc},
			{Key: "Esc", Description: "Leave"},
		}
	case session.ModePunishment:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit line"},
			{Key: "Esc", Description: "Leave"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Leave"},
		}
	}
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.left {
		return s, nil
	}

	switch msg := msg.(type) {
	case wakeMsg:
		ws := s.machine.Dispatch(context.Background(), msg.Event)
		return s, s.after(s.schedule(ws))

	case tea.KeyPressMsg:
		if s.confirmLeave {
			return s.handleConfirm(msg)
		}
		return s.handleKey(msg)

	case tea.PasteMsg:
		if !s.typing() {
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		if s.input.Pasted() {
			s.notice = pasteNotice
		}
		return s, cmd
	}

	if s.typing() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DrillScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	st := s.machine.State()
	key := msg.String()

	if key == "esc" {
		if st.Mode == session.ModeStudy || st.Mode == session.ModeResult {
			return s.leave()
		}
		s.confirmLeave = true
		return s, nil
	}

	switch st.Mode {
	case session.ModeStudy:
		switch key {
		case "space", "f":
			s.machine.Flip()
		case "right", "enter", "n", "l":
			return s, s.after(s.schedule(s.machine.Next()))
		case "left", "p", "h":
			s.machine.Prev()
		}
		return s, nil

	case session.ModeResult:
		if key == "enter" {
			if err := s.machine.AcceptResult(context.Background()); err != nil {
				s.notice = err.Error()
			}
			return s, s.after(nil)
		}
		return s, nil

	case session.ModeQuiz, session.ModeRetest, session.ModePunishment:
		if key == "enter" {
			return s.submit()
		}
		s.notice = ""
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		if s.input.Pasted() {
			s.notice = pasteNotice
		}
		return s, cmd
	}
	return s, nil
}

func (s *DrillScreen) submit() (screen.Screen, tea.Cmd) {
	st := s.machine.State()
	answer := s.input.Value()

	if st.Mode != session.ModePunishment {
		if st.Pending() {
			return s, nil
		}
		ws := s.machine.Dispatch(context.Background(), session.Submit{Answer: answer})
		return s, s.after(s.schedule(ws))
	}

	before, _ := s.machine.Head()
	ws := s.machine.Dispatch(context.Background(), session.Submit{Answer: answer})
	after, ok := s.machine.Head()
	switch {
	case s.machine.State().Mode != session.ModePunishment:
		s.notice = ""
	case ok && after.Current == before.Current:
		s.notice = "That line doesn't match. It did not count."
	default:
		s.notice = ""
	}
	s.input.Reset()
	return s, s.after(s.schedule(ws))
}

func (s *DrillScreen) handleConfirm(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		s.confirmLeave = false
		return s.leave()
	case "n", "N", "esc":
		s.confirmLeave = false
	}
	return s, nil
}

func (s *DrillScreen) leave() (screen.Screen, tea.Cmd) {
	if err := s.machine.LeaveDay(context.Background()); err != nil {
		s.notice = err.Error()
		return s, nil
	}
	return s, s.after(nil)
}

// after syncs the input with the machine and pops back to the plan once
// the day is over.
func (s *DrillScreen) after(cmd tea.Cmd) tea.Cmd {
	st := s.machine.State()
	if st.Mode == session.ModePlan || st.Mode == session.ModeSelect {
		s.left = true
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	if st.Prompt != s.prompt {
		s.prompt = st.Prompt
		s.input.Reset()
		s.syncInput()
	}
	return cmd
}

// syncInput sets paste blocking and the rune limit for the current prompt.
// A copy-out line may be longer than any typed answer.
func (s *DrillScreen) syncInput() {
	limit := answerCharLimit
	punish := s.machine.State().Mode == session.ModePunishment
	if head, ok := s.machine.Head(); punish && ok {
		limit = max(limit, utf8.RuneCountInString(session.CopyOutLine(head.Term)))
	}
	s.input.BlockPaste = punish
	s.input.Model.CharLimit = limit
}

// typing reports whether the current mode accepts text.
func (s *DrillScreen) typing() bool {
	switch s.machine.State().Mode {
	case session.ModeQuiz, session.ModeRetest, session.ModePunishment:
		return !s.confirmLeave
	}
	return false
}

func (s *DrillScreen) View(width, height int) string {
	if s.confirmLeave {
		return s.renderConfirm(width)
	}
	switch s.machine.State().Mode {
	case session.ModeStudy:
		return s.renderStudy(width, height)
	case session.ModeQuiz:
		return s.renderQuiz(width, height)
	case session.ModeResult:
		return s.renderResult(width, height)
	case session.ModePunishment:
		return s.renderPunishment(width, height)
	case session.ModeRetest:
		return s.renderRetest(width, height)
	}
	return ""
}
