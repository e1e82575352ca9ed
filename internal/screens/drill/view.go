package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
	"github.com/abhisek/lexiz/internal/vocab"
)

const cardWidth = 56

func (s *DrillScreen) renderStudy(width, height int) string {
	st := s.machine.State()
	terms := s.machine.Terms()
	term, ok := s.machine.CurrentTerm()
	if !ok {
		return ""
	}

	var card strings.Builder
	card.WriteString(theme.Term.Render(term.Text))
	if term.Category != "" {
		card.WriteString("  ")
		card.WriteString(theme.Category.Render(term.Category))
	}
	card.WriteString("\n\n")
	if st.Revealed {
		card.WriteString(theme.Meaning.Render(term.Meaning))
	} else {
		card.WriteString(theme.Hint.Render("press space to reveal"))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("Card %d of %d", st.Cursor+1, len(terms))))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, theme.Card.Width(cardWidth).Render(card.String())))
	b.WriteString("\n\n")
	if st.Cursor == len(terms)-1 {
		b.WriteString(theme.Subtitle.Width(width).Render("Next starts the quiz."))
	}
	return b.String()
}

func (s *DrillScreen) renderQuiz(width, height int) string {
	st := s.machine.State()
	term, _ := s.machine.CurrentTerm()
	info := fmt.Sprintf("Question %d/%d  ·  Score %d", st.Cursor+1, len(s.machine.Terms()), st.Score)
	return s.renderPrompt(width, info, term)
}

func (s *DrillScreen) renderRetest(width, height int) string {
	head, _ := s.machine.Head()
	info := fmt.Sprintf("Retest  ·  %d left in queue", s.machine.QueueLen())
	return s.renderPrompt(width, info, head.Term)
}

// renderPrompt shows the definition, the countdown, the input and any grade.
func (s *DrillScreen) renderPrompt(width int, info string, term vocab.Term) string {
	st := s.machine.State()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(info))
	b.WriteString("\n\n")

	var card strings.Builder
	card.WriteString(theme.Meaning.Render(term.Meaning))
	if term.Category != "" {
		card.WriteString("\n")
		card.WriteString(theme.Category.Render(term.Category))
	}
	b.WriteString(layout.Center(width, theme.Card.Width(cardWidth).Render(card.String())))
	b.WriteString("\n\n")

	timer := theme.Countdown(st.TimeRemaining).Render(fmt.Sprintf("⏱ %ds", st.TimeRemaining))
	b.WriteString(layout.Center(width, timer))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, s.input.View()))
	b.WriteString("\n\n")

	switch st.LastGrade {
	case session.GradeCorrect:
		b.WriteString(layout.Center(width, theme.Correct.Render("✔ Correct")))
	case session.GradeIncorrect:
		line := theme.Incorrect.Render("✘ Incorrect")
		if st.Expected != "" {
			line += theme.Body.Render("  answer: ") + theme.Term.Render(st.Expected)
		}
		b.WriteString(layout.Center(width, line))
	}
	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(width).Render(s.notice))
	}
	return b.String()
}

func (s *DrillScreen) renderResult(width, height int) string {
	st := s.machine.State()
	total := len(s.machine.Terms())

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Quiz complete"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(width).Align(lipgloss.Center).
		Render(fmt.Sprintf("Score %d/%d", st.Score, total)))
	b.WriteString("\n\n")

	entries := s.machine.QueueEntries()
	if len(entries) == 0 {
		b.WriteString(theme.Correct.Width(width).Align(lipgloss.Center).Render("No mistakes. The day is yours."))
		return b.String()
	}

	b.WriteString(theme.Warning.Width(width).Align(lipgloss.Center).
		Render(fmt.Sprintf("%d term(s) to copy out", len(entries))))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, renderQueue(entries)))
	return b.String()
}

func (s *DrillScreen) renderPunishment(width, height int) string {
	head, ok := s.machine.Head()
	if !ok {
		return ""
	}

	var card strings.Builder
	card.WriteString(theme.Hint.Render("Type this line exactly:"))
	card.WriteString("\n\n")
	card.WriteString(theme.Term.Render(session.CopyOutLine(head.Term)))
	card.WriteString("\n\n")
	card.WriteString(components.NewProgressBar("Copies", head.Current, head.Required, cardWidth-6).View())

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("Punishment  ·  %d in queue", s.machine.QueueLen())))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, theme.PunishCard.Width(cardWidth).Render(card.String())))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, s.input.View()))
	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Warning.Width(width).Align(lipgloss.Center).Render(s.notice))
	}

	if !layout.IsCompactHeight(height) && s.machine.QueueLen() > 1 {
		b.WriteString("\n\n")
		b.WriteString(layout.Center(width, renderQueue(s.machine.QueueEntries()[1:])))
	}
	return b.String()
}

func renderQueue(entries []session.Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Term.Render(e.Term.Text))
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  ×%d", e.Required)))
	}
	return b.String()
}

func (s *DrillScreen) renderConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Warning.Width(width).Align(lipgloss.Center).Render("Leave this day?"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render("The day will not be marked complete. (y/n)"))
	return b.String()
}
