package session

import (
	"strings"

	"github.com/abhisek/lexiz/internal/vocab"
)

// CheckAnswer reports whether answer names the term. Surrounding whitespace
// and case are ignored.
func CheckAnswer(t vocab.Term, answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == strings.ToLower(t.Text)
}

// CopyOutLine is the literal a learner types during punishment.
func CopyOutLine(t vocab.Term) string {
	return t.Text + " - " + t.Meaning
}

// CheckCopyOut reports whether line is an exact copy-out of the term,
// ignoring surrounding whitespace and case.
func CheckCopyOut(t vocab.Term, line string) bool {
	return strings.ToLower(strings.TrimSpace(line)) == strings.ToLower(CopyOutLine(t))
}
