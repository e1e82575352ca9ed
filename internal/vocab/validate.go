package vocab

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks struct constraints on every topic and rejects duplicate
// topic ids and duplicate term ids within a topic.
func Validate(source string, topics []Topic) error {
	if len(topics) == 0 {
		return &ValidationError{Source: source, Err: fmt.Errorf("no topics")}
	}

	seenTopics := make(map[string]bool, len(topics))
	for i := range topics {
		t := &topics[i]
		if err := validate.Struct(t); err != nil {
			return &ValidationError{Source: source, Err: fmt.Errorf("topic %d (%q): %w", i, t.ID, err)}
		}
		if seenTopics[t.ID] {
			return &ValidationError{Source: source, Err: fmt.Errorf("duplicate topic id %q", t.ID)}
		}
		seenTopics[t.ID] = true

		seenTerms := make(map[int]bool, len(t.Terms))
		for _, term := range t.Terms {
			if seenTerms[term.ID] {
				return &ValidationError{Source: source, Err: fmt.Errorf("topic %q: duplicate term id %d", t.ID, term.ID)}
			}
			seenTerms[term.ID] = true
		}
	}
	return nil
}
