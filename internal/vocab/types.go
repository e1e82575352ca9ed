package vocab

// Term is a single vocabulary entry.
type Term struct {
	ID       int    `yaml:"id" json:"id" validate:"gte=0"`
	Text     string `yaml:"text" json:"text" validate:"required"`
	Category string `yaml:"category" json:"category"`
	Meaning  string `yaml:"meaning" json:"meaning" validate:"required"`
}

// Topic is a named, ordered list of terms.
type Topic struct {
	ID    string `yaml:"id" json:"id" validate:"required"`
	Name  string `yaml:"name" json:"name"`
	Terms []Term `yaml:"terms" json:"terms" validate:"required,min=1,dive"`
}

// TopicInfo summarizes a topic for listing.
type TopicInfo struct {
	ID        string
	Name      string
	TermCount int
}

// Source exposes topics partitioned into day units. Implementations are
// read-only and deterministic.
type Source interface {
	// Topics returns every topic in display order.
	Topics() []TopicInfo

	// DayUnit returns the terms for the given 1-based day of a topic.
	DayUnit(topicID string, day int) ([]Term, error)

	// DayCount returns ceil(termCount / wordsPerDay), or 0 for unknown topics.
	DayCount(topicID string) int
}

// document is the on-disk shape of a vocabulary file.
type document struct {
	Topics []Topic `yaml:"topics" json:"topics"`
}
