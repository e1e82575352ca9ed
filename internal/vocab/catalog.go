package vocab

import (
	"fmt"
	"slices"
)

// Catalog is an in-memory Source over a fixed set of topics.
type Catalog struct {
	wordsPerDay int
	topics      []Topic
	byID        map[string]*Topic
}

var _ Source = (*Catalog)(nil)

// NewCatalog validates topics and partitions them into day units of
// wordsPerDay terms each.
func NewCatalog(topics []Topic, wordsPerDay int) (*Catalog, error) {
	if wordsPerDay <= 0 {
		return nil, fmt.Errorf("words per day must be positive, got %d", wordsPerDay)
	}
	if err := Validate("catalog", topics); err != nil {
		return nil, err
	}

	c := &Catalog{
		wordsPerDay: wordsPerDay,
		topics:      slices.Clone(topics),
		byID:        make(map[string]*Topic, len(topics)),
	}
	for i := range c.topics {
		c.topics[i].Terms = slices.Clone(c.topics[i].Terms)
		c.byID[c.topics[i].ID] = &c.topics[i]
	}
	return c, nil
}

// WordsPerDay returns the day unit size.
func (c *Catalog) WordsPerDay() int {
	return c.wordsPerDay
}

func (c *Catalog) Topics() []TopicInfo {
	infos := make([]TopicInfo, 0, len(c.topics))
	for _, t := range c.topics {
		infos = append(infos, TopicInfo{ID: t.ID, Name: displayName(t), TermCount: len(t.Terms)})
	}
	return infos
}

// Topic returns the summary for a single topic.
func (c *Catalog) Topic(id string) (TopicInfo, bool) {
	t, ok := c.byID[id]
	if !ok {
		return TopicInfo{}, false
	}
	return TopicInfo{ID: t.ID, Name: displayName(*t), TermCount: len(t.Terms)}, true
}

func (c *Catalog) DayCount(topicID string) int {
	t, ok := c.byID[topicID]
	if !ok {
		return 0
	}
	return (len(t.Terms) + c.wordsPerDay - 1) / c.wordsPerDay
}

func (c *Catalog) DayUnit(topicID string, day int) ([]Term, error) {
	t, ok := c.byID[topicID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, topicID)
	}
	if day < 1 || day > c.DayCount(topicID) {
		return nil, fmt.Errorf("%w: day %d of %q", ErrDayOutOfRange, day, topicID)
	}
	start := (day - 1) * c.wordsPerDay
	end := min(start+c.wordsPerDay, len(t.Terms))
	return slices.Clone(t.Terms[start:end]), nil
}

// DaySize returns the number of terms in a day unit without copying them.
func (c *Catalog) DaySize(topicID string, day int) int {
	t, ok := c.byID[topicID]
	if !ok || day < 1 || day > c.DayCount(topicID) {
		return 0
	}
	return min(day*c.wordsPerDay, len(t.Terms)) - (day-1)*c.wordsPerDay
}

func displayName(t Topic) string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}
