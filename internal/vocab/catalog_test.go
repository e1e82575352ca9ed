package vocab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTopic(id string, n int) Topic {
	t := Topic{ID: id, Name: "Topic " + id}
	for i := 1; i <= n; i++ {
		t.Terms = append(t.Terms, Term{ID: i, Text: id + "-word", Meaning: "meaning"})
	}
	return t
}

func TestCatalog_DayCount(t *testing.T) {
	c, err := NewCatalog([]Topic{makeTopic("a", 25), makeTopic("b", 10), makeTopic("c", 1)}, 10)
	require.NoError(t, err)

	assert.Equal(t, 3, c.DayCount("a"))
	assert.Equal(t, 1, c.DayCount("b"))
	assert.Equal(t, 1, c.DayCount("c"))
	assert.Equal(t, 0, c.DayCount("missing"))
}

func TestCatalog_DayUnitPartition(t *testing.T) {
	c, err := NewCatalog([]Topic{makeTopic("a", 25)}, 10)
	require.NoError(t, err)

	tests := []struct {
		day      int
		wantLen  int
		wantFrom int
	}{
		{1, 10, 1},
		{2, 10, 11},
		{3, 5, 21},
	}
	for _, tt := range tests {
		terms, err := c.DayUnit("a", tt.day)
		require.NoError(t, err)
		assert.Len(t, terms, tt.wantLen, "day %d", tt.day)
		assert.Equal(t, tt.wantFrom, terms[0].ID, "day %d", tt.day)
		assert.Equal(t, tt.wantLen, c.DaySize("a", tt.day))
	}
}

func TestCatalog_DayUnitErrors(t *testing.T) {
	c, err := NewCatalog([]Topic{makeTopic("a", 5)}, 10)
	require.NoError(t, err)

	_, err = c.DayUnit("nope", 1)
	assert.True(t, errors.Is(err, ErrUnknownTopic))

	_, err = c.DayUnit("a", 0)
	assert.True(t, errors.Is(err, ErrDayOutOfRange))

	_, err = c.DayUnit("a", 2)
	assert.True(t, errors.Is(err, ErrDayOutOfRange))
	assert.Equal(t, 0, c.DaySize("a", 2))
}

func TestCatalog_DayUnitReturnsCopy(t *testing.T) {
	c, err := NewCatalog([]Topic{makeTopic("a", 3)}, 10)
	require.NoError(t, err)

	terms, err := c.DayUnit("a", 1)
	require.NoError(t, err)
	terms[0].Text = "changed"

	again, err := c.DayUnit("a", 1)
	require.NoError(t, err)
	assert.Equal(t, "a-word", again[0].Text)
}

func TestCatalog_Topics(t *testing.T) {
	noName := makeTopic("b", 2)
	noName.Name = ""
	c, err := NewCatalog([]Topic{makeTopic("a", 3), noName}, 10)
	require.NoError(t, err)

	got := c.Topics()
	require.Len(t, got, 2)
	assert.Equal(t, TopicInfo{ID: "a", Name: "Topic a", TermCount: 3}, got[0])
	assert.Equal(t, TopicInfo{ID: "b", Name: "b", TermCount: 2}, got[1])

	info, ok := c.Topic("b")
	assert.True(t, ok)
	assert.Equal(t, 2, info.TermCount)
	_, ok = c.Topic("zzz")
	assert.False(t, ok)
}

func TestNewCatalog_Rejects(t *testing.T) {
	_, err := NewCatalog([]Topic{makeTopic("a", 3)}, 0)
	assert.Error(t, err)

	_, err = NewCatalog(nil, 10)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}
