package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/vocab"
)

const testThinkingTime = 3

type recorder struct {
	entries []store.DaySessionData
}

func (r *recorder) AppendDaySession(_ context.Context, d store.DaySessionData) error {
	r.entries = append(r.entries, d)
	return nil
}

func (r *recorder) actions() []string {
	var out []string
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

func testTopic(id string, n int) vocab.Topic {
	t := vocab.Topic{ID: id, Name: id}
	for i := 1; i <= n; i++ {
		t.Terms = append(t.Terms, vocab.Term{
			ID:      i,
			Text:    fmt.Sprintf("word%d", i),
			Meaning: fmt.Sprintf("meaning %d", i),
		})
	}
	return t
}

func testConfig() Config {
	return Config{ThinkingTime: testThinkingTime, TickInterval: time.Second, SettleDelay: 1500 * time.Millisecond}
}

// newTestMachine builds a machine over topic "t" with n terms split into
// days of perDay terms.
func newTestMachine(t *testing.T, n, perDay int, done ...string) (*Machine, *progress.MemoryStore, *recorder) {
	t.Helper()
	cat, err := vocab.NewCatalog([]vocab.Topic{testTopic("t", n)}, perDay)
	require.NoError(t, err)
	ps := progress.NewMemoryStore(done...)
	rec := &recorder{}
	m, err := NewMachine(context.Background(), testConfig(), cat, ps, WithRecorder(rec))
	require.NoError(t, err)
	return m, ps, rec
}

// startQuiz selects topic "t", starts day and steps through study.
func startQuiz(t *testing.T, m *Machine, day int) []Wakeup {
	t.Helper()
	ctx := context.Background()
	if m.State().Mode == ModeSelect {
		require.NoError(t, m.SelectTopic("t"))
	}
	require.NoError(t, m.StartDay(ctx, day))
	require.Equal(t, ModeStudy, m.State().Mode)

	for i := 0; i < len(m.Terms())-1; i++ {
		require.Empty(t, m.Next())
	}
	ws := m.Next()
	require.Equal(t, ModeQuiz, m.State().Mode)
	return ws
}

func settleOf(t *testing.T, ws []Wakeup) SettleElapsed {
	t.Helper()
	for _, w := range ws {
		if s, ok := w.Event.(SettleElapsed); ok {
			return s
		}
	}
	t.Fatalf("no settle wakeup in %v", ws)
	return SettleElapsed{}
}

func tickOf(t *testing.T, ws []Wakeup) Tick {
	t.Helper()
	for _, w := range ws {
		if tk, ok := w.Event.(Tick); ok {
			return tk
		}
	}
	t.Fatalf("no tick wakeup in %v", ws)
	return Tick{}
}

// answer submits a quiz or retest answer and lets the settle delay elapse.
func answer(t *testing.T, m *Machine, text string) []Wakeup {
	t.Helper()
	ctx := context.Background()
	ws := m.Dispatch(ctx, Submit{Answer: text})
	return m.Dispatch(ctx, settleOf(t, ws))
}

// timeout delivers ticks until the prompt expires, then lets it settle.
func timeout(t *testing.T, m *Machine, ws []Wakeup) []Wakeup {
	t.Helper()
	ctx := context.Background()
	tk := tickOf(t, ws)
	for i := 0; i < testThinkingTime-1; i++ {
		next := m.Dispatch(ctx, tk)
		assert.Equal(t, tk, tickOf(t, next))
	}
	ws = m.Dispatch(ctx, tk)
	assert.Equal(t, GradeIncorrect, m.State().LastGrade)
	return m.Dispatch(ctx, settleOf(t, ws))
}

func copyOut(m *Machine, times int) []Wakeup {
	var ws []Wakeup
	for i := 0; i < times; i++ {
		head, _ := m.Head()
		ws = m.Dispatch(context.Background(), Submit{Answer: CopyOutLine(head.Term)})
	}
	return ws
}

func TestNewMachine_RejectsBadConfig(t *testing.T) {
	cat, err := vocab.NewCatalog([]vocab.Topic{testTopic("t", 1)}, 1)
	require.NoError(t, err)

	for _, cfg := range []Config{
		{ThinkingTime: 0, TickInterval: time.Second},
		{ThinkingTime: 1, TickInterval: 0},
		{ThinkingTime: 1, TickInterval: time.Second, SettleDelay: -1},
	} {
		_, err := NewMachine(context.Background(), cfg, cat, progress.NewMemoryStore())
		assert.Error(t, err)
	}
}

func TestScenarioA_AllCorrect(t *testing.T) {
	m, ps, rec := newTestMachine(t, 5, 5)
	ctx := context.Background()

	startQuiz(t, m, 1)
	for i := 1; i <= 5; i++ {
		require.Equal(t, ModeQuiz, m.State().Mode)
		cur, ok := m.CurrentTerm()
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("word%d", i), cur.Text)
		answer(t, m, cur.Text)
	}

	st := m.State()
	assert.Equal(t, ModeResult, st.Mode)
	assert.Equal(t, 5, st.Score)
	assert.Equal(t, 0, m.QueueLen())

	require.NoError(t, m.AcceptResult(ctx))
	assert.Equal(t, ModePlan, m.State().Mode)
	assert.True(t, m.IsCompleted("t", 1))
	assert.True(t, ps.Load(ctx).Has("t", 1))
	assert.Equal(t, []string{ActionStart, ActionFinish}, rec.actions())
	assert.Equal(t, 5, rec.entries[1].Score)
	assert.Equal(t, 5, rec.entries[1].Total)
}

func TestScenarioB_TimeoutThenCorrect(t *testing.T) {
	m, _, _ := newTestMachine(t, 2, 2)

	ws := startQuiz(t, m, 1)
	assert.Equal(t, testThinkingTime, m.State().TimeRemaining)

	ws = timeout(t, m, ws)
	assert.Equal(t, ModeQuiz, m.State().Mode)
	assert.Equal(t, 1, m.State().Cursor)
	tickOf(t, ws)

	answer(t, m, "WORD2 ")

	st := m.State()
	assert.Equal(t, ModeResult, st.Mode)
	assert.Equal(t, 1, st.Score)
	assert.Equal(t, 1, st.Missed)

	entries := m.QueueEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "word1", entries[0].Term.Text)
	assert.Equal(t, PunishmentBase, entries[0].Required)
	assert.Equal(t, 0, entries[0].Current)
}

func TestScenarioC_PunishmentThenFailedRetest(t *testing.T) {
	m, _, _ := newTestMachine(t, 1, 1)
	ctx := context.Background()

	startQuiz(t, m, 1)
	answer(t, m, "wrong")
	require.NoError(t, m.AcceptResult(ctx))
	require.Equal(t, ModePunishment, m.State().Mode)

	assert.Empty(t, copyOut(m, PunishmentBase-1))
	head, _ := m.Head()
	assert.Equal(t, PunishmentBase-1, head.Current)
	assert.Equal(t, ModePunishment, m.State().Mode)

	ws := copyOut(m, 1)
	assert.Equal(t, ModeRetest, m.State().Mode)
	assert.Equal(t, testThinkingTime, m.State().TimeRemaining)
	assert.Equal(t, GradeNone, m.State().LastGrade)
	tickOf(t, ws)

	answer(t, m, "still wrong")
	assert.Equal(t, ModePunishment, m.State().Mode)
	head, ok := m.Head()
	require.True(t, ok)
	assert.Equal(t, "word1", head.Term.Text)
	assert.Equal(t, PunishmentBase+PunishmentStep, head.Required)
	assert.Equal(t, 0, head.Current)
	assert.Equal(t, 1, m.QueueLen())
}

func TestScenarioD_PassMovesToNextEntry(t *testing.T) {
	m, _, _ := newTestMachine(t, 2, 2)
	ctx := context.Background()

	startQuiz(t, m, 1)
	answer(t, m, "x")
	answer(t, m, "y")
	require.Equal(t, 2, m.QueueLen())
	require.NoError(t, m.AcceptResult(ctx))

	// Fail the first retest once so the head carries history.
	copyOut(m, PunishmentBase)
	answer(t, m, "nope")
	copyOut(m, PunishmentBase+PunishmentStep)
	require.Equal(t, ModeRetest, m.State().Mode)
	answer(t, m, "word1")

	assert.Equal(t, ModePunishment, m.State().Mode)
	assert.Equal(t, 1, m.QueueLen())
	head, ok := m.Head()
	require.True(t, ok)
	assert.Equal(t, "word2", head.Term.Text)
	assert.Equal(t, 0, head.Current)
	assert.Equal(t, PunishmentBase, head.Required)
}

func TestRetestPassOnLastEntryCommits(t *testing.T) {
	m, ps, rec := newTestMachine(t, 1, 1)
	ctx := context.Background()

	startQuiz(t, m, 1)
	answer(t, m, "")
	require.NoError(t, m.AcceptResult(ctx))
	copyOut(m, PunishmentBase)
	answer(t, m, "word1")

	assert.Equal(t, ModePlan, m.State().Mode)
	assert.Equal(t, 0, m.QueueLen())
	assert.Equal(t, 1, ps.Load(ctx).Len())
	assert.True(t, m.IsCompleted("t", 1))
	assert.Equal(t, []string{ActionStart, ActionFinish}, rec.actions())
	assert.Equal(t, 1, rec.entries[1].Missed)
}

func TestRetestTimeoutEscalates(t *testing.T) {
	m, _, _ := newTestMachine(t, 1, 1)
	ctx := context.Background()

	startQuiz(t, m, 1)
	answer(t, m, "miss")
	require.NoError(t, m.AcceptResult(ctx))
	ws := copyOut(m, PunishmentBase)

	timeout(t, m, ws)
	head, _ := m.Head()
	assert.Equal(t, ModePunishment, m.State().Mode)
	assert.Equal(t, PunishmentBase+PunishmentStep, head.Required)
}

func TestMistypedCopyOutIsFree(t *testing.T) {
	m, _, _ := newTestMachine(t, 1, 1)
	ctx := context.Background()

	startQuiz(t, m, 1)
	answer(t, m, "miss")
	require.NoError(t, m.AcceptResult(ctx))
	copyOut(m, 3)
	before := m.State()

	assert.Empty(t, m.Dispatch(ctx, Submit{Answer: "word1 meaning 1"}))
	assert.Empty(t, m.Dispatch(ctx, Submit{Answer: "word1"}))

	head, _ := m.Head()
	assert.Equal(t, 3, head.Current)
	assert.Equal(t, PunishmentBase, head.Required)
	assert.Equal(t, before, m.State())
}

func TestSubmitWhileGradePendingIsNoop(t *testing.T) {
	m, _, _ := newTestMachine(t, 2, 2)
	ctx := context.Background()

	startQuiz(t, m, 1)
	ws := m.Dispatch(ctx, Submit{Answer: "word1"})
	settle := settleOf(t, ws)

	assert.Empty(t, m.Dispatch(ctx, Submit{Answer: "word1"}))
	assert.Empty(t, m.Dispatch(ctx, Submit{Answer: "wrong"}))
	assert.Equal(t, 1, m.State().Score)
	assert.Equal(t, 0, m.QueueLen())
	assert.Equal(t, GradeCorrect, m.State().LastGrade)

	m.Dispatch(ctx, settle)
	assert.Equal(t, 1, m.State().Cursor)
	assert.Equal(t, GradeNone, m.State().LastGrade)
}

func TestTickAfterSubmitIsStale(t *testing.T) {
	m, _, _ := newTestMachine(t, 2, 2)
	ctx := context.Background()

	tk := tickOf(t, startQuiz(t, m, 1))
	m.Dispatch(ctx, Submit{Answer: "word1"})

	for i := 0; i < testThinkingTime+1; i++ {
		assert.Empty(t, m.Dispatch(ctx, tk))
	}
	assert.Equal(t, 0, m.QueueLen(), "late tick must not grade the prompt again")
	assert.Equal(t, 1, m.State().Score)
}

func TestIncorrectRevealsExpected(t *testing.T) {
	m, _, _ := newTestMachine(t, 2, 2)
	ctx := context.Background()

	startQuiz(t, m, 1)
	ws := m.Dispatch(ctx, Submit{Answer: "nope"})
	assert.Equal(t, GradeIncorrect, m.State().LastGrade)
	assert.Equal(t, "word1", m.State().Expected)

	m.Dispatch(ctx, settleOf(t, ws))
	assert.Empty(t, m.State().Expected)
}

func TestLeaveDayCancelsPendingWork(t *testing.T) {
	m, ps, rec := newTestMachine(t, 2, 2)
	ctx := context.Background()

	tk := tickOf(t, startQuiz(t, m, 1))
	settle := settleOf(t, m.Dispatch(ctx, Submit{Answer: "nope"}))

	require.NoError(t, m.LeaveDay(ctx))
	assert.Equal(t, ModePlan, m.State().Mode)
	assert.Empty(t, m.Dispatch(ctx, settle))
	assert.Empty(t, m.Dispatch(ctx, tk))
	assert.Equal(t, ModePlan, m.State().Mode)
	assert.Equal(t, 0, ps.Load(ctx).Len())
	assert.Equal(t, []string{ActionStart, ActionAbandon}, rec.actions())

	// A settle from the abandoned attempt must not touch a fresh one.
	startQuiz(t, m, 1)
	assert.Empty(t, m.Dispatch(ctx, settle))
	assert.Equal(t, 0, m.State().Cursor)
	assert.Equal(t, ModeQuiz, m.State().Mode)
}

func TestLeaveDayFromPlanIsRejected(t *testing.T) {
	m, _, _ := newTestMachine(t, 2, 2)
	require.NoError(t, m.SelectTopic("t"))
	err := m.LeaveDay(context.Background())
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestStartDay_LockAndRange(t *testing.T) {
	m, _, _ := newTestMachine(t, 10, 5)
	ctx := context.Background()
	require.NoError(t, m.SelectTopic("t"))
	before := m.State()

	err := m.StartDay(ctx, 2)
	assert.True(t, errors.Is(err, ErrDayLocked))
	assert.Equal(t, before, m.State())

	err = m.StartDay(ctx, 3)
	assert.True(t, errors.Is(err, vocab.ErrDayOutOfRange))
	err = m.StartDay(ctx, 0)
	assert.True(t, errors.Is(err, vocab.ErrDayOutOfRange))
	assert.Equal(t, before, m.State())

	assert.True(t, m.IsUnlocked("t", 1))
	assert.False(t, m.IsUnlocked("t", 2))
	assert.False(t, m.IsUnlocked("t", 3))
}

func TestStartDay_UnlockedAfterCompletion(t *testing.T) {
	m, _, _ := newTestMachine(t, 10, 5, progress.DayID("t", 1))
	ctx := context.Background()
	require.NoError(t, m.SelectTopic("t"))

	assert.True(t, m.IsUnlocked("t", 2))
	require.NoError(t, m.StartDay(ctx, 2))
	assert.Equal(t, 2, m.State().Day)
	assert.Equal(t, 6, m.Terms()[0].ID)
	assert.NotEmpty(t, m.State().SessionID)
}

func TestStartDay_ResetsState(t *testing.T) {
	m, _, _ := newTestMachine(t, 2, 2)
	ctx := context.Background()

	startQuiz(t, m, 1)
	answer(t, m, "word1")
	answer(t, m, "nope")
	firstSession := m.State().SessionID
	require.NoError(t, m.LeaveDay(ctx))

	require.NoError(t, m.StartDay(ctx, 1))
	st := m.State()
	assert.Equal(t, ModeStudy, st.Mode)
	assert.Equal(t, 0, st.Cursor)
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 0, m.QueueLen())
	assert.NotEqual(t, firstSession, st.SessionID)
}

func TestCompletionIsIdempotent(t *testing.T) {
	m, ps, _ := newTestMachine(t, 1, 1)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		startQuiz(t, m, 1)
		answer(t, m, "word1")
		require.NoError(t, m.AcceptResult(ctx))
	}
	assert.Equal(t, 1, ps.Load(ctx).Len())
	assert.Equal(t, 1, m.TotalCompleted())
	assert.Equal(t, 1, m.CompletedCount("t"))
}

func TestSelectTopic(t *testing.T) {
	m, _, _ := newTestMachine(t, 1, 1)

	err := m.SelectTopic("missing")
	assert.True(t, errors.Is(err, vocab.ErrUnknownTopic))
	assert.Equal(t, ModeSelect, m.State().Mode)

	require.NoError(t, m.SelectTopic("t"))
	assert.Equal(t, ModePlan, m.State().Mode)
	assert.Equal(t, "t", m.State().TopicID)

	assert.True(t, errors.Is(m.SelectTopic("t"), ErrInvalidTransition))

	require.NoError(t, m.BackToTopics())
	assert.Equal(t, ModeSelect, m.State().Mode)
	assert.Empty(t, m.State().TopicID)
	assert.True(t, errors.Is(m.BackToTopics(), ErrInvalidTransition))
}

func TestStudyNavigation(t *testing.T) {
	m, _, _ := newTestMachine(t, 3, 3)
	require.NoError(t, m.SelectTopic("t"))
	require.NoError(t, m.StartDay(context.Background(), 1))

	m.Prev()
	assert.Equal(t, 0, m.State().Cursor)

	m.Flip()
	assert.True(t, m.State().Revealed)
	m.Next()
	assert.Equal(t, 1, m.State().Cursor)
	assert.False(t, m.State().Revealed)

	m.Flip()
	m.Prev()
	assert.Equal(t, 0, m.State().Cursor)
	assert.False(t, m.State().Revealed)

	cur, ok := m.CurrentTerm()
	require.True(t, ok)
	assert.Equal(t, "word1", cur.Text)
}

func TestEnteringQuizResetsCounters(t *testing.T) {
	m, _, _ := newTestMachine(t, 2, 2)
	ws := startQuiz(t, m, 1)

	st := m.State()
	assert.Equal(t, 0, st.Cursor)
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, testThinkingTime, st.TimeRemaining)
	assert.Equal(t, time.Second, ws[0].After)
}

func TestAcceptResultOutsideResult(t *testing.T) {
	m, _, _ := newTestMachine(t, 1, 1)
	assert.True(t, errors.Is(m.AcceptResult(context.Background()), ErrInvalidTransition))
}

func TestResetProgress(t *testing.T) {
	m, ps, _ := newTestMachine(t, 10, 5, progress.DayID("t", 1), progress.DayID("t", 2))
	ctx := context.Background()
	assert.Equal(t, 2, m.CompletedCount("t"))

	require.NoError(t, m.ResetProgress(ctx))
	assert.Equal(t, 0, m.TotalCompleted())
	assert.Equal(t, 0, ps.Load(ctx).Len())
	assert.False(t, m.IsUnlocked("t", 2))
}

// emptyDaySource reports one day with no terms.
type emptyDaySource struct{}

func (emptyDaySource) Topics() []vocab.TopicInfo {
	return []vocab.TopicInfo{{ID: "t", Name: "t"}}
}
func (emptyDaySource) DayUnit(string, int) ([]vocab.Term, error) { return nil, nil }
func (emptyDaySource) DayCount(string) int                       { return 1 }

func TestZeroTermDayGoesStraightToResult(t *testing.T) {
	ps := progress.NewMemoryStore()
	m, err := NewMachine(context.Background(), testConfig(), emptyDaySource{}, ps)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, m.SelectTopic("t"))
	require.NoError(t, m.StartDay(ctx, 1))
	assert.Empty(t, m.Next())

	st := m.State()
	assert.Equal(t, ModeResult, st.Mode)
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 0, m.QueueLen())

	require.NoError(t, m.AcceptResult(ctx))
	assert.True(t, m.IsCompleted("t", 1))
}

func TestPromptCounterAdvances(t *testing.T) {
	m, _, _ := newTestMachine(t, 2, 2)
	startQuiz(t, m, 1)
	p := m.State().Prompt

	answer(t, m, "word1")
	assert.Greater(t, m.State().Prompt, p)
}
