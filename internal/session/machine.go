package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/vocab"
)

// Session log actions.
const (
	ActionStart   = "start"
	ActionFinish  = "finish"
	ActionAbandon = "abandon"
)

// Config holds the drill timing.
type Config struct {
	// ThinkingTime is the countdown start for each timed prompt, in ticks.
	ThinkingTime int

	// TickInterval is the wall-clock time between ticks.
	TickInterval time.Duration

	// SettleDelay is how long a grade is shown before the drill moves on.
	SettleDelay time.Duration
}

// DefaultConfig returns a ten second countdown and a 1.5s settle delay.
func DefaultConfig() Config {
	return Config{
		ThinkingTime: 10,
		TickInterval: time.Second,
		SettleDelay:  1500 * time.Millisecond,
	}
}

// Recorder receives session lifecycle events. store.DaySessionRepo satisfies it.
type Recorder interface {
	AppendDaySession(ctx context.Context, data store.DaySessionData) error
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithRecorder enables the session log.
func WithRecorder(r Recorder) Option {
	return func(m *Machine) { m.recorder = r }
}

// Machine drives a learner through study, quiz, punishment and retest for
// one day unit at a time. It is not safe for concurrent use: callers feed
// it one operation or event at a time and schedule the Wakeups it returns.
type Machine struct {
	cfg      Config
	src      vocab.Source
	progress progress.Store
	logger   *slog.Logger
	recorder Recorder

	state     State
	terms     []vocab.Term
	queue     *Queue
	timer     *Timer
	completed progress.CompletedSet

	settleSeq     uint64
	settlePending bool
}

// NewMachine loads the completed set from ps and starts in select mode.
func NewMachine(ctx context.Context, cfg Config, src vocab.Source, ps progress.Store, opts ...Option) (*Machine, error) {
	if cfg.ThinkingTime <= 0 {
		return nil, fmt.Errorf("thinking time must be positive, got %d", cfg.ThinkingTime)
	}
	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}
	if cfg.SettleDelay < 0 {
		return nil, fmt.Errorf("settle delay must not be negative, got %s", cfg.SettleDelay)
	}

	m := &Machine{
		cfg:      cfg,
		src:      src,
		progress: ps,
		logger:   slog.Default(),
		state:    State{Mode: ModeSelect},
		queue:    NewQueue(),
		timer:    NewTimer(cfg.ThinkingTime),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.completed = ps.Load(ctx)
	return m, nil
}

// SelectTopic moves from select to plan for the given topic.
func (m *Machine) SelectTopic(topicID string) error {
	if m.state.Mode != ModeSelect {
		return fmt.Errorf("select topic in %s: %w", m.state.Mode, ErrInvalidTransition)
	}
	if !m.hasTopic(topicID) {
		return fmt.Errorf("%w: %q", vocab.ErrUnknownTopic, topicID)
	}
	m.state = State{Mode: ModePlan, TopicID: topicID, Prompt: m.state.Prompt}
	return nil
}

// BackToTopics returns from plan to select.
func (m *Machine) BackToTopics() error {
	if m.state.Mode != ModePlan {
		return fmt.Errorf("back to topics in %s: %w", m.state.Mode, ErrInvalidTransition)
	}
	m.state = State{Mode: ModeSelect, Prompt: m.state.Prompt}
	return nil
}

// StartDay begins studying a day of the selected topic. Locked and
// out-of-range days are rejected before anything changes.
func (m *Machine) StartDay(ctx context.Context, day int) error {
	if m.state.Mode != ModePlan {
		return fmt.Errorf("start day in %s: %w", m.state.Mode, ErrInvalidTransition)
	}
	topicID := m.state.TopicID
	if day < 1 || day > m.src.DayCount(topicID) {
		return fmt.Errorf("%w: day %d of %q", vocab.ErrDayOutOfRange, day, topicID)
	}
	if !progress.Unlocked(m.completed, topicID, day) {
		return fmt.Errorf("%w: day %d of %q", ErrDayLocked, day, topicID)
	}
	terms, err := m.src.DayUnit(topicID, day)
	if err != nil {
		return fmt.Errorf("load day %d of %q: %w", day, topicID, err)
	}

	m.cancelPending()
	m.terms = terms
	m.queue.Clear()
	m.state = State{
		Mode:      ModeStudy,
		TopicID:   topicID,
		Day:       day,
		SessionID: uuid.NewString(),
		Prompt:    m.state.Prompt + 1,
	}

	m.logger.Info("day started", "topic", topicID, "day", day, "terms", len(terms), "session_id", m.state.SessionID)
	m.record(ctx, ActionStart)
	return nil
}

// Next advances the study cursor. Advancing past the last card starts the quiz.
func (m *Machine) Next() []Wakeup {
	if m.state.Mode != ModeStudy {
		return nil
	}
	m.state.Revealed = false
	if m.state.Cursor < len(m.terms)-1 {
		m.state.Cursor++
		return nil
	}
	return m.enterQuiz()
}

// Prev moves the study cursor back, stopping at the first card.
func (m *Machine) Prev() {
	if m.state.Mode != ModeStudy {
		return
	}
	m.state.Revealed = false
	if m.state.Cursor > 0 {
		m.state.Cursor--
	}
}

// Flip toggles the meaning on the current study card.
func (m *Machine) Flip() {
	if m.state.Mode == ModeStudy {
		m.state.Revealed = !m.state.Revealed
	}
}

// Dispatch consumes one event and returns the wakeups to schedule.
// Events that do not apply to the current state are ignored.
func (m *Machine) Dispatch(ctx context.Context, ev Event) []Wakeup {
	switch e := ev.(type) {
	case Submit:
		return m.submit(e.Answer)
	case Tick:
		return m.tick(e.Seq)
	case SettleElapsed:
		return m.settle(ctx, e.Seq)
	default:
		return nil
	}
}

// AcceptResult leaves the result screen. An empty queue completes the day;
// otherwise punishment starts on the head entry.
func (m *Machine) AcceptResult(ctx context.Context) error {
	if m.state.Mode != ModeResult {
		return fmt.Errorf("accept result in %s: %w", m.state.Mode, ErrInvalidTransition)
	}
	if m.queue.Len() == 0 {
		m.commit(ctx)
		return nil
	}
	return m.enterPunishment()
}

// LeaveDay abandons the current day and returns to plan. Timers and
// pending settles are cancelled; nothing is committed.
func (m *Machine) LeaveDay(ctx context.Context) error {
	switch m.state.Mode {
	case ModeStudy, ModeQuiz, ModeResult, ModePunishment, ModeRetest:
	default:
		return fmt.Errorf("leave day in %s: %w", m.state.Mode, ErrInvalidTransition)
	}

	m.cancelPending()
	m.logger.Info("day abandoned", "topic", m.state.TopicID, "day", m.state.Day, "mode", m.state.Mode.String())
	m.record(ctx, ActionAbandon)
	m.toPlan()
	return nil
}

// ResetProgress clears every completed day, in memory and in the store.
func (m *Machine) ResetProgress(ctx context.Context) error {
	m.completed = progress.NewCompletedSet()
	if err := m.progress.Clear(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	m.logger.Info("progress reset")
	return nil
}

func (m *Machine) submit(answer string) []Wakeup {
	switch m.state.Mode {
	case ModeQuiz, ModeRetest:
		if m.state.Pending() {
			return nil
		}
		return m.grade(answer, false)
	case ModePunishment:
		return m.copyOut(answer)
	default:
		return nil
	}
}

func (m *Machine) tick(seq uint64) []Wakeup {
	switch m.timer.Tick(seq) {
	case TickRunning:
		m.state.TimeRemaining = m.timer.Remaining()
		return []Wakeup{{After: m.cfg.TickInterval, Event: Tick{Seq: seq}}}
	case TickExpired:
		m.state.TimeRemaining = 0
		if m.state.Pending() {
			return nil
		}
		return m.grade("", true)
	default:
		return nil
	}
}

// grade settles the current quiz or retest prompt. A timeout is always
// incorrect.
func (m *Machine) grade(answer string, timedOut bool) []Wakeup {
	term, ok := m.promptTerm()
	if !ok {
		return nil
	}
	m.timer.Stop()
	m.state.TimeRemaining = m.timer.Remaining()

	if !timedOut && CheckAnswer(term, answer) {
		m.state.LastGrade = GradeCorrect
		if m.state.Mode == ModeQuiz {
			m.state.Score++
		}
	} else {
		m.state.LastGrade = GradeIncorrect
		m.state.Expected = term.Text
		if m.state.Mode == ModeQuiz {
			m.state.Missed++
			if err := m.queue.Push(NewEntry(term)); err != nil {
				m.logger.Error("queue missed term", "term", term.Text, "error", err)
			}
		}
	}

	m.settleSeq++
	m.settlePending = true
	return []Wakeup{{After: m.cfg.SettleDelay, Event: SettleElapsed{Seq: m.settleSeq}}}
}

func (m *Machine) settle(ctx context.Context, seq uint64) []Wakeup {
	if !m.settlePending || seq != m.settleSeq {
		return nil
	}
	m.settlePending = false

	switch m.state.Mode {
	case ModeQuiz:
		if m.state.Cursor < len(m.terms)-1 {
			m.state.Cursor++
			return m.startPrompt()
		}
		m.clearGrade()
		m.state.Mode = ModeResult
		return nil

	case ModeRetest:
		if m.state.LastGrade == GradeCorrect {
			if _, err := m.queue.PopHead(); err != nil {
				m.logger.Error("pop passed term", "error", err)
				return nil
			}
			if m.queue.Len() == 0 {
				m.commit(ctx)
				return nil
			}
		} else {
			head, err := m.queue.PeekHead()
			if err != nil {
				m.logger.Error("escalate failed term", "error", err)
				return nil
			}
			head.Required += PunishmentStep
			head.Current = 0
			if err := m.queue.ReplaceHead(head); err != nil {
				m.logger.Error("escalate failed term", "error", err)
				return nil
			}
		}
		if err := m.enterPunishment(); err != nil {
			m.logger.Error("enter punishment", "error", err)
		}
		return nil
	}
	return nil
}

// copyOut counts a punishment line. Mismatches cost nothing.
func (m *Machine) copyOut(line string) []Wakeup {
	head, err := m.queue.PeekHead()
	if err != nil {
		m.logger.Error("copy-out with empty queue", "error", err)
		return nil
	}
	if !CheckCopyOut(head.Term, line) {
		return nil
	}
	head.Current++
	if err := m.queue.ReplaceHead(head); err != nil {
		m.logger.Error("count copy-out", "term", head.Term.Text, "error", err)
		return nil
	}
	if head.Done() {
		m.state.Mode = ModeRetest
		return m.startPrompt()
	}
	return nil
}

func (m *Machine) enterQuiz() []Wakeup {
	m.state.Cursor = 0
	m.state.Score = 0
	m.state.Missed = 0
	m.queue.Clear()
	if len(m.terms) == 0 {
		m.clearGrade()
		m.state.Mode = ModeResult
		return nil
	}
	m.state.Mode = ModeQuiz
	return m.startPrompt()
}

func (m *Machine) enterPunishment() error {
	head, err := m.queue.PeekHead()
	if err != nil {
		return fmt.Errorf("enter punishment: %w", err)
	}
	head.Current = 0
	if err := m.queue.ReplaceHead(head); err != nil {
		return fmt.Errorf("enter punishment: %w", err)
	}
	m.clearGrade()
	m.state.Mode = ModePunishment
	m.state.Prompt++
	return nil
}

// startPrompt presents a new timed prompt and schedules its first tick.
func (m *Machine) startPrompt() []Wakeup {
	m.clearGrade()
	m.state.Prompt++
	seq := m.timer.Start()
	m.state.TimeRemaining = m.timer.Remaining()
	return []Wakeup{{After: m.cfg.TickInterval, Event: Tick{Seq: seq}}}
}

func (m *Machine) clearGrade() {
	m.state.LastGrade = GradeNone
	m.state.Expected = ""
}

// commit marks the day complete and returns to plan.
func (m *Machine) commit(ctx context.Context) {
	m.cancelPending()
	if m.completed.Add(m.state.TopicID, m.state.Day) {
		m.logger.Info("day completed", "topic", m.state.TopicID, "day", m.state.Day, "score", m.state.Score, "missed", m.state.Missed)
	}
	m.progress.Save(ctx, m.completed)
	m.record(ctx, ActionFinish)
	m.toPlan()
}

func (m *Machine) toPlan() {
	m.terms = nil
	m.queue.Clear()
	m.state = State{Mode: ModePlan, TopicID: m.state.TopicID, Prompt: m.state.Prompt + 1}
}

func (m *Machine) cancelPending() {
	m.timer.Stop()
	m.settleSeq++
	m.settlePending = false
}

func (m *Machine) record(ctx context.Context, action string) {
	if m.recorder == nil {
		return
	}
	err := m.recorder.AppendDaySession(ctx, store.DaySessionData{
		SessionID: m.state.SessionID,
		TopicID:   m.state.TopicID,
		Day:       m.state.Day,
		Action:    action,
		Score:     m.state.Score,
		Total:     len(m.terms),
		Missed:    m.state.Missed,
		At:        time.Now(),
	})
	if err != nil {
		m.logger.Warn("record day session", "action", action, "error", err)
	}
}

// promptTerm is the term under test: the cursor term in quiz, the queue
// head in punishment and retest.
func (m *Machine) promptTerm() (vocab.Term, bool) {
	switch m.state.Mode {
	case ModeStudy, ModeQuiz:
		if m.state.Cursor < len(m.terms) {
			return m.terms[m.state.Cursor], true
		}
	case ModePunishment, ModeRetest:
		if head, err := m.queue.PeekHead(); err == nil {
			return head.Term, true
		}
	}
	return vocab.Term{}, false
}

func (m *Machine) hasTopic(id string) bool {
	for _, t := range m.src.Topics() {
		if t.ID == id {
			return true
		}
	}
	return false
}
