package session

// Mode is the machine's primary discriminant.
type Mode int

const (
	ModeSelect     Mode = iota // choosing a topic
	ModePlan                   // choosing a day of the topic
	ModeStudy                  // flashcards, no timer
	ModeQuiz                   // timed prompt per term
	ModeResult                 // quiz score and punishment overview
	ModePunishment             // copying out the head entry
	ModeRetest                 // timed prompt for the head entry
)

func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "select"
	case ModePlan:
		return "plan"
	case ModeStudy:
		return "study"
	case ModeQuiz:
		return "quiz"
	case ModeResult:
		return "result"
	case ModePunishment:
		return "punishment"
	case ModeRetest:
		return "retest"
	default:
		return "unknown"
	}
}

// Grade is the verdict for the current prompt.
type Grade int

const (
	GradeNone Grade = iota
	GradeCorrect
	GradeIncorrect
)

// State is a snapshot of the machine for presentation.
type State struct {
	// Mode is the current screen of the drill.
	Mode Mode

	// TopicID is the selected topic; empty in select mode.
	TopicID string

	// Day is the 1-based day being drilled; 0 outside a day.
	Day int

	// SessionID identifies the current day attempt in the session log.
	SessionID string

	// Cursor indexes the day's terms in study and quiz.
	Cursor int

	// Score counts correct quiz answers.
	Score int

	// TimeRemaining is the countdown in ticks for quiz and retest prompts.
	TimeRemaining int

	// LastGrade is set while a graded prompt waits for the settle delay.
	LastGrade Grade

	// Expected holds the correct term text after an incorrect grade.
	Expected string

	// Revealed is true when the study card shows its meaning.
	Revealed bool

	// Prompt increments whenever a new prompt is presented, so the
	// presentation layer knows to clear its input.
	Prompt int

	// Missed is the number of terms missed in the quiz.
	Missed int
}

// Pending reports whether a grade is waiting for the settle delay.
func (s State) Pending() bool {
	return s.LastGrade != GradeNone
}
