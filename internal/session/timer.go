package session

// TickResult is the outcome of delivering a tick to a Timer.
type TickResult int

const (
	// TickStale means the tick belongs to a stopped or restarted countdown.
	TickStale TickResult = iota
	// TickRunning means the countdown decremented and is still armed.
	TickRunning
	// TickExpired means the countdown reached zero; the timer is now disarmed.
	TickExpired
)

// Timer is a tick-driven countdown. Every Start and Stop issues a new
// sequence number, so ticks scheduled for an earlier countdown are stale.
type Timer struct {
	duration  int
	remaining int
	armed     bool
	seq       uint64
}

// NewTimer returns a disarmed timer that counts down from duration ticks.
func NewTimer(duration int) *Timer {
	return &Timer{duration: duration}
}

// Start resets the countdown, arms it and returns the sequence number that
// ticks must carry.
func (t *Timer) Start() uint64 {
	t.seq++
	t.remaining = t.duration
	t.armed = true
	return t.seq
}

// Stop disarms the timer and invalidates outstanding ticks.
func (t *Timer) Stop() {
	t.seq++
	t.armed = false
}

// Tick decrements the countdown if seq is current. Expiry fires once.
func (t *Timer) Tick(seq uint64) TickResult {
	if !t.armed || seq != t.seq {
		return TickStale
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.armed = false
		return TickExpired
	}
	return TickRunning
}

func (t *Timer) Remaining() int { return t.remaining }

func (t *Timer) Armed() bool { return t.armed }
