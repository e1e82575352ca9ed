package session

import "time"

// Event is an input consumed by Machine.Dispatch.
type Event interface {
	isEvent()
}

// Submit is a learner's answer or copy-out line.
type Submit struct {
	Answer string
}

// Tick advances the answer timer. Seq must match the armed countdown.
type Tick struct {
	Seq uint64
}

// SettleElapsed ends the pause after a grade. Seq must match the pending settle.
type SettleElapsed struct {
	Seq uint64
}

func (Submit) isEvent()        {}
func (Tick) isEvent()          {}
func (SettleElapsed) isEvent() {}

// Wakeup asks the caller to deliver Event back to the machine after a delay.
type Wakeup struct {
	After time.Duration
	Event Event
}
