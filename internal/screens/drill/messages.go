package drill

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiz/internal/session"
)

// wakeMsg carries a deferred machine event back to the screen.
type wakeMsg struct {
	Event session.Event
}

// scheduleWakeups turns machine wakeups into tea timers.
func scheduleWakeups(ws []session.Wakeup) tea.Cmd {
	if len(ws) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(ws))
	for _, w := range ws {
		ev := w.Event
		cmds = append(cmds, tea.Tick(w.After, func(time.Time) tea.Msg {
			return wakeMsg{Event: ev}
		}))
	}
	return tea.Batch(cmds...)
}
