package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives the session timer display, once per second.
type TickMsg time.Time

// tickCmd schedules the next timer tick. Only the elapsed-time display
// needs it; every library operation is a synchronous local mutation and
// runs directly in Update.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
