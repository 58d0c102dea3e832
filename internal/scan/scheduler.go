package scan

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// Scheduler delivers msg after d. Every delayed continuation of the engine
// goes through it so tests can drive time explicitly.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// TeaScheduler schedules with tea.Tick.
type TeaScheduler struct{}

func (TeaScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}
