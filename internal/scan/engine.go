// Package scan implements the switch-access scanner: a timer that cycles a
// highlight through the scannable elements of the active screen so a single
// switch (Enter) can activate the highlighted one.
package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/easyface/easyface/internal/capability"
	"github.com/easyface/easyface/internal/registry"
	"github.com/easyface/easyface/internal/screen"
	"github.com/easyface/easyface/pkg/logger"
)

const (
	DefaultPeriod        = 2 * time.Second
	DefaultRestartDelay  = 500 * time.Millisecond
	DefaultSettleDelay   = 300 * time.Millisecond
	DefaultRecoveryDelay = time.Second

	HighlightToneHz       = 800
	HighlightToneDuration = 100 * time.Millisecond

	// RecoveryStatus is shown while a failed tick or activation rebuilds
	// the candidate list.
	RecoveryStatus = "Rebuilding scan list"
)

// ErrStaleCandidate is returned by Tick when the candidate about to be
// highlighted is no longer present on screen.
var ErrStaleCandidate = errors.New("scan candidate no longer present")

// Host is the application side of the scanner.
type Host interface {
	ScanEnabled() bool
	CurrentScreen() screen.Screen
	Candidates(s screen.Screen) []registry.Candidate
	Present(id string) bool
	// Activate performs the same action a click on the element would.
	Activate(id string) error
	// Highlight outlines c (and only c) and scrolls it into view.
	Highlight(c registry.Candidate)
	ClearHighlight()
	Status(msg string)
	SoundsEnabled() bool
}

// TickMsg advances the highlight. Gen ties it to one timer generation.
type TickMsg struct{ Gen int }

// RestartMsg rebuilds the candidate list. Only the latest token applies.
type RestartMsg struct{ Token int }

// SettleMsg follows an activation once the activated action had a chance
// to change screens.
type SettleMsg struct{ Token int }

// Options tune the engine timings.
type Options struct {
	Period        time.Duration
	RestartDelay  time.Duration
	SettleDelay   time.Duration
	RecoveryDelay time.Duration
}

// DefaultOptions returns the stock timings.
func DefaultOptions() Options {
	return Options{
		Period:        DefaultPeriod,
		RestartDelay:  DefaultRestartDelay,
		SettleDelay:   DefaultSettleDelay,
		RecoveryDelay: DefaultRecoveryDelay,
	}
}

// Engine owns one scan session. All methods run on the Bubble Tea update
// goroutine; delayed work comes back as messages handled by Update.
type Engine struct {
	host  Host
	sched Scheduler
	tones capability.TonePlayer
	log   logr.Logger
	opts  Options

	session Session
	gen     int

	restartToken   int
	restartPending bool

	settleToken  int
	settling     bool
	settleBefore screen.Screen
	settleID     string

	restarts    int
	recoveries  int
	lastRestart screen.Screen
}

// New creates an idle engine. A nil scheduler uses TeaScheduler.
func New(host Host, sched Scheduler, tones capability.TonePlayer, log logr.Logger, opts Options) *Engine {
	if sched == nil {
		sched = TeaScheduler{}
	}
	def := DefaultOptions()
	if opts.Period <= 0 {
		opts.Period = def.Period
	}
	if opts.RestartDelay <= 0 {
		opts.RestartDelay = def.RestartDelay
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = def.SettleDelay
	}
	if opts.RecoveryDelay <= 0 {
		opts.RecoveryDelay = def.RecoveryDelay
	}
	return &Engine{
		host:  host,
		sched: sched,
		tones: tones,
		log:   log.WithName("scan").WithValues(logger.ComponentKey, "scanner"),
		opts:  opts,
	}
}

// Start begins a session on the current screen. Any running session is
// stopped first so at most one timer is live.
func (e *Engine) Start() tea.Cmd {
	return e.start(false)
}

// start loads the candidates and applies paused before the first highlight,
// so a paused session gets no highlight tone.
func (e *Engine) start(paused bool) tea.Cmd {
	if !e.host.ScanEnabled() {
		return nil
	}
	e.Stop()
	current := e.host.CurrentScreen()
	if !e.session.Load(e.host.Candidates(current)) {
		e.log.V(1).Info("nothing to scan", logger.ScreenKey, current.String())
		e.host.Status("No items to scan on this screen")
		return nil
	}
	e.session.SetPaused(paused)
	e.log.V(1).Info("scan started", logger.ScreenKey, current.String(), "candidates", e.session.Len(), "paused", paused)
	return tea.Batch(e.highlightCurrent(), e.scheduleTick())
}

// Stop ends the session and clears the highlight. Idempotent.
func (e *Engine) Stop() {
	e.gen++
	e.session.Clear()
	e.host.ClearHighlight()
}

// Disable stops the session and drops any pending restart or settle.
func (e *Engine) Disable() {
	e.Stop()
	e.restartPending = false
	e.restartToken++
	e.settling = false
	e.settleToken++
}

// Restart stops now and rebuilds after the restart delay. A later Restart
// supersedes an earlier one that has not fired yet.
func (e *Engine) Restart() tea.Cmd {
	return e.restartAfter(e.opts.RestartDelay)
}

func (e *Engine) restartAfter(d time.Duration) tea.Cmd {
	e.Stop()
	e.restartToken++
	e.restartPending = true
	return e.sched.After(d, RestartMsg{Token: e.restartToken})
}

// Tick advances the highlight by one. It does nothing while paused or idle.
func (e *Engine) Tick() (err error) {
	if e.session.State() != Running {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scan tick: %v", r)
		}
	}()
	e.session.Advance()
	next, _ := e.session.Current()
	if !e.host.Present(next.ID) {
		return fmt.Errorf("%w: %s", ErrStaleCandidate, next.ID)
	}
	e.host.Highlight(next)
	return nil
}

// Pause freezes the highlight without touching the timer.
func (e *Engine) Pause() {
	if e.session.State() != Running {
		return
	}
	e.session.SetPaused(true)
	e.host.Status("Scanning paused")
}

// Resume continues a paused session.
func (e *Engine) Resume() {
	if e.session.State() != Paused {
		return
	}
	e.session.SetPaused(false)
	e.host.Status("Scanning resumed")
}

// TogglePause flips between running and paused.
func (e *Engine) TogglePause() {
	switch e.session.State() {
	case Running:
		e.Pause()
	case Paused:
		e.Resume()
	}
}

// SetPeriod changes the tick interval. A live session restarts
// synchronously with the new interval and keeps its paused flag.
func (e *Engine) SetPeriod(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	e.opts.Period = d
	if e.session.State() == Idle {
		return nil
	}
	return e.start(e.session.Paused())
}

// ActivateCurrent activates the highlighted candidate. It reports false
// when the scanner is not in a state to handle the key.
func (e *Engine) ActivateCurrent() (tea.Cmd, bool) {
	if !e.host.ScanEnabled() || e.session.State() != Running {
		return nil, false
	}
	c, _ := e.session.Current()
	if !e.host.Present(c.ID) {
		e.log.Info("activation target vanished", "id", c.ID)
		return e.rebuildAfterFault(), true
	}
	before := e.host.CurrentScreen()
	if err := e.activate(c.ID); err != nil {
		e.log.Error(err, "scan activation failed", "id", c.ID)
		return e.rebuildAfterFault(), true
	}
	e.settleToken++
	e.settling = true
	e.settleBefore = before
	e.settleID = c.ID
	return e.sched.After(e.opts.SettleDelay, SettleMsg{Token: e.settleToken}), true
}

func (e *Engine) activate(id string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("activate %s: %v", id, r)
		}
	}()
	return e.host.Activate(id)
}

// Update handles the engine's own messages. The bool reports whether msg
// belonged to the engine.
func (e *Engine) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.Gen != e.gen || e.session.State() == Idle {
			return nil, true
		}
		if err := e.Tick(); err != nil {
			e.log.Error(err, "scan tick failed, rebuilding")
			return e.rebuildAfterFault(), true
		}
		return tea.Batch(e.highlightTone(), e.scheduleTick()), true

	case RestartMsg:
		if msg.Token != e.restartToken || !e.restartPending {
			return nil, true
		}
		if e.settling {
			// the settle continuation issues its own restart
			return nil, true
		}
		e.restartPending = false
		e.restarts++
		e.lastRestart = e.host.CurrentScreen()
		return e.Start(), true

	case SettleMsg:
		if msg.Token != e.settleToken || !e.settling {
			return nil, true
		}
		e.settling = false
		if e.host.CurrentScreen() != e.settleBefore || e.restartPending {
			return e.Restart(), true
		}
		if !e.session.Select(e.settleID) {
			e.log.Info("activated candidate left the list", "id", e.settleID)
			return e.rebuildAfterFault(), true
		}
		c, _ := e.session.Current()
		if !e.host.Present(c.ID) {
			e.log.Info("activated candidate vanished", "id", c.ID)
			return e.rebuildAfterFault(), true
		}
		e.host.Highlight(c)
		return nil, true
	}
	return nil, false
}

// rebuildAfterFault reports the fault on the status line and rebuilds after the
// recovery delay.
func (e *Engine) rebuildAfterFault() tea.Cmd {
	e.recoveries++
	e.host.Status(RecoveryStatus)
	return e.restartAfter(e.opts.RecoveryDelay)
}

func (e *Engine) scheduleTick() tea.Cmd {
	e.gen++
	return e.sched.After(e.opts.Period, TickMsg{Gen: e.gen})
}

func (e *Engine) highlightCurrent() tea.Cmd {
	c, ok := e.session.Current()
	if !ok {
		return nil
	}
	e.host.Highlight(c)
	return e.highlightTone()
}

func (e *Engine) highlightTone() tea.Cmd {
	if e.tones == nil || !e.host.SoundsEnabled() || e.session.State() != Running {
		return nil
	}
	tones := e.tones
	log := e.log
	return func() tea.Msg {
		if err := tones.PlayTone(context.Background(), HighlightToneHz, HighlightToneDuration); err != nil &&
			!errors.Is(err, capability.ErrUnsupported) {
			log.V(1).Info("highlight tone failed", "error", err.Error())
		}
		return nil
	}
}

// Snapshot is a read-only view of engine state for the debug bar and tests.
type Snapshot struct {
	State          State
	Index          int
	Len            int
	Current        string
	Period         time.Duration
	RestartPending bool
	Settling       bool
	Restarts       int
	Recoveries     int
	LastRestart    screen.Screen
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	c, _ := e.session.Current()
	return Snapshot{
		State:          e.session.State(),
		Index:          e.session.Index(),
		Len:            e.session.Len(),
		Current:        c.ID,
		Period:         e.opts.Period,
		RestartPending: e.restartPending,
		Settling:       e.settling,
		Restarts:       e.restarts,
		Recoveries:     e.recoveries,
		LastRestart:    e.lastRestart,
	}
}

func (s Snapshot) String() string {
	if s.State == Idle {
		return fmt.Sprintf("scan idle restarts=%d", s.Restarts)
	}
	return fmt.Sprintf("scan %s %d/%d %s every %s restarts=%d",
		s.State, s.Index+1, s.Len, s.Current, s.Period, s.Restarts)
}

// Candidates returns the live candidate list.
func (e *Engine) Candidates() []registry.Candidate { return e.session.Candidates() }

// Period returns the configured tick interval.
func (e *Engine) Period() time.Duration { return e.opts.Period }

// Current returns the highlighted candidate id, or "".
func (e *Engine) Current() string {
	c, _ := e.session.Current()
	return c.ID
}

// State returns the session lifecycle state.
func (e *Engine) State() State { return e.session.State() }
