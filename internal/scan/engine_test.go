package scan

import (
	"errors"
	"sort"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/easyface/easyface/internal/capability/mocks"
	"github.com/easyface/easyface/internal/registry"
	"github.com/easyface/easyface/internal/screen"
)

type fakeHost struct {
	enabled     bool
	sounds      bool
	current     screen.Screen
	cands       map[screen.Screen][]registry.Candidate
	gone        map[string]bool
	highlighted string
	highlights  int
	statuses    []string
	activated   []string
	onActivate  func(id string) error
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		enabled: true,
		current: screen.Welcome,
		cands: map[screen.Screen][]registry.Candidate{
			screen.Welcome: {
				{ID: "menu-editor", Screen: screen.Welcome},
				{ID: "menu-calculator", Screen: screen.Welcome},
				{ID: "menu-settings", Screen: screen.Welcome},
			},
			screen.Calculator: {
				{ID: "calc-7", Screen: screen.Calculator},
				{ID: "calc-8", Screen: screen.Calculator},
			},
		},
		gone: map[string]bool{},
	}
}

func (h *fakeHost) ScanEnabled() bool            { return h.enabled }
func (h *fakeHost) CurrentScreen() screen.Screen { return h.current }
func (h *fakeHost) Candidates(s screen.Screen) []registry.Candidate {
	return h.cands[s]
}
func (h *fakeHost) Present(id string) bool {
	if h.gone[id] {
		return false
	}
	for _, c := range h.cands[h.current] {
		if c.ID == id {
			return true
		}
	}
	return false
}
func (h *fakeHost) Activate(id string) error {
	h.activated = append(h.activated, id)
	if h.onActivate != nil {
		return h.onActivate(id)
	}
	return nil
}
func (h *fakeHost) Highlight(c registry.Candidate) { h.highlighted = c.ID; h.highlights++ }
func (h *fakeHost) ClearHighlight()                { h.highlighted = "" }
func (h *fakeHost) Status(msg string)              { h.statuses = append(h.statuses, msg) }
func (h *fakeHost) SoundsEnabled() bool            { return h.sounds }

type event struct {
	at  time.Duration
	seq int
	msg tea.Msg
}

// clock is a virtual scheduler: After enqueues, Advance delivers due
// messages to the engine in time order.
type clock struct {
	now    time.Duration
	seq    int
	queue  []event
	engine *Engine
}

func (c *clock) After(d time.Duration, msg tea.Msg) tea.Cmd {
	c.seq++
	c.queue = append(c.queue, event{at: c.now + d, seq: c.seq, msg: msg})
	return func() tea.Msg { return msg }
}

func (c *clock) Advance(d time.Duration) {
	end := c.now + d
	for {
		sort.SliceStable(c.queue, func(i, j int) bool {
			if c.queue[i].at == c.queue[j].at {
				return c.queue[i].seq < c.queue[j].seq
			}
			return c.queue[i].at < c.queue[j].at
		})
		if len(c.queue) == 0 || c.queue[0].at > end {
			break
		}
		ev := c.queue[0]
		c.queue = c.queue[1:]
		c.now = ev.at
		c.engine.Update(ev.msg)
	}
	c.now = end
}

func newTestEngine(t *testing.T, host *fakeHost) (*Engine, *clock) {
	t.Helper()
	clk := &clock{}
	e := New(host, clk, nil, logr.Discard(), Options{Period: 2 * time.Second})
	clk.engine = e
	return e, clk
}

func TestStartHighlightsFirst(t *testing.T) {
	host := newFakeHost()
	e, _ := newTestEngine(t, host)

	e.Start()

	assert.Equal(t, Running, e.State())
	assert.Equal(t, "menu-editor", host.highlighted)
	assert.Equal(t, 0, e.Snapshot().Index)
}

func TestStartTickAdvances(t *testing.T) {
	tests := []struct {
		name  string
		cands []registry.Candidate
		want  int
	}{
		{"three", newFakeHost().cands[screen.Welcome], 1},
		{"one", []registry.Candidate{{ID: "only"}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost()
			host.cands[screen.Welcome] = tt.cands
			e, _ := newTestEngine(t, host)

			e.Start()
			require.NoError(t, e.Tick())

			assert.Equal(t, tt.want, e.Snapshot().Index)
			assert.Equal(t, tt.cands[tt.want].ID, host.highlighted)
		})
	}
}

func TestTimerWrapsAround(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)

	e.Start()
	clk.Advance(6 * time.Second)

	assert.Equal(t, 0, e.Snapshot().Index)
	assert.Equal(t, "menu-editor", host.highlighted)
}

func TestStartWithNoCandidatesStaysIdle(t *testing.T) {
	host := newFakeHost()
	host.current = screen.Help
	e, _ := newTestEngine(t, host)

	cmd := e.Start()

	assert.Nil(t, cmd)
	assert.Equal(t, Idle, e.State())
	assert.Contains(t, host.statuses, "No items to scan on this screen")
}

func TestStartDisabledIsNoop(t *testing.T) {
	host := newFakeHost()
	host.enabled = false
	e, _ := newTestEngine(t, host)

	assert.Nil(t, e.Start())
	assert.Equal(t, Idle, e.State())
}

func TestStopIsIdempotent(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)
	e.Start()

	e.Stop()
	e.Stop()

	assert.Equal(t, Idle, e.State())
	assert.Empty(t, host.highlighted)

	// the old timer is dead
	clk.Advance(10 * time.Second)
	assert.Empty(t, host.highlighted)
}

func TestRestartingKeepsOneTimer(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)

	e.Start()
	e.Start()
	e.Start()
	before := host.highlights
	clk.Advance(2 * time.Second)

	assert.Equal(t, before+1, host.highlights)
	assert.Equal(t, 1, e.Snapshot().Index)
}

func TestPauseFreezesHighlight(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)
	e.Start()

	e.TogglePause()
	clk.Advance(10 * time.Second)

	assert.Equal(t, Paused, e.State())
	assert.Equal(t, "menu-editor", host.highlighted)
	_, handled := e.ActivateCurrent()
	assert.False(t, handled)

	e.TogglePause()
	clk.Advance(2 * time.Second)
	assert.Equal(t, Running, e.State())
	assert.NotEqual(t, "menu-editor", host.highlighted)
}

func TestSetPeriodPreservesPause(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)
	e.Start()
	e.Pause()

	e.SetPeriod(time.Second)

	assert.Equal(t, Paused, e.State())
	assert.Equal(t, time.Second, e.Period())
	clk.Advance(5 * time.Second)
	assert.Equal(t, 0, e.Snapshot().Index)
}

func TestSetPeriodChangesInterval(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)
	e.Start()

	e.SetPeriod(500 * time.Millisecond)
	clk.Advance(time.Second)

	assert.Equal(t, 2, e.Snapshot().Index)
}

func TestSetPeriodWhileIdleOnlyStores(t *testing.T) {
	host := newFakeHost()
	e, _ := newTestEngine(t, host)

	assert.Nil(t, e.SetPeriod(3*time.Second))
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, 3*time.Second, e.Period())
}

func TestActivateNavigatingRestartsOnceOnNewScreen(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)
	host.onActivate = func(id string) error {
		if id == "menu-calculator" {
			host.current = screen.Calculator
			// the router requests a restart on every screen change
			e.Restart()
		}
		return nil
	}
	e.Start()
	clk.Advance(2 * time.Second)
	require.Equal(t, "menu-calculator", e.Current())

	_, handled := e.ActivateCurrent()
	require.True(t, handled)
	clk.Advance(2 * time.Second)

	snap := e.Snapshot()
	assert.Equal(t, 1, snap.Restarts)
	assert.Equal(t, screen.Calculator, snap.LastRestart)
	assert.Equal(t, Running, snap.State)
	assert.Equal(t, "calc-7", e.Current())
	assert.Equal(t, []string{"menu-calculator"}, host.activated)
}

func TestActivateSameScreenReHighlights(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)
	e.Start()

	_, handled := e.ActivateCurrent()
	require.True(t, handled)
	assert.True(t, e.Snapshot().Settling)
	host.highlighted = ""
	clk.Advance(DefaultSettleDelay)

	assert.Equal(t, "menu-editor", host.highlighted)
	assert.Equal(t, 0, e.Snapshot().Restarts)
	assert.False(t, e.Snapshot().Settling)
}

func TestActivateWhenIdleNotHandled(t *testing.T) {
	host := newFakeHost()
	e, _ := newTestEngine(t, host)

	cmd, handled := e.ActivateCurrent()

	assert.Nil(t, cmd)
	assert.False(t, handled)
	assert.Empty(t, host.activated)
}

func TestActivateFailureRecovers(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)
	host.onActivate = func(string) error { return errors.New("boom") }
	e.Start()

	_, handled := e.ActivateCurrent()
	require.True(t, handled)
	assert.Equal(t, Idle, e.State())

	assert.Contains(t, host.statuses, RecoveryStatus)

	clk.Advance(DefaultRecoveryDelay)
	assert.Equal(t, Running, e.State())
	assert.Equal(t, 1, e.Snapshot().Recoveries)
}

func TestActivatePanicRecovers(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)
	host.onActivate = func(string) error { panic("bad handler") }
	e.Start()

	assert.NotPanics(t, func() { e.ActivateCurrent() })
	clk.Advance(DefaultRecoveryDelay)
	assert.Equal(t, Running, e.State())
}

func TestStaleCandidateTriggersRebuild(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)
	e.Start()

	// menu-calculator disappears before the highlight reaches it
	host.cands[screen.Welcome] = []registry.Candidate{
		{ID: "menu-editor"}, {ID: "menu-settings"},
	}
	host.gone["menu-calculator"] = true
	clk.Advance(2 * time.Second)

	snap := e.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.True(t, snap.RestartPending)

	clk.Advance(DefaultRecoveryDelay)
	snap = e.Snapshot()
	assert.Equal(t, Running, snap.State)
	assert.Equal(t, 2, snap.Len)
	assert.Equal(t, 1, snap.Recoveries)
	assert.Equal(t, []string{RecoveryStatus}, host.statuses)
}

func TestTickReturnsStaleError(t *testing.T) {
	host := newFakeHost()
	e, _ := newTestEngine(t, host)
	e.Start()
	host.gone["menu-calculator"] = true

	err := e.Tick()

	assert.ErrorIs(t, err, ErrStaleCandidate)
}

func TestLaterRestartSupersedesEarlier(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)

	e.Restart()
	clk.Advance(200 * time.Millisecond)
	e.Restart()
	clk.Advance(400 * time.Millisecond)
	assert.Equal(t, 0, e.Snapshot().Restarts)

	clk.Advance(200 * time.Millisecond)
	assert.Equal(t, 1, e.Snapshot().Restarts)
}

func TestDisableDropsPendingRestart(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)
	e.Start()
	e.Restart()

	e.Disable()
	clk.Advance(5 * time.Second)

	assert.Equal(t, Idle, e.State())
	assert.Equal(t, 0, e.Snapshot().Restarts)
}

func TestForeignMessagesIgnored(t *testing.T) {
	host := newFakeHost()
	e, _ := newTestEngine(t, host)

	cmd, handled := e.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, handled)
}

func TestHighlightPlaysToneWhenSoundsEnabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	tones := mocks.NewMockTonePlayer(ctrl)
	tones.EXPECT().
		PlayTone(gomock.Any(), float64(HighlightToneHz), HighlightToneDuration).
		Return(nil).
		Times(1)

	host := newFakeHost()
	host.sounds = true
	clk := &clock{}
	e := New(host, clk, tones, logr.Discard(), Options{})
	clk.engine = e

	runCmd(e.Start())
}

func TestHighlightSilentWhenSoundsDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	tones := mocks.NewMockTonePlayer(ctrl)
	tones.EXPECT().PlayTone(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	host := newFakeHost()
	clk := &clock{}
	e := New(host, clk, tones, logr.Discard(), Options{})
	clk.engine = e

	runCmd(e.Start())
}

func TestSetPeriodWhilePausedPlaysNoTone(t *testing.T) {
	ctrl := gomock.NewController(t)
	tones := mocks.NewMockTonePlayer(ctrl)
	tones.EXPECT().
		PlayTone(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	host := newFakeHost()
	host.sounds = true
	clk := &clock{}
	e := New(host, clk, tones, logr.Discard(), Options{})
	clk.engine = e

	runCmd(e.Start())
	e.Pause()
	runCmd(e.SetPeriod(time.Second))

	assert.Equal(t, Paused, e.State())
	assert.Equal(t, "menu-editor", host.highlighted)
}

func TestSettleReHighlightsActivatedCandidate(t *testing.T) {
	host := newFakeHost()
	clk := &clock{}
	e := New(host, clk, nil, logr.Discard(), Options{Period: 250 * time.Millisecond})
	clk.engine = e
	e.Start()

	_, handled := e.ActivateCurrent()
	require.True(t, handled)
	clk.Advance(DefaultSettleDelay)

	assert.Equal(t, "menu-editor", host.highlighted)
	assert.Equal(t, "menu-editor", e.Current())
	assert.False(t, e.Snapshot().Settling)
}

func TestSettleRebuildsWhenActivatedCandidateLeft(t *testing.T) {
	host := newFakeHost()
	e, clk := newTestEngine(t, host)
	e.Start()

	_, handled := e.ActivateCurrent()
	require.True(t, handled)
	host.gone["menu-editor"] = true
	clk.Advance(DefaultSettleDelay)

	assert.Equal(t, Idle, e.State())
	assert.Equal(t, []string{RecoveryStatus}, host.statuses)
	clk.Advance(DefaultRecoveryDelay)
	assert.Equal(t, Running, e.State())
}

func TestSnapshotString(t *testing.T) {
	host := newFakeHost()
	e, _ := newTestEngine(t, host)

	assert.Equal(t, "scan idle restarts=0", e.Snapshot().String())
	e.Start()
	assert.Equal(t, "scan running 1/3 menu-editor every 2s restarts=0", e.Snapshot().String())
}

// runCmd executes cmd and any batched children, discarding scheduled
// messages (the virtual clock already queued them).
func runCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(c)
		}
	}
}
