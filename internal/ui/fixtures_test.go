package ui

import (
	"sort"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"github.com/easyface/easyface/internal/capability"
)

type event struct {
	at  time.Duration
	seq int
	msg tea.Msg
}

// clock is a virtual scheduler: After enqueues, Advance feeds due messages
// back into the model in time order.
type clock struct {
	now   time.Duration
	seq   int
	queue []event
	model *Model
}

func (c *clock) After(d time.Duration, msg tea.Msg) tea.Cmd {
	c.seq++
	c.queue = append(c.queue, event{at: c.now + d, seq: c.seq, msg: msg})
	return nil
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
		c.model.Update(ev.msg)
	}
	c.now = end
}

// newTestModel builds a model on the embedded config with silent
// capabilities and a virtual clock.
func newTestModel(t *testing.T, mutate ...func(*Options)) (*Model, *clock) {
	t.Helper()
	cfg, err := EmbeddedDefaultConfig()
	require.NoError(t, err)
	clk := &clock{}
	opts := Options{
		Config:    cfg,
		Caps:      capability.Silent(t.TempDir()),
		Logger:    logr.Discard(),
		Scheduler: clk,
		NoColor:   true,
		Width:     100,
		Height:    40,
	}
	for _, f := range mutate {
		f(&opts)
	}
	m := New(opts)
	clk.model = m
	return m, clk
}

func press(m *Model, msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func namedKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func spaceKey() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		press(m, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// runCmds executes cmd and every command batched inside it, returning the
// messages they produce.
func runCmds(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmds(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func candidateIDs(m *Model) []string {
	var ids []string
	for _, c := range m.reg.Collect(m.current) {
		ids = append(ids, c.ID)
	}
	return ids
}
