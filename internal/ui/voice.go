package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/easyface/easyface/internal/capability"
	"github.com/easyface/easyface/internal/screen"
)

// voiceResultMsg carries one recognized phrase.
type voiceResultMsg struct {
	Text string
	Err  error
}

// listen starts one recognition with the configured timeout.
func (m *Model) listen() {
	if !m.caps.Supported(capability.Recognition) {
		m.fail("Voice commands are not available on this system")
		return
	}
	timeout := orDuration(m.cfg.App.Timings.ListenTimeout, defaultListenLimit)
	rec := m.caps.Recognizer
	m.setStatus("Listening…", false)
	m.click()
	m.push(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		text, err := rec.Recognize(ctx)
		return voiceResultMsg{Text: text, Err: err}
	})
}

func (m *Model) onVoice(msg voiceResultMsg) {
	switch {
	case errors.Is(msg.Err, capability.ErrUnsupported):
		m.fail("Voice commands are not available on this system")
		return
	case errors.Is(msg.Err, context.DeadlineExceeded):
		m.fail("Nothing heard")
		return
	case msg.Err != nil:
		m.log.Error(msg.Err, "recognition failed")
		m.fail("Voice command failed")
		return
	}
	action, ok := m.voice.Match(msg.Text)
	if !ok {
		m.fail(fmt.Sprintf("Command not recognized: %q", msg.Text))
		return
	}
	m.log.V(1).Info("voice command", "heard", msg.Text, "action", action)
	if err := m.runAction(action); err != nil {
		m.log.Error(err, "voice action failed", "action", action)
		m.fail("Command not available here")
	}
}

// runAction executes a voice action: "screen:<id>", "scan:toggle" or
// "do:<verb>" applied to the current screen.
func (m *Model) runAction(action string) error {
	kind, arg, _ := strings.Cut(action, ":")
	switch kind {
	case "screen":
		s, ok := screen.Parse(arg)
		if !ok {
			return fmt.Errorf("unknown screen %q", arg)
		}
		m.navigate(s)
		return nil
	case "scan":
		m.toggleScan()
		return nil
	case "do":
		return m.runVerb(arg)
	}
	return fmt.Errorf("unknown action %q", action)
}

// verbTargets maps a verb to the control it activates on each screen.
var verbTargets = map[string]map[screen.Screen]string{
	"save": {
		screen.TextEditor:  "editor-save",
		screen.FileManager: "fm-save",
	},
	"clear": {
		screen.TextEditor:       "editor-clear",
		screen.CommunicationAid: "comm-clear",
		screen.Calculator:       "calc-clear",
	},
	"read": {
		screen.TextEditor:       "editor-read",
		screen.Welcome:          "welcome-read",
		screen.CommunicationAid: "comm-speak",
	},
	"next-page":     {screen.PDFReader: "pdf-next"},
	"previous-page": {screen.PDFReader: "pdf-prev"},
	"zoom-in":       {screen.PDFReader: "pdf-zoomin"},
	"zoom-out":      {screen.PDFReader: "pdf-zoomout"},
}

func (m *Model) runVerb(verb string) error {
	targets, ok := verbTargets[verb]
	if !ok {
		return fmt.Errorf("unknown verb %q", verb)
	}
	id, ok := targets[m.current]
	if !ok {
		return fmt.Errorf("%q does nothing on %s", verb, m.current)
	}
	return m.activate(id)
}
