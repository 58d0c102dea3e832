package ui

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/easyface/easyface/internal/capability"
)

const (
	defaultClickHz       = 800
	defaultClickDuration = 100 * time.Millisecond
	defaultErrorHz       = 300
	defaultErrorDuration = 200 * time.Millisecond
)

// feedbackErrMsg reports a failed tone or utterance. It is logged only.
type feedbackErrMsg struct {
	Kind string
	Err  error
}

// click queues the generic feedback tone.
func (m *Model) click() {
	t := m.cfg.App.Tones
	m.tone(orFloat(t.ClickHz, defaultClickHz), orDuration(t.ClickDuration, defaultClickDuration))
}

// fail shows msg as an error and queues the error tone.
func (m *Model) fail(msg string) {
	m.setStatus(msg, true)
	t := m.cfg.App.Tones
	m.tone(orFloat(t.ErrorHz, defaultErrorHz), orDuration(t.ErrorDuration, defaultErrorDuration))
}

func (m *Model) tone(hz float64, d time.Duration) {
	if !m.settings.SoundsEnabled || m.caps.Tones == nil {
		return
	}
	player := m.caps.Tones
	m.push(func() tea.Msg {
		if err := player.PlayTone(context.Background(), hz, d); err != nil && !errors.Is(err, capability.ErrUnsupported) {
			return feedbackErrMsg{Kind: "tone", Err: err}
		}
		return nil
	})
}

// speak queues an utterance with the configured voice.
func (m *Model) speak(text string) {
	if text == "" || m.caps.Speaker == nil {
		return
	}
	sp := m.cfg.App.Speech
	u := capability.Utterance{
		Text:   text,
		Lang:   sp.Lang,
		Rate:   sp.Rate,
		Pitch:  sp.Pitch,
		Volume: sp.Volume,
	}
	speaker := m.caps.Speaker
	m.push(func() tea.Msg {
		if err := speaker.Speak(context.Background(), u); err != nil && !errors.Is(err, capability.ErrUnsupported) {
			return feedbackErrMsg{Kind: "speech", Err: err}
		}
		return nil
	})
}

func orFloat(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func orDuration(v, def time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return def
}
