package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/easyface/easyface/internal/focus"
	"github.com/easyface/easyface/internal/registry"
)

type commState struct {
	cursor *focus.Sectioned
	// selected indexes the open category, -1 when none is open.
	selected int
	message  string
}

func (m *Model) initComm(sink focus.Sink) {
	m.comm.selected = -1
	m.comm.cursor = focus.NewSectioned(domainComm, m.commControls, m.commCategories, m.commPhrases, sink)
}

func (m *Model) commControls() []string {
	ids := []string{"comm-speak", "comm-clear"}
	if m.comm.selected >= 0 {
		ids = append(ids, "comm-back")
	}
	return ids
}

func (m *Model) commCategories() []string {
	ids := make([]string, 0, len(m.cfg.UI.Phrases))
	for _, c := range m.cfg.UI.Phrases {
		ids = append(ids, "comm-cat-"+c.ID)
	}
	return ids
}

func (m *Model) commPhrases() []string {
	if m.comm.selected < 0 || m.comm.selected >= len(m.cfg.UI.Phrases) {
		return nil
	}
	n := len(m.cfg.UI.Phrases[m.comm.selected].Phrases)
	ids := make([]string, n)
	for i := range ids {
		ids[i] = "comm-phrase-" + strconv.Itoa(i)
	}
	return ids
}

func (m *Model) commView(p painter, cw int) piece {
	msg := m.comm.message
	if msg == "" {
		msg = "Choose a category, then a phrase"
	}
	display := p.st.box(controlState{}).Render(fit(msg, fieldWidth(cw)))

	back := control{id: "comm-back", label: "◀ Categories", domain: domainComm, visibility: registry.Collapsed}
	if m.comm.selected >= 0 {
		back.visibility = registry.Visible
	}
	controls := flow(cw, 1,
		p.button(control{id: "comm-speak", label: "Speak", domain: domainComm}),
		p.button(control{id: "comm-clear", label: "Clear", domain: domainComm}),
		p.button(back),
	)

	var cats []piece
	for i, c := range m.cfg.UI.Phrases {
		cats = append(cats, p.button(control{
			id:     "comm-cat-" + c.ID,
			label:  c.Name,
			domain: domainComm,
			active: i == m.comm.selected,
		}))
	}
	parts := []piece{{view: display}, controls, textPiece(p.st.muted(), "Categories"), flow(cw, 1, cats...)}

	if m.comm.selected >= 0 && m.comm.selected < len(m.cfg.UI.Phrases) {
		cat := m.cfg.UI.Phrases[m.comm.selected]
		var phrases []piece
		for i, ph := range cat.Phrases {
			phrases = append(phrases, p.button(control{id: "comm-phrase-" + strconv.Itoa(i), label: ph, domain: domainComm}))
		}
		parts = append(parts, textPiece(p.st.muted(), cat.Name), flow(cw, 1, phrases...))
	}
	return vjoin(parts...)
}

func (m *Model) activateComm(id string) error {
	switch {
	case id == "comm-speak":
		if m.comm.message == "" {
			m.fail("No message to speak")
			return nil
		}
		m.speak(m.comm.message)
		m.setStatus("Message spoken", false)
	case id == "comm-clear":
		m.comm.message = ""
		m.setStatus("Message cleared", false)
		m.speak("Message cleared")
	case id == "comm-back":
		m.backToCategories()
	case strings.HasPrefix(id, "comm-cat-"):
		cat := strings.TrimPrefix(id, "comm-cat-")
		for i, c := range m.cfg.UI.Phrases {
			if c.ID == cat {
				m.comm.selected = i
				m.speak(c.Name)
				m.comm.cursor.MoveToPhrases(0)
				return nil
			}
		}
		return fmt.Errorf("activate: unknown category %q", cat)
	case strings.HasPrefix(id, "comm-phrase-"):
		n, err := strconv.Atoi(strings.TrimPrefix(id, "comm-phrase-"))
		phrases := m.commPhraseList()
		if err != nil || n < 0 || n >= len(phrases) {
			return fmt.Errorf("activate: unknown phrase %q", id)
		}
		m.comm.message = phrases[n]
		m.speak(phrases[n])
	default:
		return fmt.Errorf("activate: unknown communication control %q", id)
	}
	return nil
}

func (m *Model) commPhraseList() []string {
	if m.comm.selected < 0 || m.comm.selected >= len(m.cfg.UI.Phrases) {
		return nil
	}
	return m.cfg.UI.Phrases[m.comm.selected].Phrases
}

// backToCategories closes the open category and focuses its button.
func (m *Model) backToCategories() {
	i := max(0, m.comm.selected)
	m.comm.selected = -1
	m.comm.cursor.MoveToCategories(i)
}

// commKey moves the board cursor; Escape pops phrases, then categories,
// then leaves for the menu.
func (m *Model) commKey(key string) bool {
	switch key {
	case "down", "right":
		m.comm.cursor.Move(1)
		return true
	case "up", "left":
		m.comm.cursor.Move(-1)
		return true
	case "esc":
		switch sec, _ := m.comm.cursor.Position(); sec {
		case focus.Phrases:
			m.backToCategories()
			return true
		case focus.Categories:
			m.comm.cursor.MoveToControls(0)
			return true
		}
	}
	return m.activateFocusedKey(key)
}
