package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/easyface/easyface/internal/capability"
)

type sitesState struct {
	url lineField
}

// openResultMsg reports the outcome of handing a URL or file to the desktop.
type openResultMsg struct {
	Target string
	Err    error
}

func (m *Model) initSites() {
	m.sites.url = newLineField("example.org")
	m.fields["site-url"] = m.sites.url
}

func (m *Model) sitesView(p painter, cw int) piece {
	var buttons []piece
	for i, s := range m.cfg.UI.Sites {
		buttons = append(buttons, p.button(control{id: "site-" + strconv.Itoa(i), label: s.Name}))
	}
	return vjoin(
		flow(cw, 1, buttons...),
		blankPiece(1),
		textPiece(p.st.muted(), "Another website"),
		p.frame(control{id: "site-url", label: "Website address"}, m.sites.url.View()),
		p.button(control{id: "site-go", label: "Open website"}),
	)
}

func (m *Model) activateSites(id string) error {
	if id == "site-go" {
		u := strings.TrimSpace(m.sites.url.Value())
		if u == "" {
			m.fail("Type a website address first")
			return nil
		}
		if !strings.Contains(u, "://") {
			u = "https://" + u
		}
		m.openURL(u)
		return nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, "site-"))
	if err != nil || n < 0 || n >= len(m.cfg.UI.Sites) {
		return fmt.Errorf("activate: unknown site control %q", id)
	}
	site := m.cfg.UI.Sites[n]
	m.speak("Opening " + site.Name)
	m.openURL(site.URL)
	return nil
}

func (m *Model) openURL(u string) {
	opener := m.caps.Opener
	m.setStatus("Opening "+u, false)
	m.push(func() tea.Msg {
		return openResultMsg{Target: u, Err: opener.OpenURL(u)}
	})
}

func (m *Model) openFile(path string) {
	opener := m.caps.Opener
	m.push(func() tea.Msg {
		return openResultMsg{Target: path, Err: opener.OpenFile(path)}
	})
}

func (m *Model) onOpenResult(msg openResultMsg) {
	switch {
	case msg.Err == nil:
		m.log.V(1).Info("opened", "target", msg.Target)
	case errors.Is(msg.Err, capability.ErrUnsupported):
		m.fail("Opening files and websites is not available on this system")
	default:
		m.log.Error(msg.Err, "open failed", "target", msg.Target)
		m.fail("Could not open " + msg.Target)
	}
}
