package ui

import (
	"fmt"
	"strings"
)

const defaultSaveName = "easyface-text.txt"

type editorState struct {
	text areaField
}

func (m *Model) initEditor() {
	m.editor.text = newAreaField("Type your text here", 8)
	m.fields["editor-text"] = m.editor.text
}

func (m *Model) editorView(p painter, cw int) piece {
	return vjoin(
		p.frame(control{id: "editor-text", label: "Text"}, m.editor.text.View()),
		flow(cw, 1,
			p.button(control{id: "editor-save", label: "Save"}),
			p.button(control{id: "editor-clear", label: "Clear"}),
			p.button(control{id: "editor-read", label: "Read aloud"}),
		),
	)
}

func (m *Model) activateEditor(id string) error {
	switch id {
	case "editor-save":
		m.saveText(m.editor.text.Value(), m.saveName())
	case "editor-clear":
		m.editor.text.SetValue("")
		m.setStatus("Text cleared", false)
		m.speak("Text cleared")
	case "editor-read":
		m.readAloud(m.editor.text.Value())
	default:
		return fmt.Errorf("activate: unknown editor control %q", id)
	}
	return nil
}

func (m *Model) saveName() string {
	if m.cfg.UI.DefaultSave != "" {
		return m.cfg.UI.DefaultSave
	}
	return defaultSaveName
}

// saveText writes text as a download and reports the outcome. It returns
// false when nothing was saved.
func (m *Model) saveText(text, name string) bool {
	if strings.TrimSpace(text) == "" {
		m.fail("No text to save")
		m.speak("No text to save")
		return false
	}
	path, err := m.caps.Files.SaveText(text, name)
	if err != nil {
		m.log.Error(err, "save failed", "name", name)
		m.fail("Could not save the file")
		m.speak("Error saving file")
		return false
	}
	m.log.V(1).Info("text saved", "path", path)
	m.setStatus("Saved to "+path, false)
	m.speak("File saved")
	return true
}

func (m *Model) readAloud(text string) {
	if strings.TrimSpace(text) == "" {
		m.fail("No text to read")
		return
	}
	m.speak(text)
	m.setStatus("Reading aloud", false)
}
