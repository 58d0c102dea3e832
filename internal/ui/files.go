package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/easyface/easyface/internal/focus"
)

type filesState struct {
	name   lineField
	text   areaField
	cursor *focus.Flat
	// saved is the text as last opened or saved; anything else is unsaved.
	saved string
}

func (m *Model) initFiles(sink focus.Sink) {
	m.files.name = newLineField("file name or path")
	m.files.text = newAreaField("File contents", 6)
	m.fields["fm-name"] = m.files.name
	m.fields["fm-text"] = m.files.text
	m.files.cursor = focus.NewFlat(domainFiles, m.filesIDs, sink)
}

func (m *Model) filesDirty() bool {
	return m.files.text.Value() != m.files.saved
}

func (m *Model) canSaveFile() bool {
	return strings.TrimSpace(m.files.text.Value()) != "" &&
		strings.TrimSpace(m.files.name.Value()) != "" &&
		m.filesDirty()
}

// filesIDs is the file manager's cursor list: enabled toolbar buttons, then
// the two fields.
func (m *Model) filesIDs() []string {
	ids := []string{"fm-new", "fm-open"}
	if m.canSaveFile() {
		ids = append(ids, "fm-save")
	}
	return append(ids, "fm-saveas", "fm-name", "fm-text")
}

func (m *Model) filesView(p painter, cw int) piece {
	state := "No changes"
	if m.filesDirty() {
		state = "● Unsaved changes"
	}
	return vjoin(
		flow(cw, 1,
			p.button(control{id: "fm-new", label: "New", domain: domainFiles}),
			p.button(control{id: "fm-open", label: "Open", domain: domainFiles}),
			p.button(control{id: "fm-save", label: "Save", domain: domainFiles, disabled: !m.canSaveFile()}),
			p.button(control{id: "fm-saveas", label: "Save as", domain: domainFiles}),
		),
		textPiece(p.st.muted(), "Name"),
		p.frame(control{id: "fm-name", label: "File name", domain: domainFiles}, m.files.name.View()),
		textPiece(p.st.muted(), state),
		p.frame(control{id: "fm-text", label: "File contents", domain: domainFiles}, m.files.text.View()),
	)
}

func (m *Model) activateFiles(id string) error {
	switch id {
	case "fm-new":
		m.files.name.SetValue("")
		m.files.text.SetValue("")
		m.files.saved = ""
		m.setStatus("New document", false)
		m.speak("New document created")
	case "fm-open":
		m.openTextFile()
	case "fm-save":
		if m.saveText(m.files.text.Value(), m.files.name.Value()) {
			m.files.saved = m.files.text.Value()
		}
	case "fm-saveas":
		name := strings.TrimSpace(m.files.name.Value())
		if name == "" {
			name = m.saveName()
		}
		if !strings.HasSuffix(strings.ToLower(name), ".txt") {
			name += ".txt"
		}
		m.files.name.SetValue(name)
		if m.saveText(m.files.text.Value(), name) {
			m.files.saved = m.files.text.Value()
		}
	default:
		return fmt.Errorf("activate: unknown file manager control %q", id)
	}
	return nil
}

// openTextFile loads the path typed in the name field.
func (m *Model) openTextFile() {
	path := strings.TrimSpace(m.files.name.Value())
	if path == "" {
		m.fail("Type a file path in the name field, then choose Open")
		return
	}
	text, err := m.caps.Files.ReadText(path)
	if err != nil {
		m.log.Error(err, "open failed", "path", path)
		m.fail("Could not open " + path)
		return
	}
	name := filepath.Base(path)
	m.files.text.SetValue(text)
	m.files.name.SetValue(name)
	m.files.saved = text
	m.setStatus("Opened "+name, false)
	m.speak("File " + name + " opened")
}
