package ui

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/easyface/easyface/internal/registry"
)

type mediaState struct {
	path lineField
	// loaded is the selected media file and kind is "audio" or "video".
	loaded string
	kind   string
}

func (m *Model) initMedia() {
	m.media.path = newLineField("~/Music/song.mp3")
	m.fields["media-path"] = m.media.path
}

// mediaExtensions covers common formats missing from the host MIME table.
var mediaExtensions = map[string]string{
	".mp3": "audio", ".wav": "audio", ".ogg": "audio", ".oga": "audio", ".flac": "audio",
	".m4a": "audio", ".aac": "audio", ".opus": "audio",
	".mp4": "video", ".m4v": "video", ".webm": "video", ".mkv": "video", ".mov": "video",
	".avi": "video", ".ogv": "video",
}

// mediaKind classifies a file by its MIME type, then by extension.
func mediaKind(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	t := mime.TypeByExtension(ext)
	switch {
	case strings.HasPrefix(t, "audio/"):
		return "audio", true
	case strings.HasPrefix(t, "video/"):
		return "video", true
	}
	kind, ok := mediaExtensions[ext]
	return kind, ok
}

func (m *Model) mediaView(p painter, cw int) piece {
	play := control{id: "media-play", label: "Play", visibility: registry.Hidden}
	now := "Nothing loaded"
	if m.media.loaded != "" {
		play.visibility = registry.Visible
		now = fmt.Sprintf("Loaded %s (%s)", filepath.Base(m.media.loaded), m.media.kind)
	}
	return vjoin(
		textPiece(p.st.muted(), "Media file"),
		p.frame(control{id: "media-path", label: "Media file path"}, m.media.path.View()),
		flow(cw, 1,
			p.button(control{id: "media-load", label: "Load"}),
			p.button(play),
		),
		textPiece(p.st.text(), now),
	)
}

func (m *Model) activateMedia(id string) error {
	switch id {
	case "media-load":
		path := strings.TrimSpace(m.media.path.Value())
		if path == "" {
			m.fail("Type the path of an audio or video file first")
			return nil
		}
		kind, ok := mediaKind(path)
		if !ok {
			m.fail("That is not an audio or video file")
			return nil
		}
		m.media.loaded, m.media.kind = path, kind
		m.setStatus("Media loaded", false)
		m.speak("Media loaded")
	case "media-play":
		if m.media.loaded == "" {
			m.fail("Load a media file first")
			return nil
		}
		m.setStatus("Playing "+filepath.Base(m.media.loaded), false)
		m.openFile(m.media.loaded)
	default:
		return fmt.Errorf("activate: unknown media control %q", id)
	}
	return nil
}
