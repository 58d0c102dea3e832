// Package capability wraps the host services the shell depends on (speech,
// recognition, tones, documents, files and external openers). Each service
// is detected once; missing services are replaced by silent stand-ins and
// reported as warnings.
package capability

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupported is returned by stand-ins for services the host lacks.
var ErrUnsupported = errors.New("capability not supported on this system")

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/easyface/easyface/internal/capability Speaker,TonePlayer,Recognizer

// Utterance is one speech request. Rate, Pitch and Volume are relative to 1.
type Utterance struct {
	Text   string
	Lang   string
	Rate   float64
	Pitch  float64
	Volume float64
}

// Speaker synthesizes speech. A new utterance interrupts the previous one.
type Speaker interface {
	Speak(ctx context.Context, u Utterance) error
}

// Recognizer captures one spoken phrase and returns it as text.
type Recognizer interface {
	Recognize(ctx context.Context) (string, error)
}

// TonePlayer plays a sine tone.
type TonePlayer interface {
	PlayTone(ctx context.Context, hz float64, d time.Duration) error
}

// Document is a loaded paged document.
type Document interface {
	NumPages() int
	// PageText returns the text of page n, 1-based.
	PageText(n int) (string, error)
}

// DocumentRenderer loads documents from raw bytes.
type DocumentRenderer interface {
	Render(data []byte) (Document, error)
}

// Files reads user files and saves text the way a browser saves a download.
type Files interface {
	ReadText(path string) (string, error)
	ReadBytes(path string) ([]byte, error)
	// SaveText writes text under the download directory and returns the path used.
	SaveText(text, filename string) (string, error)
}

// Opener hands URLs and media files to the desktop.
type Opener interface {
	OpenURL(url string) error
	OpenFile(path string) error
}

// Name identifies a capability in warnings and debug output.
type Name string

const (
	Speech      Name = "speech"
	Recognition Name = "recognition"
	Tones       Name = "tones"
	Documents   Name = "documents"
	FileAccess  Name = "files"
	Desktop     Name = "desktop"
)

// Set is the resolved collection of services for one run.
type Set struct {
	Speaker    Speaker
	Recognizer Recognizer
	Tones      TonePlayer
	Renderer   DocumentRenderer
	Files      Files
	Opener     Opener
	// Missing lists capabilities replaced by stand-ins.
	Missing []Name
}

// Supported reports whether n was detected.
func (s *Set) Supported(n Name) bool {
	for _, m := range s.Missing {
		if m == n {
			return false
		}
	}
	return true
}

// Warnings renders one line per missing capability.
func (s *Set) Warnings() []string {
	out := make([]string, 0, len(s.Missing))
	for _, m := range s.Missing {
		out = append(out, string(m)+" unavailable: related features are silent")
	}
	return out
}

type silentSpeaker struct{}

func (silentSpeaker) Speak(context.Context, Utterance) error { return nil }

type silentTones struct{}

func (silentTones) PlayTone(context.Context, float64, time.Duration) error { return nil }

type noRecognizer struct{}

func (noRecognizer) Recognize(context.Context) (string, error) { return "", ErrUnsupported }

type noOpener struct{}

func (noOpener) OpenURL(string) error  { return ErrUnsupported }
func (noOpener) OpenFile(string) error { return ErrUnsupported }

// Silent returns a set in which every host-dependent service is a stand-in.
// File access and document rendering stay real.
func Silent(downloadDir string) *Set {
	return &Set{
		Speaker:    silentSpeaker{},
		Recognizer: noRecognizer{},
		Tones:      silentTones{},
		Renderer:   PDFRenderer{},
		Files:      NewDiskFiles(downloadDir),
		Opener:     noOpener{},
		Missing:    []Name{Speech, Recognition, Tones, Desktop},
	}
}
