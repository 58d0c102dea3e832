package capability

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubLookPath(t *testing.T, available ...string) {
	t.Helper()
	orig := lookPath
	lookPath = func(file string) (string, error) {
		for _, a := range available {
			if a == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", exec.ErrNotFound
	}
	t.Cleanup(func() { lookPath = orig })
}

func TestDetectNothingAvailable(t *testing.T) {
	stubLookPath(t)
	set := Detect(Config{DownloadDir: t.TempDir()})

	assert.False(t, set.Supported(Speech))
	assert.False(t, set.Supported(Recognition))
	assert.False(t, set.Supported(Tones))
	assert.True(t, set.Supported(Documents))
	assert.True(t, set.Supported(FileAccess))
	assert.NotEmpty(t, set.Warnings())

	assert.NoError(t, set.Speaker.Speak(context.Background(), Utterance{Text: "hi"}))
	assert.NoError(t, set.Tones.PlayTone(context.Background(), 800, 100*time.Millisecond))
	_, err := set.Recognizer.Recognize(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestDetectPicksFirstCandidate(t *testing.T) {
	stubLookPath(t, "spd-say", "espeak", "play", "whisper-listen", "xdg-open")
	set := Detect(Config{RecognizerCommand: []string{"whisper-listen", "--once"}})

	sp, ok := set.Speaker.(*execSpeaker)
	require.True(t, ok)
	assert.Equal(t, "espeak", sp.bin)
	assert.Equal(t, execTones{bin: "play"}, set.Tones)
	assert.Equal(t, execRecognizer{argv: []string{"whisper-listen", "--once"}}, set.Recognizer)
	assert.True(t, set.Supported(Recognition))
	if runtime.GOOS == "linux" {
		assert.True(t, set.Supported(Desktop))
	}
}

func TestDetectExplicitCommandMustExist(t *testing.T) {
	stubLookPath(t, "espeak")
	set := Detect(Config{SpeechCommand: "festival"})
	assert.False(t, set.Supported(Speech))
}

func TestSpeechArgs(t *testing.T) {
	u := Utterance{Text: "hello", Lang: "pt-BR", Rate: 0.9, Pitch: 1, Volume: 0.8}

	assert.Equal(t, []string{"-s", "158", "-p", "50", "-a", "80", "-v", "pt-br", "hello"}, speechArgs("espeak-ng", u))
	assert.Equal(t, []string{"-w", "-r", "-10", "-p", "0", "-i", "-20", "-l", "pt", "hello"}, speechArgs("spd-say", u))
	assert.Equal(t, []string{"-r", "158", "hello"}, speechArgs("say", u))
	assert.Equal(t, []string{"hello"}, speechArgs("custom-tts", u))

	zero := speechArgs("espeak", Utterance{Text: "x"})
	assert.Equal(t, []string{"-s", "175", "-p", "50", "-a", "100", "x"}, zero)
}

func TestToneArgs(t *testing.T) {
	assert.Equal(t, []string{"-f", "800", "-l", "100"}, toneArgs("beep", 800, 100*time.Millisecond))
	assert.Equal(t, []string{"-q", "-n", "synth", "0.2", "sine", "300", "vol", "0.3"}, toneArgs("play", 300, 200*time.Millisecond))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "espeak", baseName("/usr/local/bin/espeak"))
	assert.Equal(t, "say", baseName("say"))
}

func TestDiskFilesSaveNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	f := NewDiskFiles(filepath.Join(dir, "dl"))

	p1, err := f.SaveText("one", "notes.txt")
	require.NoError(t, err)
	p2, err := f.SaveText("two", "notes.txt")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "dl", "notes.txt"), p1)
	assert.Equal(t, filepath.Join(dir, "dl", "notes (1).txt"), p2)

	got, err := f.ReadText(p2)
	require.NoError(t, err)
	assert.Equal(t, "two", got)

	_, err = f.SaveText("x", "  ")
	assert.Error(t, err)
}

func TestDiskFilesSaveStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	f := NewDiskFiles(dir)
	p, err := f.SaveText("x", "../../escape.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.txt"), p)
}

func TestDiskFilesReadMissing(t *testing.T) {
	f := NewDiskFiles(t.TempDir())
	_, err := f.ReadBytes(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSilentSet(t *testing.T) {
	set := Silent(t.TempDir())
	assert.ErrorIs(t, set.Opener.OpenURL("https://example.com"), ErrUnsupported)
	assert.ErrorIs(t, set.Opener.OpenFile("/tmp/a.mp3"), ErrUnsupported)
	assert.Len(t, set.Warnings(), 4)
	assert.True(t, strings.HasPrefix(set.Warnings()[0], "speech unavailable"))
}

// buildPDF writes a minimal single-font PDF with one text line per page.
func buildPDF(pages ...string) []byte {
	var b strings.Builder
	offsets := []int{}
	obj := func(body string) {
		offsets = append(offsets, b.Len())
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}
	b.WriteString("%PDF-1.4\n")

	n := len(pages)
	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	for i, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return []byte(b.String())
}

func TestPDFRenderer(t *testing.T) {
	doc, err := PDFRenderer{}.Render(buildPDF("Hello first page", "Second page"))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.NumPages())

	text, err := doc.PageText(1)
	require.NoError(t, err)
	assert.Contains(t, text, "Hello first page")

	text, err = doc.PageText(2)
	require.NoError(t, err)
	assert.Contains(t, text, "Second page")

	_, err = doc.PageText(3)
	assert.Error(t, err)
	_, err = doc.PageText(0)
	assert.Error(t, err)
}

func TestPDFRendererRejectsGarbage(t *testing.T) {
	_, err := PDFRenderer{}.Render([]byte("not a pdf"))
	assert.Error(t, err)
}
