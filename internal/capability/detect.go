package capability

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
)

// Config selects host commands. Empty fields are auto-detected.
type Config struct {
	SpeechCommand     string   `yaml:"speech_command"`
	RecognizerCommand []string `yaml:"recognizer_command"`
	ToneCommand       string   `yaml:"tone_command"`
	DownloadDir       string   `yaml:"download_dir"`
}

// lookPath and startCommand are swapped out by tests.
var (
	lookPath     = exec.LookPath
	startCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, name, args...)
	}
)

var speechCandidates = []string{"espeak-ng", "espeak", "spd-say", "say"}

var toneCandidates = []string{"play", "beep"}

// Detect resolves every capability once.
func Detect(cfg Config) *Set {
	set := &Set{
		Renderer: PDFRenderer{},
		Files:    NewDiskFiles(cfg.DownloadDir),
	}

	if bin := firstAvailable(cfg.SpeechCommand, speechCandidates); bin != "" {
		set.Speaker = newExecSpeaker(bin)
	} else {
		set.Speaker = silentSpeaker{}
		set.Missing = append(set.Missing, Speech)
	}

	if len(cfg.RecognizerCommand) > 0 && firstAvailable(cfg.RecognizerCommand[0], nil) != "" {
		set.Recognizer = execRecognizer{argv: cfg.RecognizerCommand}
	} else {
		set.Recognizer = noRecognizer{}
		set.Missing = append(set.Missing, Recognition)
	}

	if bin := firstAvailable(cfg.ToneCommand, toneCandidates); bin != "" {
		set.Tones = execTones{bin: bin}
	} else {
		set.Tones = silentTones{}
		set.Missing = append(set.Missing, Tones)
	}

	if opener, ok := detectOpener(); ok {
		set.Opener = opener
	} else {
		set.Opener = noOpener{}
		set.Missing = append(set.Missing, Desktop)
	}
	return set
}

func firstAvailable(explicit string, candidates []string) string {
	if explicit != "" {
		if _, err := lookPath(explicit); err == nil {
			return explicit
		}
		return ""
	}
	for _, c := range candidates {
		if _, err := lookPath(c); err == nil {
			return c
		}
	}
	return ""
}

func detectOpener() (Opener, bool) {
	switch runtime.GOOS {
	case "darwin":
		return execOpener{argv: []string{"open"}}, true
	case "windows":
		return execOpener{argv: []string{"rundll32", "url.dll,FileProtocolHandler"}}, true
	case "linux", "freebsd", "openbsd", "netbsd":
		if _, err := lookPath("xdg-open"); err == nil {
			return execOpener{argv: []string{"xdg-open"}}, true
		}
	}
	return nil, false
}

func baseName(bin string) string {
	bin = strings.ReplaceAll(bin, "\\", "/")
	if i := strings.LastIndex(bin, "/"); i >= 0 {
		return bin[i+1:]
	}
	return bin
}
