package capability

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"
)

type execSpeaker struct {
	bin string

	mu      sync.Mutex
	current *exec.Cmd
}

func newExecSpeaker(bin string) *execSpeaker {
	return &execSpeaker{bin: bin}
}

// Speak interrupts any utterance still playing and blocks until this one ends.
func (s *execSpeaker) Speak(ctx context.Context, u Utterance) error {
	if strings.TrimSpace(u.Text) == "" {
		return nil
	}
	cmd := startCommand(ctx, s.bin, speechArgs(baseName(s.bin), u)...)

	s.mu.Lock()
	if s.current != nil && s.current.Process != nil {
		_ = s.current.Process.Kill()
	}
	if err := cmd.Start(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("start %s: %w", s.bin, err)
	}
	s.current = cmd
	s.mu.Unlock()

	err := cmd.Wait()

	s.mu.Lock()
	superseded := s.current != cmd
	if !superseded {
		s.current = nil
	}
	s.mu.Unlock()

	if err != nil && !superseded && ctx.Err() == nil {
		return fmt.Errorf("%s: %w", s.bin, err)
	}
	return nil
}

func speechArgs(tool string, u Utterance) []string {
	rate := orOne(u.Rate)
	pitch := orOne(u.Pitch)
	volume := orOne(u.Volume)
	switch tool {
	case "espeak", "espeak-ng":
		args := []string{
			"-s", strconv.Itoa(int(math.Round(175 * rate))),
			"-p", strconv.Itoa(clampInt(int(math.Round(50*pitch)), 0, 99)),
			"-a", strconv.Itoa(clampInt(int(math.Round(100*volume)), 0, 200)),
		}
		if u.Lang != "" {
			args = append(args, "-v", strings.ToLower(u.Lang))
		}
		return append(args, u.Text)
	case "spd-say":
		args := []string{
			"-w",
			"-r", strconv.Itoa(clampInt(int(math.Round((rate-1)*100)), -100, 100)),
			"-p", strconv.Itoa(clampInt(int(math.Round((pitch-1)*100)), -100, 100)),
			"-i", strconv.Itoa(clampInt(int(math.Round((volume-1)*100)), -100, 100)),
		}
		if u.Lang != "" {
			args = append(args, "-l", strings.SplitN(u.Lang, "-", 2)[0])
		}
		return append(args, u.Text)
	case "say":
		return []string{"-r", strconv.Itoa(int(math.Round(175 * rate))), u.Text}
	}
	return []string{u.Text}
}

type execTones struct {
	bin string
}

func (t execTones) PlayTone(ctx context.Context, hz float64, d time.Duration) error {
	if hz <= 0 || d <= 0 {
		return nil
	}
	return startCommand(ctx, t.bin, toneArgs(baseName(t.bin), hz, d)...).Run()
}

func toneArgs(tool string, hz float64, d time.Duration) []string {
	switch tool {
	case "beep":
		return []string{"-f", strconv.FormatFloat(hz, 'f', -1, 64), "-l", strconv.FormatInt(d.Milliseconds(), 10)}
	}
	return []string{"-q", "-n", "synth", strconv.FormatFloat(d.Seconds(), 'f', -1, 64), "sine", strconv.FormatFloat(hz, 'f', -1, 64), "vol", "0.3"}
}

type execRecognizer struct {
	argv []string
}

func (r execRecognizer) Recognize(ctx context.Context) (string, error) {
	out, err := startCommand(ctx, r.argv[0], r.argv[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("recognizer %s: %w", r.argv[0], err)
	}
	return strings.TrimSpace(string(out)), nil
}

// execOpener uses a detached context since the child outlives the caller.
type execOpener struct {
	argv []string
}

func (o execOpener) OpenURL(url string) error { return o.start(url) }

func (o execOpener) OpenFile(path string) error { return o.start(path) }

func (o execOpener) start(target string) error {
	args := append(append([]string{}, o.argv[1:]...), target)
	return startCommand(context.Background(), o.argv[0], args...).Start()
}

func orOne(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
