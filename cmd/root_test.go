package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyface/easyface/internal/screen"
	"github.com/easyface/easyface/internal/store"
	"github.com/easyface/easyface/pkg/settings"
)

// TestMain points every XDG directory at a scratch tree so no test reads or
// writes the real user configuration.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "easyface-cmd-*")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, env := range []string{"XDG_CONFIG_HOME", "XDG_STATE_HOME", "XDG_DOWNLOAD_DIR"} {
		_ = os.Setenv(env, filepath.Join(dir, strings.ToLower(env)))
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func resetRootCmdState() {
	resetFlags(rootCmd)
	startKeys = nil
	rootCtx = context.Background()
	rootCmd.SetArgs(nil)
}

// runCLI executes the root command with args and returns everything it wrote.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetRootCmdState()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

// isolatedFiles returns settings/shortcuts flags pointing into a temp dir.
func isolatedFiles(t *testing.T) (string, string, []string) {
	t.Helper()
	dir := t.TempDir()
	s := filepath.Join(dir, "settings.yaml")
	k := filepath.Join(dir, "shortcuts.yaml")
	return s, k, []string{"--settings-file", s, "--shortcuts-file", k}
}

func TestCLI_SnapshotWelcome(t *testing.T) {
	_, _, files := isolatedFiles(t)
	out, err := runCLI(t, append(files, "--snapshot", "--no-color", "--width", "80", "--height", "24")...)
	require.NoError(t, err)

	plain := ansi.Strip(out)
	lines := strings.Split(strings.TrimSuffix(plain, "\n"), "\n")
	assert.Len(t, lines, 24)
	assert.Contains(t, lines[0], "Main Menu")
	assert.Contains(t, plain, "Calculator")
	for i, l := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(l), 80, "line %d too wide", i)
	}
}

func TestCLI_SnapshotScreenAndPress(t *testing.T) {
	_, _, files := isolatedFiles(t)
	out, err := runCLI(t, append(files, "--snapshot", "--no-color", "--width", "90", "--height", "30",
		"--screen", "calculator", "--press", "7*6=")...)
	require.NoError(t, err)

	plain := ansi.Strip(out)
	assert.Contains(t, plain, "EASYFACE · Calculator")
	assert.Contains(t, plain, "42")
}

func TestCLI_SnapshotScanFlag(t *testing.T) {
	_, _, files := isolatedFiles(t)
	out, err := runCLI(t, append(files, "--snapshot", "--no-color", "--width", "90", "--height", "30",
		"--scan", "--scan-period", "3000")...)
	require.NoError(t, err)

	first := strings.Split(ansi.Strip(out), "\n")[0]
	assert.Contains(t, first, "SCAN 3s")
}

func TestCLI_SnapshotUsesSavedSettings(t *testing.T) {
	sPath, _, files := isolatedFiles(t)
	saved := store.DefaultSettings()
	saved.ScanPeriodMS = 5000
	require.NoError(t, store.New(sPath, "").SaveSettings(saved))

	out, err := runCLI(t, append(files, "--snapshot", "--no-color", "--width", "90", "--height", "30", "--scan")...)
	require.NoError(t, err)
	assert.Contains(t, strings.Split(ansi.Strip(out), "\n")[0], "SCAN 5s")
}

func TestCLI_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown screen", []string{"--screen", "spreadsheet"}, `unknown screen "spreadsheet"`},
		{"scan period too fast", []string{"--scan-period", "10"}, "invalid --scan-period"},
		{"bad log level", []string{"--log-level", "chatty"}, "invalid --log-level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, files := isolatedFiles(t)
			args := append(append(files, "--snapshot"), tt.args...)
			_, err := runCLI(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuildOptions_CorruptFilesFallBack(t *testing.T) {
	dir := t.TempDir()
	sPath := filepath.Join(dir, "settings.yaml")
	kPath := filepath.Join(dir, "shortcuts.yaml")
	require.NoError(t, os.WriteFile(sPath, []byte("font_size: [oops"), 0o600))
	require.NoError(t, os.WriteFile(kPath, []byte("shortcuts:\n  open-pdf: pdf\n"), 0o600))
	resetRootCmdState()

	run := settings.NewCliParams()
	run.Paths = settings.Paths{Settings: sPath, Shortcuts: kPath, Downloads: dir}
	opts, err := buildOptions(run, logr.Discard())

	require.NoError(t, err)
	assert.Equal(t, store.DefaultSettings(), opts.Settings)
	assert.Empty(t, opts.Shortcuts)
	assert.Equal(t, screen.Welcome, opts.Screen)
	assert.NotNil(t, opts.Store)
	assert.NotNil(t, opts.Caps)
}

func TestBuildOptions_BadConfigFallsBack(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ui:\n  theme: nowhere\n"), 0o600))
	resetRootCmdState()

	run := settings.NewCliParams()
	run.Paths = settings.Paths{Config: cfgPath, Downloads: dir}
	opts, err := buildOptions(run, logr.Discard())

	require.NoError(t, err)
	assert.NotEqual(t, "nowhere", opts.Config.UI.Theme)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in    string
		debug bool
		want  int8
		err   bool
	}{
		{in: "", want: 0},
		{in: "info", want: 0},
		{in: "debug", want: -1},
		{in: "WARN", want: 1},
		{in: "error", want: 2},
		{in: "error", debug: true, want: -1},
		{in: "loud", err: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.in, tt.debug), func(t *testing.T) {
			got, err := parseLogLevel(tt.in, tt.debug)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "easyface")
	assert.Contains(t, out, settings.VersionInformation.BuildVersion)
}

func TestRootFlagVersion(t *testing.T) {
	out, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "easyface "), "got %q", out)
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := runCLI(t, "some-file.txt")
	require.Error(t, err)
}

func TestTerminalDeviceNames(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in  string
		out string
	}{
		"windows": {in: "CONIN$", out: "CONOUT$"},
		"linux":   {in: "/dev/tty", out: "/dev/tty"},
		"darwin":  {in: "/dev/tty", out: "/dev/tty"},
		"freebsd": {in: "/dev/tty", out: "/dev/tty"},
	}

	for goos, expected := range tests {
		t.Run(goos, func(t *testing.T) {
			t.Parallel()

			in, out := terminalDeviceNames(goos)
			require.Equal(t, expected.in, in)
			require.Equal(t, expected.out, out)
		})
	}
}

func TestResolveSnapshotSize(t *testing.T) {
	origTermGetSize := termGetSize
	defer func() { termGetSize = origTermGetSize }()
	t.Setenv("COLUMNS", "")
	t.Setenv("LINES", "")

	termGetSize = func(int) (int, int, error) { return 0, 0, fmt.Errorf("not a terminal") }
	assert.Equal(t, snapshotSize{Width: 80, Height: 24}, resolveSnapshotSize(0, 0))
	assert.Equal(t, snapshotSize{Width: 120, Height: 24}, resolveSnapshotSize(120, 0))

	t.Setenv("COLUMNS", "132")
	t.Setenv("LINES", "43")
	assert.Equal(t, snapshotSize{Width: 132, Height: 43}, resolveSnapshotSize(0, 0))

	termGetSize = func(int) (int, int, error) { return 100, 50, nil }
	assert.Equal(t, snapshotSize{Width: 100, Height: 50}, resolveSnapshotSize(0, 0))
	assert.Equal(t, snapshotSize{Width: 70, Height: 50}, resolveSnapshotSize(70, 0))
}

func TestGetProgramOptions_PipedUsesTTYAndCleansUp(t *testing.T) {
	origIsPiped := stdinIsPiped
	origOpenTTY := openTerminalIOFn
	stdinIsPiped = func() bool { return true }

	// Distinct temp files stand in for CONIN$/CONOUT$.
	inFile, err := os.CreateTemp(t.TempDir(), "tty-in-*")
	require.NoError(t, err)
	outFile, err := os.CreateTemp(t.TempDir(), "tty-out-*")
	require.NoError(t, err)

	openTerminalIOFn = func() (*os.File, *os.File, error) {
		return inFile, outFile, nil
	}

	defer func() {
		stdinIsPiped = origIsPiped
		openTerminalIOFn = origOpenTTY
	}()

	opts, cleanup := getProgramOptions()
	require.NotNil(t, cleanup)
	require.GreaterOrEqual(t, len(opts), 1)

	// Cleanup closes both handles; a second close errors.
	cleanup()
	require.Error(t, inFile.Close())
	require.Error(t, outFile.Close())
}

func TestGetProgramOptions_NotPipedUsesDefaults(t *testing.T) {
	origIsPiped := stdinIsPiped
	origOpenTTY := openTerminalIOFn
	stdinIsPiped = func() bool { return false }
	openTerminalIOFn = func() (*os.File, *os.File, error) {
		return nil, nil, fmt.Errorf("should not be called")
	}
	defer func() {
		stdinIsPiped = origIsPiped
		openTerminalIOFn = origOpenTTY
	}()

	opts, cleanup := getProgramOptions()
	require.NotNil(t, cleanup)
	require.Nil(t, opts)
	require.NotPanics(t, cleanup)
}

func TestGetProgramOptions_NoTTYFallsBack(t *testing.T) {
	origIsPiped := stdinIsPiped
	origOpenTTY := openTerminalIOFn
	stdinIsPiped = func() bool { return true }
	openTerminalIOFn = func() (*os.File, *os.File, error) {
		return nil, nil, fmt.Errorf("no tty")
	}
	defer func() {
		stdinIsPiped = origIsPiped
		openTerminalIOFn = origOpenTTY
	}()

	opts, cleanup := getProgramOptions()
	require.Nil(t, opts)
	require.NotPanics(t, cleanup)
}

func TestWithTTYResizeWatcherSendsOnSizeChange(t *testing.T) {
	origTermGetSize := termGetSize
	origTicker := newResizeTicker
	origSend := sendWindowSize
	termCalls := atomic.Int32{}

	termGetSize = func(_ int) (int, int, error) {
		switch termCalls.Add(1) {
		case 1:
			return 80, 24, nil
		default:
			return 81, 24, nil
		}
	}

	ticks := make(chan time.Time, 2)
	newResizeTicker = func(time.Duration) resizeTicker {
		return &fakeResizeTicker{ch: ticks}
	}

	msgs := make(chan tea.WindowSizeMsg, 2)
	sendWindowSize = func(_ *tea.Program, msg tea.WindowSizeMsg) {
		msgs <- msg
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() {
		termGetSize = origTermGetSize
		newResizeTicker = origTicker
		sendWindowSize = origSend
	}()

	_, out := makePipe(t)
	opt := withTTYResizeWatcher(ctx, out)
	var p tea.Program
	opt(&p)

	// The first tick sets the baseline, the second reports the change.
	ticks <- time.Now()
	ticks <- time.Now()

	first := recvSize(t, msgs)
	require.Equal(t, tea.WindowSizeMsg{Width: 80, Height: 24}, first)
	second := recvSize(t, msgs)
	require.Equal(t, tea.WindowSizeMsg{Width: 81, Height: 24}, second)
}

func TestWithTTYResizeWatcherSkipsUnchangedSize(t *testing.T) {
	origTermGetSize := termGetSize
	origTicker := newResizeTicker
	origSend := sendWindowSize
	termCalls := atomic.Int32{}

	termGetSize = func(_ int) (int, int, error) {
		switch termCalls.Add(1) {
		case 1, 2:
			return 80, 24, nil
		default:
			return 81, 24, nil
		}
	}

	ticks := make(chan time.Time, 3)
	newResizeTicker = func(time.Duration) resizeTicker {
		return &fakeResizeTicker{ch: ticks}
	}

	msgs := make(chan tea.WindowSizeMsg, 3)
	sendWindowSize = func(_ *tea.Program, msg tea.WindowSizeMsg) {
		msgs <- msg
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() {
		termGetSize = origTermGetSize
		newResizeTicker = origTicker
		sendWindowSize = origSend
	}()

	_, out := makePipe(t)
	opt := withTTYResizeWatcher(ctx, out)
	var p tea.Program
	opt(&p)

	ticks <- time.Now()
	ticks <- time.Now()
	ticks <- time.Now()

	require.Equal(t, 80, recvSize(t, msgs).Width)
	require.Equal(t, 81, recvSize(t, msgs).Width)
}

func recvSize(t *testing.T, msgs <-chan tea.WindowSizeMsg) tea.WindowSizeMsg {
	t.Helper()
	select {
	case m := <-msgs:
		return m
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for resize message")
		return tea.WindowSizeMsg{}
	}
}

type fakeResizeTicker struct {
	ch <-chan time.Time
}

func (f *fakeResizeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeResizeTicker) Stop()               {}

func makePipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	return r, w
}
