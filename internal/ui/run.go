package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/easyface/easyface/pkg/logger"
)

// Run starts the Bubble Tea program. A zero Width or Height is detected
// from the terminal, falling back to defaults. Extra ProgramOptions (e.g.,
// custom IO) are passed to tea.NewProgram.
func Run(opts Options, startKeys []string, progOpts ...tea.ProgramOption) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if opts.Width <= 0 {
				opts.Width = w
			}
			if opts.Height <= 0 {
				opts.Height = h
			}
		}
	}
	m := New(opts)
	ApplyStartupKeys(m, startKeys)
	m.log.Info("starting", logger.ScreenKey, m.current.String(), "scan", m.scanMode, "width", m.width, "height", m.height)

	prog := tea.NewProgram(m, progOpts...)
	final, err := prog.Run()
	if fm, ok := final.(*Model); ok && fm != nil {
		fm.engine.Disable()
		fm.log.Info("stopped", logger.ScreenKey, fm.current.String())
	}
	return err
}

// RenderSnapshot builds a model, applies the startup keys and renders one
// frame without starting a program.
func RenderSnapshot(opts Options, startKeys []string) string {
	m := New(opts)
	ApplyStartupKeys(m, startKeys)
	m.flush()
	m.syncDebug()
	return m.Render()
}
