package cmd

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/easyface/easyface/internal/capability"
	"github.com/easyface/easyface/internal/screen"
	"github.com/easyface/easyface/internal/store"
	"github.com/easyface/easyface/internal/ui"
	"github.com/easyface/easyface/pkg/logger"
	"github.com/easyface/easyface/pkg/settings"
)

var (
	settingsFile   string
	shortcutsFile  string
	configFile     string
	logFile        string
	logLevel       string
	scanOnStart    bool
	scanPeriod     int
	startScreen    string
	noColor        bool
	debug          bool
	renderSnapshot bool
	startKeys      []string
	snapshotWidth  int
	snapshotHeight int
)

var rootCtx = context.Background()

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Switch-accessible scanning shell for the terminal",
	Long: `easyface is a full-screen assistive shell. A text editor, file manager,
calculator, site launcher, media player, PDF reader and communication board
are reachable with Ctrl+1..8, the mouse, or a single switch in scan mode.

Press Ctrl+S to start scanning: Enter activates the highlighted item,
Space pauses, Esc goes back to the main menu.`,
	Example: "\n  easyface\n  easyface --scan --scan-period 3000\n  easyface --screen calculator --snapshot --no-color --press '7*6='\n  easyface settings show -o toml\n  easyface shortcuts set open-calculator k\n",
	Args:    cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := parseLogLevel(logLevel, debug)
		if err != nil {
			return err
		}
		run := settings.NewCliParams()
		run.MinLogLevel = level
		run.Paths = resolvePaths(settings.Paths{
			Settings:  settingsFile,
			Shortcuts: shortcutsFile,
			Config:    configFile,
			Log:       logFile,
		})
		run.NoColor = noColor
		run.Debug = debug
		run.ScanOnStart = scanOnStart

		lgr := logger.Get(level, run.Paths.Log)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = settings.IntoContext(logger.WithLogger(context.Background(), lgr), run)
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		run, ok := settings.FromContext(rootCtx)
		if !ok {
			return fmt.Errorf("runtime settings missing from context")
		}
		lgr := *logger.FromContext(rootCtx)

		opts, err := buildOptions(run, lgr)
		if err != nil {
			return err
		}

		if renderSnapshot {
			size := resolveSnapshotSize(snapshotWidth, snapshotHeight)
			opts.Width, opts.Height = size.Width, size.Height
			opts.Caps = capability.Silent(run.Paths.Downloads)
			lgr.V(1).Info("rendering snapshot", "width", size.Width, "height", size.Height, "keys", startKeys)
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderSnapshot(opts, startKeys))
			return nil
		}

		opts.Width, opts.Height = snapshotWidth, snapshotHeight
		progOpts, cleanup := getProgramOptions()
		defer cleanup()
		return ui.Run(opts, startKeys, progOpts...)
	},
}

// buildOptions loads everything the model needs. Unreadable settings,
// shortcuts or config are logged and replaced by defaults so the shell always
// starts; invalid flag values are returned as errors.
func buildOptions(run *settings.Run, lgr logr.Logger) (ui.Options, error) {
	cfg, err := loadAppConfig(run.Paths.Config)
	if err != nil {
		lgr.Error(err, "config unusable, using defaults", "path", run.Paths.Config)
		if cfg, err = loadAppConfig(""); err != nil {
			return ui.Options{}, err
		}
	}

	st := store.New(run.Paths.Settings, run.Paths.Shortcuts)
	prefs, err := st.LoadSettings()
	if err != nil {
		lgr.Error(err, "settings unreadable, using defaults", "path", run.Paths.Settings)
	}
	shortcuts, err := st.LoadShortcuts()
	if err != nil {
		lgr.Error(err, "shortcuts unreadable, ignoring them", "path", run.Paths.Shortcuts)
	}

	if scanPeriod != 0 {
		prefs.ScanPeriodMS = scanPeriod
		if err := prefs.Validate(); err != nil {
			return ui.Options{}, fmt.Errorf("invalid --scan-period: %d (expected %d..%d milliseconds)", scanPeriod, store.MinScanPeriodMS, store.MaxScanPeriodMS)
		}
	}

	initial := screen.Welcome
	if name := strings.TrimSpace(startScreen); name != "" {
		s, ok := screen.Parse(name)
		if !ok {
			return ui.Options{}, fmt.Errorf("unknown screen %q\navailable screens: %s", name, strings.Join(screenNames(), ", "))
		}
		initial = s
	}

	capCfg := cfg.App.Capabilities
	if capCfg.DownloadDir == "" {
		capCfg.DownloadDir = run.Paths.Downloads
	}
	caps := capability.Detect(capCfg)
	for _, w := range caps.Warnings() {
		lgr.Info(w)
	}

	return ui.Options{
		Config:      cfg,
		Store:       st,
		Caps:        caps,
		Settings:    prefs,
		Shortcuts:   shortcuts,
		Logger:      lgr,
		Screen:      initial,
		ScanOnStart: run.ScanOnStart,
		NoColor:     run.NoColor,
		Debug:       run.Debug,
	}, nil
}

// parseLogLevel maps --log-level to a zap level; --debug forces debug.
func parseLogLevel(v string, debug bool) (int8, error) {
	if debug {
		return int8(zapcore.DebugLevel), nil
	}
	if strings.TrimSpace(v) == "" {
		return int8(zapcore.InfoLevel), nil
	}
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("invalid --log-level %q (expected debug, info, warn, or error)", v)
	}
	return int8(lvl), nil
}

func screenNames() []string {
	all := screen.All()
	out := make([]string, 0, len(all))
	for _, s := range all {
		out = append(out, s.String())
	}
	return out
}

// cliVersionString builds a human-readable version string for CLI output and Cobra's --version flag.
func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, go %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print easyface version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return nil
	},
}

func init() { //nolint:gochecknoinits
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&settingsFile, "settings-file", "", "path to the accessibility settings file (default $XDG_CONFIG_HOME/easyface/settings.yaml)")
	pf.StringVar(&shortcutsFile, "shortcuts-file", "", "path to the custom shortcuts file (default $XDG_CONFIG_HOME/easyface/shortcuts.yaml)")
	pf.StringVar(&configFile, "config-file", "", "path to a YAML config file merged over the built-in defaults")
	pf.StringVar(&logFile, "log-file", "", "write JSON logs here (default $XDG_STATE_HOME/easyface/easyface.log)")
	pf.StringVar(&logLevel, "log-level", "info", "minimum log level: debug|info|warn|error")
	pf.BoolVar(&debug, "debug", false, "show the debug bar and log at debug level")

	f := rootCmd.Flags()
	f.BoolVar(&scanOnStart, "scan", false, "start with scan mode on")
	f.IntVar(&scanPeriod, "scan-period", 0, "scan period in milliseconds for this run (default from settings)")
	f.StringVar(&startScreen, "screen", "", "screen to open first, e.g. calculator or text-editor")
	f.BoolVar(&noColor, "no-color", false, "disable color output")
	f.BoolVar(&renderSnapshot, "snapshot", false, "render a single frame and exit (dev/test); honors --width/--height")
	f.StringArrayVar(&startKeys, "press", nil, "Simulate keys on startup. Use <Key> for special keys (e.g. <CR>, <Esc>, <Tab>, <C-3>, <C-s>). Literal text types normally. Example: --press \"<C-3>7*6=\"")
	f.IntVar(&snapshotWidth, "width", 0, "width in columns (default: terminal width)")
	f.IntVar(&snapshotHeight, "height", 0, "height in rows (default: terminal height)")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(shortcutsCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
