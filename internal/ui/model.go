package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/easyface/easyface/internal/capability"
	"github.com/easyface/easyface/internal/config"
	"github.com/easyface/easyface/internal/focus"
	"github.com/easyface/easyface/internal/registry"
	"github.com/easyface/easyface/internal/scan"
	"github.com/easyface/easyface/internal/screen"
	"github.com/easyface/easyface/internal/store"
	"github.com/easyface/easyface/internal/voice"
	"github.com/easyface/easyface/pkg/logger"
)

const (
	defaultWidth        = 100
	defaultHeight       = 32
	defaultSidebarWidth = 24
	defaultStatusRevert = 3 * time.Second
	defaultListenLimit  = 8 * time.Second
)

// Options configures a Model.
type Options struct {
	Config    config.File
	Store     *store.Store
	Caps      *capability.Set
	Settings  store.Settings
	Shortcuts store.Shortcuts
	Logger    logr.Logger
	// Scheduler delivers every delayed message; nil uses tea.Tick.
	Scheduler   scan.Scheduler
	Screen      screen.Screen
	ScanOnStart bool
	NoColor     bool
	Debug       bool
	Width       int
	Height      int
}

// Model is the application state: the active screen, scan mode, cursor
// positions, per-screen data and the persisted preferences. All of it is
// mutated only from Update.
type Model struct {
	cfg    config.File
	store  *store.Store
	caps   *capability.Set
	log    logr.Logger
	sched  scan.Scheduler
	voice  *voice.Matcher
	reg    *registry.Registry
	engine *scan.Engine
	keys   globalKeys

	settings  store.Settings
	shortcuts store.Shortcuts
	scanMode  bool

	current  screen.Screen
	previous screen.Screen

	// scanned is the element carrying the scan outline.
	scanned string
	// focused is the element holding keyboard focus.
	focused string
	// nav maps a cursor domain to its navigation-highlighted element.
	nav map[string]string
	// inputFocus is the text field receiving keystrokes, if any.
	inputFocus string
	fields     map[string]field

	sidebar  *focus.Flat
	editor   editorState
	files    filesState
	calc     calcState
	sites    sitesState
	media    mediaState
	pdf      pdfState
	comm     commState
	prefs    prefsState
	helpDoc  []string
	helpFor  string

	status  statusLine
	debug   DebugModel
	noColor bool

	width  int
	height int
	scroll int

	pending  []tea.Cmd
	quitting bool
}

// New builds the model and registers every screen's element provider.
func New(opts Options) *Model {
	caps := opts.Caps
	if caps == nil {
		caps = capability.Silent("")
	}
	shortcuts := opts.Shortcuts
	if shortcuts == nil {
		shortcuts = store.Shortcuts{}
	}
	settings := opts.Settings
	if settings.Validate() != nil {
		settings = store.DefaultSettings()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = scan.TeaScheduler{}
	}
	m := &Model{
		cfg:       opts.Config,
		store:     opts.Store,
		caps:      caps,
		log:       opts.Logger.WithName("ui").WithValues(logger.ComponentKey, "shell"),
		sched:     sched,
		voice:     voice.NewMatcher(opts.Config.App.Voice),
		reg:       registry.New(),
		keys:      newGlobalKeys(),
		settings:  settings,
		shortcuts: shortcuts,
		nav:       map[string]string{},
		fields:    map[string]field{},
		debug:     NewDebugModel(),
		noColor:   opts.NoColor,
		width:     opts.Width,
		height:    opts.Height,
	}
	if m.width <= 0 {
		m.width = defaultWidth
	}
	if m.height <= 0 {
		m.height = defaultHeight
	}
	m.debug.NoColor = opts.NoColor
	m.debug.SetVisible(opts.Debug)

	t := opts.Config.App.Timings
	m.engine = scan.New(scanHost{m}, sched, caps.Tones, opts.Logger, scan.Options{
		Period:        time.Duration(settings.ScanPeriodMS) * time.Millisecond,
		RestartDelay:  t.RestartDelay,
		SettleDelay:   t.SettleDelay,
		RecoveryDelay: t.RecoveryDelay,
	})

	sink := navSink{m}
	m.sidebar = focus.NewFlat(domainSidebar, m.sidebarIDs, sink)
	m.initEditor()
	m.initFiles(sink)
	m.initCalc(sink)
	m.initSites()
	m.initMedia()
	m.initPDF(sink)
	m.initComm(sink)
	m.initPrefs(sink)

	m.reg.RegisterNavigation(registry.ProviderFunc(m.sidebarElements))
	for _, s := range screen.All() {
		m.reg.Register(s, registry.ProviderFunc(func() []registry.Element {
			return m.screenElements(s)
		}))
	}
	m.resize()

	m.current = screen.Welcome
	if opts.Screen.Valid() && opts.Screen != screen.Welcome {
		m.current = opts.Screen
		m.enterScreen(opts.Screen)
	}
	m.status = statusLine{text: m.defaultStatus()}
	if warnings := caps.Warnings(); len(warnings) > 0 {
		m.log.Info("running with reduced capabilities", "missing", caps.Missing)
	}
	if opts.ScanOnStart {
		m.setScanMode(true)
	}
	return m
}

// Init returns the commands queued while building the model.
func (m *Model) Init() tea.Cmd {
	return m.flush()
}

// Update handles one message. Every side effect is queued with push and
// returned as a single batch.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.engine.Update(msg); ok {
		m.push(cmd)
		m.syncDebug()
		return m, m.flush()
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.debug.SetWidth(msg.Width)

	case tea.KeyPressMsg:
		m.handleKey(msg)

	case tea.MouseClickMsg:
		m.handleClick(msg.Mouse())

	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			m.scrollBy(-3)
		case tea.MouseWheelDown:
			m.scrollBy(3)
		}

	case statusRevertMsg:
		if msg.ID == m.status.id {
			m.status = statusLine{id: m.status.id, text: m.defaultStatus()}
		}

	case voiceResultMsg:
		m.onVoice(msg)

	case openResultMsg:
		m.onOpenResult(msg)

	case feedbackErrMsg:
		m.log.V(1).Info("feedback failed", "kind", msg.Kind, "error", msg.Err.Error())

	default:
		if f, ok := m.fields[m.inputFocus]; ok {
			m.push(f.Update(msg))
		}
	}
	m.syncDebug()
	return m, m.flush()
}

// View renders the full frame.
func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	// Enable keyboard enhancements for proper modifier key detection (e.g., Ctrl+Shift+D)
	v.KeyboardEnhancements.ReportEventTypes = true
	return v
}

func (m *Model) push(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) flush() tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

// Current returns the active screen.
func (m *Model) Current() screen.Screen { return m.current }

// ScanMode reports whether scan mode is on.
func (m *Model) ScanMode() bool { return m.scanMode }

// Engine exposes the scanner for diagnostics and tests.
func (m *Model) Engine() *scan.Engine { return m.engine }

// Settings returns the live accessibility record.
func (m *Model) Settings() store.Settings { return m.settings }

// StatusText returns the status bar text.
func (m *Model) StatusText() string { return m.status.text }

// Focused returns the element holding keyboard focus.
func (m *Model) Focused() string { return m.focused }

// Quitting reports whether the model asked the program to exit.
func (m *Model) Quitting() bool { return m.quitting }

func (m *Model) resize() {
	_, _, cw, _ := m.geometry()
	m.resizeFields(cw)
}

// geometry returns the sidebar width, content left column, content width
// and body height for the current window.
func (m *Model) geometry() (sidebarW, contentLeft, contentW, bodyH int) {
	sidebarW = m.cfg.UI.SidebarWidth
	if sidebarW <= 0 {
		sidebarW = defaultSidebarWidth
	}
	sidebarW = min(sidebarW, max(12, m.width/3))
	contentLeft = sidebarW + gutter
	contentW = max(20, m.width-contentLeft)
	bodyH = max(1, m.height-headerHeight-statusHeight-m.debugHeight())
	return sidebarW, contentLeft, contentW, bodyH
}

func (m *Model) debugHeight() int {
	if m.debug.Visible {
		return 1
	}
	return 0
}

func (m *Model) statusRevert() time.Duration {
	if d := m.cfg.App.Timings.StatusRevert; d > 0 {
		return d
	}
	return defaultStatusRevert
}
