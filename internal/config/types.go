// Package config holds the application configuration: the about block,
// communication phrases, site presets, voice commands, timings and the
// palette. Defaults ship embedded in the binary; a user file overlays them.
package config

import (
	"time"

	"github.com/easyface/easyface/internal/capability"
	"github.com/easyface/easyface/internal/voice"
)

// File is the full configuration document.
type File struct {
	App AppConfig `yaml:"app"`
	UI  UIConfig  `yaml:"ui"`
}

// AppConfig covers non-visual behavior.
type AppConfig struct {
	About        About             `yaml:"about"`
	Speech       Speech            `yaml:"speech"`
	Timings      Timings           `yaml:"timings"`
	Tones        Tones             `yaml:"tones"`
	Capabilities capability.Config `yaml:"capabilities"`
	Voice        []voice.Command   `yaml:"voice_commands"`
}

// About is shown on the welcome screen.
type About struct {
	Name    string   `yaml:"name"`
	Tagline string   `yaml:"tagline"`
	Lines   []string `yaml:"lines"`
}

// Speech sets the defaults of every spoken utterance.
type Speech struct {
	Lang   string  `yaml:"lang"`
	Rate   float64 `yaml:"rate"`
	Pitch  float64 `yaml:"pitch"`
	Volume float64 `yaml:"volume"`
}

// Timings are the delayed continuations used by the router, scanner and
// status bar.
type Timings struct {
	RestartDelay  time.Duration `yaml:"restart_delay"`
	SettleDelay   time.Duration `yaml:"settle_delay"`
	RecoveryDelay time.Duration `yaml:"recovery_delay"`
	StatusRevert  time.Duration `yaml:"status_revert"`
	ListenTimeout time.Duration `yaml:"listen_timeout"`
}

// Tones are the feedback beeps.
type Tones struct {
	ClickHz       float64       `yaml:"click_hz"`
	ClickDuration time.Duration `yaml:"click_duration"`
	ErrorHz       float64       `yaml:"error_hz"`
	ErrorDuration time.Duration `yaml:"error_duration"`
}

// UIConfig covers layout, palette and screen content.
type UIConfig struct {
	Theme        string                 `yaml:"theme"`
	ContrastName string                 `yaml:"high_contrast_theme"`
	Themes       map[string]ThemeConfig `yaml:"themes"`
	SidebarWidth int                    `yaml:"sidebar_width"`
	SpeedPresets []time.Duration        `yaml:"speed_presets"`
	Phrases      []PhraseCategory       `yaml:"phrases"`
	Sites        []Site                 `yaml:"sites"`
	DefaultSave  string                 `yaml:"editor_filename"`
	PDFZoom      float64                `yaml:"pdf_zoom"`
}

// ThemeConfig is a palette of ANSI or hex color strings.
type ThemeConfig struct {
	Text        string `yaml:"text"`
	Muted       string `yaml:"muted"`
	Accent      string `yaml:"accent"`
	Header      string `yaml:"header"`
	HeaderBG    string `yaml:"header_bg"`
	ScanOutline string `yaml:"scan_outline"`
	NavOutline  string `yaml:"nav_outline"`
	Status      string `yaml:"status"`
	StatusError string `yaml:"status_error"`
	Debug       string `yaml:"debug"`
}

// PhraseCategory is one group on the communication board.
type PhraseCategory struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Phrases []string `yaml:"phrases"`
}

// Site is a site launcher preset.
type Site struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}
