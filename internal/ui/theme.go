package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/easyface/easyface/internal/config"
	"github.com/easyface/easyface/internal/store"
)

// Theme defines colors used across the UI.
type Theme struct {
	Text        color.Color // Body text and idle button labels
	Muted       color.Color // Disabled controls, hints
	Accent      color.Color // Active/toggled controls, titles
	Header      color.Color // Header text
	HeaderBG    color.Color // Header background
	ScanOutline color.Color // Scan highlight border
	NavOutline  color.Color // Keyboard navigation highlight border
	Status      color.Color // Normal status bar text
	StatusError color.Color // Error status bar text
	Debug       color.Color // Debug bar text
}

// fallbackTheme is used for any color the config leaves blank.
func fallbackTheme() Theme {
	return Theme{
		Text:        lipgloss.Color("252"),
		Muted:       lipgloss.Color("244"),
		Accent:      lipgloss.Color("81"),
		Header:      lipgloss.Color("81"),
		HeaderBG:    lipgloss.Color("236"),
		ScanOutline: lipgloss.Color("214"),
		NavOutline:  lipgloss.Color("81"),
		Status:      lipgloss.Color("81"),
		StatusError: lipgloss.Color("203"),
		Debug:       lipgloss.Color("244"),
	}
}

// ThemeFromConfig converts a palette, filling blanks from the fallback.
func ThemeFromConfig(tc config.ThemeConfig) Theme {
	base := fallbackTheme()
	pick := func(v string, def color.Color) color.Color {
		if v = strings.TrimSpace(v); v != "" {
			return lipgloss.Color(v)
		}
		return def
	}
	return Theme{
		Text:        pick(tc.Text, base.Text),
		Muted:       pick(tc.Muted, base.Muted),
		Accent:      pick(tc.Accent, base.Accent),
		Header:      pick(tc.Header, base.Header),
		HeaderBG:    pick(tc.HeaderBG, base.HeaderBG),
		ScanOutline: pick(tc.ScanOutline, base.ScanOutline),
		NavOutline:  pick(tc.NavOutline, base.NavOutline),
		Status:      pick(tc.Status, base.Status),
		StatusError: pick(tc.StatusError, base.StatusError),
		Debug:       pick(tc.Debug, base.Debug),
	}
}

// selectTheme picks the configured palette, or the high-contrast one when
// the setting asks for it.
func selectTheme(cfg config.UIConfig, highContrast bool) Theme {
	name := cfg.Theme
	if highContrast && cfg.ContrastName != "" {
		name = cfg.ContrastName
	}
	if tc, ok := cfg.Themes[name]; ok {
		return ThemeFromConfig(tc)
	}
	return fallbackTheme()
}

// typeScale maps the font size setting onto button padding. Terminals have
// one glyph size, so larger text means roomier, bold controls.
type typeScale struct {
	pad  int
	bold bool
}

func scaleFor(fs store.FontSize) typeScale {
	switch fs {
	case store.FontSmall:
		return typeScale{pad: 0}
	case store.FontLarge:
		return typeScale{pad: 2, bold: true}
	}
	return typeScale{pad: 1}
}

// styles bundles the lipgloss styles derived from a theme. With noColor
// every style keeps its layout but drops colors.
type styles struct {
	theme   Theme
	noColor bool
	scale   typeScale
}

func (s styles) fg(c color.Color) lipgloss.Style {
	st := lipgloss.NewStyle()
	if !s.noColor {
		st = st.Foreground(c)
	}
	return st
}

func (s styles) text() lipgloss.Style { return s.fg(s.theme.Text) }
func (s styles) muted() lipgloss.Style { return s.fg(s.theme.Muted) }
func (s styles) title() lipgloss.Style { return s.fg(s.theme.Accent).Bold(true) }

func (s styles) header() lipgloss.Style {
	st := lipgloss.NewStyle().Bold(true)
	if !s.noColor {
		st = st.Foreground(s.theme.Header).Background(s.theme.HeaderBG)
	}
	return st
}

func (s styles) status(isErr bool) lipgloss.Style {
	if isErr {
		return s.fg(s.theme.StatusError)
	}
	return s.fg(s.theme.Status)
}

// box returns the bordered style for a control in the given state. Every
// state uses a one-cell border so highlighting never shifts the layout.
func (s styles) box(st controlState) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, s.scale.pad).Bold(s.scale.bold)
	border := lipgloss.RoundedBorder()
	var fg, bc color.Color = s.theme.Text, s.theme.Muted
	switch {
	case st.scanned:
		border = lipgloss.ThickBorder()
		fg, bc = s.theme.ScanOutline, s.theme.ScanOutline
		style = style.Bold(true)
	case st.navigated:
		border = lipgloss.DoubleBorder()
		fg, bc = s.theme.NavOutline, s.theme.NavOutline
	case st.disabled:
		fg = s.theme.Muted
	case st.active:
		fg, bc = s.theme.Accent, s.theme.Accent
	}
	style = style.Border(border)
	if s.noColor {
		if st.scanned {
			style = style.Reverse(true)
		}
		return style
	}
	return style.Foreground(fg).BorderForeground(bc)
}

// row returns the single-line style used by sidebar entries.
func (s styles) row(st controlState) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(s.scale.bold)
	switch {
	case st.scanned:
		style = style.Reverse(true).Bold(true)
		if !s.noColor {
			style = style.Foreground(s.theme.ScanOutline)
		}
	case st.navigated:
		if !s.noColor {
			style = style.Foreground(s.theme.NavOutline)
		}
		style = style.Underline(true)
	case st.active:
		if !s.noColor {
			style = style.Foreground(s.theme.Accent)
		}
		style = style.Bold(true)
	default:
		if !s.noColor {
			style = style.Foreground(s.theme.Text)
		}
	}
	return style
}
