// Package store persists the accessibility settings record and the custom
// shortcut map. Load failures fall back to defaults; the caller logs them.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FontSize is the text size category.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

const (
	// DefaultScanPeriodMS is the scan period when none is stored.
	DefaultScanPeriodMS = 2000
	// MinScanPeriodMS bounds how fast the scanner may advance.
	MinScanPeriodMS = 250
	// MaxScanPeriodMS bounds how slow the scanner may advance.
	MaxScanPeriodMS = 30000
)

// ErrCorrupt is wrapped by load errors caused by unreadable content.
var ErrCorrupt = errors.New("stored data is corrupt")

// Settings is the persisted accessibility record.
type Settings struct {
	FontSize      FontSize `yaml:"font_size" json:"font_size" toml:"font_size"`
	HighContrast  bool     `yaml:"high_contrast" json:"high_contrast" toml:"high_contrast"`
	SoundsEnabled bool     `yaml:"sounds_enabled" json:"sounds_enabled" toml:"sounds_enabled"`
	ScanPeriodMS  int      `yaml:"scan_period_ms" json:"scan_period_ms" toml:"scan_period_ms"`
}

// DefaultSettings returns the record used before anything was saved.
func DefaultSettings() Settings {
	return Settings{
		FontSize:      FontMedium,
		HighContrast:  false,
		SoundsEnabled: true,
		ScanPeriodMS:  DefaultScanPeriodMS,
	}
}

// Validate reports the first out-of-range field.
func (s Settings) Validate() error {
	switch s.FontSize {
	case FontSmall, FontMedium, FontLarge:
	default:
		return fmt.Errorf("%w: unknown font size %q", ErrCorrupt, s.FontSize)
	}
	if s.ScanPeriodMS < MinScanPeriodMS || s.ScanPeriodMS > MaxScanPeriodMS {
		return fmt.Errorf("%w: scan period %dms outside [%d, %d]", ErrCorrupt, s.ScanPeriodMS, MinScanPeriodMS, MaxScanPeriodMS)
	}
	return nil
}

// ParseFontSize accepts small, medium or large in any case.
func ParseFontSize(v string) (FontSize, error) {
	fs := FontSize(strings.ToLower(strings.TrimSpace(v)))
	switch fs {
	case FontSmall, FontMedium, FontLarge:
		return fs, nil
	}
	return "", fmt.Errorf("invalid font size %q (expected small, medium, or large)", v)
}

// Encode renders v as yaml, json or toml.
func Encode(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		return yaml.Marshal(v)
	case "json":
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "toml":
		return toml.Marshal(v)
	}
	return nil, fmt.Errorf("unsupported output format %q (expected yaml, json, or toml)", format)
}
