package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("invalid configuration")

// Parse decodes a configuration document.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("decode config: %w", err)
	}
	return f, nil
}

// Load decodes defaults and overlays the file at path, if any. Fields the
// user file leaves out keep their default; lists present in the user file
// replace the default list.
func Load(defaults []byte, path string) (File, error) {
	f, err := Parse(defaults)
	if err != nil {
		return File{}, fmt.Errorf("default config: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		return f, f.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, f.Validate()
		}
		return f, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("decode config %s: %w", path, err)
	}
	return f, f.Validate()
}

// Validate checks the fields the application cannot run without.
func (f File) Validate() error {
	if len(f.UI.Themes) == 0 {
		return fmt.Errorf("%w: no themes", ErrInvalid)
	}
	if _, ok := f.UI.Themes[f.UI.Theme]; !ok {
		return fmt.Errorf("%w: theme %q is not defined", ErrInvalid, f.UI.Theme)
	}
	if f.UI.ContrastName != "" {
		if _, ok := f.UI.Themes[f.UI.ContrastName]; !ok {
			return fmt.Errorf("%w: theme %q is not defined", ErrInvalid, f.UI.ContrastName)
		}
	}
	seen := map[string]bool{}
	for _, c := range f.UI.Phrases {
		if c.ID == "" {
			return fmt.Errorf("%w: phrase category %q has no id", ErrInvalid, c.Name)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: duplicate phrase category %q", ErrInvalid, c.ID)
		}
		seen[c.ID] = true
	}
	for _, d := range f.UI.SpeedPresets {
		if d <= 0 {
			return fmt.Errorf("%w: speed preset %s", ErrInvalid, d)
		}
	}
	return nil
}

// Category returns the phrase category with id.
func (f File) Category(id string) (PhraseCategory, bool) {
	for _, c := range f.UI.Phrases {
		if c.ID == id {
			return c, true
		}
	}
	return PhraseCategory{}, false
}
