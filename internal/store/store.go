package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store reads and writes the two persisted files. A zero path disables
// persistence for that record.
type Store struct {
	SettingsPath  string
	ShortcutsPath string
}

// New returns a store over the given paths.
func New(settingsPath, shortcutsPath string) *Store {
	return &Store{SettingsPath: settingsPath, ShortcutsPath: shortcutsPath}
}

// LoadSettings returns the stored record. A missing file yields defaults
// without error; unreadable or invalid content yields defaults and an error.
func (s *Store) LoadSettings() (Settings, error) {
	def := DefaultSettings()
	if s == nil || s.SettingsPath == "" {
		return def, nil
	}
	data, err := os.ReadFile(s.SettingsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("read settings: %w", err)
	}
	out := def
	if err := yaml.Unmarshal(data, &out); err != nil {
		return def, fmt.Errorf("decode settings %s: %w: %w", s.SettingsPath, ErrCorrupt, err)
	}
	if err := out.Validate(); err != nil {
		return def, fmt.Errorf("settings %s: %w", s.SettingsPath, err)
	}
	return out, nil
}

// SaveSettings writes the whole record.
func (s *Store) SaveSettings(v Settings) error {
	if s == nil || s.SettingsPath == "" {
		return nil
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return writeYAML(s.SettingsPath, v)
}

// LoadShortcuts returns the stored map, empty when nothing was saved.
func (s *Store) LoadShortcuts() (Shortcuts, error) {
	if s == nil || s.ShortcutsPath == "" {
		return Shortcuts{}, nil
	}
	data, err := os.ReadFile(s.ShortcutsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Shortcuts{}, nil
	}
	if err != nil {
		return Shortcuts{}, fmt.Errorf("read shortcuts: %w", err)
	}
	var raw struct {
		Shortcuts Shortcuts `yaml:"shortcuts"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Shortcuts{}, fmt.Errorf("decode shortcuts %s: %w: %w", s.ShortcutsPath, ErrCorrupt, err)
	}
	if raw.Shortcuts == nil {
		raw.Shortcuts = Shortcuts{}
	}
	if err := raw.Shortcuts.Validate(); err != nil {
		return Shortcuts{}, fmt.Errorf("shortcuts %s: %w", s.ShortcutsPath, err)
	}
	return raw.Shortcuts, nil
}

// SaveShortcuts writes the whole map.
func (s *Store) SaveShortcuts(v Shortcuts) error {
	if s == nil || s.ShortcutsPath == "" {
		return nil
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return writeYAML(s.ShortcutsPath, struct {
		Shortcuts Shortcuts `yaml:"shortcuts"`
	}{v})
}

// writeYAML replaces path atomically via a sibling temp file.
func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
