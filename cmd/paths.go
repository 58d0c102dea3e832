package cmd

import (
	"os"
	"path/filepath"

	"github.com/easyface/easyface/pkg/logger"
	"github.com/easyface/easyface/pkg/settings"
)

// configDir returns $XDG_CONFIG_HOME/easyface, falling back to
// ~/.config/easyface. Empty when neither is known.
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, settings.CliBinaryName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", settings.CliBinaryName)
	}
	return ""
}

// resolvePaths fills the empty fields of explicit. Settings and shortcuts
// always get a path so they can be written; the config file is used only
// when present.
func resolvePaths(explicit settings.Paths) settings.Paths {
	out := explicit
	dir := configDir()
	if out.Settings == "" && dir != "" {
		out.Settings = filepath.Join(dir, "settings.yaml")
	}
	if out.Shortcuts == "" && dir != "" {
		out.Shortcuts = filepath.Join(dir, "shortcuts.yaml")
	}
	out.Config = resolveConfigPath(out.Config)
	if out.Log == "" {
		out.Log = logger.DefaultLogPath()
	}
	if out.Downloads == "" {
		out.Downloads = os.Getenv("XDG_DOWNLOAD_DIR")
	}
	return out
}

// resolveConfigPath returns the explicit configFile if set, otherwise
// $XDG_CONFIG_HOME/easyface/config.yaml (or ~/.config/easyface/config.yaml) if present.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir := configDir()
	if dir == "" {
		return ""
	}
	candidate := filepath.Join(dir, "config.yaml")
	if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
		return candidate
	}
	return ""
}
