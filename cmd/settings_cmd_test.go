package cmd

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/easyface/easyface/internal/store"
)

func TestSettingsShow_Formats(t *testing.T) {
	decoders := map[string]func([]byte, any) error{
		"yaml": yaml.Unmarshal,
		"json": json.Unmarshal,
		"toml": toml.Unmarshal,
	}
	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			_, _, files := isolatedFiles(t)
			out, err := runCLI(t, append([]string{"settings", "show", "-o", format}, files...)...)
			require.NoError(t, err)

			var got store.Settings
			require.NoError(t, decode([]byte(out), &got))
			assert.Equal(t, store.DefaultSettings(), got)
		})
	}
}

func TestSettingsShow_UnknownFormat(t *testing.T) {
	_, _, files := isolatedFiles(t)
	_, err := runCLI(t, append([]string{"settings", "show", "-o", "xml"}, files...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestSettingsShow_CorruptFileErrors(t *testing.T) {
	sPath, _, files := isolatedFiles(t)
	require.NoError(t, os.WriteFile(sPath, []byte("scan_period_ms: 1\n"), 0o600))

	_, err := runCLI(t, append([]string{"settings", "show"}, files...)...)
	require.ErrorIs(t, err, store.ErrCorrupt)
}

func TestSettingsReset(t *testing.T) {
	sPath, _, files := isolatedFiles(t)
	require.NoError(t, os.WriteFile(sPath, []byte("font_size: enormous\n"), 0o600))

	out, err := runCLI(t, append([]string{"settings", "reset"}, files...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "settings reset to defaults")

	got, err := store.New(sPath, "").LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, store.DefaultSettings(), got)
}

func TestShortcuts_SetListClear(t *testing.T) {
	_, kPath, files := isolatedFiles(t)

	out, err := runCLI(t, append([]string{"shortcuts", "set", "open-calculator", "K"}, files...)...)
	require.NoError(t, err)
	assert.Equal(t, "open-calculator bound to Ctrl+K\n", out)

	saved, err := store.New("", kPath).LoadShortcuts()
	require.NoError(t, err)
	assert.Equal(t, store.Shortcuts{"open-calculator": "k"}, saved)

	out, err = runCLI(t, append([]string{"shortcuts", "list"}, files...)...)
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^open-calculator\s+Ctrl\+K\s+Calculator$`, out)
	assert.Regexp(t, `(?m)^open-editor\s+-\s+Text Editor$`, out)

	_, err = runCLI(t, append([]string{"shortcuts", "clear", "open-calculator"}, files...)...)
	require.NoError(t, err)
	saved, err = store.New("", kPath).LoadShortcuts()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestShortcutsSet_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown command", []string{"launch-rockets", "r"}, `unknown command "launch-rockets"`},
		{"long key", []string{"open-pdf", "pd"}, "single character"},
		{"reserved", []string{"open-pdf", "s"}, "Ctrl+S is reserved"},
		{"taken", []string{"open-pdf", "k"}, "Ctrl+K is already used by open-calculator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, kPath, files := isolatedFiles(t)
			require.NoError(t, store.New("", kPath).SaveShortcuts(store.Shortcuts{"open-calculator": "k"}))

			_, err := runCLI(t, append(append([]string{"shortcuts", "set"}, tt.args...), files...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestShortcutsSet_RebindSameCommand(t *testing.T) {
	_, kPath, files := isolatedFiles(t)
	require.NoError(t, store.New("", kPath).SaveShortcuts(store.Shortcuts{"open-calculator": "k"}))

	_, err := runCLI(t, append([]string{"shortcuts", "set", "open-calculator", "k"}, files...)...)
	require.NoError(t, err)
}
