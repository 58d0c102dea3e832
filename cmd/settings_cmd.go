package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/easyface/easyface/internal/screen"
	"github.com/easyface/easyface/internal/store"
	"github.com/easyface/easyface/pkg/logger"
	"github.com/easyface/easyface/pkg/settings"
)

var settingsOutput string

// runStore opens the store at the paths resolved for this run.
func runStore() (*store.Store, error) {
	p, ok := settings.PathsFromContext(rootCtx)
	if !ok {
		return nil, errors.New("runtime settings missing from context")
	}
	return store.New(p.Settings, p.Shortcuts), nil
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or reset the saved accessibility settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := runStore()
		if err != nil {
			return err
		}
		v, err := st.LoadSettings()
		if err != nil {
			return err
		}
		out, err := store.Encode(v, settingsOutput)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := runStore()
		if err != nil {
			return err
		}
		if err := st.SaveSettings(store.DefaultSettings()); err != nil {
			return err
		}
		logger.FromContext(rootCtx).Info("settings reset", "path", st.SettingsPath)
		fmt.Fprintf(cmd.OutOrStdout(), "settings reset to defaults (%s)\n", st.SettingsPath)
		return nil
	},
}

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "List or edit custom Ctrl shortcuts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var shortcutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every command and its custom key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := runStore()
		if err != nil {
			return err
		}
		sc, err := st.LoadShortcuts()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, c := range screen.Commands() {
			key := "-"
			if k := sc[c]; k != "" {
				key = "Ctrl+" + strings.ToUpper(k)
			}
			s, _ := screen.ForCommand(c)
			fmt.Fprintf(w, "%-20s %-8s %s\n", c, key, s.Title())
		}
		return nil
	},
}

var shortcutsSetCmd = &cobra.Command{
	Use:   "set <command> <key>",
	Short: "Bind a command to Ctrl+key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		command, key := args[0], strings.ToLower(args[1])
		if err := validateShortcutCommand(command); err != nil {
			return err
		}
		if utf8.RuneCountInString(key) != 1 {
			return fmt.Errorf("key must be a single character, got %q", args[1])
		}
		if store.IsReserved(key) {
			return fmt.Errorf("shortcut Ctrl+%s is reserved", strings.ToUpper(key))
		}
		st, err := runStore()
		if err != nil {
			return err
		}
		sc, err := st.LoadShortcuts()
		if err != nil {
			return err
		}
		if owner, ok := sc.Lookup(key); ok && owner != command {
			return fmt.Errorf("shortcut Ctrl+%s is already used by %s", strings.ToUpper(key), owner)
		}
		sc[command] = key
		if err := st.SaveShortcuts(sc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s bound to Ctrl+%s\n", command, strings.ToUpper(key))
		return nil
	},
}

var shortcutsClearCmd = &cobra.Command{
	Use:   "clear <command>",
	Short: "Remove a custom binding",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command := args[0]
		if err := validateShortcutCommand(command); err != nil {
			return err
		}
		st, err := runStore()
		if err != nil {
			return err
		}
		sc, err := st.LoadShortcuts()
		if err != nil {
			return err
		}
		delete(sc, command)
		if err := st.SaveShortcuts(sc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", command)
		return nil
	},
}

func validateShortcutCommand(command string) error {
	known := screen.Commands()
	if !slices.Contains(known, command) {
		return fmt.Errorf("unknown command %q\navailable commands: %s", command, strings.Join(known, ", "))
	}
	return nil
}

func init() { //nolint:gochecknoinits
	settingsShowCmd.Flags().StringVarP(&settingsOutput, "output", "o", "yaml", "output format: yaml|json|toml")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsResetCmd)

	shortcutsCmd.AddCommand(shortcutsListCmd)
	shortcutsCmd.AddCommand(shortcutsSetCmd)
	shortcutsCmd.AddCommand(shortcutsClearCmd)
}
