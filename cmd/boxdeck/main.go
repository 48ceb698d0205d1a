// Package main implements boxdeck, a terminal dashboard for disposable
// mailbox accounts with floating panels and a field generator.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode     bool
	themeName     string
	dataPath      string
	autoCopyFirst bool
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "boxdeck",
		Short: "Disposable mailbox account dashboard",
		Long: `boxdeck - disposable mailbox account dashboard

A terminal dashboard with an accounts sidebar, an inbox viewer and floating
panels for account data, field generators, bulk import and hotkey settings.`,
		Example: `  # Run boxdeck
  boxdeck --data accounts.json

  # Run with debug logging
  boxdeck --debug

  # Run as SSH server
  boxdeck ssh --port 2222

  # Edit configuration
  boxdeck config edit

  # Show generator hotkeys
  boxdeck hotkeys list`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Account dataset JSON file")
	rootCmd.PersistentFlags().BoolVar(&autoCopyFirst, "auto-copy-first", false, "Copy the first field when the sk generator opens")

	rootCmd.AddCommand(newSSHCmd(), newConfigCmd(), newKeybindsCmd(), newHotkeysCmd())
	return rootCmd
}

func newSSHCmd() *cobra.Command {
	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run boxdeck as SSH server",
		Long: `Run boxdeck as an SSH server

Every SSH session gets its own dashboard over the same dataset and
preferences. The server will generate a host key automatically if not
specified.`,
		Example: `  # Start SSH server on default port
  boxdeck ssh

  # Start on custom port
  boxdeck ssh --port 2222

  # Specify custom host key
  boxdeck ssh --key-path /path/to/host_key`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")
	return sshCmd
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage boxdeck configuration",
		Long:  `Manage boxdeck configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the boxdeck configuration file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the boxdeck configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	var force bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the boxdeck configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults(force)
		},
	}
	configResetCmd.Flags().BoolVarP(&force, "yes", "y", false, "Skip the confirmation prompt")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)
	return configCmd
}

func newKeybindsCmd() *cobra.Command {
	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect boxdeck keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings()
		},
	}

	keybindsCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List customized keybindings",
		Long: `Display only keybindings that differ from defaults

Shows a comparison of default and custom keybindings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCustomKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsCustomCmd)
	return keybindsCmd
}

func newHotkeysCmd() *cobra.Command {
	hotkeysCmd := &cobra.Command{
		Use:   "hotkeys",
		Short: "Manage generator hotkeys",
		Long: `Manage the generator hotkeys stored in the preference file

These are the keys recorded in the hotkey settings panel. They are kept
separately from the keybindings in the configuration file.`,
	}

	hotkeysListCmd := &cobra.Command{
		Use:   "list",
		Short: "List generator hotkeys",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHotkeys()
		},
	}

	hotkeysResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default generator hotkeys",
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetHotkeys()
		},
	}

	hotkeysCmd.AddCommand(hotkeysListCmd, hotkeysResetCmd)
	return hotkeysCmd
}
