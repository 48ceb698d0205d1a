package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/config"
	"github.com/Gaurav-Gosain/boxdeck/internal/hotkey"
	"github.com/Gaurav-Gosain/boxdeck/internal/prefs"
	"github.com/Gaurav-Gosain/boxdeck/internal/theme"
)

// printConfigPath prints the config file path
func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// findEditor returns the editor named by $EDITOR or $VISUAL, falling back to
// the first common editor on $PATH.
func findEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	// LoadUserConfig creates the file with defaults when missing.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if _, err := config.LoadUserConfig(); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// confirm asks a yes/no question on r.
func confirm(r io.Reader, prompt string) bool {
	fmt.Print(prompt)
	line, _ := bufio.NewReader(r).ReadString('\n')
	response := strings.ToLower(strings.TrimSpace(line))
	return response == "yes" || response == "y"
}

// defaultConfigFile renders the default configuration with a header.
func defaultConfigFile(configPath string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# boxdeck Configuration File\n")
	sb.WriteString("# Edit keybindings by modifying the arrays of keys for each action\n")
	sb.WriteString("# Multiple keys can be bound to the same action\n")
	sb.WriteString("# Generator hotkeys live in the preference file, see: boxdeck hotkeys list\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n\n")

	data, err := toml.Marshal(config.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	sb.Write(data)
	return []byte(sb.String()), nil
}

// resetConfigToDefaults resets the configuration file to default settings
func resetConfigToDefaults(force bool) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil && !force {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		if !confirm(os.Stdin, "Are you sure you want to reset to defaults? (yes/no): ") {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	data, err := defaultConfigFile(configPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", configPath)
	fmt.Println("\nYou can customize it with: boxdeck config edit")
	return nil
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableHeader()).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableDim())).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func heading(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableBorder()).Render(s)
}

// listKeybindings prints all configured keybindings in a pretty table
func listKeybindings() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default keybindings...")
		userConfig = config.DefaultConfig()
	}

	fmt.Println()
	fmt.Println(heading("boxdeck Keybindings"))
	fmt.Println()
	fmt.Print(renderKeybindings(config.NewKeybindRegistry(userConfig)))
	return nil
}

// renderKeybindings renders one table per help section, skipping empty ones.
func renderKeybindings(registry *config.KeybindRegistry) string {
	var sb strings.Builder
	for _, section := range config.HelpSections {
		var rows [][]string
		for _, action := range section.Actions {
			keys := registry.GetKeysForDisplay(action)
			if keys == "" {
				continue
			}
			rows = append(rows, []string{keys, formatActionName(action)})
		}
		if len(rows) == 0 {
			continue
		}

		t := newTable("Keys", "Action").Rows(rows...)
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableKey()).Render(section.Title))
		sb.WriteString("\n")
		sb.WriteString(t.Render())
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// listCustomKeybindings shows only the keybindings that differ from defaults
func listCustomKeybindings() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	customizations := findCustomizations(userConfig, config.DefaultConfig())
	if len(customizations) == 0 {
		fmt.Println(lipgloss.NewStyle().Foreground(theme.CLITableDim()).Render("No custom keybindings configured. All keybindings are using defaults."))
		fmt.Println()
		fmt.Println("Run 'boxdeck keybinds list' to see all keybindings.")
		return nil
	}

	rows := make([][]string, 0, len(customizations))
	for _, custom := range customizations {
		rows = append(rows, []string{custom.Action, custom.DefaultKeys, custom.CustomKeys})
	}

	fmt.Println()
	fmt.Println(heading("Custom Keybindings"))
	fmt.Println()
	fmt.Println(newTable("Action", "Default", "Custom").Rows(rows...).Render())
	fmt.Println()
	fmt.Println(lipgloss.NewStyle().
		Foreground(theme.CLITableKey()).
		Render(fmt.Sprintf("Found %d customized keybinding(s)", len(customizations))))
	fmt.Println()
	return nil
}

// Customization represents a customized keybinding
type Customization struct {
	Action      string
	DefaultKeys string
	CustomKeys  string
}

// findCustomizations finds all keybindings that differ from defaults, in
// help order.
func findCustomizations(userCfg, defaultCfg *config.UserConfig) []Customization {
	user := userCfg.Keybindings.Sections()
	defaults := defaultCfg.Keybindings.Sections()

	var customizations []Customization
	for i, defaultSection := range defaults {
		names := make([]string, 0, len(defaultSection))
		for action := range defaultSection {
			names = append(names, action)
		}
		slices.Sort(names)

		for _, action := range names {
			userKeys, exists := user[i][action]
			if !exists || slices.Equal(userKeys, defaultSection[action]) {
				continue
			}
			customizations = append(customizations, Customization{
				Action:      formatActionName(action),
				DefaultKeys: strings.Join(defaultSection[action], ", "),
				CustomKeys:  strings.Join(userKeys, ", "),
			})
		}
	}
	return customizations
}

// formatActionName formats an action name for display
func formatActionName(action string) string {
	if desc, ok := config.ActionDescriptions[action]; ok {
		return desc
	}
	return strings.ReplaceAll(action, "_", " ")
}

func openPrefs() (*prefs.FileStore, error) {
	path, err := prefs.DefaultPath()
	if err != nil {
		return nil, err
	}
	return prefs.OpenFileStore(path)
}

// listHotkeys prints the generator hotkeys stored in the preference file.
func listHotkeys() error {
	store, err := openPrefs()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(heading("Generator Hotkeys"))
	fmt.Println()
	fmt.Println(renderHotkeys(prefs.LoadHotkeys(store)))
	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Foreground(theme.CLITableDim()).Italic(true).
		Render("Stored in " + store.Path() + ". Record new keys in the settings panel."))
	fmt.Println()
	return nil
}

// renderHotkeys renders m as a table with a marker on customized actions.
func renderHotkeys(m hotkey.Map) string {
	defaults := hotkey.DefaultMap()
	rows := make([][]string, 0, len(hotkey.Actions))
	for _, a := range hotkey.Actions {
		key := m.Get(a)
		if key == "" {
			key = "(unbound)"
		}
		changed := ""
		if m.Get(a) != defaults.Get(a) {
			changed = "*"
		}
		rows = append(rows, []string{a.Label(), key, changed})
	}
	return newTable("Action", "Key", "").Rows(rows...).Render()
}

// resetHotkeys writes the default generator hotkeys.
func resetHotkeys() error {
	store, err := openPrefs()
	if err != nil {
		return err
	}
	if err := prefs.SaveHotkeys(store, hotkey.DefaultMap()); err != nil {
		return fmt.Errorf("failed to save hotkeys: %w", err)
	}
	fmt.Println("Generator hotkeys reset to defaults")
	fmt.Printf("  Location: %s\n", store.Path())
	return nil
}
