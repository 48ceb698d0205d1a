package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// UserConfig is the on-disk configuration file.
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Generator   GeneratorConfig   `toml:"generator"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// AppearanceConfig controls layout and colors.
type AppearanceConfig struct {
	Theme             string  `toml:"theme"`
	CompactBreakpoint int     `toml:"compact_breakpoint"`
	WindowMargin      int     `toml:"window_margin"`
	DockHeight        int     `toml:"dock_height"`
	SidebarRatio      float64 `toml:"sidebar_ratio"`
	HideWindowButtons bool    `toml:"hide_window_buttons"`
}

// GeneratorConfig controls the generator panel.
type GeneratorConfig struct {
	// AutoCopyFirst copies the first field as soon as the sk generator opens.
	AutoCopyFirst bool `toml:"auto_copy_first"`
}

// KeybindingsConfig maps actions to key lists, grouped by section.
type KeybindingsConfig struct {
	Panels   map[string][]string `toml:"panels"`
	Accounts map[string][]string `toml:"accounts"`
	Settings map[string][]string `toml:"settings"`
	System   map[string][]string `toml:"system"`
}

// Sections returns the keybinding sections in display order.
func (k KeybindingsConfig) Sections() []map[string][]string {
	return []map[string][]string{k.Panels, k.Accounts, k.Settings, k.System}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			Theme:             "",
			CompactBreakpoint: CompactBreakpoint,
			WindowMargin:      WindowMargin,
			DockHeight:        DockHeight,
			SidebarRatio:      SidebarDefaultRatio,
		},
		Generator: GeneratorConfig{
			AutoCopyFirst: false,
		},
		Keybindings: KeybindingsConfig{
			Panels: map[string][]string{
				"toggle_accounts":          {"a"},
				"open_generator_sk":        {"g"},
				"open_generator_in":        {"G"},
				"toggle_settings":          {"s"},
				"toggle_import":            {"i"},
				"toggle_sidebar_generator": {"b"},
				"regenerate":               {"r"},
				"minimize_panel":           {"m"},
				"maximize_panel":           {"f"},
				"close_panel":              {"x"},
			},
			Accounts: map[string][]string{
				"select_next":      {"down", "j"},
				"select_prev":      {"up", "k"},
				"extend_next":      {"shift+down", "J"},
				"extend_prev":      {"shift+up", "K"},
				"toggle_select":    {"space"},
				"select_all":       {"ctrl+a"},
				"delete_selected":  {"d", "delete"},
				"copy_credentials": {"c"},
				"copy_email":       {"e"},
				"cycle_status":     {"t"},
			},
			Settings: map[string][]string{
				"settings_save":  {"ctrl+s"},
				"settings_reset": {"ctrl+r"},
				"settings_clear": {"backspace", "delete"},
				"settings_arm":   {"enter"},
				"import_commit":  {"ctrl+s"},
			},
			System: map[string][]string{
				"toggle_help": {"?"},
				"cancel":      {"esc"},
				"quit":        {"q", "ctrl+c"},
			},
		},
	}
}

// ActionDescriptions describes every configurable action.
var ActionDescriptions = map[string]string{
	"toggle_accounts":          "Toggle accounts panel",
	"open_generator_sk":        "Open sk generator",
	"open_generator_in":        "Open in generator",
	"toggle_settings":          "Toggle hotkey settings",
	"toggle_import":            "Toggle import panel",
	"toggle_sidebar_generator": "Toggle sidebar generator",
	"regenerate":               "Regenerate generator data",
	"minimize_panel":           "Minimize focused panel",
	"maximize_panel":           "Maximize focused panel",
	"close_panel":              "Close focused panel",
	"select_next":              "Select next account",
	"select_prev":              "Select previous account",
	"extend_next":              "Extend selection down",
	"extend_prev":              "Extend selection up",
	"toggle_select":            "Toggle account selection",
	"select_all":               "Select all accounts",
	"delete_selected":          "Delete selected accounts",
	"copy_credentials":         "Copy credentials",
	"copy_email":               "Copy email",
	"cycle_status":             "Cycle account status",
	"settings_save":            "Save hotkeys",
	"settings_reset":           "Reset hotkeys to defaults",
	"settings_clear":           "Unbind hotkey",
	"settings_arm":             "Record hotkey",
	"import_commit":            "Import pasted accounts",
	"cancel":                   "Close dialog",
	"toggle_help":              "Toggle help",
	"quit":                     "Quit",
}

// GetConfigPath returns the path of the user configuration file.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("boxdeck", "config.toml"))
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// LoadUserConfig reads the user configuration, creating the file with
// defaults when it does not exist.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadUserConfigFrom(path)
}

// LoadUserConfigFrom reads the configuration at path, creating it with
// defaults when missing. Sections and actions absent from the file keep their
// defaults.
func LoadUserConfigFrom(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		if err := WriteConfig(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var user UserConfig
	if err := toml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	mergeConfig(cfg, &user, data)
	return cfg, nil
}

// WriteConfig writes cfg to path with a short header.
func WriteConfig(path string, cfg *UserConfig) error {
	body, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# boxdeck configuration\n")
	sb.WriteString("# Keybindings map an action to a list of keys.\n")
	sb.WriteString("# Generator hotkeys are edited inside the app (settings panel).\n")
	sb.WriteString("#\n")
	sb.WriteString("# Location: " + path + "\n\n")
	sb.Write(body)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// mergeConfig copies the values present in user over the defaults.
func mergeConfig(dst, user *UserConfig, raw []byte) {
	// Zero values are ambiguous for numbers, so only take them when the key
	// is actually present in the file.
	var present struct {
		Appearance map[string]any `toml:"appearance"`
		Generator  map[string]any `toml:"generator"`
	}
	_ = toml.Unmarshal(raw, &present)

	has := func(section map[string]any, key string) bool {
		_, ok := section[key]
		return ok
	}

	a := user.Appearance
	if has(present.Appearance, "theme") {
		dst.Appearance.Theme = a.Theme
	}
	if has(present.Appearance, "compact_breakpoint") && a.CompactBreakpoint >= 0 {
		dst.Appearance.CompactBreakpoint = a.CompactBreakpoint
	}
	if has(present.Appearance, "window_margin") && a.WindowMargin >= 0 {
		dst.Appearance.WindowMargin = a.WindowMargin
	}
	if has(present.Appearance, "dock_height") && a.DockHeight >= 0 {
		dst.Appearance.DockHeight = a.DockHeight
	}
	if has(present.Appearance, "sidebar_ratio") && a.SidebarRatio > 0 && a.SidebarRatio <= SidebarMaxRatio {
		dst.Appearance.SidebarRatio = a.SidebarRatio
	}
	if has(present.Appearance, "hide_window_buttons") {
		dst.Appearance.HideWindowButtons = a.HideWindowButtons
	}
	if has(present.Generator, "auto_copy_first") {
		dst.Generator.AutoCopyFirst = user.Generator.AutoCopyFirst
	}

	mergeSection(dst.Keybindings.Panels, user.Keybindings.Panels)
	mergeSection(dst.Keybindings.Accounts, user.Keybindings.Accounts)
	mergeSection(dst.Keybindings.Settings, user.Keybindings.Settings)
	mergeSection(dst.Keybindings.System, user.Keybindings.System)
}

// mergeSection overrides known actions. Unknown actions are ignored.
func mergeSection(dst, user map[string][]string) {
	for action, keys := range user {
		if _, ok := dst[action]; !ok {
			continue
		}
		dst[action] = keys
	}
}

// Overrides are command line settings that win over the config file.
type Overrides struct {
	ThemeName     string
	AutoCopyFirst bool
}

// ApplyOverrides applies non-zero overrides to cfg.
func ApplyOverrides(o Overrides, cfg *UserConfig) {
	if cfg == nil {
		return
	}
	if o.ThemeName != "" {
		cfg.Appearance.Theme = o.ThemeName
	}
	if o.AutoCopyFirst {
		cfg.Generator.AutoCopyFirst = true
	}
}
