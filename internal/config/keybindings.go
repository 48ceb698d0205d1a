package config

import (
	"fmt"
	"slices"
	"strings"
)

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// HelpSection lists the actions shown under one help heading.
type HelpSection struct {
	Title   string
	Actions []string
}

// HelpSections are the configurable actions grouped for display.
var HelpSections = []HelpSection{
	{
		Title: "Panels",
		Actions: []string{
			"toggle_accounts", "open_generator_sk", "open_generator_in",
			"toggle_settings", "toggle_import", "toggle_sidebar_generator",
			"regenerate", "minimize_panel", "maximize_panel", "close_panel",
		},
	},
	{
		Title: "Accounts",
		Actions: []string{
			"select_next", "select_prev", "extend_next", "extend_prev",
			"toggle_select", "select_all", "delete_selected",
			"copy_credentials", "copy_email", "cycle_status",
		},
	},
	{
		Title:   "Dialogs",
		Actions: []string{"settings_arm", "settings_clear", "settings_save", "settings_reset", "import_commit"},
	},
	{
		Title:   "System",
		Actions: []string{"toggle_help", "cancel", "quit"},
	},
}

// GetKeybindings returns all keybinding sections for the help overlay.
// If registry is nil the defaults are used.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	sections := make([]KeybindingSection, 0, len(HelpSections)+1)
	for _, hs := range HelpSections {
		section := KeybindingSection{Title: strings.ToUpper(hs.Title)}
		for _, action := range hs.Actions {
			addBinding(&section, registry, action, ActionDescriptions[action])
		}
		if len(section.Bindings) > 0 {
			sections = append(sections, section)
		}
	}
	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns help sections that don't need dynamic binding info
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Drag title bar", "Move panel"},
				{"Right drag, corner drag", "Resize panel"},
				{"[_] [□] [x]", "Minimize, maximize, close"},
				{"Drag sidebar edge", "Resize sidebar"},
				{"Drag inbox edge", "Resize inbox"},
				{"Shift+click, Ctrl+click", "Range and toggle select"},
			},
		},
	}
}

// KeybindRegistry resolves keys to actions and back.
type KeybindRegistry struct {
	actions    map[string][]string // action -> keys as configured
	keyToAct   map[string]string   // normalized key -> action
	normalizer *KeyNormalizer
}

// NewKeybindRegistry builds a registry from cfg. When a key is bound to more
// than one action the first section in display order wins.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &KeybindRegistry{
		actions:    make(map[string][]string),
		keyToAct:   make(map[string]string),
		normalizer: NewKeyNormalizer(),
	}

	for _, section := range cfg.Keybindings.Sections() {
		names := make([]string, 0, len(section))
		for action := range section {
			names = append(names, action)
		}
		slices.Sort(names)

		for _, action := range names {
			if _, known := ActionDescriptions[action]; !known {
				continue
			}
			keys := section[action]
			r.actions[action] = keys
			for _, key := range keys {
				for _, variant := range r.normalizer.NormalizeKey(key) {
					if _, taken := r.keyToAct[variant]; !taken {
						r.keyToAct[variant] = action
					}
				}
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return slices.Clone(r.actions[action])
}

// GetAction returns the action bound to key, or "" when unbound.
func (r *KeybindRegistry) GetAction(key string) string {
	for _, variant := range r.normalizer.NormalizeKey(key) {
		if action, ok := r.keyToAct[variant]; ok {
			return action
		}
	}
	return ""
}

// Matches reports whether key is bound to action, even when another action
// owns the key in GetAction.
func (r *KeybindRegistry) Matches(key, action string) bool {
	want := r.normalizer.NormalizeKey(key)
	if len(want) == 0 {
		return false
	}
	for _, bound := range r.actions[action] {
		if slices.Contains(r.normalizer.NormalizeKey(bound), want[0]) {
			return true
		}
	}
	return false
}

// GetKeysForDisplay returns the keys of action joined for display.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.actions[action]
	if len(keys) == 0 {
		return ""
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = r.normalizer.Display(k)
	}
	return strings.Join(out, ", ")
}

// KeyNormalizer maps the different spellings of a key to lookup variants.
type KeyNormalizer struct {
	aliases map[string][]string
}

// NewKeyNormalizer returns a normalizer with the common key aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{
		aliases: map[string][]string{
			"enter":     {"return"},
			"return":    {"enter"},
			"esc":       {"escape"},
			"escape":    {"esc"},
			"space":     {" "},
			" ":         {"space"},
			"delete":    {"del"},
			"del":       {"delete"},
			"backspace": {"bs"},
		},
	}
}

var modifierOrder = []string{"ctrl", "alt", "shift", "meta", "super"}

// NormalizeKey returns the lookup variants of key, canonical form first.
// Modifiers and named keys are lowercased; a single character keeps its case
// so that "G" and "g" stay distinct.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}

	mods, base := splitKey(key)
	if len([]rune(base)) > 1 || len(mods) > 0 {
		base = strings.ToLower(base)
	}

	prefix := ""
	for _, m := range modifierOrder {
		if mods[m] {
			prefix += m + "+"
		}
	}

	variants := []string{prefix + base}
	for _, alias := range n.aliases[base] {
		variants = append(variants, prefix+alias)
	}

	// "shift+g" and "G" are the same press.
	if r := []rune(base); len(r) == 1 && mods["shift"] && len(mods) == 1 {
		variants = append(variants, strings.ToUpper(base))
	} else if len(r) == 1 && len(mods) == 0 && strings.ToUpper(base) == base && strings.ToLower(base) != base {
		variants = append(variants, "shift+"+strings.ToLower(base))
	}
	return variants
}

// ValidateKey reports whether key is a usable binding and why not.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, "key is empty"
	}
	_, base := splitKey(key)
	if base == "" {
		return false, fmt.Sprintf("%q has no key after its modifiers", key)
	}
	if _, isMod := modifierSet[strings.ToLower(base)]; isMod {
		return false, fmt.Sprintf("%q is a modifier on its own", key)
	}
	return true, ""
}

// Display formats key for help output.
func (n *KeyNormalizer) Display(key string) string {
	mods, base := splitKey(strings.TrimSpace(key))
	var parts []string
	for _, m := range modifierOrder {
		if mods[m] {
			parts = append(parts, strings.ToUpper(m[:1])+m[1:])
		}
	}
	if len([]rune(base)) > 1 {
		base = strings.ToUpper(base[:1]) + strings.ToLower(base[1:])
	}
	return strings.Join(append(parts, base), "+")
}

var modifierSet = map[string]struct{}{
	"ctrl": {}, "control": {}, "alt": {}, "option": {}, "shift": {}, "meta": {}, "super": {}, "cmd": {},
}

// splitKey separates modifiers from the base key. A trailing "+" is the plus
// key itself.
func splitKey(key string) (map[string]bool, string) {
	mods := make(map[string]bool)
	if key == "+" {
		return mods, "+"
	}
	parts := strings.Split(key, "+")
	base := parts[len(parts)-1]
	if base == "" && len(parts) > 1 {
		base = "+"
		parts = parts[:len(parts)-1]
		if n := len(parts); n > 0 && parts[n-1] == "" {
			parts = parts[:n-1]
		}
	} else {
		parts = parts[:len(parts)-1]
	}
	for _, p := range parts {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control":
			mods["ctrl"] = true
		case "alt", "option":
			mods["alt"] = true
		case "shift":
			mods["shift"] = true
		case "meta", "cmd":
			mods["meta"] = true
		case "super":
			mods["super"] = true
		}
	}
	return mods, base
}
