package main

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/app"
	"github.com/Gaurav-Gosain/boxdeck/internal/config"
	"github.com/Gaurav-Gosain/boxdeck/internal/hotkey"
	"github.com/Gaurav-Gosain/boxdeck/internal/prefs"
)

func TestFindCustomizations(t *testing.T) {
	user := config.DefaultConfig()
	user.Keybindings.Panels["toggle_accounts"] = []string{"A"}
	user.Keybindings.System["quit"] = []string{"ctrl+q"}

	got := findCustomizations(user, config.DefaultConfig())
	if len(got) != 2 {
		t.Fatalf("got %d customizations, want 2: %+v", len(got), got)
	}
	if got[0].Action != "Toggle accounts panel" || got[0].DefaultKeys != "a" || got[0].CustomKeys != "A" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].CustomKeys != "ctrl+q" || got[1].DefaultKeys != "q, ctrl+c" {
		t.Errorf("second = %+v", got[1])
	}

	if n := len(findCustomizations(config.DefaultConfig(), config.DefaultConfig())); n != 0 {
		t.Errorf("defaults produced %d customizations", n)
	}
}

func TestFormatActionName(t *testing.T) {
	if got := formatActionName("quit"); got != "Quit" {
		t.Errorf("described action = %q", got)
	}
	if got := formatActionName("not_an_action"); got != "not an action" {
		t.Errorf("fallback = %q", got)
	}
}

func TestDefaultConfigFileParses(t *testing.T) {
	data, err := defaultConfigFile("/tmp/boxdeck/config.toml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# boxdeck Configuration File") {
		t.Error("missing header")
	}

	var cfg config.UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.Appearance.DockHeight != config.DockHeight {
		t.Errorf("dock height = %d", cfg.Appearance.DockHeight)
	}
	if keys := cfg.Keybindings.Panels["toggle_accounts"]; len(keys) != 1 || keys[0] != "a" {
		t.Errorf("toggle_accounts = %v", keys)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"yes\n", true},
		{"Y\n", true},
		{"no\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := confirm(strings.NewReader(tt.in), ""); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRenderHotkeys(t *testing.T) {
	m := hotkey.DefaultMap()
	m[hotkey.ActionCVV] = ""
	m[hotkey.ActionCard] = "ctrl+9"

	out := ansi.Strip(renderHotkeys(m))
	for _, want := range []string{"Card number", "ctrl+9", "(unbound)", "Postcode", "ctrl+7"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q", want)
		}
	}
	if n := strings.Count(out, "*"); n != 2 {
		t.Errorf("marked %d rows, want 2", n)
	}
}

func TestRenderKeybindings(t *testing.T) {
	out := ansi.Strip(renderKeybindings(config.NewKeybindRegistry(nil)))
	for _, section := range config.HelpSections {
		if !strings.Contains(out, section.Title) {
			t.Errorf("missing section %q", section.Title)
		}
	}
	if !strings.Contains(out, "Toggle accounts panel") {
		t.Error("missing action description")
	}
}

func TestFilterMouseMotion(t *testing.T) {
	d := app.New(app.Options{
		Width:  120,
		Height: 40,
		Prefs:  prefs.NewMemoryStore(nil),
	})
	motion := tea.MouseMotionMsg{X: 5, Y: 5}

	if got := filterMouseMotion(d, motion); got != nil {
		t.Error("idle motion should be dropped")
	}
	key := tea.KeyPressMsg{Code: 'a', Text: "a"}
	if got := filterMouseMotion(d, key); got == nil {
		t.Error("non-motion messages pass through")
	}

	d.Update(tea.MouseClickMsg{X: d.Sidebar.Boundary(0), Y: 3, Button: tea.MouseLeft})
	if !d.Interacting() {
		t.Fatal("handle press should start a splitter session")
	}
	if got := filterMouseMotion(d, motion); got == nil {
		t.Error("motion during a drag must pass")
	}
}
