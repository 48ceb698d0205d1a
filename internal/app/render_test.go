package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/boxdeck/internal/geometry"
)

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		name            string
		cursor, n, rows int
		want            int
	}{
		{"fits", 3, 5, 10, 0},
		{"top", 0, 50, 10, 0},
		{"last visible", 9, 50, 10, 0},
		{"one past", 10, 50, 10, 1},
		{"end", 49, 50, 10, 40},
		{"no rows", 5, 50, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scrollOffset(tt.cursor, tt.n, tt.rows); got != tt.want {
				t.Errorf("scrollOffset(%d, %d, %d) = %d, want %d", tt.cursor, tt.n, tt.rows, got, tt.want)
			}
		})
	}
}

func TestPartAt(t *testing.T) {
	h := newHarness(t, 160, 50)
	r := geometry.Rect{X: 10, Y: 5, Width: 40, Height: 12}
	start := r.Right() - 1 - buttonsWidth

	tests := []struct {
		name string
		p    geometry.Point
		want panelPart
	}{
		{"outside", geometry.Point{X: 9, Y: 5}, partNone},
		{"title", geometry.Point{X: 12, Y: 5}, partHeader},
		{"minimize", geometry.Point{X: start, Y: 5}, partMinimize},
		{"maximize", geometry.Point{X: start + 4, Y: 5}, partMaximize},
		{"close", geometry.Point{X: r.Right() - 2, Y: 5}, partClose},
		{"top corner", geometry.Point{X: r.Right() - 1, Y: 5}, partHeader},
		{"body", geometry.Point{X: 20, Y: 10}, partBody},
		{"resize corner", geometry.Point{X: r.Right() - 1, Y: r.Bottom() - 1}, partCorner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.partAt(r, tt.p); got != tt.want {
				t.Errorf("partAt(%+v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}

	h.Config.Appearance.HideWindowButtons = true
	if got := h.partAt(r, geometry.Point{X: r.Right() - 2, Y: 5}); got != partHeader {
		t.Errorf("hidden buttons: got %d, want header", got)
	}
}

func TestRenderPanelMatchesHitTest(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("a")
	r := h.Panels.Window(geometry.KindAccounts).Rect()

	lines := strings.Split(ansi.Strip(h.renderPanel(geometry.KindAccounts, r)), "\n")
	if len(lines) != r.Height {
		t.Fatalf("panel has %d lines, want %d", len(lines), r.Height)
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != r.Width {
			t.Errorf("line %d width %d, want %d", i, w, r.Width)
		}
	}
	if !strings.HasSuffix(lines[0], "[_][□][x]╮") {
		t.Errorf("top border = %q", lines[0])
	}
	if !strings.Contains(lines[0], "Account data") {
		t.Errorf("title missing from %q", lines[0])
	}
	if !strings.Contains(lines[2], "a@x.com") {
		t.Errorf("first row = %q", lines[2])
	}
}

func TestRenderBaseLayout(t *testing.T) {
	h := newHarness(t, 120, 40)
	out := ansi.Strip(h.renderBase())
	lines := strings.Split(out, "\n")

	if len(lines) != 40 {
		t.Fatalf("base has %d lines, want 40", len(lines))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 120 {
			t.Fatalf("line %d width %d, want 120", i, w)
		}
	}
	if !strings.Contains(lines[0], "Accounts 3") {
		t.Errorf("sidebar title = %q", lines[0])
	}
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		if !strings.Contains(out, email) {
			t.Errorf("missing row %s", email)
		}
	}
	if !strings.Contains(lines[39], "Accounts") || !strings.Contains(lines[39], "Hotkeys") {
		t.Errorf("dock = %q", lines[39])
	}
}

func TestDockItemsLayout(t *testing.T) {
	h := newHarness(t, 160, 50)
	line := ansi.Strip(h.dockLines()[len(h.dockLines())-1])

	for _, item := range h.dockItems() {
		if got := line[item.x0:item.x1]; got != item.label {
			t.Errorf("dock cells %d..%d = %q, want %q", item.x0, item.x1, got, item.label)
		}
	}
}

func TestSidebarGeneratorSummary(t *testing.T) {
	h := newHarness(t, 160, 50)
	visible := h.Panels.SidebarGeneratorVisible()
	h.keys("b")
	if h.Panels.SidebarGeneratorVisible() == visible {
		t.Fatal("b should toggle the sidebar generator")
	}
	if !h.Panels.SidebarGeneratorVisible() {
		h.keys("b")
	}

	out := ansi.Strip(h.renderBase())
	if !strings.Contains(out, "Generator sk") || !strings.Contains(out, "4242424242424242") {
		t.Error("sidebar summary missing")
	}
}

func TestViewLayers(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("g")

	out := ansi.Strip(h.GetCanvas().Render())
	if !strings.Contains(out, "Field generator · sk") {
		t.Error("canvas missing the generator panel")
	}

	h.keys("?")
	out = ansi.Strip(h.GetCanvas().Render())
	for _, want := range []string{"boxdeck keybindings", "PANELS", "MOUSE"} {
		if !strings.Contains(out, want) {
			t.Errorf("help overlay missing %q", want)
		}
	}

	v := h.View()
	if !v.AltScreen || v.MouseMode != tea.MouseModeAllMotion {
		t.Error("view should use the alt screen with all motion")
	}
}

func TestCompactResize(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("a")
	h.Update(tea.WindowSizeMsg{Width: 50, Height: 30})

	if !h.Panels.Compact() {
		t.Fatal("50 columns should be compact")
	}
	want := geometry.Rect{X: 0, Y: 0, Width: 50, Height: 30}
	if got := h.Panels.Window(geometry.KindAccounts).Rect(); got != want {
		t.Errorf("rect = %+v, want %+v", got, want)
	}
	if h.Sidebar.Container() != 50 {
		t.Errorf("sidebar container = %d", h.Sidebar.Container())
	}
	if h.Inbox.Container() != 30-h.Config.Appearance.DockHeight {
		t.Errorf("inbox container = %d", h.Inbox.Container())
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"abc", 0, ""},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := fit(tt.in, tt.width); got != tt.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestFirstResizeAppliesInitialSplit(t *testing.T) {
	want := New(Options{Width: 200, Height: 50})

	d := New(Options{})
	if out := d.GetCanvas().Render(); strings.TrimSpace(ansi.Strip(out)) != "" {
		t.Errorf("zero viewport rendered %q", out)
	}
	d.Update(tea.WindowSizeMsg{Width: 200, Height: 50})

	if got := d.Sidebar.Primary(); got != want.Sidebar.Primary() {
		t.Errorf("sidebar = %d, want %d", got, want.Sidebar.Primary())
	}
	if got := d.Inbox.Primary(); got != want.Inbox.Primary() {
		t.Errorf("inbox = %d, want %d", got, want.Inbox.Primary())
	}

	// Later resizes keep the user's layout.
	d.Sidebar.SetPrimary(40)
	d.Update(tea.WindowSizeMsg{Width: 180, Height: 50})
	if got := d.Sidebar.Primary(); got != 40 {
		t.Errorf("sidebar after second resize = %d, want 40", got)
	}

	lines := strings.Split(ansi.Strip(d.GetCanvas().Render()), "\n")
	if len(lines) != 50 {
		t.Errorf("canvas has %d lines, want 50", len(lines))
	}
}
