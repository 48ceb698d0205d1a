package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/geometry"
)

func click(x, y int, button tea.MouseButton, mod tea.KeyMod) tea.MouseClickMsg {
	return tea.MouseClickMsg{X: x, Y: y, Button: button, Mod: mod}
}

func motion(x, y int) tea.MouseMotionMsg {
	return tea.MouseMotionMsg{X: x, Y: y, Button: tea.MouseLeft}
}

func release(x, y int) tea.MouseReleaseMsg {
	return tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft}
}

func TestDragPanelByHeader(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("a")
	r := h.Panels.Window(geometry.KindAccounts).Rect()

	h.Update(click(r.X+2, r.Y, tea.MouseLeft, 0))
	if !h.Pointer.Busy() || !h.Interacting() {
		t.Fatal("header press should start a drag session")
	}
	h.Update(motion(r.X+5, r.Y+3))
	h.Update(release(r.X+5, r.Y+3))

	got := h.Panels.Window(geometry.KindAccounts).Rect()
	want := geometry.Rect{X: r.X + 3, Y: r.Y + 3, Width: r.Width, Height: r.Height}
	if got != want {
		t.Errorf("rect = %+v, want %+v", got, want)
	}
	if h.Pointer.Busy() {
		t.Error("release should end the session")
	}
}

func TestMotionWithoutSessionIgnored(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("a")
	r := h.Panels.Window(geometry.KindAccounts).Rect()

	h.Update(motion(r.X+10, r.Y+10))
	if got := h.Panels.Window(geometry.KindAccounts).Rect(); got != r {
		t.Errorf("rect moved without a session: %+v", got)
	}
}

func TestSecondPressIgnoredWhileDragging(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("a")
	r := h.Panels.Window(geometry.KindAccounts).Rect()
	h.Update(click(r.X+2, r.Y, tea.MouseLeft, 0))

	dock := h.dockItems()
	var importX int
	for _, item := range dock {
		if item.kind == geometry.KindImport {
			importX = item.x0
		}
	}
	h.Update(click(importX, h.Height-1, tea.MouseLeft, 0))
	if h.Panels.IsOpen(geometry.KindImport) {
		t.Error("press during a drag must be ignored")
	}
	if h.Sidebar.Dragging() {
		t.Error("no second session may start")
	}
}

func TestHeaderButtons(t *testing.T) {
	tests := []struct {
		name   string
		offset int // from the first button column
		check  func(h *harness) bool
	}{
		{"minimize", 0, func(h *harness) bool { return h.Panels.Window(geometry.KindAccounts).Minimized() }},
		{"maximize", buttonWidth, func(h *harness) bool { return h.Panels.Window(geometry.KindAccounts).Maximized() }},
		{"close", 2 * buttonWidth, func(h *harness) bool { return !h.Panels.IsOpen(geometry.KindAccounts) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 160, 50)
			h.keys("a")
			r := h.Panels.Window(geometry.KindAccounts).Rect()
			start := r.Right() - 1 - buttonsWidth

			h.Update(click(start+tt.offset+1, r.Y, tea.MouseLeft, 0))
			if !tt.check(h) {
				t.Errorf("%s button had no effect", tt.name)
			}
			if h.Pointer.Busy() {
				t.Error("buttons must not start a session")
			}
		})
	}
}

func TestMinimizedPanelRestoresFromDock(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("a", "m")
	w := h.Panels.Window(geometry.KindAccounts)
	if !w.Minimized() {
		t.Fatal("m should minimize the focused panel")
	}

	item := h.dockItems()[0]
	h.Update(click(item.x0, h.Height-1, tea.MouseLeft, 0))
	if w.Minimized() {
		t.Error("dock click should restore")
	}
	if k, ok := h.Focused(); !ok || k != geometry.KindAccounts {
		t.Error("restored panel should be focused")
	}
}

func TestDockOpensClosedPanel(t *testing.T) {
	h := newHarness(t, 160, 50)
	for _, item := range h.dockItems() {
		if item.kind != geometry.KindGenerator {
			continue
		}
		h.Update(click(item.x1-1, h.Height-1, tea.MouseLeft, 0))
	}
	if !h.Panels.IsOpen(geometry.KindGenerator) {
		t.Error("dock click should open the generator")
	}
}

func TestResizePanel(t *testing.T) {
	tests := []struct {
		name   string
		button tea.MouseButton
		at     func(r geometry.Rect) (int, int)
	}{
		{"right drag body", tea.MouseRight, func(r geometry.Rect) (int, int) { return r.X + 5, r.Y + 5 }},
		{"corner drag", tea.MouseLeft, func(r geometry.Rect) (int, int) { return r.Right() - 1, r.Bottom() - 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 160, 50)
			h.keys("a")
			r := h.Panels.Window(geometry.KindAccounts).Rect()
			x, y := tt.at(r)

			h.Update(click(x, y, tt.button, 0))
			h.Update(motion(x+4, y+2))
			h.Update(release(x+4, y+2))

			got := h.Panels.Window(geometry.KindAccounts).Rect()
			if got.Width != r.Width+4 || got.Height != r.Height+2 {
				t.Errorf("size = %dx%d, want %dx%d", got.Width, got.Height, r.Width+4, r.Height+2)
			}
			if got.X != r.X || got.Y != r.Y {
				t.Errorf("resize moved the panel to %d,%d", got.X, got.Y)
			}
		})
	}
}

func TestSidebarSplitterDrag(t *testing.T) {
	h := newHarness(t, 160, 50)
	start := h.Sidebar.Primary()
	x := h.sidebarHandleX()

	h.Update(click(x, 5, tea.MouseLeft, 0))
	if !h.Sidebar.Dragging() {
		t.Fatal("press on the handle should start a splitter drag")
	}
	h.Update(motion(x+6, 30))
	h.Update(release(x+6, 30))

	if got := h.Sidebar.Primary(); got != start+6 {
		t.Errorf("sidebar = %d, want %d", got, start+6)
	}
	if h.Sidebar.Dragging() || h.Pointer.Busy() {
		t.Error("release should end the splitter drag")
	}
}

func TestInboxSplitterDrag(t *testing.T) {
	h := newHarness(t, 160, 50)
	mr := h.mailRegion()
	y := h.inboxHandleY()

	h.Update(click(mr.X+3, y, tea.MouseLeft, 0))
	if !h.Inbox.Dragging() {
		t.Fatal("press on the inbox handle should start a drag")
	}
	h.Update(motion(mr.X+3, y-4))
	h.Update(release(mr.X+3, y-4))

	if got := h.inboxHandleY(); got != y-4 {
		t.Errorf("inbox handle = %d, want %d", got, y-4)
	}
}

func TestSidebarClickSelection(t *testing.T) {
	h := newHarness(t, 160, 50)
	row := func(i int) int { return sidebarHeaderRows + i }

	h.Update(click(4, row(0), tea.MouseLeft, 0))
	if h.Cursor() != 0 || h.Selection.Count() != 1 {
		t.Fatalf("plain click: cursor %d, selected %v", h.Cursor(), h.Selection.Selected())
	}

	h.Update(click(4, row(2), tea.MouseLeft, tea.ModShift))
	if h.Selection.Count() != 3 {
		t.Errorf("shift click: selected %v, want all three", h.Selection.Selected())
	}

	h.Update(click(4, row(1), tea.MouseLeft, tea.ModCtrl))
	if h.Selection.IsSelected(2) || h.Selection.Count() != 2 {
		t.Errorf("ctrl click: selected %v, want [1 3]", h.Selection.Selected())
	}

	h.Update(click(4, row(5), tea.MouseLeft, 0))
	if h.Selection.Count() != 2 {
		t.Error("click below the last row must not change the selection")
	}
}

func TestPanelClickFocusesAndBaseClickClears(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("a", "i")
	if k, _ := h.Focused(); k != geometry.KindImport {
		t.Fatalf("focused = %v, want import", k)
	}

	// Import sits above accounts; click an accounts cell it does not cover.
	acc := h.Panels.Window(geometry.KindAccounts).Rect()
	imp := h.Panels.Window(geometry.KindImport).Rect()
	var p geometry.Point
	found := false
	for y := acc.Y + 1; y < acc.Bottom()-1 && !found; y++ {
		for x := acc.X + 1; x < acc.Right()-1; x++ {
			if pt := (geometry.Point{X: x, Y: y}); !imp.Contains(pt) {
				p, found = pt, true
				break
			}
		}
	}
	if !found {
		t.Fatal("accounts fully covered")
	}
	h.Update(click(p.X, p.Y, tea.MouseLeft, 0))
	if k, _ := h.Focused(); k != geometry.KindAccounts {
		t.Errorf("focused = %v, want accounts", k)
	}

	h.keys("x")
	if k, _ := h.Focused(); k != geometry.KindImport {
		t.Fatalf("focus should fall back to import, got %v", k)
	}
	h.Update(click(h.mailRegion().X+2, h.bodyHeight()-1, tea.MouseLeft, 0))
	if _, ok := h.Focused(); ok {
		t.Error("base click should clear focus")
	}
	if !h.Panels.IsOpen(geometry.KindImport) {
		t.Error("base click must not close panels")
	}
}

func TestGeneratorFieldClickCopies(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("g")
	r := h.Panels.Window(geometry.KindGenerator).Rect()

	// Third field row: cvv.
	h.Update(click(r.X+3, r.Y+1+generatorHeaderRows+2, tea.MouseLeft, 0))
	if len(h.copies) != 1 || h.copies[0].value != "123" {
		t.Errorf("copies = %+v, want cvv", h.copies)
	}
}

func TestSettingsSlotClickArms(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("s")
	r := h.Panels.Window(geometry.KindSettings).Rect()

	h.Update(click(r.X+3, r.Y+1+settingsHeaderRows+2, tea.MouseLeft, 0))
	if h.SettingsCursor() != 2 {
		t.Errorf("settings cursor = %d, want 2", h.SettingsCursor())
	}
	if h.Panels.Recorder().Armed() == "" {
		t.Error("slot click should arm the recorder")
	}
}

func TestHelpClickCloses(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("?")
	h.Update(click(1, 1, tea.MouseLeft, 0))
	if h.ShowingHelp() {
		t.Error("click should close help")
	}
	if h.Selection.Count() != 0 {
		t.Error("the closing click must not reach the layout")
	}
}
