package app

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/accounts"
	"github.com/Gaurav-Gosain/boxdeck/internal/geometry"
	"github.com/Gaurav-Gosain/boxdeck/internal/hotkey"
	"github.com/Gaurav-Gosain/boxdeck/internal/panels"
	"github.com/Gaurav-Gosain/boxdeck/internal/prefs"
)

var (
	skProfiles = []map[string]string{
		{
			"card": "4242424242424242", "exp_date": "12/30", "cvv": "123", "name": "Ann Lee",
			"city": "Oslo", "street": "Main 1", "postcode": "0150",
		},
		{
			"card": "5555555555554444", "exp_date": "01/29", "cvv": "456", "name": "Bo Berg",
			"city": "Bergen", "street": "Side 2", "postcode": "5003",
		},
	}
	inProfiles = []map[string]string{
		{"card": "4000056655665556", "name": "Ira Sen", "city": "Pune"},
	}
)

type copied struct {
	g     panels.Generator
	a     hotkey.Action
	value string
}

type harness struct {
	*Dashboard
	data    *accounts.Dataset
	store   *prefs.MemoryStore
	copies  []copied
	deleted [][]int
}

func newHarness(t *testing.T, width, height int) *harness {
	t.Helper()

	ds := accounts.NewDataset()
	blob := "a@x.com / p1;p2\nb@x.com / p3;p4 / registered\nc@x.com:p5"
	if _, err := ds.Import(accounts.ParseBlob(blob)); err != nil {
		t.Fatalf("import: %v", err)
	}
	ds.SetGenerators("sk", skProfiles)
	ds.SetGenerators("in", inProfiles)

	h := &harness{data: ds, store: prefs.NewMemoryStore(nil)}
	h.Dashboard = New(Options{
		Width:  width,
		Height: height,
		Source: ds,
		Prefs:  h.store,
		Callbacks: Callbacks{
			OnCopyField: func(g panels.Generator, a hotkey.Action, value string) {
				h.copies = append(h.copies, copied{g, a, value})
			},
			OnDeleteSelected: func(ids []int) { h.deleted = append(h.deleted, ids) },
		},
	})
	return h
}

// press builds a key press from its string form, e.g. "g", "G", "ctrl+1",
// "esc".
func press(s string) tea.KeyPressMsg {
	switch s {
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	}
	if rest, ok := strings.CutPrefix(s, "ctrl+"); ok {
		r, _ := utf8.DecodeRuneInString(rest)
		return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
	}
	r, _ := utf8.DecodeRuneInString(s)
	return tea.KeyPressMsg{Code: r, Text: s}
}

func (h *harness) keys(keys ...string) {
	for _, k := range keys {
		h.Update(press(k))
	}
}

func TestNewDefaults(t *testing.T) {
	h := newHarness(t, 160, 50)

	if got := len(h.Rows()); got != 3 {
		t.Fatalf("rows = %d, want 3", got)
	}
	if h.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", h.Cursor())
	}
	if _, ok := h.Focused(); ok {
		t.Error("no panel should be focused")
	}
	if h.status != "Ready" {
		t.Errorf("status = %q", h.status)
	}

	empty := New(Options{Width: 80, Height: 24})
	if empty.Cursor() != -1 {
		t.Errorf("empty cursor = %d, want -1", empty.Cursor())
	}
}

func TestTogglePanelKeys(t *testing.T) {
	tests := []struct {
		key  string
		kind geometry.Kind
	}{
		{"a", geometry.KindAccounts},
		{"s", geometry.KindSettings},
		{"i", geometry.KindImport},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			h := newHarness(t, 160, 50)
			h.keys(tt.key)
			if !h.Panels.IsOpen(tt.kind) {
				t.Fatalf("%s not opened", tt.kind)
			}
			if k, ok := h.Focused(); !ok || k != tt.kind {
				t.Errorf("focused = %v %v, want %s", k, ok, tt.kind)
			}
			// Dialogs swallow their own toggle key, so close with esc.
			h.keys("esc")
			if h.Panels.IsOpen(tt.kind) {
				t.Errorf("%s still open after esc", tt.kind)
			}
			if _, ok := h.Focused(); ok {
				t.Error("focus should clear when the last panel closes")
			}
		})
	}
}

func TestAccountsToggleTwice(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("a", "a")
	if h.Panels.IsOpen(geometry.KindAccounts) {
		t.Error("second press should close the accounts panel")
	}
}

func TestGeneratorHotkeyCopiesField(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("g")
	if h.Panels.Generator() != panels.GeneratorSK {
		t.Fatalf("generator = %v, want sk", h.Panels.Generator())
	}

	_, cmd := h.Update(press("ctrl+1"))
	if cmd == nil {
		t.Error("copy should return a clipboard command")
	}
	if len(h.copies) != 1 {
		t.Fatalf("copies = %d, want 1", len(h.copies))
	}
	got := h.copies[0]
	if got.g != panels.GeneratorSK || got.a != hotkey.ActionCard || got.value != "4242424242424242" {
		t.Errorf("copied %+v", got)
	}
	if h.status != "Copied Card number" {
		t.Errorf("status = %q", h.status)
	}
	if h.Panels.ActiveField(panels.GeneratorSK) != hotkey.ActionCard {
		t.Errorf("active field = %q", h.Panels.ActiveField(panels.GeneratorSK))
	}
}

func TestGeneratorCycleKey(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("g", "6", "6")

	want := []hotkey.Action{hotkey.ActionCard, hotkey.ActionExpDate}
	if len(h.copies) != len(want) {
		t.Fatalf("copies = %d, want %d", len(h.copies), len(want))
	}
	for i, a := range want {
		if h.copies[i].a != a {
			t.Errorf("copy %d = %q, want %q", i, h.copies[i].a, a)
		}
	}
}

func TestGeneratorEmptyFieldNotAnError(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("G", "ctrl+4") // in profile has no exp_date

	if len(h.copies) != 0 {
		t.Errorf("empty field copied: %+v", h.copies)
	}
	if h.statusKind == StatusError {
		t.Errorf("empty field reported as error: %q", h.status)
	}
}

func TestGeneratorSwitchAndClose(t *testing.T) {
	h := newHarness(t, 160, 50)

	h.keys("g", "G")
	if h.Panels.Generator() != panels.GeneratorIN {
		t.Fatalf("generator = %v, want in", h.Panels.Generator())
	}
	h.keys("G")
	if h.Panels.Generator() != panels.GeneratorNone {
		t.Errorf("same context again should close, got %v", h.Panels.Generator())
	}

	h.keys("g", "esc")
	if h.Panels.Generator() != panels.GeneratorNone {
		t.Errorf("esc should close the generator, got %v", h.Panels.Generator())
	}
}

func TestRegenerate(t *testing.T) {
	h := newHarness(t, 160, 50)

	h.keys("r")
	if h.status != "Open a generator first" {
		t.Errorf("status = %q", h.status)
	}

	h.keys("g", "r", "ctrl+1")
	if len(h.copies) != 1 || h.copies[0].value != "5555555555554444" {
		t.Errorf("copies after regenerate = %+v", h.copies)
	}
}

func TestSettingsRecordAndSave(t *testing.T) {
	h := newHarness(t, 160, 50)

	h.keys("s", "enter")
	if h.Panels.Recorder().Armed() != hotkey.ActionCycle {
		t.Fatalf("armed = %q, want cycle", h.Panels.Recorder().Armed())
	}
	h.keys("7")
	if got := h.Panels.Recorder().Draft()[hotkey.ActionCycle]; got != "7" {
		t.Fatalf("draft = %q, want 7", got)
	}
	if got := h.Panels.Hotkeys()[hotkey.ActionCycle]; got != "6" {
		t.Errorf("committed changed before save: %q", got)
	}

	h.keys("ctrl+s")
	if h.Panels.IsOpen(geometry.KindSettings) {
		t.Error("save should close settings")
	}
	if got := h.Panels.Hotkeys()[hotkey.ActionCycle]; got != "7" {
		t.Errorf("committed = %q, want 7", got)
	}
	if got := prefs.LoadHotkeys(h.store)[hotkey.ActionCycle]; got != "7" {
		t.Errorf("persisted = %q, want 7", got)
	}
}

func TestSettingsSwallowAppKeys(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("s", "a", "down", "backspace")

	if h.Panels.IsOpen(geometry.KindAccounts) {
		t.Error("app keys must not run while settings are open")
	}
	if h.SettingsCursor() != 1 {
		t.Errorf("settings cursor = %d, want 1", h.SettingsCursor())
	}
	if got := h.Panels.Recorder().Draft()[hotkey.ActionClose]; got != "" {
		t.Errorf("cleared slot = %q, want empty", got)
	}

	h.keys("esc")
	if got := h.Panels.Hotkeys()[hotkey.ActionClose]; got != "esc" {
		t.Errorf("cancel must discard the draft, committed = %q", got)
	}
}

func TestImportPasteAndCommit(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("i")
	h.Update(tea.PasteMsg{Content: "d@x.com / q1;q2\na@x.com / dup;dup"})
	h.keys("ctrl+s")

	if got := len(h.Rows()); got != 4 {
		t.Errorf("rows = %d, want 4", got)
	}
	if h.Panels.IsOpen(geometry.KindImport) {
		t.Error("import panel should close after commit")
	}
	if h.ImportText() != "" {
		t.Errorf("buffer not cleared: %q", h.ImportText())
	}
	if h.status != "Imported 1 of 2 account(s)" {
		t.Errorf("status = %q", h.status)
	}
}

func TestImportTyping(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("i", "a", "b", "backspace", "enter", "c")

	if got := h.ImportText(); got != "a\nc" {
		t.Errorf("buffer = %q, want %q", got, "a\nc")
	}
	if h.Panels.IsOpen(geometry.KindAccounts) {
		t.Error("typing must not trigger app keys")
	}

	h.keys("ctrl+s")
	if h.statusKind != StatusError || h.status != "Nothing to import" {
		t.Errorf("status = %q", h.status)
	}
}

func TestPasteIgnoredWithoutImportFocus(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.Update(tea.PasteMsg{Content: "x@y.z / a;b"})
	if h.ImportText() != "" {
		t.Errorf("buffer = %q", h.ImportText())
	}
}

func TestCursorAndExtend(t *testing.T) {
	h := newHarness(t, 160, 50)

	h.keys("down")
	if h.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", h.Cursor())
	}
	h.keys("J")
	if h.Selection.Count() != 2 || !h.Selection.IsSelected(2) || !h.Selection.IsSelected(3) {
		t.Errorf("selection = %v, want [2 3]", h.Selection.Selected())
	}
	h.keys("down", "down")
	if h.Cursor() != 2 {
		t.Errorf("cursor should clamp at the last row, got %d", h.Cursor())
	}
	h.keys("space")
	if h.Selection.IsSelected(3) {
		t.Error("space should toggle the focused row off")
	}
}

func TestDeleteSelected(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("ctrl+a", "d")

	if len(h.Rows()) != 0 {
		t.Errorf("rows = %d, want 0", len(h.Rows()))
	}
	if len(h.deleted) != 1 || len(h.deleted[0]) != 3 {
		t.Errorf("deleted = %v", h.deleted)
	}
	if h.Cursor() != -1 {
		t.Errorf("cursor = %d, want -1", h.Cursor())
	}
}

func TestDeleteFallsBackToCursor(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.Selection.Clear()
	h.keys("d")

	if len(h.deleted) != 1 || len(h.deleted[0]) != 1 || h.deleted[0][0] != 1 {
		t.Errorf("deleted = %v, want [[1]]", h.deleted)
	}
}

func TestCycleStatus(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.Selection.Clear()
	h.keys("t")

	row, _ := h.data.Row(1)
	if row.Status != accounts.StatusRegistered {
		t.Errorf("status = %q, want registered", row.Status)
	}
}

func TestCopyEmail(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.Selection.Clear()

	_, cmd := h.Update(press("e"))
	if cmd == nil {
		t.Fatal("expected a clipboard command")
	}
	if h.status != "Copied email of 1 account(s)" {
		t.Errorf("status = %q", h.status)
	}
}

func TestHelpOverlay(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("?")
	if !h.ShowingHelp() {
		t.Fatal("help not shown")
	}
	h.keys("a")
	if h.Panels.IsOpen(geometry.KindAccounts) {
		t.Error("keys must not leak through the help overlay")
	}
	h.keys("esc")
	if h.ShowingHelp() {
		t.Error("esc should close help")
	}
}

func TestCtrlCQuitsFromDialogs(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.keys("i")

	cmd := h.handleKey(press("ctrl+c"))
	if cmd == nil {
		t.Fatal("no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestStatusClear(t *testing.T) {
	h := newHarness(t, 160, 50)
	h.setStatus(StatusSuccess, "first")
	stale := h.statusSeq
	h.setStatus(StatusSuccess, "second")

	h.Update(StatusClearMsg{Seq: stale})
	if h.status != "second" {
		t.Errorf("stale clear replaced status: %q", h.status)
	}
	h.Update(StatusClearMsg{Seq: h.statusSeq})
	if h.status != h.Panels.Hotkeys().Hint() {
		t.Errorf("status = %q, want hotkey hint", h.status)
	}
}

func TestPrefsChangedReloads(t *testing.T) {
	h := newHarness(t, 160, 50)

	m := hotkey.DefaultMap()
	m[hotkey.ActionCycle] = "9"
	if err := prefs.SaveHotkeys(h.store, m); err != nil {
		t.Fatal(err)
	}
	if err := prefs.SaveSidebarVisible(h.store, !h.Panels.SidebarGeneratorVisible()); err != nil {
		t.Fatal(err)
	}
	want := !h.Panels.SidebarGeneratorVisible()

	h.Update(PrefsChangedMsg{})
	if got := h.Panels.Hotkeys()[hotkey.ActionCycle]; got != "9" {
		t.Errorf("cycle = %q, want 9", got)
	}
	if h.Panels.SidebarGeneratorVisible() != want {
		t.Errorf("sidebar generator = %v, want %v", h.Panels.SidebarGeneratorVisible(), want)
	}
}

func TestSelectionMods(t *testing.T) {
	tests := []struct {
		name   string
		mod    tea.KeyMod
		shift  bool
		toggle bool
	}{
		{"none", 0, false, false},
		{"shift", tea.ModShift, true, false},
		{"ctrl", tea.ModCtrl, false, true},
		{"meta", tea.ModMeta, false, true},
		{"super", tea.ModSuper, false, true},
		{"shift ctrl", tea.ModShift | tea.ModCtrl, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectionMods(tt.mod)
			if got.Shift != tt.shift || got.Toggle != tt.toggle {
				t.Errorf("selectionMods(%v) = %+v", tt.mod, got)
			}
		})
	}
}

func TestEventsChannel(t *testing.T) {
	store := prefs.NewMemoryStore(nil)
	events := make(chan tea.Msg, 1)
	d := New(Options{Width: 120, Height: 40, Prefs: store, Events: events})

	m := hotkey.DefaultMap()
	m[hotkey.ActionClose] = "q"
	if err := prefs.SaveHotkeys(store, m); err != nil {
		t.Fatal(err)
	}
	events <- PrefsChangedMsg{}

	wait := d.Init()
	if wait == nil {
		t.Fatal("Init should wait on the events channel")
	}
	msg := wait()
	if _, ok := msg.(eventMsg); !ok {
		t.Fatalf("got %T, want eventMsg", msg)
	}
	if _, cmd := d.Update(msg); cmd == nil {
		t.Error("handling an event should wait for the next one")
	}
	if got := d.Panels.Hotkeys()[hotkey.ActionClose]; got != "q" {
		t.Errorf("close = %q, want q", got)
	}

	close(events)
	if got := d.waitForEvent()(); got != nil {
		t.Errorf("closed channel yielded %T", got)
	}
}

func TestNoEventsNoInitCmd(t *testing.T) {
	if cmd := New(Options{Width: 80, Height: 24}).Init(); cmd != nil {
		t.Error("Init without events should return nil")
	}
}
