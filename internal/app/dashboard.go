// Package app implements the boxdeck dashboard, a Bubble Tea model that lays
// out the sidebar, the mail region and the floating panels.
package app

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/accounts"
	"github.com/Gaurav-Gosain/boxdeck/internal/config"
	"github.com/Gaurav-Gosain/boxdeck/internal/geometry"
	"github.com/Gaurav-Gosain/boxdeck/internal/hotkey"
	"github.com/Gaurav-Gosain/boxdeck/internal/panels"
	"github.com/Gaurav-Gosain/boxdeck/internal/pointer"
	"github.com/Gaurav-Gosain/boxdeck/internal/prefs"
	"github.com/Gaurav-Gosain/boxdeck/internal/selection"
	"github.com/Gaurav-Gosain/boxdeck/internal/splitter"
)

// StatusKind colors the status line.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusError
)

// Callbacks observe dashboard actions after they took effect. All are
// optional.
type Callbacks struct {
	OnCopyField       func(g panels.Generator, a hotkey.Action, value string)
	OnGenerate        func(g panels.Generator)
	OnSaveHotkeys     func(m hotkey.Map)
	OnDeleteSelected  func(ids []int)
	OnSelectionChange func(ids []int)
	// OnDataChanged fires after the source was modified by a delete, an
	// import or a status change.
	OnDataChanged func()
}

// Optional Source capabilities. A plain accounts.Source still renders and
// deletes; the dashboard only offers what the source supports.
type (
	importer interface {
		Import(parsed []accounts.Parsed) (int, error)
	}
	statusSetter interface {
		SetStatus(ids []int, st accounts.Status) error
	}
	regenerator interface {
		Generate(context string) map[string]string
	}
	mailbox interface {
		Messages(id int) []accounts.Message
	}
)

// Options configure a Dashboard.
type Options struct {
	Width, Height int
	Config        *config.UserConfig
	Registry      *config.KeybindRegistry
	Source        accounts.Source
	Prefs         prefs.Store
	Callbacks     Callbacks
	// Events delivers messages from outside the program, such as
	// PrefsChangedMsg from another SSH session. Optional.
	Events <-chan tea.Msg
}

// Dashboard is the top-level Bubble Tea model.
type Dashboard struct {
	Width  int
	Height int

	Config   *config.UserConfig
	Registry *config.KeybindRegistry
	Source   accounts.Source
	Prefs    prefs.Store

	Panels    *panels.Coordinator
	Pointer   pointer.Tracker
	Sidebar   *splitter.Splitter
	Inbox     *splitter.Splitter
	Selection *selection.List[int]

	callbacks Callbacks
	events    <-chan tea.Msg

	rows   []accounts.Row
	cursor int // focused account row

	inboxCursor int

	// Focused floating panel, valid when hasFocus is set.
	focused  geometry.Kind
	hasFocus bool

	settingsCursor int
	importBuffer   []rune

	showHelp bool

	status     string
	statusKind StatusKind
	statusSeq  int

	// Commands produced by hooks while handling a message.
	pending []tea.Cmd
}

// New builds a dashboard. Missing options fall back to defaults so tests can
// pass only what they exercise.
func New(opts Options) *Dashboard {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	registry := opts.Registry
	if registry == nil {
		registry = config.NewKeybindRegistry(cfg)
	}
	source := opts.Source
	if source == nil {
		source = accounts.NewDataset()
	}
	store := opts.Prefs
	if store == nil {
		store = prefs.NewMemoryStore(nil)
	}

	d := &Dashboard{
		Width:     opts.Width,
		Height:    opts.Height,
		Config:    cfg,
		Registry:  registry,
		Source:    source,
		Prefs:     store,
		callbacks: opts.Callbacks,
		events:    opts.Events,
		status:    "Ready",
	}

	bounds := geometry.NewBounds(opts.Width, opts.Height)
	bounds.Margin = cfg.Appearance.WindowMargin
	bounds.BottomGap = cfg.Appearance.DockHeight

	d.Panels = panels.New(panels.Options{
		Width:          opts.Width,
		Height:         opts.Height,
		Bounds:         bounds,
		Breakpoint:     cfg.Appearance.CompactBreakpoint,
		AutoCopyFirst:  cfg.Generator.AutoCopyFirst,
		Hotkeys:        prefs.LoadHotkeys(store),
		SidebarVisible: prefs.LoadSidebarVisible(store),
		Hooks: panels.Hooks{
			CopyField:   d.copyFieldHook,
			Generate:    d.generateHook,
			SaveHotkeys: d.saveHotkeysHook,
			SaveSidebar: func(v bool) error { return prefs.SaveSidebarVisible(d.Prefs, v) },
		},
	})

	d.Sidebar = splitter.New("sidebar", splitter.Horizontal, splitter.SidebarLimits(),
		opts.Width, d.initialSidebar(opts.Width))
	body := d.bodyHeight()
	d.Inbox = splitter.New("inbox", splitter.Vertical, splitter.InboxLimits(), body, body/2)

	d.Selection = selection.New[int](nil)
	d.Selection.OnChange = d.selectionChanged
	d.refreshRows()
	return d
}

// initialSidebar is the sidebar width for a fresh layout of the given width.
func (d *Dashboard) initialSidebar(width int) int {
	ratio := d.Config.Appearance.SidebarRatio
	if ratio <= 0 {
		ratio = config.SidebarDefaultRatio
	}
	return int(math.Round(float64(width) * ratio))
}

// Init implements tea.Model.
func (d *Dashboard) Init() tea.Cmd {
	return d.waitForEvent()
}

// eventMsg wraps a message received on the Events channel.
type eventMsg struct{ msg tea.Msg }

// waitForEvent blocks on the Events channel for the next message.
func (d *Dashboard) waitForEvent() tea.Cmd {
	if d.events == nil {
		return nil
	}
	events := d.events
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{msg}
	}
}

func (d *Dashboard) dataChanged() {
	if d.callbacks.OnDataChanged != nil {
		d.callbacks.OnDataChanged()
	}
}

// Rows returns the accounts currently shown.
func (d *Dashboard) Rows() []accounts.Row { return d.rows }

// Cursor returns the focused account row index, -1 when the list is empty.
func (d *Dashboard) Cursor() int {
	if len(d.rows) == 0 {
		return -1
	}
	return d.cursor
}

// Current returns the focused account.
func (d *Dashboard) Current() (accounts.Row, bool) {
	if len(d.rows) == 0 {
		return accounts.Row{}, false
	}
	return d.rows[d.cursor], true
}

// Focused returns the focused floating panel.
func (d *Dashboard) Focused() (geometry.Kind, bool) {
	if d.hasFocus && d.Panels.IsOpen(d.focused) && !d.Panels.Window(d.focused).Minimized() {
		return d.focused, true
	}
	return 0, false
}

// Status returns the status line text and kind.
func (d *Dashboard) Status() (string, StatusKind) { return d.status, d.statusKind }

// ShowingHelp reports whether the help overlay is visible.
func (d *Dashboard) ShowingHelp() bool { return d.showHelp }

// ImportText returns the import panel buffer.
func (d *Dashboard) ImportText() string { return string(d.importBuffer) }

// SettingsCursor returns the highlighted hotkey slot.
func (d *Dashboard) SettingsCursor() int { return d.settingsCursor }

// Interacting reports whether a pointer session is active.
func (d *Dashboard) Interacting() bool { return d.Pointer.Busy() }

func (d *Dashboard) bodyHeight() int {
	return max(d.Height-d.Config.Appearance.DockHeight, 0)
}

// refreshRows reloads rows from the source and drops stale selection.
func (d *Dashboard) refreshRows() {
	d.rows = d.Source.Rows()
	ids := make([]int, len(d.rows))
	for i, r := range d.rows {
		ids[i] = r.ID
	}
	d.Selection.SetRows(ids)
	d.cursor = geometry.ClampInt(d.cursor, 0, max(len(d.rows)-1, 0))
	d.inboxCursor = 0
}

func (d *Dashboard) focus(k geometry.Kind) {
	d.focused = k
	d.hasFocus = true
}

// refocus moves focus to the topmost open panel after the focused one closed.
func (d *Dashboard) refocus() {
	if _, ok := d.Focused(); ok {
		return
	}
	d.hasFocus = false
	for _, k := range slices.Backward(geometry.Kinds[:]) {
		if d.Panels.IsOpen(k) && !d.Panels.Window(k).Minimized() {
			d.focus(k)
			return
		}
	}
}

// effectiveIDs is the selection, or the focused row when nothing is selected.
func (d *Dashboard) effectiveIDs() []int {
	cur, ok := d.Current()
	if !ok {
		return d.Selection.Selected()
	}
	return d.Selection.Effective(cur.ID)
}

// StatusClearMsg resets the status line once a message has been shown long
// enough.
type StatusClearMsg struct{ Seq int }

func (d *Dashboard) setStatus(kind StatusKind, text string) {
	d.status = text
	d.statusKind = kind
	d.statusSeq++
	seq := d.statusSeq
	d.queue(tea.Tick(config.StatusMessageDuration, func(time.Time) tea.Msg {
		return StatusClearMsg{Seq: seq}
	}))
}

func (d *Dashboard) reportErr(err error) {
	if err == nil {
		return
	}
	log.Warn("action failed", "err", err)
	d.setStatus(StatusError, err.Error())
}

func (d *Dashboard) queue(cmd tea.Cmd) {
	if cmd != nil {
		d.pending = append(d.pending, cmd)
	}
}

// flush returns and clears the queued commands.
func (d *Dashboard) flush() tea.Cmd {
	if len(d.pending) == 0 {
		return nil
	}
	cmds := d.pending
	d.pending = nil
	return tea.Batch(cmds...)
}

// Hooks handed to the panel coordinator.

func (d *Dashboard) copyFieldHook(g panels.Generator, a hotkey.Action) error {
	value := d.Source.GeneratorFields(g.Context())[string(a)]
	if value == "" {
		return panels.ErrEmptyField
	}
	d.queue(tea.SetClipboard(value))
	d.setStatus(StatusSuccess, "Copied "+a.Label())
	if d.callbacks.OnCopyField != nil {
		d.callbacks.OnCopyField(g, a, value)
	}
	return nil
}

var errNoGenerator = errors.New("data source cannot generate new values")

func (d *Dashboard) generateHook(g panels.Generator) error {
	gen, ok := d.Source.(regenerator)
	if !ok {
		return errNoGenerator
	}
	gen.Generate(g.Context())
	d.setStatus(StatusSuccess, "Generated new "+g.String()+" data")
	if d.callbacks.OnGenerate != nil {
		d.callbacks.OnGenerate(g)
	}
	return nil
}

func (d *Dashboard) saveHotkeysHook(m hotkey.Map) error {
	if err := prefs.SaveHotkeys(d.Prefs, m); err != nil {
		return err
	}
	if d.callbacks.OnSaveHotkeys != nil {
		d.callbacks.OnSaveHotkeys(m)
	}
	return nil
}

func (d *Dashboard) selectionChanged(ids []int) {
	switch n := len(ids); n {
	case 0:
		d.status = "Selection cleared"
	case 1:
		d.status = "1 account selected"
	default:
		d.status = strconv.Itoa(n) + " accounts selected"
	}
	d.statusKind = StatusInfo
	if d.callbacks.OnSelectionChange != nil {
		d.callbacks.OnSelectionChange(ids)
	}
}
