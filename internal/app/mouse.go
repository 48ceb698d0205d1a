package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/geometry"
	"github.com/Gaurav-Gosain/boxdeck/internal/hotkey"
	"github.com/Gaurav-Gosain/boxdeck/internal/pointer"
	"github.com/Gaurav-Gosain/boxdeck/internal/splitter"
	"github.com/Gaurav-Gosain/boxdeck/internal/window"
)

// beginSession registers s with the pointer tracker. A refused session is
// logged and dropped; the component that produced it is rolled back by the
// caller.
func (d *Dashboard) beginSession(s pointer.Session) bool {
	if err := d.Pointer.Begin(s); err != nil {
		log.Debug("pointer session refused", "owner", s.Owner(), "err", err)
		return false
	}
	return true
}

// handleMouseClick handles mouse press events.
func (d *Dashboard) handleMouseClick(msg tea.MouseClickMsg) {
	mouse := msg.Mouse()
	p := geometry.Point{X: mouse.X, Y: mouse.Y}

	// One pointer, one session. A second press while dragging is ignored.
	if d.Pointer.Busy() {
		return
	}

	if d.showHelp {
		d.showHelp = false
		return
	}

	if k, ok := d.panelAt(p); ok {
		d.clickPanel(k, p, mouse)
		return
	}

	// Dock area
	if p.Y >= d.bodyHeight() {
		for _, hit := range d.dockItems() {
			if p.Y == d.Height-1 && p.X >= hit.x0 && p.X < hit.x1 {
				d.clickDock(hit.kind)
				return
			}
		}
		return
	}

	if mouse.Button != tea.MouseLeft {
		return
	}
	d.hasFocus = false

	// Sidebar handle
	if d.Sidebar.NearBoundary(p.X, 0) {
		sess := d.Sidebar.Begin(p.X)
		if !d.beginSession(sess) {
			d.Sidebar.End(sess)
		}
		return
	}

	if idx, ok := d.sidebarRowAt(p); ok {
		d.selectRow(idx, selectionMods(mouse.Mod))
		return
	}

	mr := d.mailRegion()
	if mr.Contains(p) {
		if d.Inbox.NearBoundary(p.Y, mr.Y) {
			sess := d.Inbox.Begin(p.Y)
			if !d.beginSession(sess) {
				d.Inbox.End(sess)
			}
			return
		}
		if idx, ok := d.inboxRowAt(p); ok {
			d.inboxCursor = idx
		}
	}
}

// clickPanel handles a press inside floating panel k.
func (d *Dashboard) clickPanel(k geometry.Kind, p geometry.Point, mouse tea.Mouse) {
	w := d.Panels.Window(k)
	d.focus(k)

	part := d.partAt(w.Rect(), p)

	if mouse.Button == tea.MouseRight {
		d.beginResize(w, p)
		return
	}
	if mouse.Button != tea.MouseLeft {
		return
	}

	switch part {
	case partClose:
		d.closePanel(k)
	case partMaximize:
		d.Panels.ToggleMaximize(k)
	case partMinimize:
		d.minimizePanel(k)
	case partHeader:
		sess, err := w.BeginDrag(p)
		if err != nil {
			log.Debug("drag refused", "panel", k, "err", err)
			return
		}
		if !d.beginSession(sess) {
			w.EndDrag(sess)
		}
	case partCorner:
		d.beginResize(w, p)
	case partBody:
		d.clickPanelBody(k, p, mouse)
	}
}

func (d *Dashboard) beginResize(w *window.Controller, p geometry.Point) {
	sess, err := w.BeginResize(p)
	if err != nil {
		log.Debug("resize refused", "panel", w.Kind(), "err", err)
		return
	}
	if !d.beginSession(sess) {
		w.EndResize(sess)
	}
}

// clickPanelBody handles content clicks: row selection in the accounts
// panel, field copy in the generator, slot arming in settings.
func (d *Dashboard) clickPanelBody(k geometry.Kind, p geometry.Point, mouse tea.Mouse) {
	switch k {
	case geometry.KindAccounts:
		if idx, ok := d.accountsPanelRowAt(p); ok {
			d.selectRow(idx, selectionMods(mouse.Mod))
		}
	case geometry.KindGenerator:
		if a, ok := d.generatorFieldAt(p); ok {
			d.reportErr(d.Panels.CopyField(a))
		}
	case geometry.KindSettings:
		if slot, ok := d.settingsSlotAt(p); ok {
			d.settingsCursor = slot
			d.Panels.Recorder().Arm(hotkey.Actions[slot])
		}
	}
}

func (d *Dashboard) clickDock(k geometry.Kind) {
	w := d.Panels.Window(k)
	switch {
	case !w.IsOpen():
		d.togglePanel(k)
	case w.Minimized():
		d.restorePanel(k)
	default:
		d.focus(k)
	}
}

// handleMouseMotion routes motion to the active pointer session only.
func (d *Dashboard) handleMouseMotion(msg tea.MouseMotionMsg) {
	mouse := msg.Mouse()
	p := geometry.Point{X: mouse.X, Y: mouse.Y}

	switch s := d.Pointer.Active().(type) {
	case window.DragSession:
		d.Panels.Window(s.Kind()).DragMove(s, p)
	case window.ResizeSession:
		d.Panels.Window(s.Kind()).ResizeMove(s, p)
	case splitter.Session:
		d.splitterFor(s).Move(s, d.splitterPos(s, p))
	}
}

// handleMouseRelease ends the active session wherever the pointer is.
func (d *Dashboard) handleMouseRelease(tea.MouseReleaseMsg) {
	switch s := d.Pointer.End().(type) {
	case window.DragSession:
		d.Panels.Window(s.Kind()).EndDrag(s)
	case window.ResizeSession:
		d.Panels.Window(s.Kind()).EndResize(s)
	case splitter.Session:
		d.splitterFor(s).End(s)
	}
}

func (d *Dashboard) splitterFor(s splitter.Session) *splitter.Splitter {
	if s.Name() == d.Inbox.Name() {
		return d.Inbox
	}
	return d.Sidebar
}

func (d *Dashboard) splitterPos(s splitter.Session, p geometry.Point) int {
	if d.splitterFor(s).Axis() == splitter.Vertical {
		return p.Y
	}
	return p.X
}
