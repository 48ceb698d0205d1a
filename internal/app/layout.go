package app

import (
	"github.com/Gaurav-Gosain/boxdeck/internal/geometry"
	"github.com/Gaurav-Gosain/boxdeck/internal/hotkey"
	"github.com/Gaurav-Gosain/boxdeck/internal/panels"
)

// Sidebar and mail region layout. All coordinates are cells from the top-left
// corner of the viewport.

const (
	// sidebarHeaderRows is the title row above the account list.
	sidebarHeaderRows = 1
	// generatorSummaryRows is the height of the optional sidebar generator
	// summary: a title plus one row per copy field.
	generatorSummaryRows = 1 + 7
	// inboxHeaderRows is the title row above the message list.
	inboxHeaderRows = 1
	// panelChromeRows is the border above and below panel content.
	panelChromeRows = 2
	// accountsTableHeader is the column header row in the accounts panel.
	accountsTableHeader = 1
	// generatorHeaderRows is the context line above the generator fields.
	generatorHeaderRows = 1
	// settingsHeaderRows is the hint line above the hotkey slots.
	settingsHeaderRows = 1
)

// region is a rectangle of the base layout.
type region = geometry.Rect

// sidebarRegion is the left column, excluding the splitter handle.
func (d *Dashboard) sidebarRegion() region {
	return region{X: 0, Y: 0, Width: min(d.Sidebar.Primary(), d.Width), Height: d.bodyHeight()}
}

// sidebarHandleX is the column of the sidebar splitter handle.
func (d *Dashboard) sidebarHandleX() int {
	return d.Sidebar.Boundary(0)
}

// mailRegion is everything right of the sidebar handle above the dock.
func (d *Dashboard) mailRegion() region {
	x := d.sidebarHandleX() + 1
	return region{X: x, Y: 0, Width: max(d.Width-x, 0), Height: d.bodyHeight()}
}

// inboxHandleY is the row of the inbox/viewer splitter handle.
func (d *Dashboard) inboxHandleY() int {
	return d.Inbox.Boundary(0)
}

// sidebarListRows is how many account rows fit in the sidebar.
func (d *Dashboard) sidebarListRows() int {
	h := d.bodyHeight() - sidebarHeaderRows
	if d.Panels.SidebarGeneratorVisible() {
		h -= generatorSummaryRows
	}
	return max(h, 0)
}

// sidebarOffset scrolls the account list so the cursor stays visible.
func (d *Dashboard) sidebarOffset() int {
	return scrollOffset(d.cursor, len(d.rows), d.sidebarListRows())
}

// inboxListRows is how many messages fit above the inbox handle.
func (d *Dashboard) inboxListRows() int {
	return max(d.Inbox.Primary()-inboxHeaderRows, 0)
}

func (d *Dashboard) inboxOffset() int {
	return scrollOffset(d.inboxCursor, len(d.messages()), d.inboxListRows())
}

// accountsPanelRows is how many table rows fit in the accounts panel.
func (d *Dashboard) accountsPanelRows() int {
	r := d.Panels.Window(geometry.KindAccounts).Rect()
	return max(r.Height-panelChromeRows-accountsTableHeader, 0)
}

func (d *Dashboard) accountsPanelOffset() int {
	return scrollOffset(d.cursor, len(d.rows), d.accountsPanelRows())
}

// scrollOffset returns the first visible index of a list of n items in a
// window of size rows that keeps cursor on screen.
func scrollOffset(cursor, n, rows int) int {
	if rows <= 0 || n <= rows {
		return 0
	}
	off := cursor - rows + 1
	return geometry.ClampInt(off, 0, n-rows)
}

// Panel hit parts.
type panelPart int

const (
	partNone panelPart = iota
	partBody
	partHeader
	partMinimize
	partMaximize
	partClose
	partCorner
)

// Header buttons sit at the right of the top border: "[_][□][x]" followed by
// the corner glyph.
const (
	buttonWidth  = 3
	buttonsWidth = 3 * buttonWidth
)

// panelAt returns the topmost visible panel under p. Panels are painted in
// geometry.Kinds order, so hit testing walks it backwards.
func (d *Dashboard) panelAt(p geometry.Point) (geometry.Kind, bool) {
	for i := len(geometry.Kinds) - 1; i >= 0; i-- {
		k := geometry.Kinds[i]
		w := d.Panels.Window(k)
		if !w.IsOpen() || w.Minimized() {
			continue
		}
		if w.Rect().Contains(p) {
			return k, true
		}
	}
	return 0, false
}

// partAt classifies p within the rect of a panel.
func (d *Dashboard) partAt(r geometry.Rect, p geometry.Point) panelPart {
	if !r.Contains(p) {
		return partNone
	}
	if p.Y == r.Y {
		if !d.Config.Appearance.HideWindowButtons {
			start := r.Right() - 1 - buttonsWidth
			switch {
			case p.X >= start && p.X < start+buttonWidth:
				return partMinimize
			case p.X >= start+buttonWidth && p.X < start+2*buttonWidth:
				return partMaximize
			case p.X >= start+2*buttonWidth && p.X < start+buttonsWidth:
				return partClose
			}
		}
		return partHeader
	}
	if p.X == r.Right()-1 && p.Y == r.Bottom()-1 {
		return partCorner
	}
	return partBody
}

// contentRow maps p to a row index inside the content of rect r, skipping
// header rows. It returns -1 outside the content.
func contentRow(r geometry.Rect, p geometry.Point, header int) int {
	row := p.Y - r.Y - 1 - header
	if row < 0 || row >= r.Height-panelChromeRows-header || p.X <= r.X || p.X >= r.Right()-1 {
		return -1
	}
	return row
}

// generatorFieldAt maps p to a copy action in the generator panel.
func (d *Dashboard) generatorFieldAt(p geometry.Point) (hotkey.Action, bool) {
	row := contentRow(d.Panels.Window(geometry.KindGenerator).Rect(), p, generatorHeaderRows)
	if row < 0 || row >= len(hotkey.CopyActions) {
		return "", false
	}
	return hotkey.CopyActions[row], true
}

// settingsSlotAt maps p to an index into hotkey.Actions in the settings panel.
func (d *Dashboard) settingsSlotAt(p geometry.Point) (int, bool) {
	row := contentRow(d.Panels.Window(geometry.KindSettings).Rect(), p, settingsHeaderRows)
	if row < 0 || row >= len(hotkey.Actions) {
		return 0, false
	}
	return row, true
}

// accountsPanelRowAt maps p to an account index in the accounts panel.
func (d *Dashboard) accountsPanelRowAt(p geometry.Point) (int, bool) {
	row := contentRow(d.Panels.Window(geometry.KindAccounts).Rect(), p, accountsTableHeader)
	if row < 0 {
		return 0, false
	}
	idx := d.accountsPanelOffset() + row
	if idx >= len(d.rows) {
		return 0, false
	}
	return idx, true
}

// sidebarRowAt maps p to an account index in the sidebar list.
func (d *Dashboard) sidebarRowAt(p geometry.Point) (int, bool) {
	sb := d.sidebarRegion()
	row := p.Y - sb.Y - sidebarHeaderRows
	if !sb.Contains(p) || row < 0 || row >= d.sidebarListRows() {
		return 0, false
	}
	idx := d.sidebarOffset() + row
	if idx >= len(d.rows) {
		return 0, false
	}
	return idx, true
}

// inboxRowAt maps p to a message index in the inbox list.
func (d *Dashboard) inboxRowAt(p geometry.Point) (int, bool) {
	mr := d.mailRegion()
	row := p.Y - mr.Y - inboxHeaderRows
	if !mr.Contains(p) || row < 0 || row >= d.inboxListRows() {
		return 0, false
	}
	idx := d.inboxOffset() + row
	if idx >= len(d.messages()) {
		return 0, false
	}
	return idx, true
}

// dockItem is a clickable dock entry on the last row.
type dockItem struct {
	label  string
	x0, x1 int // half-open column range
	kind   geometry.Kind
}

var dockLabels = map[geometry.Kind]string{
	geometry.KindAccounts:  "Accounts",
	geometry.KindGenerator: "Generator",
	geometry.KindImport:    "Import",
	geometry.KindSettings:  "Hotkeys",
}

// dockItems lays out one dock entry per panel kind, left to right in paint
// order.
func (d *Dashboard) dockItems() []dockItem {
	items := make([]dockItem, 0, len(geometry.Kinds))
	x := 1
	for _, k := range geometry.Kinds {
		label := " " + dockLabels[k] + " "
		if k == geometry.KindGenerator {
			if g := d.Panels.Generator(); g != panels.GeneratorNone {
				label = " " + dockLabels[k] + " " + g.String() + " "
			}
		}
		w := len(label)
		items = append(items, dockItem{label: label, x0: x, x1: x + w, kind: k})
		x += w + 1
	}
	return items
}
