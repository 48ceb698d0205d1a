package app

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/accounts"
	"github.com/Gaurav-Gosain/boxdeck/internal/geometry"
	"github.com/Gaurav-Gosain/boxdeck/internal/hotkey"
	"github.com/Gaurav-Gosain/boxdeck/internal/panels"
	"github.com/Gaurav-Gosain/boxdeck/internal/selection"
)

// messages returns the inbox of the focused account.
func (d *Dashboard) messages() []accounts.Message {
	mb, ok := d.Source.(mailbox)
	if !ok {
		return nil
	}
	cur, ok := d.Current()
	if !ok {
		return nil
	}
	return mb.Messages(cur.ID)
}

// moveCursor moves the focused account by delta, selecting it. With extend
// the selection grows as a shift-range from the anchor.
func (d *Dashboard) moveCursor(delta int, extend bool) {
	if len(d.rows) == 0 {
		return
	}
	d.cursor = geometry.ClampInt(d.cursor+delta, 0, len(d.rows)-1)
	d.inboxCursor = 0
	d.Selection.Select(selection.Modifiers{Shift: extend}, d.rows[d.cursor].ID, d.cursor)
}

// selectRow applies a click or key selection at index.
func (d *Dashboard) selectRow(index int, mods selection.Modifiers) {
	if index < 0 || index >= len(d.rows) {
		return
	}
	d.cursor = index
	d.inboxCursor = 0
	d.Selection.Select(mods, d.rows[index].ID, index)
}

func (d *Dashboard) toggleSelectCursor() {
	if len(d.rows) == 0 {
		return
	}
	d.Selection.Select(selection.Modifiers{Toggle: true}, d.rows[d.cursor].ID, d.cursor)
}

// deleteSelected deletes the effective selection from the source.
func (d *Dashboard) deleteSelected() {
	ids := d.effectiveIDs()
	if len(ids) == 0 {
		return
	}
	if err := d.Source.Delete(ids); err != nil {
		d.reportErr(fmt.Errorf("delete accounts: %w", err))
		return
	}
	log.Debug("accounts deleted", "ids", ids)
	d.refreshRows()
	d.setStatus(StatusSuccess, fmt.Sprintf("Deleted %d account(s)", len(ids)))
	if d.callbacks.OnDeleteSelected != nil {
		d.callbacks.OnDeleteSelected(ids)
	}
	d.dataChanged()
}

// selectedRows returns the rows of the effective selection in row order.
func (d *Dashboard) selectedRows() []accounts.Row {
	ids := d.effectiveIDs()
	out := make([]accounts.Row, 0, len(ids))
	for _, r := range d.rows {
		if slices.Contains(ids, r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// copyRows writes one line per selected row to the clipboard.
func (d *Dashboard) copyRows(what string, line func(accounts.Row) string) {
	rows := d.selectedRows()
	if len(rows) == 0 {
		return
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = line(r)
	}
	d.queue(tea.SetClipboard(strings.Join(lines, "\n")))
	d.setStatus(StatusSuccess, fmt.Sprintf("Copied %s of %d account(s)", what, len(rows)))
}

// cycleStatus moves the selected accounts to the status after the focused
// account's status.
func (d *Dashboard) cycleStatus() {
	setter, ok := d.Source.(statusSetter)
	if !ok {
		d.setStatus(StatusError, "Data source cannot change statuses")
		return
	}
	cur, ok := d.Current()
	if !ok {
		return
	}
	i := slices.Index(accounts.Statuses, cur.Status)
	next := accounts.Statuses[(i+1)%len(accounts.Statuses)]
	ids := d.effectiveIDs()
	if err := setter.SetStatus(ids, next); err != nil {
		d.reportErr(fmt.Errorf("set status: %w", err))
		return
	}
	d.refreshRows()
	d.setStatus(StatusSuccess, fmt.Sprintf("Status %s for %d account(s)", next.Label(), len(ids)))
	d.dataChanged()
}

// commitImport parses the import buffer and hands it to the source.
func (d *Dashboard) commitImport() {
	imp, ok := d.Source.(importer)
	if !ok {
		d.setStatus(StatusError, "Data source cannot import accounts")
		return
	}
	parsed := accounts.ParseBlob(string(d.importBuffer))
	if len(parsed) == 0 {
		d.setStatus(StatusError, "Nothing to import")
		return
	}
	added, err := imp.Import(parsed)
	if err != nil {
		d.reportErr(fmt.Errorf("import accounts: %w", err))
		return
	}
	d.importBuffer = d.importBuffer[:0]
	d.Panels.Hide(geometry.KindImport)
	d.refocus()
	d.refreshRows()
	d.setStatus(StatusSuccess, fmt.Sprintf("Imported %d of %d account(s)", added, len(parsed)))
	if added > 0 {
		d.dataChanged()
	}
}

// togglePanel opens or closes a floating panel and moves focus with it.
func (d *Dashboard) togglePanel(k geometry.Kind) {
	if err := d.Panels.Toggle(k); err != nil {
		d.reportErr(err)
	}
	if d.Panels.IsOpen(k) {
		d.focus(k)
		if k == geometry.KindSettings {
			d.settingsCursor = 0
		}
	}
	d.refocus()
}

// openGenerator opens the generator panel in context g, or closes it when g
// is already open.
func (d *Dashboard) openGenerator(g panels.Generator) {
	if d.Panels.Generator() == g {
		d.Panels.CloseGenerator()
		d.refocus()
		return
	}
	d.reportErr(d.Panels.OpenGenerator(g))
	d.focus(geometry.KindGenerator)
}

// closePanel closes panel k.
func (d *Dashboard) closePanel(k geometry.Kind) {
	d.Panels.Hide(k)
	d.refocus()
}

// minimizePanel toggles minimize on panel k.
func (d *Dashboard) minimizePanel(k geometry.Kind) {
	d.Panels.Window(k).ToggleMinimize()
	d.refocus()
}

// restorePanel brings a minimized panel back and focuses it.
func (d *Dashboard) restorePanel(k geometry.Kind) {
	w := d.Panels.Window(k)
	if w.Minimized() {
		w.ToggleMinimize()
	}
	d.focus(k)
}

// Settings panel actions.

func (d *Dashboard) settingsAction() hotkey.Action {
	return hotkey.Actions[geometry.ClampInt(d.settingsCursor, 0, len(hotkey.Actions)-1)]
}

func (d *Dashboard) moveSettingsCursor(delta int) {
	d.settingsCursor = geometry.ClampInt(d.settingsCursor+delta, 0, len(hotkey.Actions)-1)
}

func (d *Dashboard) saveSettings() {
	if err := d.Panels.SaveSettings(); err != nil {
		d.reportErr(err)
	} else {
		d.setStatus(StatusSuccess, "Hotkeys saved")
	}
	d.refocus()
}

func (d *Dashboard) resetHotkeys() {
	if err := d.Panels.ResetHotkeys(); err != nil {
		d.reportErr(err)
		return
	}
	d.setStatus(StatusSuccess, "Hotkeys reset to defaults")
}

func (d *Dashboard) toggleSidebarGenerator() {
	if err := d.Panels.ToggleSidebarGenerator(); err != nil {
		d.reportErr(err)
	}
}

func (d *Dashboard) regenerate() {
	if d.Panels.Generator() == panels.GeneratorNone {
		d.setStatus(StatusInfo, "Open a generator first")
		return
	}
	d.reportErr(d.Panels.Regenerate())
}
