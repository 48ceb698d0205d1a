package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/accounts"
	"github.com/Gaurav-Gosain/boxdeck/internal/geometry"
	"github.com/Gaurav-Gosain/boxdeck/internal/hotkey"
	"github.com/Gaurav-Gosain/boxdeck/internal/panels"
	"github.com/Gaurav-Gosain/boxdeck/internal/selection"
)

// handleKey routes a key press. Dialogs get the first look, then generator
// hotkeys, then the configured app keybinds.
func (d *Dashboard) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	// ctrl+c quits from anywhere, including dialogs that swallow keys.
	if key == "ctrl+c" {
		return tea.Quit
	}

	if d.showHelp {
		if d.Registry.Matches(key, "toggle_help") || d.Registry.Matches(key, "cancel") {
			d.showHelp = false
		}
		return nil
	}

	if d.Panels.IsOpen(geometry.KindSettings) {
		d.handleSettingsKey(msg, key)
		return nil
	}

	if k, ok := d.Focused(); ok && k == geometry.KindImport {
		d.handleImportKey(msg, key)
		return nil
	}

	if d.Panels.Generator() != panels.GeneratorNone {
		res := d.Panels.DispatchKey(hotkey.FromKeyPress(msg))
		if res.Handled {
			d.reportErr(res.Err)
			if res.Action == hotkey.ActionClose {
				d.refocus()
			}
			return nil
		}
	}

	return d.handleAction(d.Registry.GetAction(key))
}

// handleAction runs an app keybind action.
func (d *Dashboard) handleAction(action string) tea.Cmd {
	if action == "" {
		return nil
	}
	log.Debug("key action", "action", action)

	switch action {
	case "quit":
		return tea.Quit
	case "toggle_help":
		d.showHelp = true
	case "cancel":
		if k, ok := d.Focused(); ok {
			d.closePanel(k)
		}

	case "toggle_accounts":
		d.togglePanel(geometry.KindAccounts)
	case "open_generator_sk":
		d.openGenerator(panels.GeneratorSK)
	case "open_generator_in":
		d.openGenerator(panels.GeneratorIN)
	case "toggle_settings":
		d.togglePanel(geometry.KindSettings)
	case "toggle_import":
		d.togglePanel(geometry.KindImport)
	case "toggle_sidebar_generator":
		d.toggleSidebarGenerator()
	case "regenerate":
		d.regenerate()
	case "minimize_panel":
		if k, ok := d.Focused(); ok {
			d.minimizePanel(k)
		}
	case "maximize_panel":
		if k, ok := d.Focused(); ok {
			d.Panels.ToggleMaximize(k)
		}
	case "close_panel":
		if k, ok := d.Focused(); ok {
			d.closePanel(k)
		}

	case "select_next":
		d.moveCursor(1, false)
	case "select_prev":
		d.moveCursor(-1, false)
	case "extend_next":
		d.moveCursor(1, true)
	case "extend_prev":
		d.moveCursor(-1, true)
	case "toggle_select":
		d.toggleSelectCursor()
	case "select_all":
		d.Selection.SelectAll()
	case "delete_selected":
		d.deleteSelected()
	case "copy_credentials":
		d.copyRows("credentials", func(r accounts.Row) string { return r.Credentials() })
	case "copy_email":
		d.copyRows("email", func(r accounts.Row) string { return r.Email })
	case "cycle_status":
		d.cycleStatus()
	}
	return nil
}

// handleSettingsKey drives the hotkey settings dialog. While a slot is armed
// every key is offered to the recorder first.
func (d *Dashboard) handleSettingsKey(msg tea.KeyPressMsg, key string) {
	res := d.Panels.DispatchKey(hotkey.FromKeyPress(msg))
	if res.Handled {
		if res.Token != "" {
			d.setStatus(StatusInfo, res.Action.Label()+" bound to "+res.Token)
		}
		return
	}

	rec := d.Panels.Recorder()
	switch {
	case d.Registry.Matches(key, "settings_save"):
		d.saveSettings()
	case d.Registry.Matches(key, "settings_reset"):
		d.resetHotkeys()
	case d.Registry.Matches(key, "settings_arm"):
		rec.Arm(d.settingsAction())
	case d.Registry.Matches(key, "settings_clear"):
		rec.Clear(d.settingsAction())
	case d.Registry.Matches(key, "select_next"):
		d.moveSettingsCursor(1)
	case d.Registry.Matches(key, "select_prev"):
		d.moveSettingsCursor(-1)
	case d.Registry.Matches(key, "cancel"), d.Registry.Matches(key, "toggle_settings"):
		d.Panels.CloseSettings()
		d.refocus()
	}
}

// handleImportKey edits the import buffer.
func (d *Dashboard) handleImportKey(msg tea.KeyPressMsg, key string) {
	switch {
	case d.Registry.Matches(key, "import_commit"):
		d.commitImport()
	case d.Registry.Matches(key, "cancel"):
		d.closePanel(geometry.KindImport)
	case msg.Code == tea.KeyEnter:
		d.importBuffer = append(d.importBuffer, '\n')
	case msg.Code == tea.KeyBackspace:
		if n := len(d.importBuffer); n > 0 {
			d.importBuffer = d.importBuffer[:n-1]
		}
	case msg.Text != "":
		d.importBuffer = append(d.importBuffer, []rune(msg.Text)...)
	}
}

// handlePaste appends pasted text to the import buffer when the import panel
// has focus.
func (d *Dashboard) handlePaste(text string) {
	if k, ok := d.Focused(); ok && k == geometry.KindImport {
		d.importBuffer = append(d.importBuffer, []rune(text)...)
	}
}

// selectionMods maps mouse modifiers to selection modifiers. Ctrl and the
// command key both toggle.
func selectionMods(mod tea.KeyMod) selection.Modifiers {
	return selection.Modifiers{
		Shift:  mod.Contains(tea.ModShift),
		Toggle: mod.Contains(tea.ModCtrl) || mod.Contains(tea.ModMeta) || mod.Contains(tea.ModSuper),
	}
}
