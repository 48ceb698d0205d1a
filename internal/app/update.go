package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/prefs"
)

// PrefsChangedMsg reports that the preference file was written by another
// process, for example a second SSH session.
type PrefsChangedMsg struct{}

// DataChangedMsg asks the dashboard to reload rows from its source.
type DataChangedMsg struct{}

// Update handles all incoming messages and updates the dashboard state.
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.resize(msg.Width, msg.Height)

	case tea.KeyPressMsg:
		cmd = d.handleKey(msg)

	case tea.PasteMsg:
		d.handlePaste(msg.Content)

	case tea.MouseClickMsg:
		d.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		d.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		d.handleMouseRelease(msg)

	case StatusClearMsg:
		if msg.Seq == d.statusSeq {
			d.status = d.Panels.Hotkeys().Hint()
			d.statusKind = StatusInfo
		}

	case PrefsChangedMsg:
		d.reloadPrefs()

	case DataChangedMsg:
		d.refreshRows()

	case eventMsg:
		_, inner := d.Update(msg.msg)
		cmd = tea.Batch(inner, d.waitForEvent())
	}

	if pending := d.flush(); pending != nil {
		cmd = tea.Batch(cmd, pending)
	}
	return d, cmd
}

// resize applies a new viewport to the panels and both splitters.
func (d *Dashboard) resize(width, height int) {
	d.Width, d.Height = width, height
	d.Panels.Resize(width, height)

	// A dashboard built before the first size report has no layout to keep,
	// so it gets the configured split instead of the clamped minimum.
	sidebarFresh := d.Sidebar.Container() <= 0
	inboxFresh := d.Inbox.Container() <= 0
	d.Sidebar.SetContainer(width)
	if sidebarFresh {
		d.Sidebar.SetPrimary(d.initialSidebar(width))
	}
	body := d.bodyHeight()
	d.Inbox.SetContainer(body)
	if inboxFresh {
		d.Inbox.SetPrimary(body / 2)
	}
	log.Debug("viewport resized", "width", width, "height", height, "compact", d.Panels.Compact())
}

// reloadPrefs applies hotkeys and the sidebar flag written elsewhere.
func (d *Dashboard) reloadPrefs() {
	d.Panels.SetHotkeys(prefs.LoadHotkeys(d.Prefs))
	if v := prefs.LoadSidebarVisible(d.Prefs); v != d.Panels.SidebarGeneratorVisible() {
		d.reportErr(d.Panels.SetSidebarGeneratorVisible(v))
	}
	log.Debug("preferences reloaded")
}
