// Package config provides layout constants, keybinding management, and user settings.
package config

import "time"

// =============================================================================
// Layout Defaults
// =============================================================================

const (
	// WindowMargin is the gap kept between a floating panel and the viewport edge
	WindowMargin = 1

	// DockHeight is the height of the dock/status area at the bottom.
	// Floating panels never cover it unless the layout is compact.
	DockHeight = 2

	// CompactBreakpoint is the viewport width at or below which panels go full screen
	CompactBreakpoint = 60
)

// =============================================================================
// Panel Size Limits
// =============================================================================

const (
	// AccountsMinWidth is the minimum width of the account data panel
	AccountsMinWidth = 60
	// AccountsMinHeight is the minimum height of the account data panel
	AccountsMinHeight = 14

	// GeneratorMinWidth is the minimum width of the field generator panel
	GeneratorMinWidth = 48
	// GeneratorMinHeight is the minimum height of the field generator panel
	GeneratorMinHeight = 16

	// SettingsMinWidth is the minimum width of the hotkey settings panel
	SettingsMinWidth = 46
	// SettingsMinHeight is the minimum height of the hotkey settings panel
	SettingsMinHeight = 14

	// ImportMinWidth is the minimum width of the import panel
	ImportMinWidth = 46
	// ImportMinHeight is the minimum height of the import panel
	ImportMinHeight = 12
)

// =============================================================================
// Splitters
// =============================================================================

const (
	// SidebarMinWidth is the narrowest the sidebar splitter allows
	SidebarMinWidth = 24

	// SidebarMaxRatio caps the sidebar at this share of the viewport width
	SidebarMaxRatio = 0.7

	// SidebarDefaultRatio is the initial sidebar share of the viewport width
	SidebarDefaultRatio = 0.47

	// InboxMinHeight is the minimum height of the inbox list
	InboxMinHeight = 6

	// ViewerMinHeight is the minimum height of the message viewer
	ViewerMinHeight = 6

	// SplitHandleSize is the thickness of a splitter handle
	SplitHandleSize = 1

	// InboxResizeHitZone is how close to the inbox bottom a press must land to start a resize
	InboxResizeHitZone = 1
)

// =============================================================================
// FPS and Timeouts
// =============================================================================

const (
	// NormalFPS is the normal refresh rate during regular operation
	NormalFPS = 60

	// StatusMessageDuration is how long a status message stays before fading to idle text
	StatusMessageDuration = 4 * time.Second

	// PrefsDebounce coalesces bursts of file events from the prefs watcher
	PrefsDebounce = 150 * time.Millisecond
)

// =============================================================================
// Layer Order
// =============================================================================

const (
	// ZIndexBase is the sidebar, mail region and dock
	ZIndexBase = 0

	// ZIndexPanels is the z of the first floating panel; later kinds stack above
	ZIndexPanels = 10

	// ZIndexHelp keeps the help overlay above every panel
	ZIndexHelp = 100
)
