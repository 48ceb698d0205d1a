// Package theme provides color themes and styling for the boxdeck dashboard.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/accounts"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming will be disabled and standard terminal colors will be used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Panel chrome
func PanelBorder() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("8")
	}
	return t.BrightBlack
}

func PanelBorderActive() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("14")
	}
	return t.BrightCyan
}

func PanelTitle() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("15")
	}
	return t.BrightWhite
}

func PanelBg() color.Color {
	t := Current()
	if t == nil {
		return nil
	}
	return t.Bg
}

// ButtonFg is the color of the [_] [□] [x] header buttons.
func ButtonFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("7")
	}
	return t.White
}

func ButtonClose() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("9")
	}
	return t.BrightRed
}

// Splitter handles
func SplitterIdle() color.Color {
	return lipgloss.Color("8")
}

func SplitterActive() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("12")
	}
	return t.BrightBlue
}

// Account table
func RowSelectedBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("62")
	}
	return t.Blue
}

func RowSelectedFg() color.Color {
	return lipgloss.Color("15")
}

func RowAnchor() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("11")
	}
	return t.Yellow
}

// StatusColor is the badge color for an account status.
func StatusColor(s accounts.Status) color.Color {
	t := Current()
	switch s {
	case accounts.StatusRegistered:
		if t == nil {
			return lipgloss.Color("10")
		}
		return t.BrightGreen
	case accounts.StatusPlus:
		if t == nil {
			return lipgloss.Color("13")
		}
		return t.BrightPurple
	case accounts.StatusBusiness:
		if t == nil {
			return lipgloss.Color("12")
		}
		return t.BrightBlue
	case accounts.StatusBanned:
		if t == nil {
			return lipgloss.Color("9")
		}
		return t.BrightRed
	case accounts.StatusInvalidPassword:
		if t == nil {
			return lipgloss.Color("11")
		}
		return t.Yellow
	default:
		return lipgloss.Color("8")
	}
}

// Generator fields
func FieldLabel() color.Color {
	return lipgloss.Color("8")
}

func FieldValue() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("15")
	}
	return t.Fg
}

// FieldCopied highlights the most recently copied generator field.
func FieldCopied() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cd00"), lipgloss.Color("#000000")
	}
	return t.Green, t.Black
}

// RecordingSlot marks the hotkey slot waiting for a key press.
func RecordingSlot() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00"), lipgloss.Color("#000000")
	}
	return t.Yellow, t.Black
}

// Status line
func NotificationError() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ff6b6b")
	}
	return t.BrightRed
}

func NotificationSuccess() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#51cf66")
	}
	return t.BrightGreen
}

func NotificationInfo() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#74c0fc")
	}
	return t.BrightCyan
}

// Dock colors
func DockBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

func DockFg() color.Color {
	return lipgloss.Color("#a0a0b0")
}

func DockHighlight() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#5c5cff")
	}
	return t.BrightBlue
}

func DockDimmed() color.Color {
	return lipgloss.Color("#606070")
}

// Help overlay colors
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5")
}

func HelpGray() color.Color {
	return lipgloss.Color("8")
}

func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

func HelpTableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLI table colors
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	return fmt.Sprintf("#%02x%02x%02x", r8, g8, b8)
}
