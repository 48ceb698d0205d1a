package hotkey

import (
	"unicode"

	tea "charm.land/bubbletea/v2"
)

// FromKeyPress converts a Bubble Tea key press into a KeyEvent. The base key
// code is used rather than the produced text so that shift+a reports "a" with
// Shift set, independent of keyboard layout quirks in the text field.
func FromKeyPress(msg tea.KeyPressMsg) KeyEvent {
	k := msg.Key()

	code := k.Code
	shift := k.Mod.Contains(tea.ModShift)
	if unicode.IsUpper(code) {
		code = unicode.ToLower(code)
		shift = true
	}

	return KeyEvent{
		Key:   tea.Key{Code: code}.String(),
		Ctrl:  k.Mod.Contains(tea.ModCtrl),
		Alt:   k.Mod.Contains(tea.ModAlt),
		Shift: shift,
	}
}

// TokenFromKeyPress is Normalize(FromKeyPress(msg)).
func TokenFromKeyPress(msg tea.KeyPressMsg) string {
	return Normalize(FromKeyPress(msg))
}
