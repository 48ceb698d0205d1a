// Package hotkey turns key presses into canonical tokens and maps them to the
// generator panel actions.
//
// A token is a lowercase chord such as "ctrl+1", "alt+shift+x" or "esc".
// Modifiers always appear in the order ctrl, alt, shift. Tokens are only ever
// produced by Normalize or NormalizeToken, so two events for the same physical
// chord compare equal as strings.
package hotkey

import (
	"strings"
	"unicode"
)

// KeyEvent is a raw key press.
type KeyEvent struct {
	Key   string // key name as reported by the input layer
	Ctrl  bool
	Alt   bool
	Shift bool
}

// modifierNames are key names that on their own are a bare modifier press.
var modifierNames = map[string]bool{
	"ctrl":       true,
	"control":    true,
	"alt":        true,
	"option":     true,
	"shift":      true,
	"meta":       true,
	"super":      true,
	"hyper":      true,
	"leftctrl":   true,
	"rightctrl":  true,
	"leftalt":    true,
	"rightalt":   true,
	"leftshift":  true,
	"rightshift": true,
	"leftmeta":   true,
	"rightmeta":  true,
	"leftsuper":  true,
	"rightsuper": true,
}

// keySubstitutions maps alternate key names to their canonical form.
var keySubstitutions = map[string]string{
	" ":      "space",
	"escape": "esc",
	"return": "enter",
}

// Normalize returns the canonical token for ev, or "" when ev is a bare
// modifier press and cannot be bound.
func Normalize(ev KeyEvent) string {
	key := strings.ToLower(ev.Key)
	if key == "" || modifierNames[key] {
		return ""
	}
	if sub, ok := keySubstitutions[key]; ok {
		key = sub
	}
	return join(ev.Ctrl, ev.Alt, ev.Shift, key)
}

// NormalizeToken canonicalizes a stored token: whitespace removed, lowercased,
// "control" spelled "ctrl" and modifiers reordered. It is idempotent. A token
// made only of modifiers, unencoded ones such as "super" included, normalizes
// to "".
func NormalizeToken(s string) string {
	s = strings.ToLower(stripSpace(s))
	if s == "" {
		return ""
	}

	// A trailing "+" after a separator, or a lone "+", is the plus key itself.
	var plus bool
	if s == "+" || strings.HasSuffix(s, "++") {
		plus = true
		s = strings.TrimSuffix(s, "+")
	}

	var ctrl, alt, shift bool
	var keys []string
	for part := range strings.SplitSeq(s, "+") {
		switch part {
		case "":
		case "ctrl", "control":
			ctrl = true
		case "alt", "option":
			alt = true
		case "shift":
			shift = true
		default:
			// Meta, super and hyper are never encoded, matching Normalize.
			if modifierNames[part] {
				continue
			}
			if sub, ok := keySubstitutions[part]; ok {
				part = sub
			}
			keys = append(keys, part)
		}
	}
	if plus {
		keys = append(keys, "+")
	}
	if len(keys) == 0 {
		return ""
	}
	return join(ctrl, alt, shift, strings.Join(keys, "+"))
}

func join(ctrl, alt, shift bool, key string) string {
	var b strings.Builder
	if ctrl {
		b.WriteString("ctrl+")
	}
	if alt {
		b.WriteString("alt+")
	}
	if shift {
		b.WriteString("shift+")
	}
	b.WriteString(key)
	return b.String()
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
