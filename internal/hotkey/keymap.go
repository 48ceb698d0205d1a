package hotkey

import (
	"encoding/json"
	"fmt"
)

// Action is a bindable generator action.
type Action string

// Generator actions.
const (
	ActionCycle    Action = "sk_cycle"
	ActionClose    Action = "sk_close"
	ActionCard     Action = "card"
	ActionExpDate  Action = "exp_date"
	ActionCVV      Action = "cvv"
	ActionName     Action = "name"
	ActionCity     Action = "city"
	ActionStreet   Action = "street"
	ActionPostcode Action = "postcode"
)

// Actions lists every bindable action in display order.
var Actions = []Action{
	ActionCycle,
	ActionClose,
	ActionCard,
	ActionExpDate,
	ActionCVV,
	ActionName,
	ActionCity,
	ActionStreet,
	ActionPostcode,
}

// CopyActions are the field copy actions in dispatch and cycle order.
var CopyActions = []Action{
	ActionCard,
	ActionExpDate,
	ActionCVV,
	ActionName,
	ActionCity,
	ActionStreet,
	ActionPostcode,
}

var actionLabels = map[Action]string{
	ActionCycle:    "Next field",
	ActionClose:    "Close generator",
	ActionCard:     "Card number",
	ActionExpDate:  "Expiry date",
	ActionCVV:      "CVV",
	ActionName:     "Name",
	ActionCity:     "City",
	ActionStreet:   "Street",
	ActionPostcode: "Postcode",
}

// Label returns a human readable name for a.
func (a Action) Label() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return string(a)
}

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	_, ok := actionLabels[a]
	return ok
}

// Map binds every action to a token. An empty token means unbound.
type Map map[Action]string

// DefaultMap returns the built-in bindings.
func DefaultMap() Map {
	return Map{
		ActionCycle:    "6",
		ActionClose:    "esc",
		ActionCard:     "ctrl+1",
		ActionExpDate:  "ctrl+4",
		ActionCVV:      "ctrl+5",
		ActionName:     "ctrl+2",
		ActionCity:     "ctrl+3",
		ActionStreet:   "ctrl+6",
		ActionPostcode: "ctrl+7",
	}
}

// Clone returns a copy of m.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Get returns the token bound to a.
func (m Map) Get(a Action) string { return m[a] }

// Equal reports whether m and other bind every action identically.
func (m Map) Equal(other Map) bool {
	for _, a := range Actions {
		if m[a] != other[a] {
			return false
		}
	}
	return true
}

// Normalized returns a copy of m restricted to the known actions, with every
// token normalized and missing actions filled from the defaults.
func (m Map) Normalized() Map {
	out := DefaultMap()
	for _, a := range Actions {
		if v, ok := m[a]; ok {
			out[a] = NormalizeToken(v)
		}
	}
	return out
}

// Merge validates a decoded preference blob against the defaults. Unknown
// keys are ignored, missing or non-string values fall back to the default
// binding and strings are normalized. An empty string stays unbound.
func Merge(raw map[string]any) Map {
	out := DefaultMap()
	for _, a := range Actions {
		if s, ok := raw[string(a)].(string); ok {
			out[a] = NormalizeToken(s)
		}
	}
	return out
}

// ParseMap decodes a persisted JSON blob. Malformed input yields the defaults.
func ParseMap(data []byte) Map {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return DefaultMap()
	}
	return Merge(raw)
}

// MarshalMap encodes m with the fixed key set.
func MarshalMap(m Map) ([]byte, error) {
	n := m.Normalized()
	out := make(map[string]string, len(Actions))
	for _, a := range Actions {
		out[string(a)] = n[a]
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode hotkeys: %w", err)
	}
	return data, nil
}

// Hint returns a one-line summary of the bindings for a status line.
func (m Map) Hint() string {
	value := func(a Action) string {
		if v := m[a]; v != "" {
			return v
		}
		return "-"
	}
	return fmt.Sprintf("Hotkeys: next=%s close=%s card=%s exp=%s cvv=%s name=%s city=%s street=%s zip=%s",
		value(ActionCycle), value(ActionClose), value(ActionCard), value(ActionExpDate),
		value(ActionCVV), value(ActionName), value(ActionCity), value(ActionStreet),
		value(ActionPostcode))
}
