package hotkey

// Dispatcher resolves tokens against a committed map.
type Dispatcher struct {
	keys Map
}

// NewDispatcher returns a dispatcher for m.
func NewDispatcher(m Map) *Dispatcher {
	return &Dispatcher{keys: m.Normalized()}
}

// SetMap replaces the committed map.
func (d *Dispatcher) SetMap(m Map) { d.keys = m.Normalized() }

// Map returns a copy of the committed map.
func (d *Dispatcher) Map() Map { return d.keys.Clone() }

// Resolve returns the action bound to token. Close wins over cycle, and cycle
// wins over the copy actions, which are scanned in their fixed order. Empty
// tokens never match.
func (d *Dispatcher) Resolve(token string) (Action, bool) {
	if token == "" {
		return "", false
	}
	if token == d.keys[ActionClose] {
		return ActionClose, true
	}
	if token == d.keys[ActionCycle] {
		return ActionCycle, true
	}
	for _, a := range CopyActions {
		if token == d.keys[a] {
			return a, true
		}
	}
	return "", false
}
