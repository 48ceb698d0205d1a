package hotkey

// Recorder captures key presses into a draft map for the settings panel.
// At most one slot is armed at a time.
type Recorder struct {
	draft Map
	armed Action
}

// NewRecorder returns a recorder editing a copy of committed.
func NewRecorder(committed Map) *Recorder {
	return &Recorder{draft: committed.Normalized()}
}

// Reset replaces the draft with a copy of committed and disarms.
func (r *Recorder) Reset(committed Map) {
	r.draft = committed.Normalized()
	r.armed = ""
}

// Draft returns a copy of the draft map.
func (r *Recorder) Draft() Map { return r.draft.Clone() }

// Armed returns the armed slot, or "" when idle.
func (r *Recorder) Armed() Action { return r.armed }

// Recording reports whether a slot is armed.
func (r *Recorder) Recording() bool { return r.armed != "" }

// Arm arms slot a. Arming the armed slot again disarms it; arming a different
// slot disarms the previous one.
func (r *Recorder) Arm(a Action) {
	if !a.Valid() {
		return
	}
	if r.armed == a {
		r.armed = ""
		return
	}
	r.armed = a
}

// Disarm stops recording without touching the draft.
func (r *Recorder) Disarm() { r.armed = "" }

// Capture records ev into the armed slot. It reports whether the event was
// consumed and the token written. Bare modifier presses are ignored and keep
// the slot armed.
func (r *Recorder) Capture(ev KeyEvent) (token string, consumed bool) {
	if r.armed == "" {
		return "", false
	}
	token = Normalize(ev)
	if token == "" {
		return "", false
	}
	r.draft[r.armed] = token
	r.armed = ""
	return token, true
}

// Clear unbinds slot a in the draft.
func (r *Recorder) Clear(a Action) {
	if !a.Valid() {
		return
	}
	r.draft[a] = ""
	if r.armed == a {
		r.armed = ""
	}
}
