// Package window implements the per-panel window state machine: open and
// close, minimize and maximize, and pointer-driven drag and resize sessions.
package window

import (
	"errors"

	"charm.land/log/v2"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/boxdeck/internal/geometry"
)

var (
	// ErrClosed is returned when a session is started on a closed panel.
	ErrClosed = errors.New("window: panel is closed")
	// ErrLocked is returned when a session is started on a minimized or
	// maximized panel.
	ErrLocked = errors.New("window: panel is minimized or maximized")
)

// State is the geometry and mode of an open panel.
type State struct {
	Rect      geometry.Rect
	Minimized bool
	Maximized bool
	// Restore holds the rect to return to when leaving maximize. It is only
	// set while Maximized is true.
	Restore *geometry.Rect
}

// DragSession is a move in progress. It is a value object handed back to
// DragMove and EndDrag so the controller can reject stale sessions.
type DragSession struct {
	owner   uuid.UUID
	kind    geometry.Kind
	OffsetX int
	OffsetY int
}

// Owner implements pointer.Session.
func (s DragSession) Owner() string { return s.kind.String() + "/drag/" + s.owner.String() }

// Kind returns the panel kind the session belongs to.
func (s DragSession) Kind() geometry.Kind { return s.kind }

// ResizeSession is a resize in progress.
type ResizeSession struct {
	owner       uuid.UUID
	kind        geometry.Kind
	Start       geometry.Point
	StartWidth  int
	StartHeight int
}

// Owner implements pointer.Session.
func (s ResizeSession) Owner() string { return s.kind.String() + "/resize/" + s.owner.String() }

// Kind returns the panel kind the session belongs to.
func (s ResizeSession) Kind() geometry.Kind { return s.kind }

// Controller owns the window state of one floating panel.
type Controller struct {
	kind geometry.Kind

	open  bool
	id    uuid.UUID // minted on every Open
	state State

	bounds  geometry.Bounds
	compact bool

	dragging bool
	resizing bool
}

// NewController returns a closed controller for panels of kind k.
func NewController(k geometry.Kind) *Controller {
	return &Controller{kind: k}
}

// Kind returns the panel kind this controller manages.
func (c *Controller) Kind() geometry.Kind { return c.kind }

// IsOpen reports whether the panel is open.
func (c *Controller) IsOpen() bool { return c.open }

// State returns a copy of the current state. The zero State is returned for a
// closed panel.
func (c *Controller) State() State {
	if !c.open {
		return State{}
	}
	s := c.state
	if s.Restore != nil {
		r := *s.Restore
		s.Restore = &r
	}
	return s
}

// Rect returns the current panel rectangle.
func (c *Controller) Rect() geometry.Rect { return c.state.Rect }

// Minimized reports whether the panel is minimized.
func (c *Controller) Minimized() bool { return c.open && c.state.Minimized }

// Maximized reports whether the panel is maximized.
func (c *Controller) Maximized() bool { return c.open && c.state.Maximized }

// Dragging reports whether a drag session is active.
func (c *Controller) Dragging() bool { return c.dragging }

// Resizing reports whether a resize session is active.
func (c *Controller) Resizing() bool { return c.resizing }

// Open recomputes the default rect and clears minimize and maximize. Any
// previous geometry is discarded. In compact mode the panel starts maximized.
func (c *Controller) Open(b geometry.Bounds, compact bool) {
	c.open = true
	c.id = uuid.New()
	c.bounds = b
	c.compact = compact
	c.dragging = false
	c.resizing = false
	c.state = State{Rect: geometry.DefaultRect(b, c.kind)}

	if compact {
		c.state.Maximized = true
		c.state.Rect = geometry.MaxRect(b, true)
	}

	log.Debug("panel opened", "kind", c.kind, "rect", c.state.Rect, "compact", compact)
}

// Close discards all state and any running session.
func (c *Controller) Close() {
	if !c.open {
		return
	}
	c.open = false
	c.id = uuid.Nil
	c.state = State{}
	c.dragging = false
	c.resizing = false
	log.Debug("panel closed", "kind", c.kind)
}

// SetRect moves the panel to r, clamped against the current viewport. It is a
// no-op while the panel is closed or maximized.
func (c *Controller) SetRect(r geometry.Rect) {
	if !c.open || c.state.Maximized {
		return
	}
	c.state.Rect = geometry.Clamp(r, c.bounds, c.kind, c.compact)
}

// ToggleMinimize flips the minimized flag. Geometry is untouched.
func (c *Controller) ToggleMinimize() {
	if !c.open {
		return
	}
	c.state.Minimized = !c.state.Minimized
	c.endSessions()
}

// ToggleMaximize enters or leaves maximize. It is a no-op in compact mode,
// where panels are always maximized.
func (c *Controller) ToggleMaximize(b geometry.Bounds, compact bool) {
	if !c.open || compact {
		return
	}
	c.bounds = b
	c.compact = compact
	c.endSessions()

	if !c.state.Maximized {
		restore := c.state.Rect
		c.state.Restore = &restore
		c.state.Minimized = false
		c.state.Maximized = true
		c.state.Rect = geometry.MaxRect(b, false)
		return
	}

	base := geometry.DefaultRect(b, c.kind)
	if c.state.Restore != nil {
		base = *c.state.Restore
	}
	c.state.Rect = geometry.Clamp(base, b, c.kind, false)
	c.state.Restore = nil
	c.state.Maximized = false
}

// ViewportChanged re-derives the rect for a new viewport. A maximized panel
// takes the new max rect, any other panel is clamped. Entering compact mode
// forces maximize without a restore rect; leaving it drops such a forced
// maximize in favour of the default rect.
func (c *Controller) ViewportChanged(b geometry.Bounds, compact bool) {
	if !c.open {
		return
	}
	wasCompact := c.compact
	c.bounds = b
	c.compact = compact

	switch {
	case compact && !c.state.Maximized:
		c.endSessions()
		c.state.Maximized = true
		c.state.Restore = nil
	case wasCompact && !compact && c.state.Maximized && c.state.Restore == nil:
		c.state.Maximized = false
		c.state.Rect = geometry.DefaultRect(b, c.kind)
		return
	}

	if c.state.Maximized {
		c.state.Rect = geometry.MaxRect(b, compact)
		return
	}
	c.state.Rect = geometry.Clamp(c.state.Rect, b, c.kind, compact)
}

// BeginDrag starts moving the panel with the pointer at p.
func (c *Controller) BeginDrag(p geometry.Point) (DragSession, error) {
	if err := c.canBegin(); err != nil {
		return DragSession{}, err
	}
	c.dragging = true
	return DragSession{
		owner:   c.id,
		kind:    c.kind,
		OffsetX: p.X - c.state.Rect.X,
		OffsetY: p.Y - c.state.Rect.Y,
	}, nil
}

// DragMove moves the panel so the pointer keeps its offset from the origin.
// Stale sessions are ignored.
func (c *Controller) DragMove(s DragSession, p geometry.Point) {
	if !c.dragging || s.owner != c.id {
		return
	}
	r := c.state.Rect
	r.X = p.X - s.OffsetX
	r.Y = p.Y - s.OffsetY
	c.state.Rect = geometry.Clamp(r, c.bounds, c.kind, c.compact)
}

// EndDrag ends the drag session.
func (c *Controller) EndDrag(s DragSession) {
	if s.owner == c.id {
		c.dragging = false
	}
}

// BeginResize starts resizing the panel from its bottom right corner with the
// pointer at p.
func (c *Controller) BeginResize(p geometry.Point) (ResizeSession, error) {
	if err := c.canBegin(); err != nil {
		return ResizeSession{}, err
	}
	c.resizing = true
	return ResizeSession{
		owner:       c.id,
		kind:        c.kind,
		Start:       p,
		StartWidth:  c.state.Rect.Width,
		StartHeight: c.state.Rect.Height,
	}, nil
}

// ResizeMove grows or shrinks the panel by the pointer delta since the session
// began.
func (c *Controller) ResizeMove(s ResizeSession, p geometry.Point) {
	if !c.resizing || s.owner != c.id {
		return
	}
	r := c.state.Rect
	r.Width = s.StartWidth + (p.X - s.Start.X)
	r.Height = s.StartHeight + (p.Y - s.Start.Y)
	c.state.Rect = geometry.Clamp(r, c.bounds, c.kind, c.compact)
}

// EndResize ends the resize session.
func (c *Controller) EndResize(s ResizeSession) {
	if s.owner == c.id {
		c.resizing = false
	}
}

func (c *Controller) canBegin() error {
	if !c.open {
		return ErrClosed
	}
	if c.state.Maximized || c.state.Minimized {
		return ErrLocked
	}
	return nil
}

func (c *Controller) endSessions() {
	c.dragging = false
	c.resizing = false
}
