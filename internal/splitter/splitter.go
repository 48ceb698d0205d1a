// Package splitter implements a draggable divider between two panes.
package splitter

import (
	"math"

	"github.com/Gaurav-Gosain/boxdeck/internal/config"
)

// Axis is the direction a splitter divides its container.
type Axis int

const (
	// Horizontal splits left and right; the primary pane is on the left.
	Horizontal Axis = iota
	// Vertical splits top and bottom; the primary pane is on top.
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Limits bound the primary pane size.
type Limits struct {
	MinPrimary   int
	MinSecondary int
	Handle       int     // thickness of the divider
	MaxRatio     float64 // optional cap as a share of the container, 0 for none
	HitZone      int     // distance from the boundary that still grabs the handle
}

// SidebarLimits are the limits of the sidebar width splitter.
func SidebarLimits() Limits {
	return Limits{
		MinPrimary: config.SidebarMinWidth,
		Handle:     config.SplitHandleSize,
		MaxRatio:   config.SidebarMaxRatio,
		HitZone:    1,
	}
}

// InboxLimits are the limits of the inbox and viewer splitter.
func InboxLimits() Limits {
	return Limits{
		MinPrimary:   config.InboxMinHeight,
		MinSecondary: config.ViewerMinHeight,
		Handle:       config.SplitHandleSize,
		HitZone:      config.InboxResizeHitZone,
	}
}

// Session is a splitter drag in progress.
type Session struct {
	name         string
	StartPointer int
	StartSize    int
}

// Owner implements pointer.Session.
func (s Session) Owner() string { return "splitter/" + s.name }

// Name returns the name of the splitter that started the session.
func (s Session) Name() string { return s.name }

// Splitter holds the primary pane size of one divider.
type Splitter struct {
	name      string
	axis      Axis
	limits    Limits
	container int
	primary   int
	dragging  bool
}

// New returns a splitter over a container of the given size with an initial
// primary size, clamped into range.
func New(name string, axis Axis, limits Limits, container, primary int) *Splitter {
	s := &Splitter{name: name, axis: axis, limits: limits, container: container}
	s.primary = s.clamp(primary)
	return s
}

// Name returns the splitter name.
func (s *Splitter) Name() string { return s.name }

// Axis returns the split direction.
func (s *Splitter) Axis() Axis { return s.axis }

// Primary returns the primary pane size.
func (s *Splitter) Primary() int { return s.primary }

// Secondary returns the space left for the secondary pane.
func (s *Splitter) Secondary() int {
	return max(s.container-s.primary-s.limits.Handle, 0)
}

// Container returns the container size.
func (s *Splitter) Container() int { return s.container }

// Dragging reports whether a drag session is active.
func (s *Splitter) Dragging() bool { return s.dragging }

// Min returns the smallest allowed primary size.
func (s *Splitter) Min() int { return s.limits.MinPrimary }

// Max returns the largest allowed primary size for the current container.
// It never drops below Min.
func (s *Splitter) Max() int {
	hi := s.container - s.limits.Handle - s.limits.MinSecondary
	if s.limits.MaxRatio > 0 {
		hi = min(hi, int(math.Round(float64(s.container)*s.limits.MaxRatio)))
	}
	return max(hi, s.limits.MinPrimary)
}

// SetContainer updates the container size and re-clamps the primary size.
func (s *Splitter) SetContainer(size int) {
	s.container = size
	s.primary = s.clamp(s.primary)
}

// SetPrimary sets the primary size, clamped into range.
func (s *Splitter) SetPrimary(size int) {
	s.primary = s.clamp(size)
}

// Begin starts a drag with the pointer at pos along the split axis.
func (s *Splitter) Begin(pos int) Session {
	s.dragging = true
	return Session{name: s.name, StartPointer: pos, StartSize: s.primary}
}

// Move resizes the primary pane by the pointer delta since Begin.
func (s *Splitter) Move(sess Session, pos int) {
	if !s.dragging || sess.name != s.name {
		return
	}
	s.primary = s.clamp(sess.StartSize + (pos - sess.StartPointer))
}

// End finishes the drag.
func (s *Splitter) End(sess Session) {
	if sess.name == s.name {
		s.dragging = false
	}
}

// Boundary returns the position of the handle relative to origin, the
// coordinate where the container starts.
func (s *Splitter) Boundary(origin int) int {
	return origin + s.primary
}

// NearBoundary reports whether pos is close enough to the handle to grab it.
func (s *Splitter) NearBoundary(pos, origin int) bool {
	b := s.Boundary(origin)
	zone := max(s.limits.HitZone, 0)
	return pos >= b-zone && pos <= b+max(s.limits.Handle-1, 0)+zone
}

func (s *Splitter) clamp(v int) int {
	return min(max(v, s.limits.MinPrimary), s.Max())
}
