// Package geometry computes and constrains floating panel rectangles.
//
// Everything here is a pure function of a Bounds value. Degenerate viewports
// never panic: sizes are floored at the panel minimum even when that makes the
// rectangle overflow the screen.
package geometry

import (
	"fmt"
	"math"

	"github.com/Gaurav-Gosain/boxdeck/internal/config"
)

// Kind identifies a floating panel category.
type Kind int

const (
	// KindAccounts is the account data panel.
	KindAccounts Kind = iota
	// KindGenerator is the field generator panel shared by both generator contexts.
	KindGenerator
	// KindSettings is the hotkey settings panel.
	KindSettings
	// KindImport is the account import panel.
	KindImport

	numKinds
)

// Kinds lists every panel kind in paint order.
var Kinds = [...]Kind{KindAccounts, KindGenerator, KindImport, KindSettings}

// String returns the panel kind name.
func (k Kind) String() string {
	switch k {
	case KindAccounts:
		return "accounts"
	case KindGenerator:
		return "generator"
	case KindSettings:
		return "settings"
	case KindImport:
		return "import"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the known panel kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// Point is a screen cell coordinate.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned screen rectangle in cells.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Limits holds the sizing rules for one panel kind.
type Limits struct {
	MinWidth    int
	MinHeight   int
	WidthRatio  float64 // preferred share of the viewport width
	HeightRatio float64 // preferred share of the viewport height
	MaxWidth    int     // preferred cap for the default size, 0 for none
	MaxHeight   int
}

// DefaultLimits returns the built-in limits for every panel kind.
func DefaultLimits() [numKinds]Limits {
	return [numKinds]Limits{
		KindAccounts: {
			MinWidth: config.AccountsMinWidth, MinHeight: config.AccountsMinHeight,
			WidthRatio: 0.72, HeightRatio: 0.62, MaxWidth: 110, MaxHeight: 34,
		},
		KindGenerator: {
			MinWidth: config.GeneratorMinWidth, MinHeight: config.GeneratorMinHeight,
			WidthRatio: 0.56, HeightRatio: 0.70, MaxWidth: 84, MaxHeight: 36,
		},
		KindSettings: {
			MinWidth: config.SettingsMinWidth, MinHeight: config.SettingsMinHeight,
			WidthRatio: 0.48, HeightRatio: 0.70, MaxWidth: 76, MaxHeight: 38,
		},
		KindImport: {
			MinWidth: config.ImportMinWidth, MinHeight: config.ImportMinHeight,
			WidthRatio: 0.50, HeightRatio: 0.50, MaxWidth: 80, MaxHeight: 24,
		},
	}
}

// Bounds carries the viewport and the fixed layout parameters every
// computation in this package depends on.
type Bounds struct {
	Width     int
	Height    int
	Margin    int
	BottomGap int
	Limits    [numKinds]Limits
}

// NewBounds returns bounds for the given viewport using the default margin,
// dock gap and panel limits.
func NewBounds(width, height int) Bounds {
	return Bounds{
		Width:     width,
		Height:    height,
		Margin:    config.WindowMargin,
		BottomGap: config.DockHeight,
		Limits:    DefaultLimits(),
	}
}

// WithViewport returns a copy of b for a new viewport size.
func (b Bounds) WithViewport(width, height int) Bounds {
	b.Width = width
	b.Height = height
	return b
}

// LimitsFor returns the limits of kind k.
func (b Bounds) LimitsFor(k Kind) Limits {
	if !k.Valid() {
		return Limits{}
	}
	return b.Limits[k]
}

// AvailableWidth is the widest a panel may be outside compact mode.
func (b Bounds) AvailableWidth() int {
	return b.Width - 2*b.Margin
}

// AvailableHeight is the tallest a panel may be outside compact mode.
func (b Bounds) AvailableHeight() int {
	return b.Height - b.BottomGap - b.Margin
}

// DefaultRect returns the centered default rectangle for a freshly opened
// panel of kind k.
func DefaultRect(b Bounds, k Kind) Rect {
	lim := b.LimitsFor(k)

	width := preferredSize(b.Width, lim.WidthRatio, lim.MinWidth, lim.MaxWidth, b.AvailableWidth())
	height := preferredSize(b.Height, lim.HeightRatio, lim.MinHeight, lim.MaxHeight, b.AvailableHeight())

	centered := Rect{
		X:      (b.Width - width) / 2,
		Y:      (b.Height - b.BottomGap - height) / 2,
		Width:  width,
		Height: height,
	}
	return Clamp(centered, b, k, false)
}

// MaxRect returns the rectangle of a maximized panel.
func MaxRect(b Bounds, compact bool) Rect {
	if compact {
		return Rect{X: 0, Y: 0, Width: b.Width, Height: b.Height}
	}
	return Rect{
		X:      b.Margin,
		Y:      b.Margin,
		Width:  b.AvailableWidth(),
		Height: b.AvailableHeight(),
	}
}

// Clamp constrains r to the viewport and the size limits of kind k.
// Size is clamped first because the position bounds depend on it.
func Clamp(r Rect, b Bounds, k Kind, compact bool) Rect {
	if compact {
		return MaxRect(b, true)
	}

	lim := b.LimitsFor(k)
	width := max(min(r.Width, b.AvailableWidth()), lim.MinWidth)
	height := max(min(r.Height, b.AvailableHeight()), lim.MinHeight)

	maxX := max(b.Margin, b.Width-width-b.Margin)
	maxY := max(b.Margin, b.Height-b.BottomGap-height)

	return Rect{
		X:      ClampInt(r.X, b.Margin, maxX),
		Y:      ClampInt(r.Y, b.Margin, maxY),
		Width:  width,
		Height: height,
	}
}

// ClampInt limits v to [lo, hi]. When hi < lo the lower bound wins.
func ClampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func preferredSize(viewport int, ratio float64, minSize, capSize, available int) int {
	size := int(math.Round(float64(viewport) * ratio))
	upper := available
	if capSize > 0 && capSize < upper {
		upper = capSize
	}
	return max(min(size, upper), minSize)
}
