// Package geometry holds the rendered-box value types shared by the layout
// engine, the selection engine and the caret presentation.
package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used when comparing layout coordinates.
// Fractional layouts may report the same line top with rounding noise.
const Epsilon = 0.5

// Near returns true if a and b differ by less than Epsilon.
func Near(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Box is a rendered rectangle in document coordinates.
type Box struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Bottom returns the lower edge.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// Right returns the right edge.
func (b Box) Right() float64 { return b.Left + b.Width }

// IsZero returns true for the zero box.
func (b Box) IsZero() bool { return b == Box{} }

// Contains returns true if the point lies inside the box.
func (b Box) Contains(x, y float64) bool {
	return x >= b.Left && x < b.Right() && y >= b.Top && y < b.Bottom()
}

// Union returns the smallest box covering b and o. The zero box is the
// identity.
func (b Box) Union(o Box) Box {
	if b.IsZero() {
		return o
	}
	if o.IsZero() {
		return b
	}
	top := math.Min(b.Top, o.Top)
	left := math.Min(b.Left, o.Left)
	return Box{
		Top:    top,
		Left:   left,
		Width:  math.Max(b.Right(), o.Right()) - left,
		Height: math.Max(b.Bottom(), o.Bottom()) - top,
	}
}

// String returns a description for logs and test failures.
func (b Box) String() string {
	return fmt.Sprintf("Box(top=%g left=%g w=%g h=%g)", b.Top, b.Left, b.Width, b.Height)
}

// Offsets is a scroll position or absolute offset.
type Offsets struct {
	Top  float64
	Left float64
}

// Size is a viewport or element size.
type Size struct {
	Width  float64
	Height float64
}
