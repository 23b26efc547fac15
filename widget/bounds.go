package widget

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Bounds is a screen-space rectangle in pixels.
type Bounds struct {
	X, Y          float32 // Top-left corner in screen coordinates
	Width, Height float32
}

// Rect returns the bounds with top-left (x, y) and the given size.
func Rect(x, y, width, height float32) Bounds {
	return Bounds{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x coordinate of the right edge.
func (b Bounds) Right() float32 { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Bounds) Bottom() float32 { return b.Y + b.Height }

// Empty reports whether b covers no area.
func (b Bounds) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

// Contains checks if a point is within the bounds.
// The left and top edges are inside, the right and bottom edges are not, so
// two adjacent widgets never both contain a point on their shared edge.
func (b Bounds) Contains(x, y float32) bool {
	return x >= b.X && x < b.X+b.Width &&
		y >= b.Y && y < b.Y+b.Height
}

// LocalPoint converts screen coordinates to local coordinates relative to bounds.
func (b Bounds) LocalPoint(screenX, screenY float32) (localX, localY float32) {
	return screenX - b.X, screenY - b.Y
}

// Intersect returns the overlap of b and o, or the zero Bounds if they do not overlap.
func (b Bounds) Intersect(o Bounds) Bounds {
	x0 := math32.Max(b.X, o.X)
	y0 := math32.Max(b.Y, o.Y)
	x1 := math32.Min(b.Right(), o.Right())
	y1 := math32.Min(b.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Bounds{}
	}
	return Bounds{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Union returns the smallest bounds containing both b and o.
// An empty operand is ignored.
func (b Bounds) Union(o Bounds) Bounds {
	switch {
	case b.Empty():
		return o
	case o.Empty():
		return b
	}
	x0 := math32.Min(b.X, o.X)
	y0 := math32.Min(b.Y, o.Y)
	x1 := math32.Max(b.Right(), o.Right())
	y1 := math32.Max(b.Bottom(), o.Bottom())
	return Bounds{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ApproxEqual reports whether every field of b and o differs by at most tol.
func (b Bounds) ApproxEqual(o Bounds, tol float32) bool {
	return math32.Abs(b.X-o.X) <= tol &&
		math32.Abs(b.Y-o.Y) <= tol &&
		math32.Abs(b.Width-o.Width) <= tol &&
		math32.Abs(b.Height-o.Height) <= tol
}

func (b Bounds) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", b.X, b.Y, b.Width, b.Height)
}
