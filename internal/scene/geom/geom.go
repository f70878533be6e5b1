// Package geom holds the small amount of 2D math shared by the scene packages.
package geom

import "math"

// Point is a position in logical canvas pixels.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in logical canvas pixels.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Contains reports whether the point lies inside the rectangle, edges included.
func (rect Rect) Contains(x, y float64) bool {
	return x >= rect.X && x <= rect.X+rect.W && y >= rect.Y && y <= rect.Y+rect.H
}

// Inset shrinks the rectangle by the given edge offsets.
func (rect Rect) Inset(left, top, right, bottom float64) Rect {
	return Rect{
		X: rect.X + left,
		Y: rect.Y + top,
		W: rect.W - left - right,
		H: rect.H - top - bottom,
	}
}

// CenterX returns the horizontal midpoint.
func (rect Rect) CenterX() float64 {
	return rect.X + rect.W/2
}

// Bottom returns the y coordinate of the lower edge.
func (rect Rect) Bottom() float64 {
	return rect.Y + rect.H
}

// Clamp limits value to [low, high].
func Clamp(value, low, high float64) float64 {
	return math.Max(low, math.Min(high, value))
}

// EaseOutCubic maps x in [0,1] onto 1-(1-x)^3.
func EaseOutCubic(x float64) float64 {
	x = Clamp(x, 0, 1)
	inverse := 1 - x
	return 1 - inverse*inverse*inverse
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
