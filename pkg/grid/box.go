package grid

import "github.com/go-gl/mathgl/mgl64"

// Box is an axis-aligned rectangle in the plane.
type Box struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// NewBox builds a box from two corners, swapping bounds given out of order.
func NewBox(minX, minY, maxX, maxY float64) Box {
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Box{Min: mgl64.Vec2{minX, minY}, Max: mgl64.Vec2{maxX, maxY}}
}

// Center returns the midpoint of the box.
func (b Box) Center() mgl64.Vec2 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains reports whether p lies inside the box or on its edge.
func (b Box) Contains(p mgl64.Vec2) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y()
}

// Valid reports whether all bounds are finite.
func (b Box) Valid() bool { return finite(b.Min) && finite(b.Max) }
