// Package geom provides the 2D vector math and collision shape tests used
// by the simulation. Positions are measured in arena tiles.
package geom

import "math"

// Vec2 is a 2D point or direction in tile coordinates.
type Vec2 struct {
	X float64
	Y float64
}

// NewVec2 creates a vector from its components.
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Zero returns the zero vector.
func Zero() Vec2 {
	return Vec2{}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// DistanceTo returns the Euclidean distance between v and o.
func (v Vec2) DistanceTo(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DirectionTo returns the unit vector pointing from v toward o.
// Coincident points yield the zero vector.
func (v Vec2) DirectionTo(o Vec2) Vec2 {
	dx := o.X - v.X
	dy := o.Y - v.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1e-3 {
		return Vec2{}
	}
	return Vec2{X: dx / dist, Y: dy / dist}
}

// ShapeKind discriminates collision shapes.
type ShapeKind int

const (
	// ShapeNone is carried by entities that never collide (spells).
	ShapeNone ShapeKind = iota
	// ShapeCircle is a circle centered on the entity position.
	ShapeCircle
	// ShapeRect is an axis-aligned rectangle centered on the entity position.
	ShapeRect
)

// Shape is the collision footprint of an entity. Circles use Radius;
// rectangles use HalfW/HalfH.
type Shape struct {
	Kind   ShapeKind
	Radius float64
	HalfW  float64
	HalfH  float64
}

// Circle builds a circular shape.
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Rect builds a rectangular shape from half extents.
func Rect(halfW, halfH float64) Shape {
	return Shape{Kind: ShapeRect, HalfW: halfW, HalfH: halfH}
}

// None builds the non-colliding shape.
func None() Shape {
	return Shape{Kind: ShapeNone}
}

// CircleOverlapsCircle reports whether two circles overlap, using the
// sum-of-radii test.
func CircleOverlapsCircle(a Vec2, ra float64, b Vec2, rb float64) bool {
	return a.DistanceTo(b) <= ra+rb
}

// CircleOverlapsRect reports whether a circle overlaps an axis-aligned
// rectangle. The test clamps the circle center to the rectangle and
// compares the squared distance to the closest point against the radius.
func CircleOverlapsRect(center Vec2, radius float64, rectCenter Vec2, halfW, halfH float64) bool {
	closestX := math.Min(math.Max(center.X, rectCenter.X-halfW), rectCenter.X+halfW)
	closestY := math.Min(math.Max(center.Y, rectCenter.Y-halfH), rectCenter.Y+halfH)

	dx := center.X - closestX
	dy := center.Y - closestY
	return dx*dx+dy*dy <= radius*radius
}

// Overlaps reports whether a circle of the given radius at center overlaps
// the shape anchored at shapePos. ShapeNone never overlaps anything.
func Overlaps(center Vec2, radius float64, shapePos Vec2, shape Shape) bool {
	switch shape.Kind {
	case ShapeCircle:
		return CircleOverlapsCircle(center, radius, shapePos, shape.Radius)
	case ShapeRect:
		return CircleOverlapsRect(center, radius, shapePos, shape.HalfW, shape.HalfH)
	default:
		return false
	}
}
