package core

import "math"

// Vec2 is a point or displacement in logical coordinates
type Vec2 struct {
	X, Y float64
}

// Dist returns euclidean distance between two points
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Rect is an axis-aligned box, X/Y at the top-left corner
type Rect struct {
	X, Y float64
	W, H float64
}

// Center returns the box center
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies inside the box, edges inclusive
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// CenteredAt returns a box of the same size centered on p
func (r Rect) CenteredAt(p Vec2) Rect {
	return Rect{X: p.X - r.W/2, Y: p.Y - r.H/2, W: r.W, H: r.H}
}
