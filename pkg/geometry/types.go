// Package geometry provides basic geometric types used throughout the application.
package geometry

import "math"

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// ManhattanDistance returns the L1 distance to another point, the metric
// used for breakpoint hit-testing.
func (p Point2D) ManhattanDistance(other Point2D) float64 {
	return math.Abs(p.X-other.X) + math.Abs(p.Y-other.Y)
}
