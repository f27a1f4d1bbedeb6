package tracker

import (
	"math"

	"github.com/cvkit/go-objectcount/geometry"
)

// Rect is an axis-aligned bounding box in frame pixel coordinates using
// corner (x1,y1,x2,y2) form
type Rect struct {
	X1 float32
	Y1 float32
	X2 float32
	Y2 float32
}

// NewRect creates a new Rect with the given corner coordinates
func NewRect(x1, y1, x2, y2 float32) Rect {
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the width of the rectangle
func (r Rect) Width() float32 {
	return r.X2 - r.X1
}

// Height returns the height of the rectangle
func (r Rect) Height() float32 {
	return r.Y2 - r.Y1
}

// Area returns the area of the rectangle
func (r Rect) Area() float32 {
	return r.Width() * r.Height()
}

// Center returns the center point of the rectangle
func (r Rect) Center() geometry.Point {
	return geometry.Pt((r.X1+r.X2)/2, (r.Y1+r.Y2)/2)
}

// IoU calculates the Intersection over Union with another rectangle
func (r Rect) IoU(other Rect) float32 {

	iw := float32(math.Min(float64(r.X2), float64(other.X2)) -
		math.Max(float64(r.X1), float64(other.X1)))

	if iw <= 0 {
		return 0
	}

	ih := float32(math.Min(float64(r.Y2), float64(other.Y2)) -
		math.Max(float64(r.Y1), float64(other.Y1)))

	if ih <= 0 {
		return 0
	}

	inter := iw * ih
	union := r.Area() + other.Area() - inter

	if union <= 0 {
		return 0
	}

	return inter / union
}
