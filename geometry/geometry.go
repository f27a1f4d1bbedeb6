package geometry

import (
	"errors"
	"math"
)

// sideEpsilon is the tolerance below which a cross product value is
// treated as lying exactly on the line
const sideEpsilon = 1e-6

// Point represents an x,y coordinate in frame pixel space
type Point struct {
	X float32
	Y float32
}

// Pt is a shorthand constructor for Point
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Segment represents a directed line segment from P1 to P2.  The endpoint
// order is significant as it fixes which half-plane is the positive side.
type Segment struct {
	P1 Point
	P2 Point
}

// NewSegment creates a new Segment with the given endpoints
func NewSegment(p1, p2 Point) Segment {
	return Segment{P1: p1, P2: p2}
}

// Validate checks the segment has non-zero length
func (s Segment) Validate() error {

	if s.P1 == s.P2 {
		return errors.New("segment endpoints are identical")
	}

	return nil
}

// Side reports which half-plane the point lies in relative to the infinite
// line through the segment's endpoints.  It returns 1 for the positive
// half-plane, -1 for the negative half-plane, and 0 when the point lies on
// the line itself.  The sign is that of the cross product of (P2-P1) and
// (p-P1).
func Side(s Segment, p Point) int {

	cross := float64(s.P2.X-s.P1.X)*float64(p.Y-s.P1.Y) -
		float64(s.P2.Y-s.P1.Y)*float64(p.X-s.P1.X)

	if math.Abs(cross) < sideEpsilon {
		return 0
	}

	if cross > 0 {
		return 1
	}

	return -1
}

// SegmentsIntersect reports whether two segments intersect, including
// touching endpoints and collinear overlap
func SegmentsIntersect(a, b Segment) bool {

	d1 := Side(b, a.P1)
	d2 := Side(b, a.P2)
	d3 := Side(a, b.P1)
	d4 := Side(a, b.P2)

	// general case, each segment strictly straddles the line through
	// the other
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}

	// collinear cases, check if the on-line endpoint falls within the
	// other segment's bounding range
	if d1 == 0 && onSegment(b, a.P1) {
		return true
	}

	if d2 == 0 && onSegment(b, a.P2) {
		return true
	}

	if d3 == 0 && onSegment(a, b.P1) {
		return true
	}

	if d4 == 0 && onSegment(a, b.P2) {
		return true
	}

	return false
}

// onSegment reports whether a point known to be collinear with the segment
// lies within its bounding range
func onSegment(s Segment, p Point) bool {

	minX := float32(math.Min(float64(s.P1.X), float64(s.P2.X)))
	maxX := float32(math.Max(float64(s.P1.X), float64(s.P2.X)))
	minY := float32(math.Min(float64(s.P1.Y), float64(s.P2.Y)))
	maxY := float32(math.Max(float64(s.P1.Y), float64(s.P2.Y)))

	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}
