package geometry

import (
	"errors"
	"fmt"
	"math"

	clipper "github.com/ctessum/go.clipper"
)

const (
	// clipperScale converts float pixel coordinates to the integer
	// coordinate space used by clipper
	clipperScale = 1000.0

	// minPolygonArea is the smallest polygon area in square pixels that
	// is not considered degenerate
	minPolygonArea = 1e-3
)

// Polygon is an ordered sequence of vertices forming a closed polygon.
// The closing edge from the last vertex back to the first is implicit.
// Vertex order is significant and never canonicalized.
type Polygon []Point

// NewPolygon creates a Polygon from the given vertices
func NewPolygon(vertices ...Point) Polygon {
	return Polygon(vertices)
}

// Validate checks the polygon is usable as a counting zone.  It must have
// at least 3 vertices, enclose a non-zero area and be simple (no
// self-intersecting edges).
func (p Polygon) Validate() error {

	if len(p) < 3 {
		return fmt.Errorf("polygon has %d vertices, need at least 3", len(p))
	}

	if math.Abs(p.Area()) < minPolygonArea {
		return errors.New("polygon has zero area")
	}

	if !p.isSimple() {
		return errors.New("polygon is self-intersecting")
	}

	return nil
}

// Area returns the signed area of the polygon in square pixels.  The sign
// follows the vertex winding order.
func (p Polygon) Area() float64 {

	if len(p) < 3 {
		return 0
	}

	path := make(clipper.Path, 0, len(p))

	for _, v := range p {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(math.Round(float64(v.X) * clipperScale)),
			Y: clipper.CInt(math.Round(float64(v.Y) * clipperScale)),
		})
	}

	return clipper.Area(path) / (clipperScale * clipperScale)
}

// isSimple reports whether no two non-adjacent edges of the polygon
// intersect
func (p Polygon) isSimple() bool {

	n := len(p)
	edges := make([]Segment, n)

	for i := 0; i < n; i++ {
		edges[i] = NewSegment(p[i], p[(i+1)%n])
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {

			// skip the edge itself and its two neighbours, which share
			// a vertex by construction
			if j == i || j == (i+1)%n || (j+1)%n == i {
				continue
			}

			if SegmentsIntersect(edges[i], edges[j]) {
				return false
			}
		}
	}

	return true
}

// PointInPolygon reports whether the point lies strictly inside the
// polygon using a ray casting test.  Points exactly on an edge are always
// classified as outside so boundary jitter cannot double-trigger zone
// transitions.
func PointInPolygon(p Polygon, pt Point) bool {

	n := len(p)

	if n < 3 {
		return false
	}

	// points on an edge are outside by convention
	for i := 0; i < n; i++ {
		edge := NewSegment(p[i], p[(i+1)%n])

		if Side(edge, pt) == 0 && onSegment(edge, pt) {
			return false
		}
	}

	// cast a ray towards positive x and count edge crossings
	inside := false
	j := n - 1

	for i := 0; i < n; i++ {

		vi := p[i]
		vj := p[j]

		if (vi.Y > pt.Y) != (vj.Y > pt.Y) {
			crossX := float64(vj.X-vi.X)*float64(pt.Y-vi.Y)/
				float64(vj.Y-vi.Y) + float64(vi.X)

			if float64(pt.X) < crossX {
				inside = !inside
			}
		}

		j = i
	}

	return inside
}
