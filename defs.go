package objectcount

import (
	"fmt"

	"github.com/cvkit/go-objectcount/geometry"
)

// LineDefinition defines one counting line.  The endpoint order is
// semantically significant, it fixes which side of the line is "in" and
// which is "out", and is never canonicalized.
type LineDefinition struct {
	// ID is the stable counter id
	ID string
	// Name is an optional display name
	Name string
	// P1 and P2 are the line endpoints in frame pixel coordinates
	P1 geometry.Point
	P2 geometry.Point
	// Classes is the set of enabled class ids, nil enables all classes
	Classes ClassSet
}

// Segment returns the directed test segment for the line
func (d LineDefinition) Segment() geometry.Segment {
	return geometry.NewSegment(d.P1, d.P2)
}

// Validate checks the definition is usable as a counting line
func (d LineDefinition) Validate() error {

	if d.ID == "" {
		return fmt.Errorf("%w: line has empty counter id", ErrInvalidGeometry)
	}

	if err := d.Segment().Validate(); err != nil {
		return fmt.Errorf("%w: line %q: %v", ErrInvalidGeometry, d.ID, err)
	}

	return nil
}

// ZoneDefinition defines one counting zone.  Vertex order is preserved
// verbatim, never canonicalized.
type ZoneDefinition struct {
	// ID is the stable counter id
	ID string
	// Name is an optional display name
	Name string
	// Vertices is the ordered polygon outline, at least 3 vertices
	Vertices []geometry.Point
	// Classes is the set of enabled class ids, nil enables all classes
	Classes ClassSet
}

// Polygon returns the zone outline as a geometry.Polygon
func (d ZoneDefinition) Polygon() geometry.Polygon {
	return geometry.Polygon(d.Vertices)
}

// Validate checks the definition is usable as a counting zone.  The
// polygon must be simple and enclose a non-zero area.
func (d ZoneDefinition) Validate() error {

	if d.ID == "" {
		return fmt.Errorf("%w: zone has empty counter id", ErrInvalidGeometry)
	}

	if err := d.Polygon().Validate(); err != nil {
		return fmt.Errorf("%w: zone %q: %v", ErrInvalidGeometry, d.ID, err)
	}

	return nil
}
