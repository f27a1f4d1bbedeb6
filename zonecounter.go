package objectcount

import (
	"github.com/cvkit/go-objectcount/geometry"
	"github.com/cvkit/go-objectcount/tracker"
)

// ZoneEvent is the kind of occupancy transition a zone observed
type ZoneEvent int

const (
	// ZoneEntered fires on an outside to inside transition
	ZoneEntered ZoneEvent = 1
	// ZoneExited fires on an inside to outside transition
	ZoneExited ZoneEvent = 2
)

// String returns the display name of the event
func (e ZoneEvent) String() string {
	if e == ZoneEntered {
		return "entered"
	}
	return "exited"
}

// ZoneCounter owns one counting zone and its per-class occupancy counts.
// Transient per-track containment state is held in the counter's own map
// keyed by track id.
type ZoneCounter struct {
	def  ZoneDefinition
	poly geometry.Polygon
	// counts maps class id to occupancy counts
	counts map[int]*ZoneCount
	// inside maps track id to last known containment
	inside map[int]bool
}

// NewZoneCounter creates a counter for the given zone definition.  The
// definition is validated and rejected if the polygon is degenerate or
// self-intersecting.
func NewZoneCounter(def ZoneDefinition) (*ZoneCounter, error) {

	if err := def.Validate(); err != nil {
		return nil, err
	}

	return &ZoneCounter{
		def:    def,
		poly:   def.Polygon(),
		counts: make(map[int]*ZoneCount),
		inside: make(map[int]bool),
	}, nil
}

// Definition returns the counter's zone definition
func (zc *ZoneCounter) Definition() ZoneDefinition {
	return zc.def
}

// setClasses replaces the enabled class set
func (zc *ZoneCounter) setClasses(classes ClassSet) {
	zc.def.Classes = classes
}

// classCount returns the count record for a class, creating it on first
// use
func (zc *ZoneCounter) classCount(class int) *ZoneCount {

	c, ok := zc.counts[class]

	if !ok {
		c = &ZoneCount{}
		zc.counts[class] = c
	}

	return c
}

// Observe recomputes containment for a track's current center and counts
// the transition if one occurred.  It returns the event and true when a
// transition fired.
func (zc *ZoneCounter) Observe(t *tracker.Track) (ZoneEvent, bool) {

	if !zc.def.Classes.Enabled(t.GetClass()) {
		return 0, false
	}

	now := geometry.PointInPolygon(zc.poly, t.GetCenter())
	was := zc.inside[t.GetTrackID()]

	if now == was {
		return 0, false
	}

	zc.inside[t.GetTrackID()] = now
	c := zc.classCount(t.GetClass())

	if now {
		c.Entries++
		c.Inside++
		return ZoneEntered, true
	}

	c.Exits++

	// clamp at zero to tolerate state lost across resets or missed
	// frames
	if c.Inside > 0 {
		c.Inside--
	}

	return ZoneExited, true
}

// Drop finalizes a purged track.  A track removed while still inside the
// zone is treated as an implicit exit so Inside stays reconciled with the
// live track population.  It returns true if an implicit exit fired.
func (zc *ZoneCounter) Drop(t *tracker.Track) bool {

	was := zc.inside[t.GetTrackID()]
	delete(zc.inside, t.GetTrackID())

	if !was {
		return false
	}

	c := zc.classCount(t.GetClass())
	c.Exits++

	if c.Inside > 0 {
		c.Inside--
	}

	return true
}

// reset zeroes all counts and transient state, keeping the definition
func (zc *ZoneCounter) reset() {
	zc.counts = make(map[int]*ZoneCount)
	zc.inside = make(map[int]bool)
}

// snapshot returns a deep copy of the per-class counts
func (zc *ZoneCounter) snapshot() map[int]ZoneCount {

	out := make(map[int]ZoneCount, len(zc.counts))

	for class, c := range zc.counts {
		out[class] = *c
	}

	return out
}
