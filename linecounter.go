package objectcount

import (
	"github.com/cvkit/go-objectcount/geometry"
	"github.com/cvkit/go-objectcount/tracker"
)

// Direction of a line crossing
type Direction int

const (
	// DirectionIn is a crossing into the positive half-plane of the
	// line's directed segment
	DirectionIn Direction = 1
	// DirectionOut is a crossing into the negative half-plane
	DirectionOut Direction = -1
)

// String returns the display name of the direction
func (d Direction) String() string {
	if d == DirectionIn {
		return "in"
	}
	return "out"
}

// LineCounter owns one counting line and its per-class crossing counts.
// Transient per-track side state is held in the counter's own map keyed
// by track id, tracks are unaware of counters.
type LineCounter struct {
	def LineDefinition
	seg geometry.Segment
	// counts maps class id to crossing counts
	counts map[int]*LineCount
	// lastSide maps track id to the last non-zero side observed for
	// that track.  A crossing only fires when the stored side and the
	// new side are strictly opposite signs, and the stored side is then
	// replaced, so one continuous traversal fires at most once while a
	// genuine re-crossing fires again.
	lastSide map[int]int
}

// NewLineCounter creates a counter for the given line definition.  The
// definition is validated and rejected if degenerate.
func NewLineCounter(def LineDefinition) (*LineCounter, error) {

	if err := def.Validate(); err != nil {
		return nil, err
	}

	return &LineCounter{
		def:      def,
		seg:      def.Segment(),
		counts:   make(map[int]*LineCount),
		lastSide: make(map[int]int),
	}, nil
}

// Definition returns the counter's line definition
func (lc *LineCounter) Definition() LineDefinition {
	return lc.def
}

// setClasses replaces the enabled class set
func (lc *LineCounter) setClasses(classes ClassSet) {
	lc.def.Classes = classes
}

// Observe feeds a track's most recent position sample into the counter.
// It returns the crossing direction and true when a crossing event fired.
func (lc *LineCounter) Observe(t *tracker.Track) (Direction, bool) {

	if !lc.def.Classes.Enabled(t.GetClass()) {
		return 0, false
	}

	side := geometry.Side(lc.seg, t.GetCenter())

	prev, seen := lc.lastSide[t.GetTrackID()]

	// a sample exactly on the line neither fires nor disturbs the
	// stored side, so touching the line is never double-counted
	if side == 0 {
		return 0, false
	}

	lc.lastSide[t.GetTrackID()] = side

	if !seen || prev == side {
		return 0, false
	}

	// sign flipped, the track crossed between two consecutive samples
	dir := Direction(side)

	c, ok := lc.counts[t.GetClass()]

	if !ok {
		c = &LineCount{}
		lc.counts[t.GetClass()] = c
	}

	if dir == DirectionIn {
		c.In++
	} else {
		c.Out++
	}

	return dir, true
}

// drop discards the transient side state for a purged track
func (lc *LineCounter) drop(trackID int) {
	delete(lc.lastSide, trackID)
}

// reset zeroes all counts and transient state, keeping the definition
func (lc *LineCounter) reset() {
	lc.counts = make(map[int]*LineCount)
	lc.lastSide = make(map[int]int)
}

// snapshot returns a deep copy of the per-class counts
func (lc *LineCounter) snapshot() map[int]LineCount {

	out := make(map[int]LineCount, len(lc.counts))

	for class, c := range lc.counts {
		out[class] = *c
	}

	return out
}
