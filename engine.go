package objectcount

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cvkit/go-objectcount/tracker"
)

// CountingEngine orchestrates the tracker and all line/zone counters on a
// per-frame basis.  It owns all tracks, definitions and count records
// exclusively; callers only submit detections and read snapshots.
//
// The engine is single-threaded.  Process must be called with strictly
// increasing frame indexes and is not reentrant, and definitions may be
// added or removed between Process calls but never concurrently with one.
type CountingEngine struct {
	trk   *tracker.Tracker
	lines []*LineCounter
	zones []*ZoneCounter
	// lastFrame is the most recently processed frame index, -1 before
	// the first call
	lastFrame int
	log       zerolog.Logger
}

// NewCountingEngine creates an engine with the given tracker tuning
func NewCountingEngine(cfg tracker.Config) *CountingEngine {
	return &CountingEngine{
		trk:       tracker.NewTracker(cfg),
		lastFrame: -1,
		log:       zerolog.Nop(),
	}
}

// SetLogger installs a logger for per-event debug output.  The engine
// defaults to a disabled logger.
func (e *CountingEngine) SetLogger(log zerolog.Logger) {
	e.log = log
}

// findLine returns the index of the line counter with the given id, or -1
func (e *CountingEngine) findLine(id string) int {

	for i, lc := range e.lines {
		if lc.def.ID == id {
			return i
		}
	}

	return -1
}

// findZone returns the index of the zone counter with the given id, or -1
func (e *CountingEngine) findZone(id string) int {

	for i, zc := range e.zones {
		if zc.def.ID == id {
			return i
		}
	}

	return -1
}

// hasCounter reports whether any counter is registered under the id
func (e *CountingEngine) hasCounter(id string) bool {
	return e.findLine(id) >= 0 || e.findZone(id) >= 0
}

// AddLine registers a counting line.  The definition is validated first
// and rejected whole on failure, and its counter id must be unused.
func (e *CountingEngine) AddLine(def LineDefinition) error {

	if e.hasCounter(def.ID) {
		return fmt.Errorf("%w: %q", ErrDuplicateCounterID, def.ID)
	}

	lc, err := NewLineCounter(def)

	if err != nil {
		return err
	}

	e.lines = append(e.lines, lc)
	return nil
}

// AddZone registers a counting zone.  The definition is validated first
// and rejected whole on failure, and its counter id must be unused.
func (e *CountingEngine) AddZone(def ZoneDefinition) error {

	if e.hasCounter(def.ID) {
		return fmt.Errorf("%w: %q", ErrDuplicateCounterID, def.ID)
	}

	zc, err := NewZoneCounter(def)

	if err != nil {
		return err
	}

	e.zones = append(e.zones, zc)
	return nil
}

// RemoveLine unregisters a counting line and discards its counts
func (e *CountingEngine) RemoveLine(id string) error {

	i := e.findLine(id)

	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownCounterID, id)
	}

	e.lines = append(e.lines[:i], e.lines[i+1:]...)
	return nil
}

// RemoveZone unregisters a counting zone and discards its counts
func (e *CountingEngine) RemoveZone(id string) error {

	i := e.findZone(id)

	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownCounterID, id)
	}

	e.zones = append(e.zones[:i], e.zones[i+1:]...)
	return nil
}

// SetClassFilter replaces the enabled class set of the counter with the
// given id.  A nil set enables all classes.
func (e *CountingEngine) SetClassFilter(id string, classes ClassSet) error {

	if i := e.findLine(id); i >= 0 {
		e.lines[i].setClasses(classes)
		return nil
	}

	if i := e.findZone(id); i >= 0 {
		e.zones[i].setClasses(classes)
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownCounterID, id)
}

// LineDefinitions returns the registered line definitions in
// registration order
func (e *CountingEngine) LineDefinitions() []LineDefinition {

	out := make([]LineDefinition, 0, len(e.lines))

	for _, lc := range e.lines {
		out = append(out, lc.def)
	}

	return out
}

// ZoneDefinitions returns the registered zone definitions in
// registration order
func (e *CountingEngine) ZoneDefinitions() []ZoneDefinition {

	out := make([]ZoneDefinition, 0, len(e.zones))

	for _, zc := range e.zones {
		out = append(out, zc.def)
	}

	return out
}

// Process runs one frame through the engine.  It updates the tracker with
// the frame's detections, feeds every resulting track into every counter,
// reconciles zone occupancy for tracks purged this frame and returns an
// immutable snapshot of all counts and the Active track set.
func (e *CountingEngine) Process(frameIndex int, dets []tracker.Detection) (*Snapshot, error) {

	if frameIndex <= e.lastFrame {
		return nil, fmt.Errorf("%w: frame %d after frame %d",
			ErrOutOfOrderFrame, frameIndex, e.lastFrame)
	}

	e.lastFrame = frameIndex

	tracks := e.trk.Update(frameIndex, dets)

	for _, t := range tracks {

		for _, lc := range e.lines {
			if dir, fired := lc.Observe(t); fired {
				e.log.Debug().
					Str("line", lc.def.ID).
					Int("track", t.GetTrackID()).
					Int("class", t.GetClass()).
					Str("direction", dir.String()).
					Msg("line crossing")
			}
		}

		for _, zc := range e.zones {
			if ev, fired := zc.Observe(t); fired {
				e.log.Debug().
					Str("zone", zc.def.ID).
					Int("track", t.GetTrackID()).
					Int("class", t.GetClass()).
					Str("event", ev.String()).
					Msg("zone transition")
			}
		}
	}

	// tracks purged this frame release their transient counter state,
	// a track that vanished while inside a zone exits implicitly
	for _, t := range e.trk.Removed() {

		for _, lc := range e.lines {
			lc.drop(t.GetTrackID())
		}

		for _, zc := range e.zones {
			if zc.Drop(t) {
				e.log.Debug().
					Str("zone", zc.def.ID).
					Int("track", t.GetTrackID()).
					Int("class", t.GetClass()).
					Msg("implicit zone exit")
			}
		}
	}

	return e.buildSnapshot(frameIndex, tracks), nil
}

// Reset clears all counts and tracks while leaving line and zone
// definitions and their class filters untouched.  Used when the video
// source is rewound or replaced.
func (e *CountingEngine) Reset() {

	e.trk.Reset()
	e.lastFrame = -1

	for _, lc := range e.lines {
		lc.reset()
	}

	for _, zc := range e.zones {
		zc.reset()
	}
}
