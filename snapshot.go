package objectcount

import (
	"fmt"

	"github.com/cvkit/go-objectcount/geometry"
	"github.com/cvkit/go-objectcount/tracker"
)

// TrackView is a read-only view of one Active track, suitable for overlay
// drawing
type TrackView struct {
	// ID is the track's unique id
	ID int
	// Class is the object class id
	Class int
	// Prob is the confidence of the most recent matched detection
	Prob float32
	// Box is the current bounding box
	Box tracker.Rect
	// Center is the current box center
	Center geometry.Point
}

// LineSnapshot holds the counts of one line counter at snapshot time
type LineSnapshot struct {
	// ID is the stable counter id
	ID string
	// Name is the definition's display name
	Name string
	// Counts maps class id to crossing counts
	Counts map[int]LineCount
}

// ZoneSnapshot holds the counts of one zone counter at snapshot time
type ZoneSnapshot struct {
	// ID is the stable counter id
	ID string
	// Name is the definition's display name
	Name string
	// Counts maps class id to occupancy counts
	Counts map[int]ZoneCount
}

// Snapshot is an immutable view of the engine state after a processed
// frame.  All maps and slices are deep copies owned by the caller.
type Snapshot struct {
	// Frame is the frame index the snapshot was taken at
	Frame int
	// Lines holds one entry per registered line counter, in
	// registration order
	Lines []LineSnapshot
	// Zones holds one entry per registered zone counter, in
	// registration order
	Zones []ZoneSnapshot
	// Tracks is the Active track set at snapshot time
	Tracks []TrackView
}

// Line returns the line snapshot with the given counter id, or nil
func (s *Snapshot) Line(id string) *LineSnapshot {

	for i := range s.Lines {
		if s.Lines[i].ID == id {
			return &s.Lines[i]
		}
	}

	return nil
}

// Zone returns the zone snapshot with the given counter id, or nil
func (s *Snapshot) Zone(id string) *ZoneSnapshot {

	for i := range s.Zones {
		if s.Zones[i].ID == id {
			return &s.Zones[i]
		}
	}

	return nil
}

// displayName falls back to the counter id when no name was set
func displayName(name, id string) string {

	if name != "" {
		return name
	}

	return id
}

// Summary returns one formatted line per counter giving its totals across
// all classes, suitable for console output or an overlay panel
func (s *Snapshot) Summary() []string {

	var out []string

	for _, ls := range s.Lines {

		var totals LineCount

		for _, c := range ls.Counts {
			totals.In += c.In
			totals.Out += c.Out
		}

		out = append(out, fmt.Sprintf("%s: In=%d Out=%d Total=%d",
			displayName(ls.Name, ls.ID), totals.In, totals.Out, totals.Total()))
	}

	for _, zs := range s.Zones {

		var totals ZoneCount

		for _, c := range zs.Counts {
			totals.Entries += c.Entries
			totals.Exits += c.Exits
			totals.Inside += c.Inside
		}

		out = append(out, fmt.Sprintf("%s: Inside=%d Entered=%d Exited=%d",
			displayName(zs.Name, zs.ID), totals.Inside, totals.Entries, totals.Exits))
	}

	return out
}

// buildSnapshot assembles a deep-copied snapshot of the current counts
// and track set
func (e *CountingEngine) buildSnapshot(frameIndex int, tracks []*tracker.Track) *Snapshot {

	snap := &Snapshot{
		Frame: frameIndex,
		Lines: make([]LineSnapshot, 0, len(e.lines)),
		Zones: make([]ZoneSnapshot, 0, len(e.zones)),
	}

	for _, lc := range e.lines {
		snap.Lines = append(snap.Lines, LineSnapshot{
			ID:     lc.def.ID,
			Name:   lc.def.Name,
			Counts: lc.snapshot(),
		})
	}

	for _, zc := range e.zones {
		snap.Zones = append(snap.Zones, ZoneSnapshot{
			ID:     zc.def.ID,
			Name:   zc.def.Name,
			Counts: zc.snapshot(),
		})
	}

	for _, t := range tracks {
		snap.Tracks = append(snap.Tracks, TrackView{
			ID:     t.GetTrackID(),
			Class:  t.GetClass(),
			Prob:   t.GetProb(),
			Box:    t.GetBox(),
			Center: t.GetCenter(),
		})
	}

	return snap
}
