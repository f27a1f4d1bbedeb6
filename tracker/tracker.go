package tracker

import (
	"fmt"
	"sort"
)

// Config holds the tuning parameters for the Tracker
type Config struct {
	// IoUThreshold is the minimum IoU between a track's box and a
	// detection for the pair to be considered a match
	IoUThreshold float32
	// MaxMissed is the number of consecutive unmatched frames after
	// which a track transitions to Lost
	MaxMissed int
	// PurgeAfter is the number of additional frames a Lost track is
	// retained before being deleted, giving counters a chance to
	// finalize against its terminal position
	PurgeAfter int
	// UseKalman enables constant-velocity coasting of unmatched track
	// boxes so fast movers still overlap their next detection
	UseKalman bool
}

// DefaultConfig returns the default tracker tuning
func DefaultConfig() Config {
	return Config{
		IoUThreshold: 0.3,
		MaxMissed:    30,
		PurgeAfter:   30,
		UseKalman:    false,
	}
}

// Tracker matches per-frame detections to existing tracks using greedy
// highest-IoU-first assignment.  The greedy matcher is a deliberate
// simplification of optimal bipartite assignment, object counts per frame
// in this domain are small enough that O(n*m) pair scoring is fine.
type Tracker struct {
	cfg Config
	// tracks holds all live tracks, Active and Lost
	tracks []*Track
	// removed holds the tracks purged during the most recent Update call
	removed []*Track
	// trackIDCount assigns unique monotonic track ids
	trackIDCount int
}

// NewTracker initializes and returns a new Tracker
func NewTracker(cfg Config) *Tracker {
	return &Tracker{cfg: cfg}
}

// Reset clears all tracked data.  Track ids continue from where they left
// off so an id is never reassigned, even across a reset.
func (t *Tracker) Reset() {
	t.tracks = nil
	t.removed = nil
}

// Removed returns the tracks that were purged during the most recent call
// to Update
func (t *Tracker) Removed() []*Track {
	return t.removed
}

// scoredPair is a candidate (track, detection) association
type scoredPair struct {
	iou      float32
	trackIdx int
	detIdx   int
}

// Update matches the frame's detections against existing tracks, spawns
// new tracks for unmatched detections and ages out unmatched tracks.  It
// returns the set of Active tracks after the update.
func (t *Tracker) Update(frameIndex int, dets []Detection) []*Track {

	t.removed = nil

	// score every same-class (track, detection) pair meeting the IoU
	// threshold.  Only Active tracks participate in matching, Lost
	// tracks are retained solely for counter finalization.
	var pairs []scoredPair

	for ti, track := range t.tracks {

		if track.state != Active {
			continue
		}

		for di, det := range dets {

			if det.Class != track.class {
				continue
			}

			iou := track.box.IoU(det.Box)

			if iou >= t.cfg.IoUThreshold {
				pairs = append(pairs, scoredPair{iou: iou, trackIdx: ti, detIdx: di})
			}
		}
	}

	// greedy assignment, highest IoU first, each track and detection
	// used at most once.  Ties broken by lower track id to keep the
	// result deterministic.
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].iou != pairs[j].iou {
			return pairs[i].iou > pairs[j].iou
		}
		return pairs[i].trackIdx < pairs[j].trackIdx
	})

	usedTracks := make(map[int]bool)
	usedDets := make(map[int]bool)

	for _, pair := range pairs {

		if usedTracks[pair.trackIdx] || usedDets[pair.detIdx] {
			continue
		}

		usedTracks[pair.trackIdx] = true
		usedDets[pair.detIdx] = true

		t.tracks[pair.trackIdx].observe(frameIndex, dets[pair.detIdx])
	}

	// age unmatched tracks and purge Lost tracks past their grace period
	var keep []*Track

	for ti, track := range t.tracks {

		if !usedTracks[ti] {
			track.coast(frameIndex, t.cfg.MaxMissed)
		}

		if track.state == Lost && frameIndex-track.lostAt > t.cfg.PurgeAfter {
			t.removed = append(t.removed, track)
			continue
		}

		keep = append(keep, track)
	}

	t.tracks = keep

	// spawn new tracks for unmatched detections
	for di, det := range dets {

		if usedDets[di] {
			continue
		}

		t.trackIDCount++
		t.tracks = append(t.tracks, newTrack(t.trackIDCount, frameIndex, det, t.cfg.UseKalman))
	}

	// output set is Active tracks only
	var out []*Track

	for _, track := range t.tracks {
		if track.state == Active {
			out = append(out, track)
		}
	}

	return out
}

// String implements the Stringer interface for debugging
func (t *Tracker) String() string {
	return fmt.Sprintf("tracker{live=%d nextID=%d}", len(t.tracks), t.trackIDCount+1)
}
