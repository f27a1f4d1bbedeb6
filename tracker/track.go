package tracker

import (
	"github.com/cvkit/go-objectcount/geometry"
)

// TrackState represents the state of a tracked object
type TrackState int

const (
	// Object is actively tracked
	Active TrackState = 0
	// Object has been lost, the track persists for a grace period so
	// counters can finalize before it is purged
	Lost TrackState = 1
)

// Position is one observed sample of a track, recording where the object
// was at a given frame
type Position struct {
	// Frame is the frame index the sample was observed at
	Frame int
	// Center is the center point of the bounding box
	Center geometry.Point
	// Box is the observed bounding box
	Box Rect
}

// Track represents a single tracked object and its trajectory history.
// A track id is never reused for a different physical object.
type Track struct {
	// id is the unique monotonic track id
	id int
	// class is the object class, fixed at creation.  Detections of a
	// different class never match this track.
	class int
	// prob is the confidence of the most recent matched detection
	prob float32
	// history is the append-only sequence of observed samples, strictly
	// increasing in frame index
	history []Position
	// box is the current bounding box, the last observed box or the
	// predicted box when the track is coasting
	box Rect
	// missed counts consecutive frames without a matching detection
	missed int
	// state is the current track state
	state TrackState
	// lostAt is the frame index the track transitioned to Lost
	lostAt int
	// kf is the optional motion filter used to coast the box forward
	kf *KalmanFilter
}

// newTrack creates a new Active track from its first detection
func newTrack(id, frameIndex int, det Detection, useKalman bool) *Track {

	t := &Track{
		id:    id,
		class: det.Class,
		prob:  det.Prob,
		box:   det.Box,
		state: Active,
	}

	if useKalman {
		c := det.Box.Center()
		t.kf = NewKalmanFilter(c.X, c.Y)
	}

	t.history = append(t.history, Position{
		Frame:  frameIndex,
		Center: det.Box.Center(),
		Box:    det.Box,
	})

	return t
}

// GetTrackID returns the unique ID for the track
func (t *Track) GetTrackID() int {
	return t.id
}

// GetClass returns the object class id the track was created with
func (t *Track) GetClass() int {
	return t.class
}

// GetProb returns the confidence of the most recent matched detection
func (t *Track) GetProb() float32 {
	return t.prob
}

// GetState returns the current state of the track
func (t *Track) GetState() TrackState {
	return t.state
}

// GetBox returns the current bounding box of the track
func (t *Track) GetBox() Rect {
	return t.box
}

// GetCenter returns the center point of the most recent observed sample
func (t *Track) GetCenter() geometry.Point {
	return t.history[len(t.history)-1].Center
}

// GetMissed returns the number of consecutive frames the track has gone
// without a matching detection
func (t *Track) GetMissed() int {
	return t.missed
}

// GetHistory returns the track's observed position history.  The returned
// slice is the track's own backing store and must not be modified.
func (t *Track) GetHistory() []Position {
	return t.history
}

// LastTwo returns the two most recent observed samples.  When only one
// sample exists it is returned as both previous and current and ok is
// false.
func (t *Track) LastTwo() (prev, cur Position, ok bool) {

	n := len(t.history)
	cur = t.history[n-1]

	if n < 2 {
		return cur, cur, false
	}

	return t.history[n-2], cur, true
}

// observe appends a new matched detection sample to the track history and
// resets the missed counter
func (t *Track) observe(frameIndex int, det Detection) {

	t.history = append(t.history, Position{
		Frame:  frameIndex,
		Center: det.Box.Center(),
		Box:    det.Box,
	})

	t.box = det.Box
	t.prob = det.Prob
	t.missed = 0
	t.state = Active

	if t.kf != nil {
		c := det.Box.Center()
		t.kf.Predict()
		t.kf.Update(c.X, c.Y)
	}
}

// coast advances the track one frame without a matching detection.  With
// the motion filter enabled the current box is moved to the predicted
// center so a fast mover can still be matched on IoU next frame; the
// observed history is never extended by prediction.
func (t *Track) coast(frameIndex, maxMissed int) {

	t.missed++

	if t.kf != nil {
		cx, cy := t.kf.Predict()
		w := t.box.Width()
		h := t.box.Height()
		t.box = NewRect(cx-w/2, cy-h/2, cx+w/2, cy+h/2)
	}

	if t.state == Active && t.missed > maxMissed {
		t.state = Lost
		t.lostAt = frameIndex
	}
}
