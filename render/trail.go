package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	objectcount "github.com/cvkit/go-objectcount"
)

// Trail keeps a bounded history of track center points used for drawing a
// trail behind each tracked object
type Trail struct {
	// size is the maximum number of most recent points to keep per track
	size int
	// history of center points keyed by track id
	history map[int][]image.Point
}

// NewTrail returns a new trail history instance.  Size specifies the
// maximum length of trail to maintain per track.
func NewTrail(size int) *Trail {
	return &Trail{
		size:    size,
		history: make(map[int][]image.Point),
	}
}

// Reset clears all history
func (t *Trail) Reset() {
	t.history = make(map[int][]image.Point)
}

// Add records the center point of every track in the snapshot
func (t *Trail) Add(snap *objectcount.Snapshot) {

	for _, tv := range snap.Tracks {

		points := append(t.history[tv.ID], pt(tv.Center))

		// drop oldest point once history is exceeded
		if len(points) > t.size {
			points = points[1:]
		}

		t.history[tv.ID] = points
	}
}

// TrailStyle defines the parameters used for rendering the trail style
type TrailStyle struct {
	// LineSame defines if the color of the trail line should be the
	// same color as that of the bounding box.  If set to false then use
	// the color specified at LineColor
	LineSame      bool
	LineColor     color.RGBA
	LineThickness int
	// CircleSame defines if the color of the midpoint circle should be
	// the same color as that of the bounding box.  If set to false then
	// use the color specified at CircleColor
	CircleSame   bool
	CircleColor  color.RGBA
	CircleRadius int
}

// DefaultTrailStyle returns default trail style settings
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{
		LineSame:      false,
		LineColor:     Yellow,
		LineThickness: 1,
		CircleSame:    true,
		CircleColor:   Pink,
		CircleRadius:  3,
	}
}

// Trails draws the tracking history trail lines on the source image
func Trails(img *gocv.Mat, snap *objectcount.Snapshot, trail *Trail,
	style TrailStyle) {

	for _, tv := range snap.Tracks {

		objClr := trackColor(tv.ID)

		lineClr := objClr
		circleClr := objClr

		if !style.LineSame {
			lineClr = style.LineColor
		}

		if !style.CircleSame {
			circleClr = style.CircleColor
		}

		points := trail.history[tv.ID]

		if len(points) < 2 {
			continue
		}

		for i := 1; i < len(points); i++ {
			gocv.Line(img, points[i-1], points[i], lineClr,
				style.LineThickness)
		}

		// center point circle on the current box
		gocv.Circle(img, points[len(points)-1], style.CircleRadius,
			circleClr, -1)
	}
}
