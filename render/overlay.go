package render

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	objectcount "github.com/cvkit/go-objectcount"
	"github.com/cvkit/go-objectcount/geometry"
)

// pt converts a geometry point to an image point for gocv drawing
func pt(p geometry.Point) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// TrackBoxes renders the bounding boxes around the tracked objects with a
// class name, track id and confidence label
func TrackBoxes(img *gocv.Mat, tracks []objectcount.TrackView,
	classNames []string, font Font, lineThickness int) {

	type drawn struct {
		rect    image.Rectangle
		text    string
		textPos image.Point
		clrIdx  int
	}

	labels := make([]drawn, 0, len(tracks))

	// draw track boxes
	for _, tv := range tracks {

		useClr := trackColor(tv.ID)

		rect := image.Rect(int(tv.Box.X1), int(tv.Box.Y1),
			int(tv.Box.X2), int(tv.Box.Y2))
		gocv.Rectangle(img, rect, useClr, lineThickness)

		// create text for label
		text := fmt.Sprintf("%s #%d %.2f",
			objectcount.ClassName(classNames, tv.Class), tv.ID, tv.Prob)
		textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

		labelPosition := image.Pt(rect.Min.X+font.LeftPad,
			rect.Min.Y-font.BottomPad)

		bRect := image.Rect(rect.Min.X,
			rect.Min.Y-textSize.Y-font.TopPad-font.BottomPad,
			rect.Min.X+textSize.X+font.LeftPad+font.RightPad, rect.Min.Y)

		labels = append(labels, drawn{
			rect:    bRect,
			text:    text,
			textPos: labelPosition,
			clrIdx:  tv.ID,
		})
	}

	// draw all precalculated labels last so they are the top most layer
	// on the image
	for _, l := range labels {
		gocv.Rectangle(img, l.rect, trackColor(l.clrIdx), -1)
		gocv.PutTextWithParams(img, l.text, l.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}

// CountingLines draws the counting lines with an arrowhead marking the
// endpoint order and a label showing the line's total in/out counts from
// the snapshot
func CountingLines(img *gocv.Mat, defs []objectcount.LineDefinition,
	snap *objectcount.Snapshot, font Font, lineThickness int) {

	for _, def := range defs {

		gocv.ArrowedLine(img, pt(def.P1), pt(def.P2), Orange, lineThickness)

		var totals objectcount.LineCount

		if snap != nil {
			if ls := snap.Line(def.ID); ls != nil {
				for _, c := range ls.Counts {
					totals.In += c.In
					totals.Out += c.Out
				}
			}
		}

		text := fmt.Sprintf("%s In=%d Out=%d", labelFor(def.Name, def.ID),
			totals.In, totals.Out)

		mid := image.Pt((pt(def.P1).X+pt(def.P2).X)/2,
			(pt(def.P1).Y+pt(def.P2).Y)/2)

		gocv.PutTextWithParams(img, text,
			image.Pt(mid.X+font.LeftPad, mid.Y-font.BottomPad),
			font.Face, font.Scale, Orange, font.Thickness,
			font.LineType, false)
	}
}

// Zones draws the counting zone outlines with a label showing each zone's
// occupancy from the snapshot
func Zones(img *gocv.Mat, defs []objectcount.ZoneDefinition,
	snap *objectcount.Snapshot, font Font, lineThickness int) {

	for _, def := range defs {

		points := make([]image.Point, 0, len(def.Vertices))

		for _, v := range def.Vertices {
			points = append(points, pt(v))
		}

		pv := gocv.NewPointsVectorFromPoints([][]image.Point{points})
		gocv.Polylines(img, pv, true, Magenta, lineThickness)
		pv.Close()

		var totals objectcount.ZoneCount

		if snap != nil {
			if zs := snap.Zone(def.ID); zs != nil {
				for _, c := range zs.Counts {
					totals.Entries += c.Entries
					totals.Exits += c.Exits
					totals.Inside += c.Inside
				}
			}
		}

		text := fmt.Sprintf("%s Inside=%d", labelFor(def.Name, def.ID),
			totals.Inside)

		if len(points) > 0 {
			gocv.PutTextWithParams(img, text,
				image.Pt(points[0].X+font.LeftPad, points[0].Y-font.BottomPad),
				font.Face, font.Scale, Magenta, font.Thickness,
				font.LineType, false)
		}
	}
}

// labelFor falls back to the counter id when no name was set
func labelFor(name, id string) string {

	if name != "" {
		return name
	}

	return id
}
