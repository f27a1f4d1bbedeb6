package geometry

import (
	"testing"
)

func TestSide(t *testing.T) {

	// horizontal segment left to right
	horiz := NewSegment(Pt(0, 50), Pt(100, 50))

	// vertical segment top to bottom
	vert := NewSegment(Pt(50, 0), Pt(50, 100))

	tests := []struct {
		name string
		seg  Segment
		p    Point
		want int
	}{
		{"below horizontal line", horiz, Pt(50, 10), -1},
		{"above horizontal line", horiz, Pt(50, 90), 1},
		{"on horizontal line", horiz, Pt(50, 50), 0},
		{"on line beyond segment extent", horiz, Pt(500, 50), 0},
		{"right of vertical line", vert, Pt(90, 50), -1},
		{"left of vertical line", vert, Pt(10, 50), 1},
		{"on vertical line", vert, Pt(50, 25), 0},
	}

	for _, tt := range tests {
		if got := Side(tt.seg, tt.p); got != tt.want {
			t.Errorf("%s: Side() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestSideReversedSegment(t *testing.T) {

	// reversing endpoint order flips the sign, endpoint order encodes
	// direction and must never be canonicalized
	fwd := NewSegment(Pt(0, 50), Pt(100, 50))
	rev := NewSegment(Pt(100, 50), Pt(0, 50))

	p := Pt(50, 90)

	if Side(fwd, p) != -Side(rev, p) {
		t.Errorf("expected reversed segment to flip side sign, got %d and %d",
			Side(fwd, p), Side(rev, p))
	}
}

func TestSegmentsIntersect(t *testing.T) {

	tests := []struct {
		name string
		a    Segment
		b    Segment
		want bool
	}{
		{
			"crossing diagonals",
			NewSegment(Pt(0, 0), Pt(100, 100)),
			NewSegment(Pt(0, 100), Pt(100, 0)),
			true,
		},
		{
			"parallel lines",
			NewSegment(Pt(0, 0), Pt(100, 0)),
			NewSegment(Pt(0, 10), Pt(100, 10)),
			false,
		},
		{
			"far apart",
			NewSegment(Pt(0, 0), Pt(10, 0)),
			NewSegment(Pt(50, 50), Pt(60, 60)),
			false,
		},
		{
			"touching at endpoint",
			NewSegment(Pt(0, 0), Pt(50, 50)),
			NewSegment(Pt(50, 50), Pt(100, 0)),
			true,
		},
		{
			"collinear overlapping",
			NewSegment(Pt(0, 0), Pt(50, 0)),
			NewSegment(Pt(25, 0), Pt(100, 0)),
			true,
		},
		{
			"collinear disjoint",
			NewSegment(Pt(0, 0), Pt(20, 0)),
			NewSegment(Pt(50, 0), Pt(100, 0)),
			false,
		},
	}

	for _, tt := range tests {

		if got := SegmentsIntersect(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: SegmentsIntersect() = %v, want %v", tt.name, got, tt.want)
		}

		// intersection is symmetric
		if got := SegmentsIntersect(tt.b, tt.a); got != tt.want {
			t.Errorf("%s (swapped): SegmentsIntersect() = %v, want %v",
				tt.name, got, tt.want)
		}
	}
}

func TestSegmentValidate(t *testing.T) {

	if err := NewSegment(Pt(0, 0), Pt(0, 0)).Validate(); err == nil {
		t.Error("expected error for zero-length segment")
	}

	if err := NewSegment(Pt(0, 0), Pt(1, 1)).Validate(); err != nil {
		t.Errorf("unexpected error for valid segment: %v", err)
	}
}
