package objectcount

import (
	"errors"
	"testing"

	"github.com/cvkit/go-objectcount/geometry"
	"github.com/cvkit/go-objectcount/tracker"
)

func TestEngineCountsThroughLineAndZone(t *testing.T) {

	e := NewCountingEngine(tracker.DefaultConfig())

	if err := e.AddLine(gateLine(nil)); err != nil {
		t.Fatal(err)
	}

	if err := e.AddZone(lotZone(nil)); err != nil {
		t.Fatal(err)
	}

	// the object starts inside the zone above the line, walks down
	// through the line and out of the zone's bottom edge
	path := []float32{10, 40, 70, 100, 130}

	var snap *Snapshot

	for frame, cy := range path {

		var err error
		snap, err = e.Process(frame, []tracker.Detection{detAt(0, 50, cy)})

		if err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
	}

	ls := snap.Line("gate")

	if ls == nil {
		t.Fatal("line snapshot missing")
	}

	if ls.Counts[0].In != 1 || ls.Counts[0].Out != 0 {
		t.Errorf("line: expected In=1 Out=0, got %+v", ls.Counts[0])
	}

	zs := snap.Zone("lot")

	if zs == nil {
		t.Fatal("zone snapshot missing")
	}

	if zs.Counts[0].Entries != 1 || zs.Counts[0].Exits != 1 || zs.Counts[0].Inside != 0 {
		t.Errorf("zone: expected Entries=1 Exits=1 Inside=0, got %+v", zs.Counts[0])
	}

	if len(snap.Tracks) != 1 || snap.Tracks[0].ID != 1 {
		t.Errorf("expected 1 active track with id 1, got %+v", snap.Tracks)
	}

	if snap.Frame != len(path)-1 {
		t.Errorf("snapshot frame = %d, want %d", snap.Frame, len(path)-1)
	}

	if got := len(snap.Summary()); got != 2 {
		t.Errorf("expected 2 summary lines, got %d", got)
	}
}

func TestEngineSnapshotIsolation(t *testing.T) {

	e := NewCountingEngine(tracker.DefaultConfig())

	if err := e.AddLine(gateLine(nil)); err != nil {
		t.Fatal(err)
	}

	for frame, cy := range []float32{40, 70} {
		if _, err := e.Process(frame, []tracker.Detection{detAt(0, 50, cy)}); err != nil {
			t.Fatal(err)
		}
	}

	snap, err := e.Process(2, []tracker.Detection{detAt(0, 50, 90)})

	if err != nil {
		t.Fatal(err)
	}

	// writing through a snapshot must not touch engine state
	snap.Line("gate").Counts[0] = LineCount{In: 99, Out: 99}

	next, err := e.Process(3, []tracker.Detection{detAt(0, 50, 90)})

	if err != nil {
		t.Fatal(err)
	}

	if got := next.Line("gate").Counts[0]; got.In != 1 || got.Out != 0 {
		t.Errorf("engine counts corrupted through snapshot: %+v", got)
	}
}

func TestEngineOutOfOrderFrame(t *testing.T) {

	e := NewCountingEngine(tracker.DefaultConfig())

	if _, err := e.Process(5, nil); err != nil {
		t.Fatal(err)
	}

	if _, err := e.Process(5, nil); !errors.Is(err, ErrOutOfOrderFrame) {
		t.Errorf("repeated frame: expected ErrOutOfOrderFrame, got %v", err)
	}

	if _, err := e.Process(3, nil); !errors.Is(err, ErrOutOfOrderFrame) {
		t.Errorf("earlier frame: expected ErrOutOfOrderFrame, got %v", err)
	}

	// gaps are allowed, only regressions are rejected
	if _, err := e.Process(10, nil); err != nil {
		t.Errorf("frame gap rejected: %v", err)
	}
}

func TestEngineDuplicateCounterID(t *testing.T) {

	e := NewCountingEngine(tracker.DefaultConfig())

	if err := e.AddLine(gateLine(nil)); err != nil {
		t.Fatal(err)
	}

	if err := e.AddLine(gateLine(nil)); !errors.Is(err, ErrDuplicateCounterID) {
		t.Errorf("expected ErrDuplicateCounterID, got %v", err)
	}

	// ids are unique across counter kinds, not per kind
	zone := lotZone(nil)
	zone.ID = "gate"

	if err := e.AddZone(zone); !errors.Is(err, ErrDuplicateCounterID) {
		t.Errorf("expected ErrDuplicateCounterID across kinds, got %v", err)
	}
}

func TestEngineUnknownCounterID(t *testing.T) {

	e := NewCountingEngine(tracker.DefaultConfig())

	if err := e.RemoveLine("nope"); !errors.Is(err, ErrUnknownCounterID) {
		t.Errorf("RemoveLine: expected ErrUnknownCounterID, got %v", err)
	}

	if err := e.RemoveZone("nope"); !errors.Is(err, ErrUnknownCounterID) {
		t.Errorf("RemoveZone: expected ErrUnknownCounterID, got %v", err)
	}

	if err := e.SetClassFilter("nope", nil); !errors.Is(err, ErrUnknownCounterID) {
		t.Errorf("SetClassFilter: expected ErrUnknownCounterID, got %v", err)
	}
}

func TestEngineRejectsInvalidGeometry(t *testing.T) {

	e := NewCountingEngine(tracker.DefaultConfig())

	bad := LineDefinition{
		ID: "bad",
		P1: geometry.Pt(5, 5),
		P2: geometry.Pt(5, 5),
	}

	if err := e.AddLine(bad); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("AddLine: expected ErrInvalidGeometry, got %v", err)
	}

	if err := e.AddZone(ZoneDefinition{
		ID:       "bad",
		Vertices: []geometry.Point{geometry.Pt(0, 0), geometry.Pt(1, 1)},
	}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("AddZone: expected ErrInvalidGeometry, got %v", err)
	}

	// the rejected definitions must not have been registered
	if len(e.LineDefinitions()) != 0 || len(e.ZoneDefinitions()) != 0 {
		t.Error("invalid definition was registered")
	}
}

func TestEngineSetClassFilter(t *testing.T) {

	e := NewCountingEngine(tracker.DefaultConfig())

	if err := e.AddLine(gateLine(nil)); err != nil {
		t.Fatal(err)
	}

	// filter the line to trucks only, the class 0 object no longer counts
	if err := e.SetClassFilter("gate", NewClassSet(7)); err != nil {
		t.Fatal(err)
	}

	var snap *Snapshot

	for frame, cy := range []float32{10, 40, 70, 90} {

		var err error
		snap, err = e.Process(frame, []tracker.Detection{detAt(0, 50, cy)})

		if err != nil {
			t.Fatal(err)
		}
	}

	if got := len(snap.Line("gate").Counts); got != 0 {
		t.Errorf("expected no counts after filter change, got %d classes", got)
	}
}

func TestEngineRemoveCounter(t *testing.T) {

	e := NewCountingEngine(tracker.DefaultConfig())

	if err := e.AddLine(gateLine(nil)); err != nil {
		t.Fatal(err)
	}

	if err := e.AddZone(lotZone(nil)); err != nil {
		t.Fatal(err)
	}

	if err := e.RemoveLine("gate"); err != nil {
		t.Fatal(err)
	}

	snap, err := e.Process(0, nil)

	if err != nil {
		t.Fatal(err)
	}

	if snap.Line("gate") != nil {
		t.Error("removed line still present in snapshot")
	}

	if snap.Zone("lot") == nil {
		t.Error("unrelated zone removed")
	}
}

func TestEngineReset(t *testing.T) {

	e := NewCountingEngine(tracker.DefaultConfig())

	if err := e.AddLine(gateLine(nil)); err != nil {
		t.Fatal(err)
	}

	if err := e.AddZone(lotZone(nil)); err != nil {
		t.Fatal(err)
	}

	for frame, cy := range []float32{10, 40, 70} {
		if _, err := e.Process(frame, []tracker.Detection{detAt(0, 50, cy)}); err != nil {
			t.Fatal(err)
		}
	}

	e.Reset()

	// definitions and filters survive a reset
	if len(e.LineDefinitions()) != 1 || e.LineDefinitions()[0].ID != "gate" {
		t.Error("line definition lost across reset")
	}

	if len(e.ZoneDefinitions()) != 1 || e.ZoneDefinitions()[0].ID != "lot" {
		t.Error("zone definition lost across reset")
	}

	// the frame clock rewinds, frame 0 is valid again
	snap, err := e.Process(0, []tracker.Detection{detAt(0, 50, 10)})

	if err != nil {
		t.Fatalf("frame 0 after reset: %v", err)
	}

	if got := snap.Line("gate").Counts[0]; got.In != 0 || got.Out != 0 {
		t.Errorf("counts not zeroed by reset: %+v", got)
	}

	// track ids never repeat, even across a reset
	if len(snap.Tracks) != 1 || snap.Tracks[0].ID != 2 {
		t.Errorf("expected fresh track id 2 after reset, got %+v", snap.Tracks)
	}
}

func TestEngineImplicitZoneExitOnPurge(t *testing.T) {

	cfg := tracker.Config{
		IoUThreshold: 0.3,
		MaxMissed:    0,
		PurgeAfter:   0,
	}

	e := NewCountingEngine(cfg)

	if err := e.AddZone(lotZone(nil)); err != nil {
		t.Fatal(err)
	}

	snap, err := e.Process(0, []tracker.Detection{detAt(0, 50, 50)})

	if err != nil {
		t.Fatal(err)
	}

	if got := snap.Zone("lot").Counts[0]; got.Entries != 1 || got.Inside != 1 {
		t.Fatalf("expected Entries=1 Inside=1, got %+v", got)
	}

	// the object disappears inside the zone.  One missed frame marks the
	// track Lost, the next purges it and the occupancy reconciles.
	if _, err := e.Process(1, nil); err != nil {
		t.Fatal(err)
	}

	snap, err = e.Process(2, nil)

	if err != nil {
		t.Fatal(err)
	}

	if got := snap.Zone("lot").Counts[0]; got.Exits != 1 || got.Inside != 0 {
		t.Errorf("expected implicit exit Exits=1 Inside=0, got %+v", got)
	}
}
