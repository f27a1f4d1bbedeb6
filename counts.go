package objectcount

// LineCount holds the crossing counts for one class on one line.  Both
// fields are monotonically non-decreasing.
type LineCount struct {
	// In is the number of crossings into the positive half-plane
	In int
	// Out is the number of crossings into the negative half-plane
	Out int
}

// Total returns the combined crossing count for drawing simple totals
func (c LineCount) Total() int {
	return c.In + c.Out
}

// ZoneCount holds the occupancy counts for one class in one zone.
// Entries and Exits are monotonically non-decreasing, Inside may also
// decrease but never goes negative.
type ZoneCount struct {
	// Entries counts outside to inside transitions
	Entries int
	// Exits counts inside to outside transitions, including implicit
	// exits when a track is purged while still inside
	Exits int
	// Inside is the number of tracked objects currently inside the zone
	Inside int
}
