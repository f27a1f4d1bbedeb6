package objectcount

import "errors"

var (
	// ErrInvalidGeometry indicates a malformed line or zone definition.
	// The definition is rejected at ingestion and never partially
	// applied.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrUnknownCounterID indicates an operation referenced a counter id
	// that is not currently registered.  No state is changed.
	ErrUnknownCounterID = errors.New("unknown counter id")

	// ErrDuplicateCounterID indicates a line or zone was added with a
	// counter id that is already registered
	ErrDuplicateCounterID = errors.New("duplicate counter id")

	// ErrOutOfOrderFrame indicates Process was called with a frame index
	// not greater than the previous one.  This is fatal to the
	// processing session, track history ordering would break if frames
	// were accepted out of order.
	ErrOutOfOrderFrame = errors.New("out of order frame")
)
