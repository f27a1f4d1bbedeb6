package tracker

// Detection represents a single object detected in one frame by an
// external detector.  Confidence filtering is assumed to have been applied
// upstream, detections are not re-filtered here.
type Detection struct {
	// Class is the class id of the object detected
	Class int
	// Prob is the confidence/probability of the object detected
	Prob float32
	// Box is the bounding box of the detected object
	Box Rect
}

// NewDetection is a constructor function for the Detection struct
func NewDetection(class int, prob float32, box Rect) Detection {
	return Detection{
		Class: class,
		Prob:  prob,
		Box:   box,
	}
}
