package tracker

import (
	"testing"
)

func TestKalmanFilterConstantVelocity(t *testing.T) {

	const tolerance = 1.0

	kf := NewKalmanFilter(0, 0)

	// feed a constant velocity of 10px per frame along x
	for i := 1; i <= 8; i++ {

		kf.Predict()

		if err := kf.Update(float32(i*10), 0); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	// the next prediction should land one more step along the motion
	cx, cy := kf.Predict()

	if !almostEqual(cx, 90, tolerance) {
		t.Errorf("predicted cx = %f, want 90", cx)
	}

	if !almostEqual(cy, 0, tolerance) {
		t.Errorf("predicted cy = %f, want 0", cy)
	}
}

func TestKalmanFilterStationary(t *testing.T) {

	const tolerance = 0.5

	kf := NewKalmanFilter(50, 50)

	for i := 0; i < 10; i++ {

		kf.Predict()

		if err := kf.Update(50, 50); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	cx, cy := kf.Predict()

	if !almostEqual(cx, 50, tolerance) || !almostEqual(cy, 50, tolerance) {
		t.Errorf("predicted (%f, %f), want (50, 50)", cx, cy)
	}
}

func TestKalmanFilterCoastsThroughGap(t *testing.T) {

	const tolerance = 3.0

	kf := NewKalmanFilter(0, 100)

	for i := 1; i <= 8; i++ {

		kf.Predict()

		if err := kf.Update(float32(i*20), 100); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	// three frames with no measurement, position keeps advancing at
	// the estimated velocity
	kf.Predict()
	kf.Predict()
	cx, _ := kf.Predict()

	if !almostEqual(cx, 220, tolerance) {
		t.Errorf("coasted cx = %f, want 220", cx)
	}
}
