package tracker

import (
	"gonum.org/v1/gonum/mat"
)

// KalmanFilter is a constant-velocity filter over a bounding box center.
// State is (cx, cy, vx, vy), measurements are (cx, cy).  It is used to
// coast a track's box forward through frames with no matching detection.
type KalmanFilter struct {
	// x is the 4x1 state vector
	x *mat.VecDense
	// p is the 4x4 state covariance
	p *mat.Dense
	// motionMat is the 4x4 constant-velocity transition matrix
	motionMat *mat.Dense
	// updateMat is the 2x4 measurement matrix
	updateMat *mat.Dense
	// processNoise and measureNoise scale the Q and R matrices
	processNoise float64
	measureNoise float64
}

// NewKalmanFilter initializes a filter at the given center position with
// zero initial velocity
func NewKalmanFilter(cx, cy float32) *KalmanFilter {

	dt := 1.0

	// constant velocity model, position advanced by velocity each frame
	motionMat := mat.NewDense(4, 4, nil)

	for i := 0; i < 4; i++ {
		motionMat.Set(i, i, 1.0)
	}

	motionMat.Set(0, 2, dt)
	motionMat.Set(1, 3, dt)

	// only positions are measured
	updateMat := mat.NewDense(2, 4, nil)
	updateMat.Set(0, 0, 1.0)
	updateMat.Set(1, 1, 1.0)

	x := mat.NewVecDense(4, []float64{float64(cx), float64(cy), 0, 0})

	// start with high velocity uncertainty so the first updates settle
	// the velocity estimate quickly
	p := mat.NewDense(4, 4, nil)
	p.Set(0, 0, 1.0)
	p.Set(1, 1, 1.0)
	p.Set(2, 2, 100.0)
	p.Set(3, 3, 100.0)

	return &KalmanFilter{
		x:            x,
		p:            p,
		motionMat:    motionMat,
		updateMat:    updateMat,
		processNoise: 1.0,
		measureNoise: 1.0,
	}
}

// Predict advances the state one frame and returns the predicted center
func (k *KalmanFilter) Predict() (cx, cy float32) {

	// x = F x
	var xNew mat.VecDense
	xNew.MulVec(k.motionMat, k.x)
	k.x.CopyVec(&xNew)

	// P = F P F' + Q
	var fp, fpf mat.Dense
	fp.Mul(k.motionMat, k.p)
	fpf.Mul(&fp, k.motionMat.T())

	for i := 0; i < 4; i++ {
		fpf.Set(i, i, fpf.At(i, i)+k.processNoise)
	}

	k.p.Copy(&fpf)

	return float32(k.x.AtVec(0)), float32(k.x.AtVec(1))
}

// Update corrects the state with an observed center measurement
func (k *KalmanFilter) Update(cx, cy float32) error {

	z := mat.NewVecDense(2, []float64{float64(cx), float64(cy)})

	// innovation y = z - H x
	var hx, y mat.VecDense
	hx.MulVec(k.updateMat, k.x)
	y.SubVec(z, &hx)

	// innovation covariance S = H P H' + R
	var hp, s mat.Dense
	hp.Mul(k.updateMat, k.p)
	s.Mul(&hp, k.updateMat.T())

	for i := 0; i < 2; i++ {
		s.Set(i, i, s.At(i, i)+k.measureNoise)
	}

	var sInv mat.Dense

	if err := sInv.Inverse(&s); err != nil {
		return err
	}

	// gain K = P H' S^-1
	var pht, gain mat.Dense
	pht.Mul(k.p, k.updateMat.T())
	gain.Mul(&pht, &sInv)

	// x = x + K y
	var ky mat.VecDense
	ky.MulVec(&gain, &y)
	k.x.AddVec(k.x, &ky)

	// P = (I - K H) P
	var kh mat.Dense
	kh.Mul(&gain, k.updateMat)

	eye := mat.NewDense(4, 4, nil)

	for i := 0; i < 4; i++ {
		eye.Set(i, i, 1.0)
	}

	var ikh, pNew mat.Dense
	ikh.Sub(eye, &kh)
	pNew.Mul(&ikh, k.p)
	k.p.Copy(&pNew)

	return nil
}
