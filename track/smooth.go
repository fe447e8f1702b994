package track

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"
)

// pointSmoother smooths trajectory centers with a 2D Kalman filter. The
// filter state is initialized from the first measurement.
type pointSmoother struct {
	dt     float64
	filter *kalman_filter.Kalman2D
}

func newPointSmoother(dt float64) *pointSmoother {
	return &pointSmoother{dt: dt}
}

// Smooth feeds the measured center through the filter and returns the
// smoothed estimate. On filter failure the raw measurement is returned
// alongside the error.
func (smoother *pointSmoother) Smooth(measured Point) (Point, error) {
	if smoother.filter == nil {
		/* Kalman filter props */
		ux := 1.0
		uy := 1.0
		stdDevA := 2.0
		stdDevMx := 0.1
		stdDevMy := 0.1
		smoother.filter = kalman_filter.NewKalman2D(smoother.dt, ux, uy, stdDevA, stdDevMx, stdDevMy, kalman_filter.WithState2D(measured.X, measured.Y))
		return measured, nil
	}
	smoother.filter.Predict()
	if err := smoother.filter.Update(measured.X, measured.Y); err != nil {
		return measured, errors.Wrap(err, "Can't update trajectory smoother")
	}
	stateX, stateY := smoother.filter.GetState()
	return Point{X: stateX, Y: stateY}, nil
}
