package waveform

import "gonum.org/v1/gonum/interp"

// Evaluate returns the waveform value at real time t by linear interpolation
// between breakpoints. Outside the breakpoint range the nearest endpoint
// value is returned. Equal-time breakpoints (vertical jumps) collapse to the
// later point for interpolation purposes.
func (s *Set) Evaluate(t float64) float64 {
	if len(s.points) == 0 {
		return 0
	}

	// interp.PiecewiseLinear needs strictly increasing abscissae.
	xs := make([]float64, 0, len(s.points))
	ys := make([]float64, 0, len(s.points))
	for _, p := range s.points {
		if n := len(xs); n > 0 && p.Time <= xs[n-1] {
			ys[n-1] = p.Value
			continue
		}
		xs = append(xs, p.Time)
		ys = append(ys, p.Value)
	}
	if len(xs) == 1 {
		return ys[0]
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return ys[0]
	}
	if t < xs[0] {
		return ys[0]
	}
	if t > xs[len(xs)-1] {
		return ys[len(ys)-1]
	}
	return pl.Predict(t)
}
