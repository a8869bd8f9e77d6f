package systems

import "gonum.org/v1/gonum/spatial/r2"

// clampMagnitude rescales v so its length does not exceed limit, keeping direction.
func clampMagnitude(v r2.Vec, limit float64) r2.Vec {
	m := r2.Norm(v)
	if m <= limit || m == 0 {
		return v
	}
	return r2.Scale(limit/m, v)
}

// unitOrZero returns the unit vector of v, or the zero vector when v has no length.
func unitOrZero(v r2.Vec) r2.Vec {
	if r2.Norm(v) == 0 {
		return r2.Vec{}
	}
	return r2.Unit(v)
}

// midpoint returns the average of two points.
func midpoint(a, b r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}
