package common

import "math"

// Damp returns the fraction of the remaining distance a critically damped
// follower with rate k covers in dt seconds. It does not depend on how the
// interval is split into frames.
func Damp(k, dt float64) float64 {
	if k <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-k*dt)
}

// ClampAbs limits v to [-limit, limit].
func ClampAbs(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
