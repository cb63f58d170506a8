package diffline

// Attraction returns the magnitude of the pull between two linked vertices
// at distance d: step when d > nearL, otherwise 0.
func Attraction(step, d, nearL float64) float64 {
	if d > nearL {
		return step
	}
	return 0
}

// Repulsion returns the magnitude of the push between two unlinked vertices
// at distance d: step·d·(farL/d − 1) for 0 < d ≤ farL, otherwise 0.
// It decays linearly to exactly 0 at d = farL.
func Repulsion(step, d, farL float64) float64 {
	if !(d > 0) || d > farL {
		return 0
	}
	return step * d * (farL/d - 1)
}
