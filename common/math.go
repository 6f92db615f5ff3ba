package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Approach moves v toward target by at most step without overshooting.
func Approach(v, target, step float64) float64 {
	if v < target {
		return math.Min(v+step, target)
	}
	return math.Max(v-step, target)
}

// FloorDiv divides and rounds toward negative infinity, so cells left of
// or above the origin index as -1, -2, ...
func FloorDiv(v float64, size int) int {
	return int(math.Floor(v / float64(size)))
}

func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
