package kinematic

// This package includes the small amount of 2D math the game needs.

import "math"

// Vector is a 2D position or displacement in screen pixels.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Approach moves current toward target by at most step and reports whether target was reached.
func Approach(current, target, step float64) (float64, bool) {
	distance := target - current
	if math.Abs(distance) <= step {
		return target, true
	}
	return current + math.Copysign(step, distance), false
}
