package systems

import "math"

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// mix linearly interpolates between a and b by t.
func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothstep is the standard cubic hermite threshold: 0 below e0, 1 above e1.
func smoothstep(e0, e1, v float32) float32 {
	t := clamp01((v - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

// sincos32 returns sin and cos of a float32 angle.
func sincos32(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}

// sqrt32 is a float32 square root.
func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// abs32 returns the absolute value of a float32.
func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
