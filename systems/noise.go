package systems

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// noiseSeed is fixed so the field is deterministic across runs. The sampler's
// perlin depth mode and the per-frame transform both sample this generator;
// the transform relies on it being a pure function of its inputs.
const noiseSeed = 1337

var gradient = opensimplex.New(noiseSeed)

// Noise2 returns a smooth gradient noise value in [-1, 1] for 2D coordinates.
func Noise2(x, y float32) float32 {
	return float32(gradient.Eval2(float64(x), float64(y)))
}

// Noise3 returns a smooth gradient noise value in [-1, 1] for 3D coordinates.
func Noise3(x, y, z float32) float32 {
	return float32(gradient.Eval3(float64(x), float64(y), float64(z)))
}
