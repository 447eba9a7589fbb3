package systems

import (
	"github.com/pthm-cable/nebula/gesture"
)

// Smoothing rates, chosen per transition kind so black-hole engagement feels
// snappier than release.
const (
	rateRelease   = 0.02 // no hand: both states decay
	rateBlackHole = 0.05 // closed fist: collapse engages fast
	rateExplosion = 0.03 // open hand: nebula expansion
)

// BlendState holds the two smoothed field morph factors. Targets are set
// discretely from the interaction signal each frame; currents converge by
// exponential smoothing and never overshoot. The explosion and black-hole
// targets are never both 1.
type BlendState struct {
	ExplosionCurrent float32
	ExplosionTarget  float32
	BlackHoleCurrent float32
	BlackHoleTarget  float32
}

// Update advances the blend factors one frame from the latest signal.
func (b *BlendState) Update(sig gesture.InteractionSignal) {
	var rate float32
	switch {
	case !sig.Active:
		b.ExplosionTarget = 0
		b.BlackHoleTarget = 0
		rate = rateRelease
	case sig.Closed:
		b.BlackHoleTarget = 1
		b.ExplosionTarget = 0
		rate = rateBlackHole
	default:
		b.ExplosionTarget = 1
		b.BlackHoleTarget = 0
		rate = rateExplosion
	}

	b.ExplosionCurrent += (b.ExplosionTarget - b.ExplosionCurrent) * rate
	b.BlackHoleCurrent += (b.BlackHoleTarget - b.BlackHoleCurrent) * rate
}

// Calm reports whether both factors are low enough for ambient drift and
// hand repulsion to apply.
func (b *BlendState) Calm() bool {
	return b.ExplosionCurrent < 0.1 && b.BlackHoleCurrent < 0.1
}
