package systems

import (
	"github.com/pthm-cable/nebula/components"
)

// Tuning constants for the three field states. These shape the look of the
// nebula expansion and the quasar collapse; they are not physical quantities.
const (
	depthPreScale = 1.5

	driftFreq  = 0.005
	driftSpeed = 0.1
	driftAmp   = 20

	clusterFreq     = 0.015
	clusterSpeed    = 0.1
	expandDistance  = 300
	expandBaseShare = 0.4
	turbulenceFreq  = 0.01
	turbulenceAmp   = 80
	expandRoll      = 0.4
	expandSizeBoost = 8

	holeFlatten     = 0.05
	vortexRate      = 400
	vortexSoftening = 10
	pullBaseRadius  = 30
	pullRadiusShare = 0.2
	pullStrength    = 0.95

	jetNoiseFreq   = 0.02
	jetNoiseDepth  = 1000
	jetThreshold   = 0.7
	jetMaxRadius   = 120
	jetCompress    = 0.05
	jetBaseLength  = 50
	jetLengthScale = 500
	jetTwist       = 0.02
	jetSizeBoost   = 5

	diskRadius    = 60
	diskSizeBoost = 3
)

// Accent colors for the quasar state.
var (
	jetBlue  = components.BaseColor{R: 0.35, G: 0.55, B: 1.0}
	diskGold = components.BaseColor{R: 1.0, G: 0.8, B: 0.35}
)

// KernelInput is the per-frame global state fed to every particle. The same
// input applied to the same base attributes always yields the same output;
// the kernel holds no per-particle state.
type KernelInput struct {
	E float32 // explosion blend factor, [0, 1]
	H float32 // black-hole blend factor, [0, 1]
	T float32 // elapsed time, seconds

	HandActive          bool
	HandX, HandY, HandZ float32 // interaction point, world space
	InteractionRadius   float32
	InteractionStrength float32
}

// calm reports whether the field is near its rest state, which gates ambient
// drift and hand repulsion.
func (in *KernelInput) calm() bool {
	return in.E < 0.1 && in.H < 0.1
}

// TransformParticle computes a particle's rendered position, size multiplier,
// and color from its base attributes and the frame's global state. Pure
// function: it is re-run for every particle every frame.
func TransformParticle(p components.BasePosition, c components.BaseColor, in *KernelInput) (x, y, z, sizeMul float32, col components.BaseColor) {
	x, y, z = p.X, p.Y, p.Z*depthPreScale
	col = c
	extra := float32(0)

	// Ambient drift: a slow breathing of the depth axis, only near rest.
	if in.calm() {
		z += Noise3(p.X*driftFreq, p.Y*driftFreq, in.T*driftSpeed) * driftAmp
	}

	if in.E > 0.001 {
		x, y, z, extra = expandNebula(x, y, z, extra, in)
	}

	if in.H > 0.001 {
		x, y, z, extra, col = collapseQuasar(x, y, z, extra, col, p, in)
	}

	// Hand repulsion, only while the field is near rest.
	if in.HandActive && in.calm() {
		dx := x - in.HandX
		dy := y - in.HandY
		dz := z - in.HandZ
		d := sqrt32(dx*dx + dy*dy + dz*dz)
		if d < in.InteractionRadius && d > 0 {
			falloff := 1 - d/in.InteractionRadius
			push := falloff * falloff * in.InteractionStrength / d
			x += dx * push
			y += dy * push
			z += dz * push
		}
	}

	return x, y, z, 1 + extra, col
}

// expandNebula displaces a particle radially outward with per-particle speed
// variance from clustering noise, adds layered turbulence, and rolls the
// whole cloud about the view axis.
func expandNebula(x, y, z, extra float32, in *KernelInput) (float32, float32, float32, float32) {
	e := in.E
	drift := in.T * clusterSpeed

	cluster := Noise3(x*clusterFreq+drift, y*clusterFreq+drift, z*clusterFreq+drift)
	variance := smoothstep(-0.5, 0.5, cluster)

	dist := sqrt32(x*x + y*y + z*z)
	if dist > 0 {
		push := expandDistance * e * (expandBaseShare + (1-expandBaseShare)*variance) / dist
		x += x * push
		y += y * push
		z += z * push
	}

	// Three independent noise channels, one per axis.
	tt := in.T * driftSpeed
	x += Noise3(x*turbulenceFreq, y*turbulenceFreq, tt+37) * turbulenceAmp * e
	y += Noise3(y*turbulenceFreq, z*turbulenceFreq, tt+73) * turbulenceAmp * e
	z += Noise3(z*turbulenceFreq, x*turbulenceFreq, tt+113) * turbulenceAmp * e

	s, c := sincos32(expandRoll * e)
	x, y = x*c-y*s, x*s+y*c

	return x, y, z, extra + expandSizeBoost*e
}

// collapseQuasar flattens the field into an accretion disk with a vortex
// rotation and inward pull, reclassifying a stable subset of particles into
// polar jets. The jet selection noise is evaluated on the particle's base
// xy so membership does not flicker as the disk spins.
func collapseQuasar(x, y, z, extra float32, col components.BaseColor, base components.BasePosition, in *KernelInput) (float32, float32, float32, float32, components.BaseColor) {
	h := in.H

	z *= mix(1, holeFlatten, h)

	r := sqrt32(x*x + y*y)

	angle := vortexRate / (r + vortexSoftening) * in.T * h
	s, c := sincos32(angle)
	x, y = x*c-y*s, x*s+y*c

	// Pull toward the disk radius. Skipped at the exact center where the
	// direction is degenerate.
	if r > 1 {
		target := pullBaseRadius + pullRadiusShare*r
		newR := mix(r, target, pullStrength*h)
		scale := newR / r
		x *= scale
		y *= scale
		r = newR
	}

	jet := Noise3(base.X*jetNoiseFreq, base.Y*jetNoiseFreq, jetNoiseDepth)
	if jet > jetThreshold && r < jetMaxRadius {
		x *= jetCompress
		y *= jetCompress

		// Eject along the view axis, away from the disk plane. Particles
		// sampled at exactly z=0 go up.
		sign := float32(1)
		if base.Z < 0 {
			sign = -1
		}
		z = sign * (jetBaseLength + jetLengthScale*h*abs32(jet))

		// Spiral twist proportional to height along the jet.
		ts, tc := sincos32(z * jetTwist)
		x, y = x*tc-y*ts, x*ts+y*tc

		extra += jetSizeBoost * h
		col = tintToward(col, jetBlue, h)
	} else if r < diskRadius {
		w := (1 - r/diskRadius) * h
		col = tintToward(col, diskGold, w)
		extra += diskSizeBoost * w
	}

	return x, y, z, extra, col
}

// tintToward blends a color toward an accent by t in [0, 1].
func tintToward(c, accent components.BaseColor, t float32) components.BaseColor {
	t = clamp01(t)
	return components.BaseColor{
		R: mix(c.R, accent.R, t),
		G: mix(c.G, accent.G, t),
		B: mix(c.B, accent.B, t),
	}
}
