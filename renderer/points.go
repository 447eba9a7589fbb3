// Package renderer draws the transformed particle field with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/camera"
	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/field"
)

// nearClip drops particles that cross behind the viewpoint.
const nearClip = 1.0

// glowScale is the halo radius relative to the particle's core radius.
const glowScale = 3.0

// PointRenderer projects particles to screen space and draws them as
// screen-facing primitives with additive blending, so overlapping particles
// accumulate brightness instead of occluding.
type PointRenderer struct {
	width, height float32
}

// NewPointRenderer creates a renderer for the given viewport.
func NewPointRenderer(width, height float32) *PointRenderer {
	return &PointRenderer{width: width, height: height}
}

// Resize updates the viewport dimensions.
func (r *PointRenderer) Resize(width, height float32) {
	r.width = width
	r.height = height
}

// Draw renders one frame of the particle field.
func (r *PointRenderer) Draw(frame *field.FrameBuffer, cam *camera.Orbit, vis config.VisualConfig) {
	n := frame.Count()
	if n == 0 {
		return
	}

	cx, cy, cz := cam.Position()
	fwd, right, up := cam.Basis()

	// Pixels per world unit at unit view depth. Dividing by each particle's
	// view depth gives the standard inverse-depth point-size attenuation.
	focal := r.height / 2 / float32(math.Tan(float64(cam.Fovy)*math.Pi/360))

	baseSize := float32(vis.BaseSize)
	saturation := float32(vis.Saturation)
	glow := float32(vis.Glow)
	shape := config.ParseShape(vis.Shape)

	rl.BeginBlendMode(rl.BlendAdditive)

	for i := 0; i < n; i++ {
		dx := frame.X[i] - cx
		dy := frame.Y[i] - cy
		dz := frame.Z[i] - cz

		depth := dx*fwd[0] + dy*fwd[1] + dz*fwd[2]
		if depth < nearClip {
			continue
		}

		scale := focal / depth
		sx := r.width/2 + (dx*right[0]+dy*right[1]+dz*right[2])*scale
		sy := r.height/2 - (dx*up[0]+dy*up[1]+dz*up[2])*scale
		if sx < -50 || sx > r.width+50 || sy < -50 || sy > r.height+50 {
			continue
		}

		size := baseSize * frame.Size[i] * scale
		if size < 0.5 {
			size = 0.5
		}

		cr, cg, cb := saturate(frame.R[i], frame.G[i], frame.B[i], saturation)
		col := rl.Color{
			R: uint8(cr * 255),
			G: uint8(cg * 255),
			B: uint8(cb * 255),
			A: 255,
		}

		if glow > 0 {
			halo := col
			halo.A = uint8(clampf(glow*70, 0, 255))
			rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, size*glowScale, halo)
		}

		drawShape(shape, sx, sy, size, col)
	}

	rl.EndBlendMode()
}

// saturate scales a color's distance from its gray value, clamped to [0, 1].
func saturate(r, g, b, s float32) (float32, float32, float32) {
	if s == 1 {
		return r, g, b
	}
	gray := 0.299*r + 0.587*g + 0.114*b
	return clampf(gray+(r-gray)*s, 0, 1),
		clampf(gray+(g-gray)*s, 0, 1),
		clampf(gray+(b-gray)*s, 0, 1)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
