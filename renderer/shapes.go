package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/config"
)

// drawShape draws one particle primitive centered at (x, y) with the given
// core radius. The shape is a global selection, not per particle.
func drawShape(shape config.ParticleShape, x, y, size float32, col rl.Color) {
	switch shape {
	case config.ShapeSquare:
		rl.DrawRectangleV(
			rl.Vector2{X: x - size, Y: y - size},
			rl.Vector2{X: size * 2, Y: size * 2},
			col,
		)
	case config.ShapeStar:
		drawStar(x, y, size, col)
	case config.ShapeSnowflake:
		drawSnowflake(x, y, size, col)
	default:
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, size, col)
	}
}

// drawStar draws a 5-point star as five spike triangles around a core.
func drawStar(x, y, size float32, col rl.Color) {
	center := rl.Vector2{X: x, Y: y}
	inner := size * 0.5
	outer := size * 1.8

	for k := 0; k < 5; k++ {
		tip := float64(k)*2*math.Pi/5 - math.Pi/2
		left := tip - math.Pi/5
		right := tip + math.Pi/5

		a := rl.Vector2{
			X: x + outer*float32(math.Cos(tip)),
			Y: y + outer*float32(math.Sin(tip)),
		}
		b := rl.Vector2{
			X: x + inner*float32(math.Cos(left)),
			Y: y + inner*float32(math.Sin(left)),
		}
		c := rl.Vector2{
			X: x + inner*float32(math.Cos(right)),
			Y: y + inner*float32(math.Sin(right)),
		}
		// raylib culls back-facing triangles; keep counter-clockwise order.
		rl.DrawTriangle(a, c, b, col)
	}
	rl.DrawCircleV(center, inner, col)
}

// drawSnowflake draws six arms crossing at the center.
func drawSnowflake(x, y, size float32, col rl.Color) {
	arm := size * 1.8
	thick := size * 0.4
	if thick < 1 {
		thick = 1
	}
	for k := 0; k < 3; k++ {
		angle := float64(k) * math.Pi / 3
		dx := arm * float32(math.Cos(angle))
		dy := arm * float32(math.Sin(angle))
		rl.DrawLineEx(
			rl.Vector2{X: x - dx, Y: y - dy},
			rl.Vector2{X: x + dx, Y: y + dy},
			thick,
			col,
		)
	}
}
