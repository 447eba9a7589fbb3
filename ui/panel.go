// Package ui renders the raygui control panel for live visual parameters and
// staged sampling parameters.
package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/config"
)

const (
	lineHeight  = 22
	sliderWidth = 150
	padding     = 10
)

// Panel is the left-side controls panel. Visual edits apply immediately;
// sampling edits accumulate in a staged copy until the Resample button
// confirms them, reflecting the two-tier configuration model.
type Panel struct {
	x, y, width int32
	visible     bool

	staged config.SamplingConfig
}

// NewPanel creates a hidden panel and stages the current sampling config.
func NewPanel(x, y, width int32, sampling config.SamplingConfig) *Panel {
	return &Panel{x: x, y: y, width: width, staged: sampling}
}

// Toggle switches panel visibility.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *Panel) IsVisible() bool {
	return p.visible
}

// Staged returns the staged sampling configuration.
func (p *Panel) Staged() config.SamplingConfig {
	return p.staged
}

// Pending reports whether the staged sampling config differs from the live one.
func (p *Panel) Pending(live config.SamplingConfig) bool {
	return !p.staged.Equal(live)
}

// Draw renders the panel and applies edits. Visual fields are written back
// into cfg directly; sampling fields only touch the staged copy. Returns
// true when the Resample button was pressed.
func (p *Panel) Draw(cfg *config.Config) bool {
	if !p.visible {
		return false
	}

	w := float32(p.width - 2*padding)
	x := float32(p.x + padding)
	y := float32(p.y + padding)

	panelHeight := int32(17*lineHeight + 4*padding)
	rl.DrawRectangle(p.x, p.y, p.width, panelHeight, rl.Color{R: 20, G: 20, B: 30, A: 220})
	rl.DrawRectangleLines(p.x, p.y, p.width, panelHeight, rl.DarkGray)

	rl.DrawText("Visual", int32(x), int32(y), 16, rl.White)
	y += lineHeight

	cfg.Visual.BaseSize = float64(p.slider(x, &y, w, "size", float32(cfg.Visual.BaseSize), 0.5, 12))
	cfg.Visual.Glow = float64(p.slider(x, &y, w, "glow", float32(cfg.Visual.Glow), 0, 2))
	cfg.Visual.Saturation = float64(p.slider(x, &y, w, "saturation", float32(cfg.Visual.Saturation), 0, 2))
	cfg.Visual.InteractionRadius = float64(p.slider(x, &y, w, "hand radius", float32(cfg.Visual.InteractionRadius), 0, 400))
	cfg.Visual.InteractionStrength = float64(p.slider(x, &y, w, "hand strength", float32(cfg.Visual.InteractionStrength), 0, 300))
	cfg.Camera.AutoRotate = float64(p.slider(x, &y, w, "auto-rotate", float32(cfg.Camera.AutoRotate), 0, 1))

	shape := gui.ComboBox(
		rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: lineHeight - 4},
		"circle;square;star;snowflake",
		int32(config.ParseShape(cfg.Visual.Shape)),
	)
	cfg.Visual.Shape = config.ParticleShape(shape).String()
	y += lineHeight + padding

	rl.DrawText("Sampling (needs resample)", int32(x), int32(y), 16, rl.White)
	y += lineHeight

	p.staged.Stride = int(p.slider(x, &y, w, "stride", float32(p.staged.Stride), 1, 16))
	p.staged.Threshold = float64(p.slider(x, &y, w, "threshold", float32(p.staged.Threshold), 0, 255))
	p.staged.MaxParticles = int(p.slider(x, &y, w, "max particles (k)", float32(p.staged.MaxParticles)/1000, 1, 500)) * 1000
	p.staged.DepthRange = float64(p.slider(x, &y, w, "depth range", float32(p.staged.DepthRange), 0, 500))
	p.staged.NoiseStrength = float64(p.slider(x, &y, w, "noise strength", float32(p.staged.NoiseStrength), 0, 200))

	mode := gui.ComboBox(
		rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: lineHeight - 4},
		strings.Join(config.DepthModeNames(), ";"),
		int32(p.staged.Mode()),
	)
	p.staged.DepthMode = config.DepthMode(mode).String()
	y += lineHeight

	p.staged.DepthInvert = gui.CheckBox(
		rl.Rectangle{X: x, Y: y, Width: lineHeight - 6, Height: lineHeight - 6},
		"invert depth",
		p.staged.DepthInvert,
	)
	y += lineHeight

	label := "Resample"
	if p.Pending(cfg.Sampling) {
		label = "Resample *"
	}
	return gui.Button(rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: lineHeight}, label)
}

// slider draws one labeled slider row and advances y.
func (p *Panel) slider(x float32, y *float32, w float32, label string, value, minV, maxV float32) float32 {
	rl.DrawText(label, int32(x), int32(*y+2), 10, rl.Gray)
	v := gui.SliderBar(
		rl.Rectangle{X: x + w - sliderWidth, Y: *y, Width: sliderWidth - 40, Height: lineHeight - 6},
		"", "",
		value, minV, maxV,
	)
	rl.DrawText(fmt.Sprintf("%.1f", v), int32(x+w-36), int32(*y+2), 10, rl.LightGray)
	*y += lineHeight
	return v
}
