// Depth-mode preview tool - visualizes how sampling parameters map an image
// onto the particle depth axis, with sliders for live tuning.
//
// Usage: go run ./cmd/depthpreview -image photo.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	imagePath := flag.String("image", "", "Image to preview")
	flag.Parse()

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "usage: depthpreview -image <file>")
		os.Exit(1)
	}

	img, err := systems.LoadImage(*imagePath)
	if err != nil {
		slog.Error("image load failed", "error", err)
		os.Exit(1)
	}

	cfg := config.SamplingConfig{
		Stride:        4,
		Threshold:     30,
		MaxParticles:  200000,
		DepthMode:     "brightness",
		DepthRange:    100,
		NoiseStrength: 50,
	}

	rl.InitWindow(windowWidth, windowHeight, "Depth Mode Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	res, _ := systems.Sample(img, cfg)
	bounds := img.Bounds()
	halfW := float32(bounds.Dx()) / 2
	halfH := float32(bounds.Dy()) / 2
	scale := previewSize / (2 * maxf(halfW, halfH))

	needsRegen := false

	for !rl.WindowShouldClose() {
		if needsRegen {
			res, err = systems.Sample(img, cfg)
			if err != nil {
				slog.Error("sampling failed", "error", err)
			}
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		// Particles colored by depth: blue at -range through red at +range.
		depthRange := float32(cfg.DepthRange)
		if depthRange == 0 {
			depthRange = 1
		}
		for i := range res.Positions {
			p := res.Positions[i]
			sx := previewSize/2 + int32(p.X*scale) + 10
			sy := previewSize/2 - int32(p.Y*scale) + 10
			t := (p.Z/depthRange + 1) / 2
			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}
			col := rl.Color{R: uint8(t * 255), G: 40, B: uint8((1 - t) * 255), A: 255}
			rl.DrawPixel(sx, sy, col)
		}
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("particles: %d", res.Count()), 15, previewSize+25, 16, rl.Gray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)
		sliderW := float32(panelWidth - 80)

		rl.DrawText("Sampling Parameters", int32(panelX), int32(panelY), 20, rl.LightGray)
		panelY += 35

		rl.DrawText("Stride", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newStride := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20},
			"1", "16",
			float32(cfg.Stride), 1, 16,
		)
		rl.DrawText(fmt.Sprintf("%d", cfg.Stride), int32(panelX+sliderW+10), int32(panelY+2), 16, rl.LightGray)
		if int(newStride) != cfg.Stride {
			cfg.Stride = int(newStride)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Brightness threshold", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newThreshold := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20},
			"0", "255",
			float32(cfg.Threshold), 0, 255,
		)
		rl.DrawText(fmt.Sprintf("%.0f", cfg.Threshold), int32(panelX+sliderW+10), int32(panelY+2), 16, rl.LightGray)
		if float64(newThreshold) != cfg.Threshold {
			cfg.Threshold = float64(newThreshold)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Depth range", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRange := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20},
			"0", "500",
			float32(cfg.DepthRange), 0, 500,
		)
		rl.DrawText(fmt.Sprintf("%.0f", cfg.DepthRange), int32(panelX+sliderW+10), int32(panelY+2), 16, rl.LightGray)
		if float64(newRange) != cfg.DepthRange {
			cfg.DepthRange = float64(newRange)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Noise strength (perlin mode)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newNoise := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20},
			"0", "200",
			float32(cfg.NoiseStrength), 0, 200,
		)
		rl.DrawText(fmt.Sprintf("%.0f", cfg.NoiseStrength), int32(panelX+sliderW+10), int32(panelY+2), 16, rl.LightGray)
		if float64(newNoise) != cfg.NoiseStrength {
			cfg.NoiseStrength = float64(newNoise)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Depth mode", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newMode := gui.ComboBox(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 24},
			strings.Join(config.DepthModeNames(), ";"),
			int32(cfg.Mode()),
		)
		if config.DepthMode(newMode) != cfg.Mode() {
			cfg.DepthMode = config.DepthMode(newMode).String()
			needsRegen = true
		}
		panelY += 40

		newInvert := gui.CheckBox(
			rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20},
			"invert depth",
			cfg.DepthInvert,
		)
		if newInvert != cfg.DepthInvert {
			cfg.DepthInvert = newInvert
			needsRegen = true
		}

		rl.EndDrawing()
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
