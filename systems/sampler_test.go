package systems

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/pthm-cable/nebula/config"
)

// fill creates a solid-color RGBA image.
func fill(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func baseConfig() config.SamplingConfig {
	return config.SamplingConfig{
		Stride:       1,
		Threshold:    10,
		MaxParticles: 100000,
		DepthMode:    "brightness",
		DepthRange:   100,
	}
}

func TestSampleNilImage(t *testing.T) {
	_, err := Sample(nil, baseConfig())
	if err == nil {
		t.Fatal("expected error for nil image")
	}
}

func TestSampleArraysAligned(t *testing.T) {
	img := fill(16, 16, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	res, err := Sample(img, baseConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Positions) != len(res.Colors) || len(res.Positions) != len(res.Weights) {
		t.Errorf("arrays misaligned: %d positions, %d colors, %d weights",
			len(res.Positions), len(res.Colors), len(res.Weights))
	}
}

func TestSampleMaxParticlesCap(t *testing.T) {
	img := fill(32, 32, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	cfg := baseConfig()
	cfg.MaxParticles = 100

	res, err := Sample(img, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Count() != 100 {
		t.Errorf("expected exactly 100 particles, got %d", res.Count())
	}
}

func TestSampleUniformColor(t *testing.T) {
	img := fill(8, 8, color.RGBA{R: 100, G: 150, B: 200, A: 255})
	res, err := Sample(img, baseConfig())
	if err != nil {
		t.Fatal(err)
	}
	if res.Count() != 64 {
		t.Fatalf("expected 64 particles, got %d", res.Count())
	}

	wantBrightness := float32(0.299*100+0.587*150+0.114*200) / 255
	for i := range res.Colors {
		c := res.Colors[i]
		if c.R != res.Colors[0].R || c.G != res.Colors[0].G || c.B != res.Colors[0].B {
			t.Fatalf("particle %d color differs from particle 0", i)
		}
		if math.Abs(float64(res.Weights[i].W-wantBrightness)) > 0.001 {
			t.Fatalf("particle %d weight = %v, want %v", i, res.Weights[i].W, wantBrightness)
		}
	}
}

func TestSampleAllBelowThreshold(t *testing.T) {
	img := fill(8, 8, color.RGBA{R: 5, G: 5, B: 5, A: 255})
	res, err := Sample(img, baseConfig())
	if err != nil {
		t.Fatal(err)
	}
	if res.Count() != 0 {
		t.Errorf("expected 0 particles below threshold, got %d", res.Count())
	}
}

func TestSampleTransparentPixelsSkipped(t *testing.T) {
	img := fill(4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 40})
	res, err := Sample(img, baseConfig())
	if err != nil {
		t.Fatal(err)
	}
	if res.Count() != 0 {
		t.Errorf("expected 0 particles for alpha < 50, got %d", res.Count())
	}
}

func TestDepthBrightnessInverseComplementary(t *testing.T) {
	img := fill(4, 4, color.RGBA{R: 120, G: 80, B: 40, A: 255})

	cfg := baseConfig()
	cfg.Threshold = 0
	bright, err := Sample(img, cfg)
	if err != nil {
		t.Fatal(err)
	}

	cfg.DepthMode = "inverse_brightness"
	inverse, err := Sample(img, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if bright.Count() != inverse.Count() {
		t.Fatalf("counts differ: %d vs %d", bright.Count(), inverse.Count())
	}
	for i := range bright.Positions {
		sum := bright.Positions[i].Z + inverse.Positions[i].Z
		if math.Abs(float64(sum)-100) > 0.001 {
			t.Fatalf("particle %d: z_bright + z_inverse = %v, want 100", i, sum)
		}
	}
}

func TestSampleCheckerboard(t *testing.T) {
	// 4x4 alternating full-white/full-black, white at (0,0).
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
	}

	res, err := Sample(img, baseConfig())
	if err != nil {
		t.Fatal(err)
	}
	if res.Count() != 8 {
		t.Fatalf("expected the 8 white pixels as particles, got %d", res.Count())
	}
	for i, p := range res.Positions {
		if math.Abs(float64(p.Z)-100) > 0.01 {
			t.Errorf("particle %d z = %v, want ~100", i, p.Z)
		}
	}
}

func TestDepthInvert(t *testing.T) {
	img := fill(2, 2, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	cfg := baseConfig()
	cfg.DepthInvert = true

	res, err := Sample(img, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range res.Positions {
		if math.Abs(float64(p.Z)+100) > 0.01 {
			t.Errorf("particle %d z = %v, want ~-100", i, p.Z)
		}
	}
}

func TestDepthLayeredBands(t *testing.T) {
	tests := []struct {
		name  string
		gray  uint8
		wantZ float32
	}{
		{"band 0", 20, 0},
		{"band 1", 100, 33},
		{"band 2", 170, 66},
		{"band 3", 255, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := fill(2, 2, color.RGBA{R: tt.gray, G: tt.gray, B: tt.gray, A: 255})
			cfg := baseConfig()
			cfg.Threshold = 0
			cfg.DepthMode = "layered"

			res, err := Sample(img, cfg)
			if err != nil {
				t.Fatal(err)
			}
			if res.Count() == 0 {
				t.Fatal("no particles")
			}
			if math.Abs(float64(res.Positions[0].Z-tt.wantZ)) > 0.01 {
				t.Errorf("z = %v, want %v", res.Positions[0].Z, tt.wantZ)
			}
		})
	}
}

func TestDepthRadialCenterHighest(t *testing.T) {
	img := fill(9, 9, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	cfg := baseConfig()
	cfg.DepthMode = "radial"

	res, err := Sample(img, cfg)
	if err != nil {
		t.Fatal(err)
	}

	// Particle nearest the image center must sit deeper than a corner one.
	var centerZ, cornerZ float32
	for i, p := range res.Positions {
		if p.X > -1 && p.X < 1 && p.Y > -1 && p.Y < 1 {
			centerZ = res.Positions[i].Z
		}
	}
	cornerZ = res.Positions[0].Z // pixel (0,0)
	if centerZ <= cornerZ {
		t.Errorf("center z %v should exceed corner z %v", centerZ, cornerZ)
	}
}

func TestSampleStride(t *testing.T) {
	img := fill(8, 8, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	cfg := baseConfig()
	cfg.Stride = 2

	res, err := Sample(img, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Count() != 16 {
		t.Errorf("stride 2 over 8x8 should visit 16 pixels, got %d", res.Count())
	}
}

func TestSamplePositionCentering(t *testing.T) {
	img := fill(4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	res, err := Sample(img, baseConfig())
	if err != nil {
		t.Fatal(err)
	}

	// Pixel (0,0) is top-left: negative x, positive y after the flip.
	p := res.Positions[0]
	if p.X != -2 || p.Y != 2 {
		t.Errorf("top-left pixel at (%v, %v), want (-2, 2)", p.X, p.Y)
	}
}

func TestRGBToHueSat(t *testing.T) {
	tests := []struct {
		name     string
		r, g, b  uint8
		wantHue  float32
		wantSat  float32
	}{
		{"pure red", 255, 0, 0, 0, 1},
		{"pure green", 0, 255, 0, 1.0 / 3, 1},
		{"pure blue", 0, 0, 255, 2.0 / 3, 1},
		{"gray has no hue", 128, 128, 128, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hue, sat := rgbToHueSat(tt.r, tt.g, tt.b)
			if math.Abs(float64(hue-tt.wantHue)) > 0.01 {
				t.Errorf("hue = %v, want %v", hue, tt.wantHue)
			}
			if math.Abs(float64(sat-tt.wantSat)) > 0.01 {
				t.Errorf("sat = %v, want %v", sat, tt.wantSat)
			}
		})
	}
}

func TestSampleClampsParticleCap(t *testing.T) {
	img := fill(4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	for _, limit := range []int{0, -5} {
		cfg := baseConfig()
		cfg.MaxParticles = limit

		res, err := Sample(img, cfg)
		if err != nil {
			t.Fatalf("cap %d: %v", limit, err)
		}
		if res.Count() != 1 {
			t.Errorf("cap %d: emitted %d particles, want clamp to 1", limit, res.Count())
		}
	}
}

func TestSampleReportsEffectiveDimensions(t *testing.T) {
	small := fill(16, 8, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	res, err := Sample(small, baseConfig())
	if err != nil {
		t.Fatal(err)
	}
	if res.Width != 16 || res.Height != 8 {
		t.Errorf("dimensions = %dx%d, want 16x8", res.Width, res.Height)
	}

	// Oversized images are downscaled; positions and reported dimensions
	// must agree on the smaller space.
	wide := fill(4096, 8, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	cfg := baseConfig()
	cfg.Stride = 4
	res, err = Sample(wide, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Width != 2048 || res.Height != 4 {
		t.Errorf("dimensions = %dx%d, want downscaled 2048x4", res.Width, res.Height)
	}
	halfW := float32(res.Width) / 2
	for _, p := range res.Positions {
		if p.X < -halfW || p.X > halfW {
			t.Fatalf("position x=%v outside effective half extent %v", p.X, halfW)
		}
	}
}
