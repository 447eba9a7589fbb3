package systems

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/pthm-cable/nebula/components"
	"github.com/pthm-cable/nebula/config"
)

// maxSampleDim caps the image size fed to the pixel loop. Larger images are
// downscaled first, preserving aspect ratio. A performance bound only.
const maxSampleDim = 2048

// alphaCutoff discards nearly transparent pixels regardless of brightness.
const alphaCutoff = 50

// ErrDecode reports that the source image could not be decoded or read.
// The caller must keep the previous field; no partial buffer is produced.
var ErrDecode = errors.New("sampler: image decode failed")

// SampleResult is the particle attribute buffer produced from one image.
// The three slices are index-aligned and immutable after creation.
// Width and Height are the effective pixel dimensions positions were emitted
// in, which differ from the source image's when it was downscaled; anything
// mapping external coordinates into the field must use these, not the
// source bounds.
type SampleResult struct {
	Positions []components.BasePosition
	Colors    []components.BaseColor
	Weights   []components.SizeWeight

	Width, Height int
}

// Count returns the number of accepted particles.
func (r *SampleResult) Count() int {
	return len(r.Positions)
}

// LoadImage decodes a raster image from disk.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// Sample converts a decoded image into a particle attribute buffer.
//
// Pixels are visited on a grid with the configured stride. A pixel is
// accepted when its perceived brightness clears the threshold and it is not
// nearly transparent. Depth comes from the configured mode. Sampling stops
// silently once MaxParticles is reached.
func Sample(img image.Image, cfg config.SamplingConfig) (*SampleResult, error) {
	if img == nil {
		return nil, ErrDecode
	}

	rgba := normalizeImage(img)
	bounds := rgba.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty pixel buffer", ErrDecode)
	}

	stride := cfg.Stride
	if stride < 1 {
		stride = 1
	}
	maxParticles := cfg.MaxParticles
	if maxParticles < 1 {
		maxParticles = 1
	}
	mode := cfg.Mode()
	threshold := float32(cfg.Threshold)
	depthRange := float32(cfg.DepthRange)
	noiseStrength := float32(cfg.NoiseStrength)

	halfW := float32(w) / 2
	halfH := float32(h) / 2
	// Furthest possible pixel distance from the image center, for radial mode.
	maxDist := sqrt32(halfW*halfW + halfH*halfH)
	if maxDist == 0 {
		maxDist = 1
	}

	est := (w/stride + 1) * (h/stride + 1)
	if est > maxParticles {
		est = maxParticles
	}
	res := &SampleResult{
		Positions: make([]components.BasePosition, 0, est),
		Colors:    make([]components.BaseColor, 0, est),
		Weights:   make([]components.SizeWeight, 0, est),
		Width:     w,
		Height:    h,
	}

	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			i := rgba.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			r := rgba.Pix[i]
			g := rgba.Pix[i+1]
			b := rgba.Pix[i+2]
			a := rgba.Pix[i+3]

			brightness := 0.299*float32(r) + 0.587*float32(g) + 0.114*float32(b)
			if brightness < threshold || a < alphaCutoff {
				continue
			}

			nb := brightness / 255

			var z float32
			switch mode {
			case config.DepthBrightness:
				z = nb * depthRange
			case config.DepthInverseBrightness:
				z = (1 - nb) * depthRange
			case config.DepthHue:
				hue, _ := rgbToHueSat(r, g, b)
				z = hue * depthRange
			case config.DepthSaturation:
				_, sat := rgbToHueSat(r, g, b)
				z = sat * depthRange
			case config.DepthPerlin:
				z = nb*depthRange/2 + Noise2(float32(x)*0.01, float32(y)*0.01)*noiseStrength
			case config.DepthRadial:
				dx := float32(x) - halfW
				dy := float32(y) - halfH
				z = (1 - sqrt32(dx*dx+dy*dy)/maxDist) * depthRange
			case config.DepthLayered:
				band := int(nb * 4)
				if band > 3 {
					band = 3
				}
				z = layeredBands[band] * depthRange
			}
			if cfg.DepthInvert {
				z = -z
			}

			// Center on the image, flipping y so image-up maps to +y.
			res.Positions = append(res.Positions, components.BasePosition{
				X: float32(x) - halfW,
				Y: halfH - float32(y),
				Z: z,
			})
			res.Colors = append(res.Colors, components.BaseColor{
				R: float32(r) / 255,
				G: float32(g) / 255,
				B: float32(b) / 255,
			})
			res.Weights = append(res.Weights, components.SizeWeight{W: nb})

			if res.Count() >= maxParticles {
				return res, nil
			}
		}
	}

	return res, nil
}

// layeredBands quantizes brightness into four depth layers.
var layeredBands = [4]float32{0, 0.33, 0.66, 1}

// normalizeImage converts the source to RGBA, downscaling so neither
// dimension exceeds maxSampleDim.
func normalizeImage(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxSampleDim && h <= maxSampleDim {
		if rgba, ok := img.(*image.RGBA); ok {
			return rgba
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Src)
		return dst
	}

	scale := float64(maxSampleDim) / float64(w)
	if h > w {
		scale = float64(maxSampleDim) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// rgbToHueSat converts 8-bit RGB to HSL hue and saturation, both in [0, 1].
func rgbToHueSat(r8, g8, b8 uint8) (hue, sat float32) {
	r := float32(r8) / 255
	g := float32(g8) / 255
	b := float32(b8) / 255

	maxC := r
	if g > maxC {
		maxC = g
	}
	if b > maxC {
		maxC = b
	}
	minC := r
	if g < minC {
		minC = g
	}
	if b < minC {
		minC = b
	}

	delta := maxC - minC
	if delta == 0 {
		return 0, 0
	}

	light := (maxC + minC) / 2
	sat = delta / (1 - abs32(2*light-1))

	switch maxC {
	case r:
		hue = (g - b) / delta
		if hue < 0 {
			hue += 6
		}
	case g:
		hue = (b-r)/delta + 2
	default:
		hue = (r-g)/delta + 4
	}
	hue /= 6

	return hue, sat
}
