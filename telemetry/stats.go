package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated field statistics for one stats window.
type WindowStats struct {
	WallTimeSec float64 `csv:"wall_time"`
	Frames      int     `csv:"frames"`

	Particles int `csv:"particles"`

	// Blend factors at window end
	Explosion float64 `csv:"explosion"`
	BlackHole float64 `csv:"black_hole"`

	// Interaction during window
	ActiveFrames int `csv:"active_frames"`
	PinchFrames  int `csv:"pinch_frames"`
	FistFrames   int `csv:"fist_frames"`

	// Frame time distribution, milliseconds
	FrameMeanMs float64 `csv:"frame_mean_ms"`
	FrameP50Ms  float64 `csv:"frame_p50_ms"`
	FrameP95Ms  float64 `csv:"frame_p95_ms"`
}

// ComputeFrameTimes fills the frame time distribution from raw samples in
// milliseconds. The input slice is sorted in place.
func (w *WindowStats) ComputeFrameTimes(ms []float64) {
	if len(ms) == 0 {
		return
	}
	sort.Float64s(ms)
	w.FrameMeanMs = stat.Mean(ms, nil)
	w.FrameP50Ms = stat.Quantile(0.5, stat.Empirical, ms, nil)
	w.FrameP95Ms = stat.Quantile(0.95, stat.Empirical, ms, nil)
}

// LogStats emits the window via slog.
func (w WindowStats) LogStats() {
	slog.Info("window",
		"wall_time", w.WallTimeSec,
		"frames", w.Frames,
		"particles", w.Particles,
		"explosion", w.Explosion,
		"black_hole", w.BlackHole,
		"active_frames", w.ActiveFrames,
		"frame_mean_ms", w.FrameMeanMs,
		"frame_p95_ms", w.FrameP95Ms,
	)
}

// Collector accumulates per-frame observations into window stats.
type Collector struct {
	windowSec float64

	windowStart float64
	frames      int
	active      int
	pinch       int
	fist        int
	frameTimes  []float64
}

// NewCollector creates a collector with the given window length in seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 5
	}
	return &Collector{windowSec: windowSec}
}

// RecordFrame adds one frame's observations. frameMs is the frame duration
// in milliseconds.
func (c *Collector) RecordFrame(frameMs float64, active, pinching, closed bool) {
	c.frames++
	c.frameTimes = append(c.frameTimes, frameMs)
	if active {
		c.active++
	}
	if pinching {
		c.pinch++
	}
	if closed {
		c.fist++
	}
}

// Window closes the current window if windowSec has elapsed since the last
// one, returning the stats and true. Counters reset on close.
func (c *Collector) Window(wallTime float64, particles int, explosion, blackHole float32) (WindowStats, bool) {
	if wallTime-c.windowStart < c.windowSec || c.frames == 0 {
		return WindowStats{}, false
	}

	w := WindowStats{
		WallTimeSec:  wallTime,
		Frames:       c.frames,
		Particles:    particles,
		Explosion:    float64(explosion),
		BlackHole:    float64(blackHole),
		ActiveFrames: c.active,
		PinchFrames:  c.pinch,
		FistFrames:   c.fist,
	}
	w.ComputeFrameTimes(c.frameTimes)

	c.windowStart = wallTime
	c.frames = 0
	c.active = 0
	c.pinch = 0
	c.fist = 0
	c.frameTimes = c.frameTimes[:0]
	return w, true
}
