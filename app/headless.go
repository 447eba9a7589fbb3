package app

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/nebula/telemetry"
)

// headlessDT is the fixed step used without a display refresh to pace us.
const headlessDT = 1.0 / 60.0

// RunHeadless drives the engine without graphics at a fixed step, for
// deterministic soak runs and telemetry capture. Requires MaxFrames.
func (a *App) RunHeadless() {
	if a.opts.MaxFrames <= 0 {
		slog.Error("headless mode requires -max-frames")
		return
	}

	slog.Info("starting headless run",
		"max_frames", a.opts.MaxFrames,
		"particles", a.field.Count(),
	)

	for !a.done() {
		frameStart := time.Now()
		a.step(headlessDT)
		a.perf.StartPhase(telemetry.PhaseDraw) // no draw; closes the transform phase
		a.perf.EndFrame()
		a.recordTelemetry(float64(time.Since(frameStart)) / float64(time.Millisecond))
	}

	a.perf.Stats().LogStats()
}
