// Package app wires the particle field engine to its collaborators: config,
// gesture source, camera, renderer, UI, and telemetry.
package app

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/pthm-cable/nebula/camera"
	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/field"
	"github.com/pthm-cable/nebula/gesture"
	"github.com/pthm-cable/nebula/systems"
	"github.com/pthm-cable/nebula/telemetry"
)

// Options configures a run.
type Options struct {
	ImagePath     string // initial image, optional (file drop works too)
	LandmarksPath string // recorded gesture CSV, optional
	OutputDir     string // CSV telemetry directory, empty = disabled
	MaxFrames     int    // stop after N frames, 0 = unlimited
	Headless      bool
}

// App holds the complete application state.
type App struct {
	cfg  *config.Config
	opts Options

	field      *field.Field
	classifier *gesture.Classifier
	source     gesture.Source
	tracking   bool

	cam *camera.Orbit

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	// img is retained so sampling parameter changes can re-sample without a
	// new file load. imgDirty tells the render loop to rebuild the thumbnail
	// texture.
	img      image.Image
	imgDirty bool

	elapsed float64 // field time, frozen while paused
	wall    float64 // wall time since start
	frames  int
	paused  bool
}

// New creates the application. Gesture source failures are non-fatal: the
// engine runs with a permanently inactive signal.
func New(opts Options) (*App, error) {
	cfg := config.Cfg()

	a := &App{
		cfg:        cfg,
		opts:       opts,
		field:      field.New(),
		classifier: gesture.NewClassifier(),
		source:     gesture.NullSource{},
		cam:        camera.New(float32(cfg.Camera.Distance), float32(cfg.Camera.Fovy)),
		perf:       telemetry.NewPerfCollector(120),
		collector:  telemetry.NewCollector(cfg.Telemetry.StatsWindow),
	}

	if opts.LandmarksPath != "" {
		src, err := gesture.NewReplaySource(opts.LandmarksPath)
		if err != nil {
			slog.Warn("gesture source unavailable, running without interaction", "error", err)
		} else {
			a.source = src
			a.tracking = true
		}
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("telemetry output: %w", err)
	}
	a.output = om
	if err := a.output.WriteConfig(cfg); err != nil {
		slog.Warn("config snapshot failed", "error", err)
	}

	if opts.ImagePath != "" {
		if err := a.LoadImageFile(opts.ImagePath); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// LoadImageFile decodes an image from disk and samples it into the field.
// On failure the previous field stays displayed.
func (a *App) LoadImageFile(path string) error {
	img, err := systems.LoadImage(path)
	if err != nil {
		slog.Error("image load failed", "path", path, "error", err)
		return err
	}
	a.img = img
	a.imgDirty = true
	return a.resample()
}

// resample rebuilds the field from the retained image with the current
// sampling configuration.
func (a *App) resample() error {
	if a.img == nil {
		return nil
	}
	count, err := a.field.Load(a.img, a.cfg.Sampling)
	if err != nil {
		slog.Error("sampling failed, keeping previous field", "error", err)
		return err
	}
	slog.Info("resampled", "particles", count)
	return nil
}

// StopTracking releases the gesture source and forces the signal inactive,
// so the blend targets immediately decay toward rest.
func (a *App) StopTracking() {
	if !a.tracking {
		return
	}
	a.source.Close()
	a.source = gesture.NullSource{}
	a.classifier.Deactivate()
	a.tracking = false
	slog.Info("gesture tracking stopped")
}

// step advances one frame of the engine: poll gesture, update blend state,
// transform the field. dt is the frame delta in seconds.
func (a *App) step(dt float64) {
	a.wall += dt
	if !a.paused {
		a.elapsed += dt
	}

	a.perf.StartFrame()
	a.perf.StartPhase(telemetry.PhaseGesture)
	if frame, ok := a.source.Poll(a.wall); ok {
		a.classifier.Classify(frame)
	}
	sig := a.classifier.Signal()

	a.perf.StartPhase(telemetry.PhaseTransform)
	if !a.paused {
		a.field.Step(a.elapsed, sig, a.cfg.Visual)
	}

	a.cam.Update(float32(dt), float32(a.cfg.Camera.AutoRotate))
	a.frames++
}

// recordTelemetry closes stats windows and writes CSV records.
func (a *App) recordTelemetry(frameMs float64) {
	sig := a.classifier.Signal()
	a.collector.RecordFrame(frameMs, sig.Active, sig.Pinching, sig.Closed)

	explosion, blackHole := a.field.Blend()
	if w, ok := a.collector.Window(a.wall, a.field.Count(), explosion, blackHole); ok {
		if a.cfg.Telemetry.LogStats {
			w.LogStats()
			a.perf.Stats().LogStats()
		}
		if err := a.output.WriteWindow(w); err != nil {
			slog.Warn("telemetry write failed", "error", err)
		}
		if err := a.output.WritePerf(a.wall, a.perf.Stats()); err != nil {
			slog.Warn("perf write failed", "error", err)
		}
	}
}

// done reports whether the frame budget is exhausted.
func (a *App) done() bool {
	return a.opts.MaxFrames > 0 && a.frames >= a.opts.MaxFrames
}

// Close releases the gesture source and telemetry outputs.
func (a *App) Close() {
	a.StopTracking()
	a.output.Close()
}
