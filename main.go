package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/nebula/app"
	"github.com/pthm-cable/nebula/config"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	imagePath := flag.String("image", "", "Image to sample on startup")
	landmarksPath := flag.String("landmarks", "", "Recorded hand-landmark CSV for gesture replay")
	outputDir := flag.String("output-dir", "", "Output directory for CSV telemetry and config snapshot")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	headless := flag.Bool("headless", false, "Run without graphics (requires -max-frames)")
	logStats := flag.Bool("log-stats", false, "Emit window stats via slog")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *logStats {
		cfg.Telemetry.LogStats = true
	}

	// Structured JSON logging to stdout
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	a, err := app.New(app.Options{
		ImagePath:     *imagePath,
		LandmarksPath: *landmarksPath,
		OutputDir:     *outputDir,
		MaxFrames:     *maxFrames,
		Headless:      *headless,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if *headless {
		a.RunHeadless()
		return
	}
	a.Run()
}
