package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/nebula/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir        string
	framesFile *os.File
	perfFile   *os.File

	framesHeaderWritten bool
	perfHeaderWritten   bool
}

// PerfRecord is one perf.csv row, flattened from a PerfStats window.
type PerfRecord struct {
	WallTimeSec float64 `csv:"wall_time"`
	AvgFrameUs  int64   `csv:"avg_frame_us"`
	MaxFrameUs  int64   `csv:"max_frame_us"`
	GestureUs   int64   `csv:"gesture_us"`
	TransformUs int64   `csv:"transform_us"`
	DrawUs      int64   `csv:"draw_us"`
	FPS         float64 `csv:"fps"`
}

// NewOutputManager creates the output directory and files. Returns nil if
// dir is empty (output disabled); all methods are nil-safe.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	om.framesFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.framesFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML alongside the CSVs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWindow appends a window stats record to frames.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}
	if !om.framesHeaderWritten {
		if err := gocsv.Marshal(records, om.framesFile); err != nil {
			return fmt.Errorf("writing frames.csv: %w", err)
		}
		om.framesHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.framesFile); err != nil {
		return fmt.Errorf("writing frames.csv: %w", err)
	}
	return nil
}

// WritePerf appends a perf window record to perf.csv.
func (om *OutputManager) WritePerf(wallTime float64, stats PerfStats) error {
	if om == nil {
		return nil
	}

	rec := PerfRecord{
		WallTimeSec: wallTime,
		AvgFrameUs:  stats.AvgFrame.Microseconds(),
		MaxFrameUs:  stats.MaxFrame.Microseconds(),
		GestureUs:   stats.PhaseAvg[PhaseGesture].Microseconds(),
		TransformUs: stats.PhaseAvg[PhaseTransform].Microseconds(),
		DrawUs:      stats.PhaseAvg[PhaseDraw].Microseconds(),
		FPS:         stats.FPS,
	}

	records := []PerfRecord{rec}
	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf.csv: %w", err)
		}
		om.perfHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
		return fmt.Errorf("writing perf.csv: %w", err)
	}
	return nil
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() {
	if om == nil {
		return
	}
	om.framesFile.Close()
	om.perfFile.Close()
}
