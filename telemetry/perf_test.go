package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorPhases(t *testing.T) {
	p := NewPerfCollector(10)

	p.StartFrame()
	p.StartPhase(PhaseGesture)
	time.Sleep(time.Millisecond)
	p.StartPhase(PhaseTransform)
	time.Sleep(time.Millisecond)
	p.EndFrame()

	stats := p.Stats()
	if stats.AvgFrame <= 0 {
		t.Error("average frame duration should be positive")
	}
	if stats.PhaseAvg[PhaseGesture] <= 0 {
		t.Error("gesture phase should have recorded time")
	}
	if stats.PhaseAvg[PhaseTransform] <= 0 {
		t.Error("transform phase should have recorded time")
	}
	if stats.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if stats.AvgFrame < stats.PhaseAvg[PhaseGesture] {
		t.Error("frame duration cannot be shorter than one of its phases")
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	p := NewPerfCollector(4)
	for i := 0; i < 10; i++ {
		p.StartFrame()
		p.EndFrame()
	}
	if p.sampleCount != 4 {
		t.Errorf("sample count = %d, want capped at window size 4", p.sampleCount)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(10)
	stats := p.Stats()
	if stats.AvgFrame != 0 || stats.FPS != 0 {
		t.Error("stats with no samples should be zero")
	}
}

func TestPerfCollectorMaxFrame(t *testing.T) {
	p := NewPerfCollector(10)

	p.StartFrame()
	p.EndFrame()
	p.StartFrame()
	time.Sleep(2 * time.Millisecond)
	p.EndFrame()

	stats := p.Stats()
	if stats.MaxFrame < stats.AvgFrame {
		t.Error("max frame cannot be below the average")
	}
	if stats.MaxFrame < 2*time.Millisecond {
		t.Errorf("max frame = %v, want at least the slept 2ms", stats.MaxFrame)
	}
}
