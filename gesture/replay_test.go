package gesture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeRecording writes a two-frame session: a detected hand at t=0 and a
// no-detection frame at t=0.1.
func writeRecording(t *testing.T) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("frame,t,index,x,y,z\n")
	for i := 0; i < NumLandmarks; i++ {
		fmt.Fprintf(&b, "0,0,%d,%.2f,%.2f,0\n", i, 0.5, 0.5)
	}
	b.WriteString("1,0.1,-1,0,0,0\n")

	path := filepath.Join(t.TempDir(), "session.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReplaySourceMissingFile(t *testing.T) {
	_, err := NewReplaySource(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing recording")
	}
}

func TestReplayPacing(t *testing.T) {
	src, err := NewReplaySource(writeRecording(t))
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	frame, ok := src.Poll(0)
	if !ok || !frame.Detected {
		t.Fatal("first frame should be available at t=0 and detected")
	}

	if _, ok := src.Poll(0.05); ok {
		t.Error("second frame must not be delivered before its timestamp")
	}

	frame, ok = src.Poll(0.15)
	if !ok {
		t.Fatal("second frame should be available at t=0.15")
	}
	if frame.Detected {
		t.Error("second frame is a no-detection frame")
	}
}

func TestReplayLoopTimestampsAdvance(t *testing.T) {
	src, err := NewReplaySource(writeRecording(t))
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	var last float64
	seen := 0
	for elapsed := 0.0; elapsed < 1.0; elapsed += 0.05 {
		frame, ok := src.Poll(elapsed)
		if !ok {
			continue
		}
		if seen > 0 && frame.Timestamp <= last {
			t.Fatalf("timestamp %v did not advance past %v across loops", frame.Timestamp, last)
		}
		last = frame.Timestamp
		seen++
	}
	if seen < 4 {
		t.Errorf("expected the recording to loop, delivered %d frames", seen)
	}
}

func TestReplayCloseStopsDelivery(t *testing.T) {
	src, err := NewReplaySource(writeRecording(t))
	if err != nil {
		t.Fatal(err)
	}
	src.Close()
	if _, ok := src.Poll(10); ok {
		t.Error("closed source must not deliver frames")
	}
}

func TestNullSource(t *testing.T) {
	var src Source = NullSource{}
	if _, ok := src.Poll(100); ok {
		t.Error("null source must never produce a frame")
	}
	if err := src.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
}

func TestReplayCatchesUpToElapsed(t *testing.T) {
	// A recording captured at 100 fps, polled far less often: delivery must
	// skip to the latest due frame instead of draining one per poll.
	var b strings.Builder
	b.WriteString("frame,t,index,x,y,z\n")
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "%d,%.3f,-1,0,0,0\n", i, float64(i)*0.01)
	}
	path := filepath.Join(t.TempDir(), "fast.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := NewReplaySource(path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	if _, ok := src.Poll(0); !ok {
		t.Fatal("first frame should be due at t=0")
	}

	frame, ok := src.Poll(0.5)
	if !ok {
		t.Fatal("a frame should be due at t=0.5")
	}
	if frame.Timestamp < 0.48 {
		t.Errorf("delivered frame from t=%v for elapsed 0.5; replay fell behind", frame.Timestamp)
	}
	if frame.Timestamp > 0.5 {
		t.Errorf("delivered frame from t=%v before it was due", frame.Timestamp)
	}
}
