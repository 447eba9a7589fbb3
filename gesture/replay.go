package gesture

import (
	"fmt"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r3"
)

// landmarkRow is one CSV record of a recorded tracking session. A frame with
// a detected hand contributes 21 rows sharing a frame number; a frame with no
// detection is a single row with index -1.
type landmarkRow struct {
	Frame     int     `csv:"frame"`
	Timestamp float64 `csv:"t"`
	Index     int     `csv:"index"`
	X         float64 `csv:"x"`
	Y         float64 `csv:"y"`
	Z         float64 `csv:"z"`
}

// ReplaySource plays back a recorded landmark session from CSV, paced by the
// recorded timestamps and looping at the end. It satisfies the hand-landmark
// supplier boundary without a camera.
type ReplaySource struct {
	frames []Frame
	next   int
	loopAt float64 // total recording duration
	offset float64 // elapsed time at the start of the current loop
}

// NewReplaySource loads a recorded session. Fails with ErrSourceUnavailable
// if the file cannot be read or holds no frames.
func NewReplaySource(path string) (*ReplaySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	var rows []landmarkRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	frames := assembleFrames(rows)
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: recording holds no frames", ErrSourceUnavailable)
	}

	// Loop duration: last timestamp plus one average frame gap.
	loopAt := frames[len(frames)-1].Timestamp
	if len(frames) > 1 {
		loopAt += (frames[len(frames)-1].Timestamp - frames[0].Timestamp) / float64(len(frames)-1)
	}
	if loopAt <= 0 {
		loopAt = float64(len(frames)) / 30
	}

	return &ReplaySource{frames: frames, loopAt: loopAt}, nil
}

// assembleFrames groups CSV rows into landmark frames, ordered by frame number.
func assembleFrames(rows []landmarkRow) []Frame {
	byFrame := make(map[int][]landmarkRow)
	order := make([]int, 0)
	for _, row := range rows {
		if _, ok := byFrame[row.Frame]; !ok {
			order = append(order, row.Frame)
		}
		byFrame[row.Frame] = append(byFrame[row.Frame], row)
	}
	sort.Ints(order)

	frames := make([]Frame, 0, len(order))
	for _, n := range order {
		group := byFrame[n]
		frame := Frame{Timestamp: group[0].Timestamp}
		for _, row := range group {
			if row.Index < 0 || row.Index >= NumLandmarks {
				continue
			}
			frame.Landmarks[row.Index] = r3.Vec{X: row.X, Y: row.Y, Z: row.Z}
			frame.Detected = true
		}
		frames = append(frames, frame)
	}
	return frames
}

// Poll returns the latest recorded frame whose timestamp has elapsed,
// skipping past any older due frames so a recording captured faster than the
// render loop never falls behind. Replayed timestamps keep advancing across
// loops so the classifier's de-duplication never sees a repeat.
func (r *ReplaySource) Poll(elapsed float64) (Frame, bool) {
	if len(r.frames) == 0 {
		return Frame{}, false
	}

	base := r.frames[0].Timestamp
	var frame Frame
	var due float64
	found := false
	for {
		if r.next >= len(r.frames) {
			r.next = 0
			r.offset += r.loopAt
		}
		f := r.frames[r.next]
		d := r.offset + (f.Timestamp - base)
		if elapsed < d {
			break
		}
		frame = f
		due = d
		found = true
		r.next++
	}

	if !found {
		return Frame{}, false
	}
	frame.Timestamp = due
	return frame, true
}

// Close releases the source. The recording is fully in memory, so this only
// marks the source empty.
func (r *ReplaySource) Close() error {
	r.frames = nil
	return nil
}
