// Package gesture reduces per-frame hand landmarks into the simplified
// interaction signal consumed by the field state machine.
package gesture

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Landmark count and indices follow the standard 21-point hand topology:
// wrist at 0, then four joints per finger from thumb to pinky.
const (
	NumLandmarks = 21

	idxWrist     = 0
	idxThumbTip  = 4
	idxIndexMCP  = 5
	idxIndexTip  = 8
	idxMiddleMCP = 9
	idxMiddleTip = 12
	idxRingMCP   = 13
	idxRingTip   = 16
	idxPinkyMCP  = 17
	idxPinkyTip  = 20
)

// Empirically tuned thresholds, preserved as-is for behavioral parity.
const (
	// pinchThreshold is the max tip distance, in normalized landmark units,
	// for index and thumb to count as pinching.
	pinchThreshold = 0.05

	// curlRatio compares a fingertip's wrist distance against its knuckle's.
	// This is a ratio heuristic, not an angle measurement: tolerant of hand
	// scale, but sensitive to forward/backward wrist tilt.
	curlRatio = 1.1

	// curledFingersForFist is how many of the four non-thumb fingers must be
	// curled for a closed fist.
	curledFingersForFist = 3
)

// Frame is one sample from a hand-landmark supplier. Landmark x/y are in
// normalized [0,1] image space; z is the supplier's unspecified depth scale.
// Detected is false when no hand was found in the frame.
type Frame struct {
	Landmarks [NumLandmarks]r3.Vec
	Timestamp float64 // presentation time, seconds
	Detected  bool
}

// InteractionSignal is the classifier output. It is overwritten every
// processed frame; callers consume it and must not retain it. When Active is
// false the position fields hold their last values for continuity but must
// not be trusted.
type InteractionSignal struct {
	Active   bool
	X, Y     float32 // normalized device coordinates in [-1, 1]
	Depth    float32 // raw landmark depth
	Pinching bool
	Closed   bool
}

// Classifier turns landmark frames into interaction signals. It keeps the
// last signal and the last processed timestamp for frame de-duplication.
type Classifier struct {
	sig    InteractionSignal
	lastTS float64
	seen   bool
}

// NewClassifier returns a classifier with an inactive signal.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Signal returns the most recent classification.
func (c *Classifier) Signal() InteractionSignal {
	return c.sig
}

// Deactivate forces the signal inactive, as when tracking stops. Position
// fields are left as-is; consumers must ignore them while inactive.
func (c *Classifier) Deactivate() {
	c.sig.Active = false
}

// Classify processes one frame and returns the updated signal. Re-running on
// a frame with the same presentation timestamp as the previous one is a
// no-op, so a supplier running slower than the render loop costs nothing.
func (c *Classifier) Classify(f Frame) InteractionSignal {
	if c.seen && f.Timestamp == c.lastTS {
		return c.sig
	}
	c.lastTS = f.Timestamp
	c.seen = true

	if !f.Detected {
		c.sig.Active = false
		return c.sig
	}

	lm := &f.Landmarks

	pinchDist := r3.Norm(r3.Sub(lm[idxIndexTip], lm[idxThumbTip]))

	wrist := lm[idxWrist]
	curled := 0
	for _, finger := range [4][2]int{
		{idxIndexTip, idxIndexMCP},
		{idxMiddleTip, idxMiddleMCP},
		{idxRingTip, idxRingMCP},
		{idxPinkyTip, idxPinkyMCP},
	} {
		tipDist := r3.Norm(r3.Sub(lm[finger[0]], wrist))
		mcpDist := r3.Norm(r3.Sub(lm[finger[1]], wrist))
		if tipDist < curlRatio*mcpDist {
			curled++
		}
	}

	// Palm position, mirrored and inverted into NDC so on-screen motion
	// matches the camera's view of the hand.
	palm := lm[idxMiddleMCP]

	c.sig = InteractionSignal{
		Active:   true,
		X:        float32(-(palm.X*2 - 1)),
		Y:        float32(-(palm.Y*2 - 1)),
		Depth:    float32(palm.Z),
		Pinching: pinchDist < pinchThreshold,
		Closed:   curled >= curledFingersForFist,
	}
	return c.sig
}
