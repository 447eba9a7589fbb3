package gesture

import "errors"

// ErrSourceUnavailable reports that a landmark supplier could not be opened.
// The engine continues with a permanently inactive signal.
var ErrSourceUnavailable = errors.New("gesture: landmark source unavailable")

// Source supplies hand-landmark frames. Poll is non-blocking: it returns the
// frame due at the given elapsed time and true, or false when no new frame is
// available yet. The render loop must never wait on a source.
type Source interface {
	Poll(elapsed float64) (Frame, bool)
	Close() error
}

// NullSource is the degraded-mode supplier used when no tracking is
// available. It never produces a frame, leaving the signal inactive.
type NullSource struct{}

// Poll always reports no frame.
func (NullSource) Poll(elapsed float64) (Frame, bool) { return Frame{}, false }

// Close is a no-op.
func (NullSource) Close() error { return nil }
