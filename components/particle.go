// Package components defines ECS components for the particle field.
package components

// BasePosition is a particle's object-space rest position, centered on the
// sampled image's centroid. Never mutated after sampling; the per-frame
// transform reads it and writes its output elsewhere.
type BasePosition struct {
	X, Y, Z float32
}

// BaseColor holds normalized channel intensities copied from the source pixel.
type BaseColor struct {
	R, G, B float32
}

// SizeWeight is the particle's normalized source brightness, used as a size
// multiplier at render time.
type SizeWeight struct {
	W float32
}
