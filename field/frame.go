package field

// FrameBuffer holds one frame of transformed particle attributes as
// index-aligned parallel arrays, the form the rendering backend consumes.
// Size holds the per-particle size factor (weight times the kernel's size
// multiplier); the renderer applies the configured base size and perspective
// attenuation on top.
type FrameBuffer struct {
	X, Y, Z []float32
	Size    []float32
	R, G, B []float32
}

// Count returns the number of particles in the buffer.
func (b *FrameBuffer) Count() int {
	return len(b.X)
}

// resize grows or trims all arrays to n, reusing capacity.
func (b *FrameBuffer) resize(n int) {
	if cap(b.X) < n {
		b.X = make([]float32, n)
		b.Y = make([]float32, n)
		b.Z = make([]float32, n)
		b.Size = make([]float32, n)
		b.R = make([]float32, n)
		b.G = make([]float32, n)
		b.B = make([]float32, n)
		return
	}
	b.X = b.X[:n]
	b.Y = b.Y[:n]
	b.Z = b.Z[:n]
	b.Size = b.Size[:n]
	b.R = b.R[:n]
	b.G = b.G[:n]
	b.B = b.B[:n]
}
