package field

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/nebula/components"
	"github.com/pthm-cable/nebula/systems"
)

// parallelThreshold is the minimum particle count to fan the kernel out over
// worker goroutines. Below this, single-threaded is faster due to goroutine
// overhead.
const parallelThreshold = 4096

// particleSnapshot captures one particle's read-only base attributes for the
// kernel pass.
type particleSnapshot struct {
	pos    components.BasePosition
	col    components.BaseColor
	weight float32
}

// applyKernel runs the per-particle transform over the snapshot, writing
// index-aligned results into out. Chunks are independent; every particle's
// output depends only on its own base attributes and the shared input.
func applyKernel(particles []particleSnapshot, in *systems.KernelInput, out *FrameBuffer) {
	n := len(particles)
	if n < parallelThreshold {
		kernelChunk(particles, 0, n, in, out)
		return
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			kernelChunk(particles, start, end, in, out)
		}(start, end)
	}
	wg.Wait()
}

// kernelChunk transforms particles [start, end).
func kernelChunk(particles []particleSnapshot, start, end int, in *systems.KernelInput, out *FrameBuffer) {
	for i := start; i < end; i++ {
		p := &particles[i]
		x, y, z, sizeMul, col := systems.TransformParticle(p.pos, p.col, in)
		out.X[i] = x
		out.Y[i] = y
		out.Z[i] = z
		out.Size[i] = p.weight * sizeMul
		out.R[i] = col.R
		out.G[i] = col.G
		out.B[i] = col.B
	}
}
