// Package field owns the particle attribute buffer and drives the per-frame
// transform that turns base attributes into rendered positions, sizes, and
// colors.
package field

import (
	"image"
	"log/slog"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/nebula/components"
	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/gesture"
	"github.com/pthm-cable/nebula/systems"
)

// handDepthScale converts the supplier's normalized hand depth into world
// units along the view axis.
const handDepthScale = 100

// store is one sampled image's particle world. Replaced wholesale on
// re-sample, never mutated after creation.
type store struct {
	world  *ecs.World
	mapper *ecs.Map3[components.BasePosition, components.BaseColor, components.SizeWeight]
	filter *ecs.Filter3[components.BasePosition, components.BaseColor, components.SizeWeight]
	count  int

	// Half extents of the sampled pixel space in world units, for mapping
	// the normalized interaction point into the field's plane.
	halfW, halfH float32
}

// Field is the scene-owned particle field: the current store, the blend
// state machine, and the per-frame output buffer. Replacing the store on
// re-sample is atomic from the transform's perspective.
type Field struct {
	mu    sync.Mutex
	store *store

	blend   systems.BlendState
	frame   *FrameBuffer
	scratch []particleSnapshot
}

// New returns an empty field. Step on an empty field is a no-op.
func New() *Field {
	return &Field{frame: &FrameBuffer{}}
}

// Load samples an image into a fresh particle store and swaps it in. The
// previous store stays visible until the new one is fully built; on error
// nothing changes.
func (f *Field) Load(img image.Image, cfg config.SamplingConfig) (int, error) {
	res, err := systems.Sample(img, cfg)
	if err != nil {
		return 0, err
	}

	st := buildStore(res)
	// Positions are emitted in the sampler's effective pixel space, which is
	// smaller than the source image's when it was downscaled. The interaction
	// mapping must match it or the hand overshoots the field.
	st.halfW = float32(res.Width) / 2
	st.halfH = float32(res.Height) / 2

	f.mu.Lock()
	f.store = st
	f.blend = systems.BlendState{}
	f.mu.Unlock()

	slog.Info("field loaded",
		"particles", st.count,
		"depth_mode", cfg.Mode().String(),
		"stride", cfg.Stride,
	)
	return st.count, nil
}

// buildStore spawns one entity per sampled particle.
func buildStore(res *systems.SampleResult) *store {
	world := ecs.NewWorld()
	st := &store{
		world:  world,
		mapper: ecs.NewMap3[components.BasePosition, components.BaseColor, components.SizeWeight](world),
		filter: ecs.NewFilter3[components.BasePosition, components.BaseColor, components.SizeWeight](world),
		count:  res.Count(),
	}
	for i := range res.Positions {
		st.mapper.NewEntity(&res.Positions[i], &res.Colors[i], &res.Weights[i])
	}
	return st
}

// Count returns the number of particles in the current store.
func (f *Field) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.store == nil {
		return 0
	}
	return f.store.count
}

// Blend returns the current blend factors (explosion, black hole).
func (f *Field) Blend() (float32, float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blend.ExplosionCurrent, f.blend.BlackHoleCurrent
}

// Frame returns the latest transform output. The buffer is valid until the
// next Step call.
func (f *Field) Frame() *FrameBuffer {
	return f.frame
}

// Step advances the blend state from the latest interaction signal and
// recomputes every particle's rendered attributes for elapsed time t.
func (f *Field) Step(t float64, sig gesture.InteractionSignal, vis config.VisualConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.blend.Update(sig)

	st := f.store
	if st == nil || st.count == 0 {
		f.frame.resize(0)
		return
	}

	in := systems.KernelInput{
		E:                   f.blend.ExplosionCurrent,
		H:                   f.blend.BlackHoleCurrent,
		T:                   float32(t),
		HandActive:          sig.Active,
		HandX:               sig.X * st.halfW,
		HandY:               sig.Y * st.halfH,
		HandZ:               sig.Depth * handDepthScale,
		InteractionRadius:   float32(vis.InteractionRadius),
		InteractionStrength: float32(vis.InteractionStrength),
	}

	// Snapshot base attributes out of the ECS, then run the kernel over
	// chunks in parallel.
	f.scratch = f.scratch[:0]
	query := st.filter.Query()
	for query.Next() {
		pos, col, w := query.Get()
		f.scratch = append(f.scratch, particleSnapshot{pos: *pos, col: *col, weight: w.W})
	}

	f.frame.resize(len(f.scratch))
	applyKernel(f.scratch, &in, f.frame)
}
