// Package camera provides an orbit camera around the particle field origin.
package camera

import "math"

// Pitch is clamped short of the poles so the view never flips.
const maxPitch = 1.45

// Orbit positions the viewpoint on a sphere around the origin, with optional
// continuous auto-rotation and mouse-driven yaw/pitch/zoom.
type Orbit struct {
	Yaw      float32 // radians around the vertical axis
	Pitch    float32 // radians above the horizontal plane
	Distance float32

	MinDistance, MaxDistance float32
	Fovy                     float32 // vertical field of view, degrees
}

// New creates an orbit camera at the given distance, level with the field.
func New(distance, fovy float32) *Orbit {
	return &Orbit{
		Distance:    distance,
		MinDistance: distance * 0.1,
		MaxDistance: distance * 5,
		Fovy:        fovy,
	}
}

// Update advances auto-rotation by dt seconds at the given yaw rate.
func (o *Orbit) Update(dt, autoRotate float32) {
	o.Yaw += autoRotate * dt
	if o.Yaw > 2*math.Pi {
		o.Yaw -= 2 * math.Pi
	}
	if o.Yaw < 0 {
		o.Yaw += 2 * math.Pi
	}
}

// Drag applies a mouse drag in pixels to yaw and pitch.
func (o *Orbit) Drag(dx, dy float32) {
	o.Yaw -= dx * 0.005
	o.Pitch += dy * 0.005
	if o.Pitch > maxPitch {
		o.Pitch = maxPitch
	}
	if o.Pitch < -maxPitch {
		o.Pitch = -maxPitch
	}
}

// Zoom applies a scroll wheel step, clamped to the distance range.
func (o *Orbit) Zoom(wheel float32) {
	o.Distance *= 1 - wheel*0.1
	if o.Distance < o.MinDistance {
		o.Distance = o.MinDistance
	}
	if o.Distance > o.MaxDistance {
		o.Distance = o.MaxDistance
	}
}

// Position returns the viewpoint in world space. The camera always looks at
// the origin with +y up.
func (o *Orbit) Position() (x, y, z float32) {
	cp := float32(math.Cos(float64(o.Pitch)))
	sp := float32(math.Sin(float64(o.Pitch)))
	sy := float32(math.Sin(float64(o.Yaw)))
	cy := float32(math.Cos(float64(o.Yaw)))
	return o.Distance * cp * sy, o.Distance * sp, o.Distance * cp * cy
}

// Basis returns the view basis vectors: forward toward the origin, right,
// and up, all unit length. The renderer projects particles with these.
func (o *Orbit) Basis() (fwd, right, up [3]float32) {
	cx, cy, cz := o.Position()
	fwd = normalize([3]float32{-cx, -cy, -cz})
	right = normalize(cross(fwd, [3]float32{0, 1, 0}))
	up = cross(right, fwd)
	return fwd, right, up
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float32) [3]float32 {
	d := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if d == 0 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{v[0] / d, v[1] / d, v[2] / d}
}
