// Package orbit rotates and zooms a camera around a target from pointer
// input, with a damped zoom.
package orbit

import "cogentcore.org/core/math32"

// Camera is the view a control moves. Renderers wrap their own camera
// object to satisfy it.
type Camera interface {
	Position() math32.Vector3
	Target() math32.Vector3
	Up() math32.Vector3
	SetView(position, target, up math32.Vector3)
}

// ViewCamera is a plain perspective camera.
type ViewCamera struct {
	position math32.Vector3
	target   math32.Vector3
	up       math32.Vector3

	// FOV is the vertical field of view in degrees.
	FOV float32
	// Near is the distance of the near clipping plane.
	Near float32
}

// NewViewCamera returns a camera at position looking at target.
func NewViewCamera(position, target, up math32.Vector3) *ViewCamera {
	return &ViewCamera{
		position: position,
		target:   target,
		up:       up.Normal(),
		FOV:      45,
		Near:     0.1,
	}
}

// Position returns the camera position.
func (c *ViewCamera) Position() math32.Vector3 { return c.position }

// Target returns the point the camera looks at.
func (c *ViewCamera) Target() math32.Vector3 { return c.target }

// Up returns the camera up direction.
func (c *ViewCamera) Up() math32.Vector3 { return c.up }

// SetView moves the camera.
func (c *ViewCamera) SetView(position, target, up math32.Vector3) {
	c.position = position
	c.target = target
	c.up = up.Normal()
}

// Distance returns the distance from the camera to its target.
func (c *ViewCamera) Distance() float32 {
	return c.target.Sub(c.position).Length()
}

// Forward returns the unit view direction.
func (c *ViewCamera) Forward() math32.Vector3 {
	return c.target.Sub(c.position).Normal()
}

// Right returns the unit vector pointing right on screen.
func (c *ViewCamera) Right() math32.Vector3 {
	return c.Forward().Cross(c.up).Normal()
}

// Project maps a world point to normalized device coordinates in [-1, 1]
// with y up, and returns its depth along the view direction. ok is false
// for points behind the near plane.
func (c *ViewCamera) Project(p math32.Vector3, aspect float32) (x, y, depth float32, ok bool) {
	f := c.Forward()
	r := f.Cross(c.up).Normal()
	u := r.Cross(f)

	d := p.Sub(c.position)
	depth = d.Dot(f)
	if depth <= c.Near {
		return 0, 0, depth, false
	}
	s := 1 / math32.Tan(math32.DegToRad(c.FOV)/2)
	x = d.Dot(r) * s / (depth * aspect)
	y = d.Dot(u) * s / depth
	return x, y, depth, true
}
