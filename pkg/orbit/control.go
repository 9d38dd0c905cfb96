package orbit

import (
	"errors"
	"fmt"
	"time"

	"cogentcore.org/core/math32"

	"github.com/SeamusWaldron/cubeviz/pkg/dynamics"
)

// ErrInvalidSettings is returned by New for settings that would break the
// zoom soft clamp or the zoom dynamics.
var ErrInvalidSettings = errors.New("orbit: invalid settings")

// MinZoomFloor is the smallest allowed MinZoom. Below MinZoom the camera
// distance approaches MinZoom - MinZoomFloor, so it never reaches the
// target.
const MinZoomFloor = 1.5

const (
	maxScrollStep   = 1.8
	orbitEpsilon    = 0.001
	zoomEpsilon     = 0.005
	dragBrake       = 0.2
	softClampCurve  = 0.2
	softClampOffset = 10.0 / 3.0
)

// Settings configure a SmoothOrbitControl.
type Settings struct {
	// OrbitDecayRate sets how fast the orbit coasts to a stop after the
	// button is released.
	OrbitDecayRate float32 `toml:"orbit_decay_rate" yaml:"orbit_decay_rate" json:"orbit_decay_rate"`

	// Sensitivity scales drag distance into orbit speed.
	Sensitivity float32 `toml:"sensitivity" yaml:"sensitivity" json:"sensitivity"`

	// ScrollSensitivity scales wheel deltas into zoom steps.
	ScrollSensitivity float32 `toml:"scroll_sensitivity" yaml:"scroll_sensitivity" json:"scroll_sensitivity"`

	// MaxOrbitSpeed caps the orbit speed on each axis.
	MaxOrbitSpeed float32 `toml:"max_orbit_speed" yaml:"max_orbit_speed" json:"max_orbit_speed"`

	// MinZoom and MaxZoom bound the zoom target distance.
	MinZoom float32 `toml:"min_zoom" yaml:"min_zoom" json:"min_zoom"`
	MaxZoom float32 `toml:"max_zoom" yaml:"max_zoom" json:"max_zoom"`

	// Zoom configures the zoom smoothing.
	Zoom dynamics.Params `toml:"zoom" yaml:"zoom" json:"zoom"`
}

// DefaultSettings returns the standard tuning.
func DefaultSettings() Settings {
	return Settings{
		OrbitDecayRate:    0.25,
		Sensitivity:       1.6,
		ScrollSensitivity: 1.5,
		MaxOrbitSpeed:     1.2,
		MinZoom:           2,
		MaxZoom:           15,
		Zoom:              dynamics.DefaultParams(),
	}
}

// Validate checks the settings.
func (s Settings) Validate() error {
	if s.MinZoom < MinZoomFloor {
		return fmt.Errorf("%w: min zoom %v below %v", ErrInvalidSettings, s.MinZoom, MinZoomFloor)
	}
	if s.MaxZoom < s.MinZoom {
		return fmt.Errorf("%w: max zoom %v below min zoom %v", ErrInvalidSettings, s.MaxZoom, s.MinZoom)
	}
	if s.MaxOrbitSpeed < 0 || s.OrbitDecayRate < 0 {
		return fmt.Errorf("%w: negative orbit speed or decay", ErrInvalidSettings)
	}
	if err := s.Zoom.Validate(); err != nil {
		return fmt.Errorf("%w: zoom: %w", ErrInvalidSettings, err)
	}
	return nil
}

// SmoothOrbitControl turns left-drag into a coasting orbit around a target
// and the wheel into a damped zoom.
type SmoothOrbitControl struct {
	target   math32.Vector3
	settings Settings

	rotationSpeed math32.Vector2
	pressed       bool

	hardZoom float32
	softZoom *dynamics.SecondOrderSystem[dynamics.Scalar]
	currZoom float32

	moved bool
}

// New returns a control orbiting target, starting at the camera's current
// distance from it.
func New(target math32.Vector3, cam Camera, settings Settings) (*SmoothOrbitControl, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	dist := cam.Position().Sub(target).Length()
	soft, err := dynamics.New(settings.Zoom, dynamics.Scalar(dist))
	if err != nil {
		return nil, err
	}
	return &SmoothOrbitControl{
		target:   target,
		settings: settings,
		hardZoom: dist,
		softZoom: soft,
		currZoom: dist,
	}, nil
}

// Target returns the orbit center.
func (c *SmoothOrbitControl) Target() math32.Vector3 { return c.target }

// Settings returns the control settings.
func (c *SmoothOrbitControl) Settings() Settings { return c.settings }

// HardZoom returns the clamped, unsmoothed zoom distance set by the wheel.
func (c *SmoothOrbitControl) HardZoom() float32 { return c.hardZoom }

// SoftZoom returns the smoothed zoom distance before the soft clamp.
func (c *SmoothOrbitControl) SoftZoom() float32 { return float32(c.softZoom.Value()) }

// RotationSpeed returns the current orbit speed in radians per frame.
func (c *SmoothOrbitControl) RotationSpeed() math32.Vector2 { return c.rotationSpeed }

// Dragging reports whether the left button is held.
func (c *SmoothOrbitControl) Dragging() bool { return c.pressed }

// Moved reports whether the last HandleEvents call moved the camera. It
// goes false once the orbit has coasted to a stop and the zoom settled.
func (c *SmoothOrbitControl) Moved() bool { return c.moved }

// HandleEvents consumes the unhandled left button, left drag and wheel
// events of one frame, marking them handled, and then advances the orbit
// and zoom by dt. It returns true if any event was consumed.
func (c *SmoothOrbitControl) HandleEvents(cam Camera, events []Event, dt time.Duration) bool {
	changed := false
	var drag, scroll *math32.Vector2
	for i := range events {
		e := &events[i]
		if e.Handled {
			continue
		}
		switch {
		case e.Kind == MouseMotion && e.Button == ButtonLeft:
			drag = accumulate(drag, e.Delta)
			e.Handled = true
			changed = true
		case e.Kind == MousePress && e.Button == ButtonLeft:
			c.pressed = true
			e.Handled = true
			changed = true
		case e.Kind == MouseRelease && e.Button == ButtonLeft:
			c.pressed = false
			e.Handled = true
		case e.Kind == MouseWheel:
			scroll = accumulate(scroll, e.Delta)
			e.Handled = true
			changed = true
		}
	}
	c.moved = c.frame(cam, drag, scroll, dt)
	return changed
}

func accumulate(sum *math32.Vector2, d math32.Vector2) *math32.Vector2 {
	if sum == nil {
		return &d
	}
	v := sum.Add(d)
	return &v
}

// frame advances the orbit and zoom by dt and reports whether the camera
// moved.
func (c *SmoothOrbitControl) frame(cam Camera, drag, scroll *math32.Vector2, dt time.Duration) bool {
	s := c.settings
	moved := false

	if dt > 0 {
		seconds := float32(dt.Seconds())
		var step float32
		if scroll != nil {
			step = clamp(scroll.Y*s.ScrollSensitivity/20, -maxScrollStep, maxScrollStep)
		}
		c.hardZoom = clamp(c.hardZoom-step, s.MinZoom, s.MaxZoom)
		c.softZoom.UpdateWithSpeed(seconds, dynamics.Scalar(c.hardZoom), dynamics.Scalar(-step/seconds))
	}

	if drag != nil {
		c.rotationSpeed = c.rotationSpeed.Add(drag.MulScalar(-1.0 / 10 * s.Sensitivity / 100))
		limit := s.MaxOrbitSpeed / 10
		c.rotationSpeed.X = clamp(c.rotationSpeed.X, -limit, limit)
		c.rotationSpeed.Y = clamp(c.rotationSpeed.Y, -limit, limit)
	}

	if c.rotationSpeed.Length() > orbitEpsilon {
		decay := s.OrbitDecayRate / 10
		if c.pressed {
			decay = dragBrake
		}
		c.rotationSpeed = c.rotationSpeed.MulScalar(1 - decay)
		RotateCameraAroundTarget(cam, c.target, c.rotationSpeed.X, c.rotationSpeed.Y)
		moved = true
	}

	soft := c.SoftZoom()
	if math32.Abs(soft-c.currZoom) > zoomEpsilon {
		offset := cam.Position().Sub(c.target)
		if offset.Length() > 0 {
			pos := c.target.Add(offset.Normal().MulScalar(SoftClamp(soft, s.MinZoom)))
			cam.SetView(pos, c.target, cam.Up())
			moved = true
		}
	}
	c.currZoom = soft
	return moved
}

// SoftClamp maps a zoom distance below minZoom onto a reciprocal curve
// that meets the identity at minZoom and approaches minZoom - MinZoomFloor
// as the distance goes to minus infinity. Distances at or above minZoom
// are returned as is.
func SoftClamp(distance, minZoom float32) float32 {
	if distance >= minZoom {
		return distance
	}
	x0 := softClampOffset + minZoom
	return -1/(softClampCurve*(distance-x0)) + minZoom - MinZoomFloor
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(hi, v))
}
