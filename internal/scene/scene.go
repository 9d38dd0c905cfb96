// Package scene ties an animated cube to an orbiting camera and drives both
// from one frame loop.
package scene

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/core/math32"

	"github.com/SeamusWaldron/cubeviz"
	"github.com/SeamusWaldron/cubeviz/pkg/orbit"
)

// StartPosition is where the camera starts, looking at the origin.
var StartPosition = math32.Vec3(4.5, 0, 4.5)

// Scene is a cube viewed through an orbit controlled camera.
type Scene struct {
	Cube    *cubeviz.Cube
	Camera  *orbit.ViewCamera
	Control *orbit.SmoothOrbitControl

	start string
	opts  []cubeviz.Option
}

// New places the camera at StartPosition looking at cube.
func New(cube *cubeviz.Cube, settings orbit.Settings) (*Scene, error) {
	cam := orbit.NewViewCamera(StartPosition, math32.Vector3{}, math32.Vec3(0, 1, 0))
	ctrl, err := orbit.New(math32.Vector3{}, cam, settings)
	if err != nil {
		return nil, err
	}
	return &Scene{
		Cube:    cube,
		Camera:  cam,
		Control: ctrl,
		start:   cube.Facelets(),
		opts: []cubeviz.Option{
			cubeviz.WithMoveDuration(cube.MoveDuration()),
			cubeviz.WithSmoothing(cube.Smoothing()),
		},
	}, nil
}

// Tick handles one frame: pointer events move the camera, then the cube
// animates to now. changed reports whether the frame differs from the last.
func (s *Scene) Tick(now, dt time.Duration, events []orbit.Event) (changed bool, err error) {
	_, wasAnimating := s.Cube.Current()

	changed = s.Control.HandleEvents(s.Camera, events, dt)
	if s.Control.Moved() {
		changed = true
	}

	if err := s.Cube.Animate(now); err != nil {
		return true, err
	}
	_, animating := s.Cube.Current()
	return changed || wasAnimating || animating, nil
}

// Reset replaces the cube with a fresh one in the state the scene started
// with. Queued moves are dropped.
func (s *Scene) Reset() error {
	cube, err := cubeviz.FromFacelets(s.start, s.opts...)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.Cube = cube
	return nil
}

// Command is work handed to the frame loop from other goroutines.
type Command struct {
	Events []orbit.Event
	Moves  []cubeviz.Move
	Reset  bool
}

// FrameFunc is called on the loop goroutine after every tick.
type FrameFunc func(s *Scene, now time.Duration, changed bool)

// Run ticks the scene every interval until ctx is done. Commands are
// applied on the loop goroutine before the next tick. Animation errors are
// logged and the loop keeps running.
func (s *Scene) Run(ctx context.Context, interval time.Duration, commands <-chan Command, onFrame FrameFunc) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	last := time.Duration(0)
	var events []orbit.Event

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case cmd := <-commands:
			events = append(events, cmd.Events...)
			if cmd.Reset {
				if err := s.Reset(); err != nil {
					slog.Error("scene: reset failed", "error", err)
				}
			}
			if len(cmd.Moves) > 0 {
				if err := s.Cube.Queue(cmd.Moves...); err != nil {
					slog.Warn("scene: moves rejected", "error", err)
				}
			}

		case <-ticker.C:
			now := time.Since(start)
			changed, err := s.Tick(now, now-last, events)
			if err != nil {
				slog.Error("scene: animation aborted", "error", err)
			}
			last = now
			events = events[:0]
			if onFrame != nil {
				onFrame(s, now, changed)
			}
		}
	}
}
