// Package dynamics provides smoothing filters and easing curves for
// animation.
package dynamics

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"
)

// ErrInvalidParams is returned for a frequency that is not positive or a
// negative damping ratio.
var ErrInvalidParams = errors.New("dynamics: invalid second order parameters")

// Vector is a value the filter can integrate. The zero value must be the
// additive identity.
type Vector[T any] interface {
	Add(T) T
	MulScalar(float32) T
}

// Params configure a SecondOrderSystem.
type Params struct {
	// Freq is the natural frequency in Hz. It sets how fast the output
	// follows the input.
	Freq float32 `toml:"freq" yaml:"freq" json:"freq"`

	// Zeta is the damping ratio. Below 1 the output oscillates around the
	// input, at 1 or above it settles without overshoot.
	Zeta float32 `toml:"zeta" yaml:"zeta" json:"zeta"`

	// R is the initial response. Above 1 the output overshoots, below 0 it
	// first moves away from the input.
	R float32 `toml:"r" yaml:"r" json:"r"`
}

// DefaultParams returns a slightly underdamped, slightly anticipating
// response used for camera zoom.
func DefaultParams() Params {
	return Params{Freq: 2, Zeta: 0.95, R: 1.1}
}

// Validate checks that the parameters describe a stable system.
func (p Params) Validate() error {
	for _, v := range []float32{p.Freq, p.Zeta, p.R} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return fmt.Errorf("%w: %+v", ErrInvalidParams, p)
		}
	}
	if p.Freq <= 0 {
		return fmt.Errorf("%w: freq %v must be positive", ErrInvalidParams, p.Freq)
	}
	if p.Zeta < 0 {
		return fmt.Errorf("%w: zeta %v must not be negative", ErrInvalidParams, p.Zeta)
	}
	return nil
}

// SecondOrderSystem smooths a moving target with a damped spring.
//
// The output y follows the input x according to
//
//	y + k1 y' + k2 y'' = x + k3 x'
//
// integrated with a semi-implicit Euler step, which tolerates much larger
// time steps than an explicit one.
type SecondOrderSystem[T Vector[T]] struct {
	xPrev T
	y     T
	dy    T

	k1, k2, k3 float32
}

// New returns a system at rest at initial.
func New[T Vector[T]](params Params, initial T) (*SecondOrderSystem[T], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	w := 2 * math32.Pi * params.Freq
	return &SecondOrderSystem[T]{
		xPrev: initial,
		y:     initial,
		k1:    params.Zeta / (math32.Pi * params.Freq),
		k2:    1 / (w * w),
		k3:    params.R * params.Zeta / w,
	}, nil
}

// Update advances the system by dt seconds towards x, estimating the input
// velocity from the previous input. With dt <= 0 the velocity is taken as
// zero.
func (s *SecondOrderSystem[T]) Update(dt float32, x T) T {
	var dx T
	if dt > 0 {
		dx = x.Add(s.xPrev.MulScalar(-1)).MulScalar(1 / dt)
	}
	s.xPrev = x
	return s.UpdateWithSpeed(dt, x, dx)
}

// UpdateWithSpeed advances the system by dt seconds towards x moving at dx.
func (s *SecondOrderSystem[T]) UpdateWithSpeed(dt float32, x, dx T) T {
	if dt <= 0 {
		return s.y
	}
	s.y = s.y.Add(s.dy.MulScalar(dt))
	// dy = (dy*k2 + (x + dx*k3 - y)*dt) / (k2 + dt*k1)
	force := x.Add(dx.MulScalar(s.k3)).Add(s.y.MulScalar(-1)).MulScalar(dt)
	s.dy = s.dy.MulScalar(s.k2).Add(force).MulScalar(1 / (s.k2 + dt*s.k1))
	return s.y
}

// Value returns the current output.
func (s *SecondOrderSystem[T]) Value() T {
	return s.y
}

// Velocity returns the current output velocity.
func (s *SecondOrderSystem[T]) Velocity() T {
	return s.dy
}

// Input returns the last input passed to Update.
func (s *SecondOrderSystem[T]) Input() T {
	return s.xPrev
}

// Reset puts the system at rest at x.
func (s *SecondOrderSystem[T]) Reset(x T) {
	var zero T
	s.xPrev = x
	s.y = x
	s.dy = zero
}
