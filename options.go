package cubeviz

import (
	"fmt"
	"time"
)

// Option configures Cube behavior.
type Option func(*config)

type config struct {
	moveDuration time.Duration
	smoothing    float32
}

func defaultConfig() *config {
	return &config{
		moveDuration: 500 * time.Millisecond,
		smoothing:    2,
	}
}

func (c *config) validate() error {
	if c.moveDuration <= 0 {
		return fmt.Errorf("%w: move duration %v", ErrInvalidOption, c.moveDuration)
	}
	if !(c.smoothing > 0) {
		return fmt.Errorf("%w: smoothing %v", ErrInvalidOption, c.smoothing)
	}
	return nil
}

// WithMoveDuration sets how long a single move animates.
// Half turns take the same time as quarter turns.
func WithMoveDuration(d time.Duration) Option {
	return func(c *config) {
		c.moveDuration = d
	}
}

// WithSmoothing sets the easing exponent applied to move progress.
// 1 is linear, larger values give a sharper slow-fast-slow curve.
func WithSmoothing(a float32) Option {
	return func(c *config) {
		c.smoothing = a
	}
}
