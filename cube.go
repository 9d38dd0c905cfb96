package cubeviz

import (
	"fmt"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubeviz/pkg/dynamics"
)

// Cube is a 3x3x3 cube made of 27 pieces with a queue of animated moves.
//
// Moves run one at a time. A queued move starts on the first Animate call
// that finds the cube idle, animates for the configured duration and only
// then changes the logical state. A Cube is not safe for concurrent use;
// drive it from a single frame loop.
type Cube struct {
	pieces [27]Piece

	queue     []Move
	current   Move
	animating bool
	turning   [9]int
	moveStart time.Duration

	config *config
}

// New creates a solved cube.
func New(opts ...Option) (*Cube, error) {
	return FromFacelets(SolvedFacelets, opts...)
}

// FromFacelets creates a cube from a 54 character facelet string.
// Returns ErrInvalidLength or ErrInvalidCharacter for malformed input.
func FromFacelets(s string, opts ...Option) (*Cube, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	pieces, err := parseFacelets(s)
	if err != nil {
		return nil, err
	}

	return &Cube{
		pieces: pieces,
		config: cfg,
	}, nil
}

// Clone creates a deep copy of the cube, including its queue and any move
// in flight.
func (c *Cube) Clone() *Cube {
	clone := *c
	clone.queue = append([]Move(nil), c.queue...)
	cfg := *c.config
	clone.config = &cfg
	return &clone
}

// MoveDuration returns how long one move animates.
func (c *Cube) MoveDuration() time.Duration {
	return c.config.moveDuration
}

// Smoothing returns the ease exponent of a move animation.
func (c *Cube) Smoothing() float32 {
	return c.config.smoothing
}

// Queue appends moves to the end of the queue. Moves run strictly in the
// order they were queued. Nothing is queued if any move is invalid.
func (c *Cube) Queue(moves ...Move) error {
	for _, m := range moves {
		if !m.Valid() {
			return fmt.Errorf("%w: %+v", ErrInvalidNotation, m)
		}
	}
	c.queue = append(c.queue, moves...)
	return nil
}

// Pending returns the number of queued moves that have not started.
func (c *Cube) Pending() int {
	return len(c.queue)
}

// Queued returns a copy of the moves waiting to start.
func (c *Cube) Queued() []Move {
	return append([]Move(nil), c.queue...)
}

// Current returns the move in flight, if any.
func (c *Cube) Current() (Move, bool) {
	return c.current, c.animating
}

// Idle returns true when no move is in flight and the queue is empty.
func (c *Cube) Idle() bool {
	return !c.animating && len(c.queue) == 0
}

// Clear drops all queued moves. A move in flight still completes.
func (c *Cube) Clear() {
	c.queue = nil
}

// Animate advances the animation to now, the time elapsed since some fixed
// origin. now must not decrease between calls.
//
// A move in flight whose duration has passed is finalized: its rotation is
// applied to the logical state and the piece transforms are reset to their
// base. Then, if the cube is idle and moves are queued, exactly one move
// starts at now. An error aborts the move in flight and leaves the logical
// state as it was before that move.
func (c *Cube) Animate(now time.Duration) error {
	if c.animating {
		elapsed := now - c.moveStart
		if elapsed <= c.config.moveDuration {
			t := dynamics.Ease(float32(elapsed)/float32(c.config.moveDuration), c.config.smoothing)
			m := c.current.Transform(t)
			for _, i := range c.turning {
				c.pieces[i].animate(m)
			}
			return nil
		}
		if err := c.finish(); err != nil {
			return err
		}
	}

	if len(c.queue) == 0 {
		return nil
	}
	move := c.queue[0]
	c.queue = c.queue[1:]
	turning, err := c.facePieces(move.Index())
	if err != nil {
		return fmt.Errorf("start %s: %w", move, err)
	}
	c.current = move
	c.turning = turning
	c.moveStart = now
	c.animating = true
	return nil
}

// finish applies the move in flight to the logical state.
func (c *Cube) finish() error {
	move := c.current
	c.animating = false
	c.current = Move{}
	defer func() {
		for _, i := range c.turning {
			c.pieces[i].settle()
		}
	}()
	if err := c.turn(c.turning, move); err != nil {
		return fmt.Errorf("finish %s: %w", move, err)
	}
	return nil
}

// Apply turns the cube immediately, without animation. It fails with
// ErrAnimating while a move is in flight or queued.
func (c *Cube) Apply(moves ...Move) error {
	if !c.Idle() {
		return ErrAnimating
	}
	for _, m := range moves {
		if !m.Valid() {
			return fmt.Errorf("%w: %+v", ErrInvalidNotation, m)
		}
		turning, err := c.facePieces(m.Index())
		if err != nil {
			return fmt.Errorf("apply %s: %w", m, err)
		}
		if err := c.turn(turning, m); err != nil {
			return fmt.Errorf("apply %s: %w", m, err)
		}
	}
	return nil
}

// facePieces returns the indices of the nine pieces currently on a face.
func (c *Cube) facePieces(face int) ([9]int, error) {
	var onFace [27]bool
	for _, slot := range FaceSlots(face) {
		onFace[slot] = true
	}

	var out [9]int
	n := 0
	for i := range c.pieces {
		if !onFace[c.pieces[i].Slot()] {
			continue
		}
		if n == len(out) {
			return out, fmt.Errorf("%w: more than 9 pieces on face %s", ErrInconsistentRotation, Faces[face])
		}
		out[n] = i
		n++
	}
	if n != len(out) {
		return out, fmt.Errorf("%w: %d pieces on face %s", ErrInconsistentRotation, n, Faces[face])
	}
	return out, nil
}

// turn rotates the given pieces by m. Every piece is rotated before any is
// stored, so a failure leaves the cube unchanged.
func (c *Cube) turn(indices [9]int, m Move) error {
	var next [9]Piece
	q := m.Quarter()
	for n, i := range indices {
		p := c.pieces[i]
		for range m.Repeat() {
			var err error
			if p, err = p.rotated(q); err != nil {
				return err
			}
		}
		next[n] = p
	}
	for n, i := range indices {
		c.pieces[i] = next[n]
	}
	return nil
}

// Facelets returns the facelet string of the current logical state.
func (c *Cube) Facelets() string {
	return encodeFacelets(c.pieces[:])
}

// Net returns an unfolded text view of the current logical state.
func (c *Cube) Net() string {
	return Net(c.Facelets())
}

// IsSolved returns true if every face shows a single color.
func (c *Cube) IsSolved() bool {
	s := c.Facelets()
	for f := 0; f < 6; f++ {
		face := s[f*9 : f*9+9]
		if strings.Count(face, face[:1]) != 9 {
			return false
		}
	}
	return true
}

// Pieces returns a copy of the 27 pieces, indexed by home slot.
func (c *Cube) Pieces() []Piece {
	out := make([]Piece, len(c.pieces))
	copy(out, c.pieces[:])
	return out
}

// Piece returns the piece built at home slot i.
func (c *Cube) Piece(i int) Piece {
	return c.pieces[i]
}

// String returns a text representation of the cube.
func (c *Cube) String() string {
	return c.Net()
}

// Debug returns a simple debug string.
func (c *Cube) Debug() string {
	return fmt.Sprintf("Solved: %v, Current: %v, Pending: %d", c.IsSolved(), c.current, len(c.queue))
}
