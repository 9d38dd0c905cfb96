package cubeviz

import (
	"iter"

	"cogentcore.org/core/math32"
)

// Drawable is what a renderer needs to draw one piece: a unit cube mesh
// centered at Home with the given side colors, moved by Transform.
type Drawable interface {
	Home() Position
	Stickers() [6]Color
	Transform() math32.Matrix4
}

// Group is anything that can be drawn as a collection of pieces.
type Group interface {
	Drawables() iter.Seq[Drawable]
}

// Drawables yields the piece itself.
func (p Piece) Drawables() iter.Seq[Drawable] {
	return func(yield func(Drawable) bool) {
		yield(p)
	}
}

// Drawables yields the 27 pieces in home slot order.
func (c *Cube) Drawables() iter.Seq[Drawable] {
	return func(yield func(Drawable) bool) {
		for i := range c.pieces {
			if !yield(c.pieces[i]) {
				return
			}
		}
	}
}

// SideNormal returns the outward normal of a mesh side before transform.
func SideNormal(side int) math32.Vector3 {
	return sideNormals[side].Vector3()
}
