package cubeviz

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Sticker sides of a piece mesh, in the order Piece.Stickers reports them.
const (
	SideLeft  = 0
	SideUp    = 1
	SideFront = 2
	SideDown  = 3
	SideRight = 4
	SideBack  = 5
)

// sideNormals are the outward normals of the six mesh sides.
var sideNormals = [6]Position{
	SideLeft:  {X: -1},
	SideUp:    {Y: 1},
	SideFront: {Z: 1},
	SideDown:  {Y: -1},
	SideRight: {X: 1},
	SideBack:  {Z: -1},
}

// Piece is one of the 27 sub-cubes.
//
// colors holds one slot per axis: slot 0 is the sticker facing -x or +x,
// slot 1 faces -y or +y and slot 2 faces -z or +z, whichever side the
// piece sits on. A slot is None when the piece shows nothing on that axis.
type Piece struct {
	position Position
	colors   [3]Color

	home     Position
	stickers [6]Color

	base      Rotation
	transform math32.Matrix4
}

func newPiece(slot int) Piece {
	p := Piece{
		position: PositionOf(slot),
		base:     Identity,
	}
	p.home = p.position
	p.transform = Identity.Matrix4()
	return p
}

// paint records the mesh sticker colors from the colors at home.
func (p *Piece) paint() {
	for side, n := range sideNormals {
		axis := normalAxis(n)
		if p.home.Coord(axis) == n.Coord(axis) {
			p.stickers[side] = p.colors[axis]
		} else {
			p.stickers[side] = None
		}
	}
}

func normalAxis(n Position) Axis {
	switch {
	case n.X != 0:
		return AxisX
	case n.Y != 0:
		return AxisY
	default:
		return AxisZ
	}
}

// Position returns the current lattice position.
func (p Piece) Position() Position {
	return p.position
}

// Slot returns the index of the lattice cell the piece currently occupies.
func (p Piece) Slot() int {
	return p.position.Slot()
}

// Colors returns the per-axis color slots.
func (p Piece) Colors() [3]Color {
	return p.colors
}

// Color returns the sticker color the piece shows on axis.
func (p Piece) Color(axis Axis) Color {
	return p.colors[axis]
}

// Home returns the position the piece was built at. Meshes are placed there
// and moved by Transform.
func (p Piece) Home() Position {
	return p.home
}

// Stickers returns the mesh side colors (left, up, front, down, right,
// back) in the piece's home orientation.
func (p Piece) Stickers() [6]Color {
	return p.stickers
}

// Base returns the accumulated rotation from home to the current position.
func (p Piece) Base() Rotation {
	return p.base
}

// Transform returns the 4x4 visual transform of the piece mesh.
func (p Piece) Transform() math32.Matrix4 {
	return p.transform
}

// Rotate applies r to the piece, moving both its position and its color
// slots. The color on input axis j moves to the output axis that column j of
// r maps onto. The piece is left untouched when an error is returned.
func (p *Piece) Rotate(r Rotation) error {
	next, err := p.rotated(r)
	if err != nil {
		return err
	}
	*p = next
	return nil
}

func (p Piece) rotated(r Rotation) (Piece, error) {
	if err := r.Validate(); err != nil {
		return p, err
	}

	next := p
	next.position = r.Apply(p.position)
	for i := Axis(0); i < 3; i++ {
		next.colors[i] = p.colors[r.source(i)]
	}
	if err := next.check(); err != nil {
		return p, fmt.Errorf("piece %d: %w", p.home.Slot(), err)
	}

	next.base = r.Mul(p.base)
	next.transform = next.base.Matrix4()
	return next, nil
}

// check verifies that the piece lies on the lattice and only carries a
// sticker on axes where it touches the surface.
func (p Piece) check() error {
	if !p.position.Valid() {
		return fmt.Errorf("%w: position %v off the lattice", ErrInconsistentRotation, p.position)
	}
	for axis := Axis(0); axis < 3; axis++ {
		if p.colors[axis] != None && p.position.Coord(axis) == 0 {
			return fmt.Errorf("%w: %s sticker on inner %s layer at %v",
				ErrInconsistentRotation, p.colors[axis], axis, p.position)
		}
	}
	return nil
}

// animate sets the visual transform to m applied after the base rotation.
func (p *Piece) animate(m math32.Matrix4) {
	base := p.base.Matrix4()
	p.transform.MulMatrices(&m, &base)
}

// settle drops any in-flight visual rotation.
func (p *Piece) settle() {
	p.transform = p.base.Matrix4()
}
