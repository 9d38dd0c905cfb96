package cubeviz

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Axis identifies one of the three cube axes. It doubles as the index of a
// piece's color slot for the pair of faces perpendicular to it.
type Axis int

const (
	AxisX Axis = 0 // Left/Right
	AxisY Axis = 1 // Down/Up
	AxisZ Axis = 2 // Back/Front
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Position is a lattice point with every coordinate in {-1, 0, 1}.
// x points right, y up and z towards the front.
type Position struct {
	X, Y, Z int
}

// PositionOf returns the lattice point of a slot index in [0, 27).
func PositionOf(slot int) Position {
	return Position{X: slot/9 - 1, Y: 1 - (slot/3)%3, Z: slot%3 - 1}
}

// Slot returns the index in [0, 27) of the lattice point.
func (p Position) Slot() int {
	return (p.X+1)*9 + (1-p.Y)*3 + (p.Z + 1)
}

// Coord returns the coordinate along axis.
func (p Position) Coord(axis Axis) int {
	switch axis {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// Valid reports whether every coordinate lies in {-1, 0, 1}.
func (p Position) Valid() bool {
	in := func(v int) bool { return v >= -1 && v <= 1 }
	return in(p.X) && in(p.Y) && in(p.Z)
}

// Vector3 converts the lattice point to a float vector.
func (p Position) Vector3() math32.Vector3 {
	return math32.Vec3(float32(p.X), float32(p.Y), float32(p.Z))
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Rotation is an exact integer 3x3 matrix acting on lattice positions.
// Row i, column j holds the contribution of input axis j to output axis i.
type Rotation [3][3]int

// Identity is the rotation that leaves every position in place.
var Identity = Rotation{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// QuarterTurn returns a 90 degree rotation about axis, counter-clockwise
// when looking down the positive axis for sign > 0, clockwise otherwise.
func QuarterTurn(axis Axis, sign int) Rotation {
	var r Rotation
	switch axis {
	case AxisX:
		r = Rotation{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}}
	case AxisY:
		r = Rotation{{0, 0, 1}, {0, 1, 0}, {-1, 0, 0}}
	default:
		r = Rotation{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}
	}
	if sign < 0 {
		return r.Transpose()
	}
	return r
}

// Mul returns r * o, the rotation that applies o first and then r.
func (r Rotation) Mul(o Rotation) Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += r[i][k] * o[k][j]
			}
		}
	}
	return out
}

// Transpose returns the transposed matrix, the inverse of a valid rotation.
func (r Rotation) Transpose() Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r[j][i]
		}
	}
	return out
}

// Apply rotates a lattice position.
func (r Rotation) Apply(p Position) Position {
	return Position{
		X: r[0][0]*p.X + r[0][1]*p.Y + r[0][2]*p.Z,
		Y: r[1][0]*p.X + r[1][1]*p.Y + r[1][2]*p.Z,
		Z: r[2][0]*p.X + r[2][1]*p.Y + r[2][2]*p.Z,
	}
}

// Determinant returns the matrix determinant.
func (r Rotation) Determinant() int {
	return r[0][0]*(r[1][1]*r[2][2]-r[1][2]*r[2][1]) -
		r[0][1]*(r[1][0]*r[2][2]-r[1][2]*r[2][0]) +
		r[0][2]*(r[1][0]*r[2][1]-r[1][1]*r[2][0])
}

// Validate accepts only the 24 rotations of the cube: signed permutation
// matrices with determinant +1.
func (r Rotation) Validate() error {
	var cols [3]int
	for i := 0; i < 3; i++ {
		nonzero := 0
		for j := 0; j < 3; j++ {
			switch r[i][j] {
			case 0:
			case 1, -1:
				nonzero++
				cols[j]++
			default:
				return fmt.Errorf("%w: entry [%d][%d] = %d", ErrInconsistentRotation, i, j, r[i][j])
			}
		}
		if nonzero != 1 {
			return fmt.Errorf("%w: row %d is not a signed unit vector", ErrInconsistentRotation, i)
		}
	}
	for j, n := range cols {
		if n != 1 {
			return fmt.Errorf("%w: column %d is not a signed unit vector", ErrInconsistentRotation, j)
		}
	}
	if d := r.Determinant(); d != 1 {
		return fmt.Errorf("%w: determinant %d", ErrInconsistentRotation, d)
	}
	return nil
}

// source returns the input axis that lands on output axis i.
func (r Rotation) source(i Axis) Axis {
	for j := 0; j < 3; j++ {
		if r[i][j] != 0 {
			return Axis(j)
		}
	}
	return i
}

// Matrix4 returns the rotation as a column-major 4x4 transform.
func (r Rotation) Matrix4() math32.Matrix4 {
	var m math32.Matrix4
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m[col*4+row] = float32(r[row][col])
		}
	}
	m[15] = 1
	return m
}
