package cubeviz

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
)

// Face represents a cube face in standard notation.
type Face string

const (
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceF Face = "F" // Front
	FaceD Face = "D" // Down
	FaceR Face = "R" // Right
	FaceB Face = "B" // Back
)

// Faces lists the faces in facelet order, so Faces[i].Index() == i.
var Faces = [6]Face{FaceL, FaceU, FaceF, FaceD, FaceR, FaceB}

// Index returns the face position in facelet order (L U F D R B), or -1.
func (f Face) Index() int {
	for i, face := range Faces {
		if face == f {
			return i
		}
	}
	return -1
}

// Axis returns the axis perpendicular to the face.
func (f Face) Axis() Axis {
	switch f {
	case FaceL, FaceR:
		return AxisX
	case FaceU, FaceD:
		return AxisY
	default:
		return AxisZ
	}
}

// Side returns the coordinate of the face's layer along its axis.
func (f Face) Side() int {
	switch f {
	case FaceR, FaceU, FaceF:
		return 1
	default:
		return -1
	}
}

// clockwiseSign is the QuarterTurn sign of a clockwise turn of the face as
// seen from outside the cube.
func (f Face) clockwiseSign() int {
	return -f.Side()
}

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// Move represents a single face turn.
type Move struct {
	Face Face // Which face to turn
	Turn Turn // Direction and amount
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

// Merge combines two same-face moves into one. ok is false when the faces
// differ; a zero Move with ok true means the two moves cancel.
func (m Move) Merge(other Move) (merged Move, ok bool) {
	if m.Face != other.Face {
		return Move{}, false
	}
	q := (m.quarters() + other.quarters()) % 4
	if q < 0 {
		q += 4
	}
	switch q {
	case 1:
		return Move{Face: m.Face, Turn: CW}, true
	case 2:
		return Move{Face: m.Face, Turn: Double}, true
	case 3:
		return Move{Face: m.Face, Turn: CCW}, true
	default:
		return Move{}, true
	}
}

// Index returns the face index used to select the pieces the move turns.
func (m Move) Index() int {
	return m.Face.Index()
}

// Valid reports whether the move names a known face and turn.
func (m Move) Valid() bool {
	if m.Face.Index() < 0 {
		return false
	}
	switch m.Turn {
	case CW, CCW, Double:
		return true
	}
	return false
}

// quarters returns the signed number of clockwise quarter turns.
func (m Move) quarters() int {
	return int(m.Turn)
}

// Quarter returns the quarter turn the move is made of. A half turn is the
// clockwise quarter turn applied twice.
func (m Move) Quarter() Rotation {
	sign := m.Face.clockwiseSign()
	if m.Turn == CCW {
		sign = -sign
	}
	return QuarterTurn(m.Face.Axis(), sign)
}

// Rotation returns the discrete rotation applied to the turned pieces.
func (m Move) Rotation() Rotation {
	q := m.Quarter()
	if m.Turn == Double {
		return q.Mul(q)
	}
	return q
}

// Repeat returns how many times Quarter is applied by the move.
func (m Move) Repeat() int {
	if m.Turn == Double {
		return 2
	}
	return 1
}

// Angle returns the total rotation angle in radians about the face axis.
func (m Move) Angle() float32 {
	return float32(m.Face.clockwiseSign()*m.quarters()) * math32.Pi / 2
}

// Transform returns the visual rotation at progress t in [0, 1]. A half turn
// is one continuous 180 degree sweep. Transform(1) equals Rotation().
func (m Move) Transform(t float32) math32.Matrix4 {
	var out math32.Matrix4
	angle := m.Angle() * t
	switch m.Face.Axis() {
	case AxisX:
		out.SetRotationX(angle)
	case AxisY:
		out.SetRotationY(angle)
	default:
		out.SetRotationZ(angle)
	}
	return out
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, U, U', U2
// Returns an error if the notation is invalid.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	// Extract face
	var face Face
	switch s[0] {
	case 'R', 'r':
		face = FaceR
	case 'L', 'l':
		face = FaceL
	case 'U', 'u':
		face = FaceU
	case 'D', 'd':
		face = FaceD
	case 'F', 'f':
		face = FaceF
	case 'B', 'b':
		face = FaceB
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	// Extract turn
	turn := CW
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`", "’":
			turn = CCW
		case "2", "2'", "2`":
			turn = Double
		default:
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a whitespace-separated sequence of moves.
// Example: "R U R' U'"
// The first invalid token fails the whole sequence.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for i, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// SimplifyMoves merges adjacent turns of the same face, repeatedly, so
// "R R" becomes "R2" and "U R R' U'" disappears.
func SimplifyMoves(moves []Move) []Move {
	out := make([]Move, 0, len(moves))
	for _, m := range moves {
		if n := len(out); n > 0 {
			if merged, ok := out[n-1].Merge(m); ok {
				out = out[:n-1]
				if merged.Valid() {
					out = append(out, merged)
				}
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// InverseMoves returns the sequence that undoes moves.
func InverseMoves(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}
