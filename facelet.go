package cubeviz

import (
	"fmt"
	"strings"
)

// FaceletCount is the length of a facelet string.
const FaceletCount = 54

// SolvedFacelets is the facelet string of the solved cube.
const SolvedFacelets = "BBBBBBBBBYYYYYYYYYRRRRRRRRRWWWWWWWWWGGGGGGGGGOOOOOOOOO"

// faceletSlots maps each facelet to the lattice slot of the piece carrying
// it. Nine entries per face in the order L, U, F, D, R, B; each face reads
// row by row as seen from outside the cube.
var faceletSlots = [FaceletCount]int{
	0, 1, 2, 3, 4, 5, 6, 7, 8,
	0, 9, 18, 1, 10, 19, 2, 11, 20,
	2, 11, 20, 5, 14, 23, 8, 17, 26,
	8, 17, 26, 7, 16, 25, 6, 15, 24,
	20, 19, 18, 23, 22, 21, 26, 25, 24,
	18, 9, 0, 21, 12, 3, 24, 15, 6,
}

// FaceSlots returns the nine lattice slots of the face with index i.
func FaceSlots(i int) []int {
	return faceletSlots[i*9 : i*9+9]
}

// faceletAxis returns the color slot written by facelet k.
func faceletAxis(k int) Axis {
	return Faces[k/9].Axis()
}

// parseFacelets builds the 27 pieces at their home positions.
func parseFacelets(s string) ([27]Piece, error) {
	var pieces [27]Piece
	if len(s) != FaceletCount {
		return pieces, fmt.Errorf("%w: got %d", ErrInvalidLength, len(s))
	}

	for i := range pieces {
		pieces[i] = newPiece(i)
	}
	for k := 0; k < FaceletCount; k++ {
		color, ok := ParseColor(s[k])
		if !ok {
			return pieces, fmt.Errorf("%w: %q at index %d", ErrInvalidCharacter, s[k], k)
		}
		pieces[faceletSlots[k]].colors[faceletAxis(k)] = color
	}
	for i := range pieces {
		pieces[i].paint()
	}
	return pieces, nil
}

// encodeFacelets reads the facelet string off pieces in any arrangement.
func encodeFacelets(pieces []Piece) string {
	var bySlot [27]int
	for i, p := range pieces {
		bySlot[p.Slot()] = i
	}

	var b strings.Builder
	b.Grow(FaceletCount)
	for k := 0; k < FaceletCount; k++ {
		p := pieces[bySlot[faceletSlots[k]]]
		b.WriteString(p.colors[faceletAxis(k)].String())
	}
	return b.String()
}

// ValidateFacelets checks the format of a facelet string without building
// a cube.
func ValidateFacelets(s string) error {
	_, err := parseFacelets(s)
	return err
}

// Net returns an unfolded text view of a facelet string: U on top, then
// L F R B, then D.
func Net(facelets string) string {
	if len(facelets) != FaceletCount {
		return ""
	}
	face := func(f Face, row int) string {
		start := f.Index()*9 + row*3
		return strings.Join(strings.Split(facelets[start:start+3], ""), " ")
	}

	var b strings.Builder
	for row := 0; row < 3; row++ {
		b.WriteString("      " + face(FaceU, row) + "\n")
	}
	for row := 0; row < 3; row++ {
		parts := make([]string, 0, 4)
		for _, f := range []Face{FaceL, FaceF, FaceR, FaceB} {
			parts = append(parts, face(f, row))
		}
		b.WriteString(strings.Join(parts, " ") + "\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString("      " + face(FaceD, row) + "\n")
	}
	return b.String()
}
