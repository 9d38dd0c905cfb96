package cubeviz

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func TestFromFaceletsInvalidLength(t *testing.T) {
	for _, s := range []string{"", "B", SolvedFacelets[:53], SolvedFacelets + "B"} {
		if _, err := FromFacelets(s); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("len %d: got %v, want ErrInvalidLength", len(s), err)
		}
	}
}

func TestFromFaceletsInvalidCharacter(t *testing.T) {
	for _, bad := range []byte{'b', 'X', ' ', '0', 0} {
		for _, at := range []int{0, 26, 53} {
			s := []byte(SolvedFacelets)
			s[at] = bad
			_, err := FromFacelets(string(s))
			if !errors.Is(err, ErrInvalidCharacter) {
				t.Errorf("%q at %d: got %v, want ErrInvalidCharacter", bad, at, err)
			}
		}
	}
}

func TestFaceletsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	const letters = "BYRWGO"
	for i := 0; i < 200; i++ {
		var b strings.Builder
		for k := 0; k < FaceletCount; k++ {
			b.WriteByte(letters[rng.IntN(len(letters))])
		}
		s := b.String()
		c, err := FromFacelets(s)
		if err != nil {
			t.Fatalf("FromFacelets(%s): %v", s, err)
		}
		if got := c.Facelets(); got != s {
			t.Errorf("round trip: got %s, want %s", got, s)
		}
	}
}

func TestFaceletsParseSetsStickers(t *testing.T) {
	c := newCube(t)
	for i, p := range c.Pieces() {
		pos := p.Position()
		for axis := AxisX; axis <= AxisZ; axis++ {
			onSurface := pos.Coord(axis) != 0
			if onSurface != (p.Color(axis) != None) {
				t.Errorf("piece %d at %v: %s slot %s", i, pos, axis, p.Color(axis))
			}
		}
	}
	center := c.Piece(13)
	if center.Colors() != [3]Color{} {
		t.Errorf("core piece has colors %v", center.Colors())
	}
	left := c.Piece(4) // (-1, 0, 0)
	if left.Stickers() != [6]Color{Blue, None, None, None, None, None} {
		t.Errorf("left center stickers = %v", left.Stickers())
	}
}

func TestFaceSlotsAreNineDistinct(t *testing.T) {
	for f := 0; f < 6; f++ {
		seen := map[int]bool{}
		face := Faces[f]
		for _, slot := range FaceSlots(f) {
			seen[slot] = true
			if PositionOf(slot).Coord(face.Axis()) != face.Side() {
				t.Errorf("slot %d is not on face %s", slot, face)
			}
		}
		if len(seen) != 9 {
			t.Errorf("face %s has %d distinct slots", face, len(seen))
		}
	}
}

func TestNet(t *testing.T) {
	net := Net(SolvedFacelets)
	lines := strings.Split(strings.TrimRight(net, "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("net has %d lines:\n%s", len(lines), net)
	}
	if lines[0] != "      Y Y Y" {
		t.Errorf("first line %q", lines[0])
	}
	if lines[4] != "B B B R R R G G G O O O" {
		t.Errorf("middle line %q", lines[4])
	}
	if lines[8] != "      W W W" {
		t.Errorf("last line %q", lines[8])
	}
	if Net("short") != "" {
		t.Error("Net of a malformed string should be empty")
	}
}

func TestColors(t *testing.T) {
	for _, c := range Colors {
		parsed, ok := ParseColor(c.String()[0])
		if !ok || parsed != c {
			t.Errorf("ParseColor(%s) = %v %v", c, parsed, ok)
		}
	}
	if r, g, b := None.RGB(); r != 0 || g != 0 || b != 0 {
		t.Errorf("None should render black, got %d %d %d", r, g, b)
	}
	if got := Blue.Hex(); got != "#1f44a6" {
		t.Errorf("Blue.Hex() = %s", got)
	}
	if got := White.Hex(); got != "#ffffff" {
		t.Errorf("White.Hex() = %s", got)
	}
	if got := None.Hex(); got != "#000000" {
		t.Errorf("None.Hex() = %s", got)
	}
}
