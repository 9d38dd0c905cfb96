package cubeviz

import (
	"errors"
	"testing"
	"time"

	"cogentcore.org/core/math32"
)

// animateAll queues moves and ticks at 60 fps until the cube is idle.
func animateAll(t *testing.T, c *Cube, moves ...Move) {
	t.Helper()
	if err := c.Queue(moves...); err != nil {
		t.Fatalf("queue: %v", err)
	}
	now := time.Duration(0)
	for i := 0; !c.Idle(); i++ {
		if i > 100000 {
			t.Fatal("cube never became idle")
		}
		if err := c.Animate(now); err != nil {
			t.Fatalf("animate at %v: %v", now, err)
		}
		now += 16 * time.Millisecond
	}
}

func newCube(t *testing.T, opts ...Option) *Cube {
	t.Helper()
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewCubeIsSolved(t *testing.T) {
	c := newCube(t)
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
	if got := c.Facelets(); got != SolvedFacelets {
		t.Errorf("Facelets() = %s, want %s", got, SolvedFacelets)
	}
}

func TestSingleMoves(t *testing.T) {
	want := map[Move]string{
		L: "BBBBBBBBBOYYOYYOYYYRRYRRYRRRWWRWWRWWGGGGGGGGGOOWOOWOOW",
		U: "RRRBBBBBBYYYYYYYYYGGGRRRRRRWWWWWWWWWOOOGGGGGGBBBOOOOOO",
		F: "BBWBBWBBWYYYYYYBBBRRRRRRRRRGGGWWWWWWYGGYGGYGGOOOOOOOOO",
		D: "BBBBBBOOOYYYYYYYYYRRRRRRBBBWWWWWWWWWGGGGGGRRROOOOOOGGG",
		R: "BBBBBBBBBYYRYYRYYRRRWRRWRRWWWOWWOWWOGGGGGGGGGYOOYOOYOO",
		B: "YBBYBBYBBGGGYYYYYYRRRRRRRRRWWWWWWBBBGGWGGWGGWOOOOOOOOO",
	}
	for m, facelets := range want {
		c := newCube(t)
		if err := c.Apply(m); err != nil {
			t.Fatalf("Apply(%s): %v", m, err)
		}
		if got := c.Facelets(); got != facelets {
			t.Errorf("%s: got %s, want %s", m, got, facelets)
			t.Log(c.String())
		}
		if c.IsSolved() {
			t.Errorf("Cube should not be solved after %s", m)
		}
	}
}

func TestQuarterTurnHasOrderFour(t *testing.T) {
	for _, face := range Faces {
		for _, turn := range []Turn{CW, CCW} {
			c := newCube(t)
			m := Move{Face: face, Turn: turn}
			for i := 0; i < 4; i++ {
				if err := c.Apply(m); err != nil {
					t.Fatal(err)
				}
				if i < 3 && c.IsSolved() {
					t.Errorf("%s x %d should not be solved", m, i+1)
				}
			}
			if !c.IsSolved() {
				t.Errorf("%s x 4 should return to solved", m)
				t.Log(c.String())
			}
			assertAtHome(t, c)
		}
	}
}

func TestHalfTurnTwiceIsIdentity(t *testing.T) {
	for _, face := range Faces {
		c := newCube(t)
		m := Move{Face: face, Turn: Double}
		animateAll(t, c, m, m)
		if !c.IsSolved() {
			t.Errorf("%s %s should return to solved", m, m)
			t.Log(c.String())
		}
		assertAtHome(t, c)
	}
}

func TestHalfTurnEqualsTwoQuarters(t *testing.T) {
	for _, face := range Faces {
		a := newCube(t)
		b := newCube(t)
		if err := a.Apply(Move{Face: face, Turn: Double}); err != nil {
			t.Fatal(err)
		}
		q := Move{Face: face, Turn: CW}
		if err := b.Apply(q, q); err != nil {
			t.Fatal(err)
		}
		if a.Facelets() != b.Facelets() {
			t.Errorf("%s2 = %s, %s %s = %s", face, a.Facelets(), face, face, b.Facelets())
		}
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	c := newCube(t)
	if err := c.Apply(SexyMove...); err != nil {
		t.Fatal(err)
	}
	if got, want := c.Facelets(), "OBBBBBBBBYYBYYRYYRRRWRRYRRRWWGWWWWWWGGYOGGYGGOGGOOOOOO"; got != want {
		t.Errorf("R U R' U' = %s, want %s", got, want)
	}
	for i := 1; i < 6; i++ {
		if err := c.Apply(SexyMove...); err != nil {
			t.Fatal(err)
		}
	}
	if !c.IsSolved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(c.String())
	}
}

func TestTPermTwiceReturnsToSolved(t *testing.T) {
	c := newCube(t)
	if err := c.Apply(TPerm...); err != nil {
		t.Fatal(err)
	}
	if c.IsSolved() {
		t.Error("T-perm should change the cube")
	}
	if err := c.Apply(TPerm...); err != nil {
		t.Fatal(err)
	}
	if !c.IsSolved() {
		t.Error("T-perm x 2 should return to solved")
	}
}

func TestDemoSequenceGolden(t *testing.T) {
	const golden = "RBBOBBBYYWGYWYOWROOBGORBORRGGBGWROWRWWBYGGWYYROGWOYGRY"

	c, err := FromFacelets(SolvedFacelets)
	if err != nil {
		t.Fatal(err)
	}
	animateAll(t, c, DemoSequence...)
	if got := c.Facelets(); got != golden {
		t.Errorf("after %s: got %s, want %s", FormatMoves(DemoSequence), got, golden)
		t.Log(c.String())
	}
	assertBijection(t, c)

	animateAll(t, c, InverseMoves(DemoSequence)...)
	if got := c.Facelets(); got != SolvedFacelets {
		t.Errorf("inverse sequence should return to solved, got %s", got)
	}
	assertAtHome(t, c)
}

func TestMoveThenInverse(t *testing.T) {
	start := newCube(t)
	if err := start.Apply(DemoSequence...); err != nil {
		t.Fatal(err)
	}
	for _, m := range AllMoves {
		c := start.Clone()
		before := c.Pieces()
		animateAll(t, c, m, m.Inverse())
		after := c.Pieces()
		for i := range before {
			if before[i].Position() != after[i].Position() || before[i].Colors() != after[i].Colors() {
				t.Errorf("%s %s moved piece %d: %v %v -> %v %v", m, m.Inverse(), i,
					before[i].Position(), before[i].Colors(), after[i].Position(), after[i].Colors())
			}
		}
	}
}

func TestBijectionAfterMoves(t *testing.T) {
	c := newCube(t)
	moves, err := ParseMoves("R U2 F' L D B2 R' U F2 D' L2 B")
	if err != nil {
		t.Fatal(err)
	}
	animateAll(t, c, moves...)
	assertBijection(t, c)
	assertStickersFollowColors(t, c)
}

func TestFaceSelectionUsesLivePositions(t *testing.T) {
	// After R the pieces on U are no longer the ones built there, so a
	// following U must turn the relocated pieces.
	animated := newCube(t)
	animateAll(t, animated, R, U)

	direct := newCube(t)
	if err := direct.Apply(R, U); err != nil {
		t.Fatal(err)
	}
	if animated.Facelets() != direct.Facelets() {
		t.Errorf("animated R U = %s, applied R U = %s", animated.Facelets(), direct.Facelets())
	}
}

func TestAnimateStateMachine(t *testing.T) {
	c := newCube(t, WithMoveDuration(500*time.Millisecond))
	if err := c.Queue(R, U); err != nil {
		t.Fatal(err)
	}

	if err := c.Animate(0); err != nil {
		t.Fatal(err)
	}
	if m, ok := c.Current(); !ok || m != R {
		t.Fatalf("Current() = %v %v, want R", m, ok)
	}
	if c.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", c.Pending())
	}

	// Mid move: only the transforms change.
	if err := c.Animate(250 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if !c.IsSolved() {
		t.Error("logical state must not change mid move")
	}

	// Exactly at the duration the move is still in flight.
	if err := c.Animate(500 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if m, _ := c.Current(); m != R || !c.IsSolved() {
		t.Errorf("move finalized too early: current %v", m)
	}

	// Past the duration R finishes and U starts in the same tick.
	if err := c.Animate(501 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if got, want := c.Facelets(), "BBBBBBBBBYYRYYRYYRRRWRRWRRWWWOWWOWWOGGGGGGGGGYOOYOOYOO"; got != want {
		t.Errorf("after R: %s, want %s", got, want)
	}
	if m, ok := c.Current(); !ok || m != U {
		t.Fatalf("Current() = %v %v, want U", m, ok)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}

	if err := c.Animate(1002 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if !c.Idle() {
		t.Error("cube should be idle")
	}
	assertAtHome(t, c)
}

func TestAnimateAbortsInconsistentMove(t *testing.T) {
	c := newCube(t, WithMoveDuration(100*time.Millisecond))
	// The R center has no up sticker; giving it one breaks the invariant
	// that only outward sides carry a color.
	c.pieces[22].colors[AxisY] = Red
	before := c.Facelets()

	if err := c.Queue(R); err != nil {
		t.Fatal(err)
	}
	if err := c.Animate(0); err != nil {
		t.Fatal(err)
	}
	if err := c.Animate(50 * time.Millisecond); err != nil {
		t.Fatal(err)
	}

	err := c.Animate(101 * time.Millisecond)
	if !errors.Is(err, ErrInconsistentRotation) {
		t.Fatalf("Animate: %v, want ErrInconsistentRotation", err)
	}
	if got := c.Facelets(); got != before {
		t.Errorf("state changed by aborted move: %s, want %s", got, before)
	}
	if !c.Idle() {
		t.Error("aborted move should leave the cube idle")
	}
	for i, p := range c.Pieces() {
		if p.Transform() != p.Base().Matrix4() {
			t.Errorf("piece %d: transform not settled to base", i)
		}
	}
	assertAtHome(t, c)
}

func TestAnimateOneMoveStartsPerTick(t *testing.T) {
	c := newCube(t)
	if err := c.Queue(L, R, U); err != nil {
		t.Fatal(err)
	}
	if err := c.Animate(0); err != nil {
		t.Fatal(err)
	}
	if c.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", c.Pending())
	}
}

func TestAnimateMidMoveTransform(t *testing.T) {
	c := newCube(t, WithMoveDuration(time.Second), WithSmoothing(2))
	if err := c.Queue(U); err != nil {
		t.Fatal(err)
	}
	if err := c.Animate(0); err != nil {
		t.Fatal(err)
	}
	if err := c.Animate(500 * time.Millisecond); err != nil {
		t.Fatal(err)
	}

	// Ease(0.5) = 0.5, so U is halfway: 45 degrees clockwise from above.
	corner := c.Piece(20) // built at (1, 1, 1)
	m := corner.Transform()
	p := corner.Home().Vector3().MulMatrix4(&m)
	var half math32.Matrix4
	half.SetRotationY(-0.7853982)
	want := corner.Home().Vector3().MulMatrix4(&half)
	if !near(p.X, want.X) || !near(p.Y, want.Y) || !near(p.Z, want.Z) {
		t.Errorf("corner at %v, want %v", p, want)
	}

	bottom := c.Piece(26) // built at (1, -1, 1), not on U
	if bottom.Transform() != Identity.Matrix4() {
		t.Errorf("piece off the turning face moved: %v", bottom.Transform())
	}
}

func TestApplyWhileAnimating(t *testing.T) {
	c := newCube(t)
	if err := c.Queue(R); err != nil {
		t.Fatal(err)
	}
	if err := c.Apply(U); !errors.Is(err, ErrAnimating) {
		t.Errorf("Apply with queued moves: %v, want ErrAnimating", err)
	}
	if err := c.Animate(0); err != nil {
		t.Fatal(err)
	}
	if err := c.Apply(U); !errors.Is(err, ErrAnimating) {
		t.Errorf("Apply mid move: %v, want ErrAnimating", err)
	}
}

func TestQueueRejectsInvalidMoves(t *testing.T) {
	c := newCube(t)
	err := c.Queue(R, Move{Face: "X", Turn: CW})
	if !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("Queue: %v, want ErrInvalidNotation", err)
	}
	if c.Pending() != 0 {
		t.Errorf("nothing should be queued, got %d", c.Pending())
	}
}

func TestClearKeepsMoveInFlight(t *testing.T) {
	c := newCube(t)
	if err := c.Queue(R, U, F); err != nil {
		t.Fatal(err)
	}
	if err := c.Animate(0); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if _, ok := c.Current(); !ok {
		t.Error("move in flight should survive Clear")
	}
	if err := c.Animate(time.Second); err != nil {
		t.Fatal(err)
	}
	if !c.Idle() {
		t.Error("cube should be idle")
	}
}

func TestInvalidOptions(t *testing.T) {
	for _, opt := range []Option{WithMoveDuration(0), WithMoveDuration(-time.Second), WithSmoothing(0), WithSmoothing(-1)} {
		if _, err := New(opt); !errors.Is(err, ErrInvalidOption) {
			t.Errorf("New: %v, want ErrInvalidOption", err)
		}
	}
}

func TestClone(t *testing.T) {
	c := newCube(t)
	if err := c.Queue(R); err != nil {
		t.Fatal(err)
	}
	clone := c.Clone()
	if err := clone.Queue(U); err != nil {
		t.Fatal(err)
	}
	if c.Pending() != 1 || clone.Pending() != 2 {
		t.Errorf("queues should be independent: %d %d", c.Pending(), clone.Pending())
	}
}

func TestDrawables(t *testing.T) {
	c := newCube(t)
	n := 0
	for d := range c.Drawables() {
		if d.Transform() != Identity.Matrix4() {
			t.Errorf("solved piece at %v has a transform", d.Home())
		}
		n++
	}
	if n != 27 {
		t.Errorf("got %d drawables, want 27", n)
	}

	n = 0
	for range c.Drawables() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("iteration should stop early, got %d", n)
	}

	var g Group = c.Piece(0)
	for d := range g.Drawables() {
		if d.Home() != PositionOf(0) {
			t.Errorf("piece drawable home %v", d.Home())
		}
	}
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

func assertBijection(t *testing.T, c *Cube) {
	t.Helper()
	var seen [27]bool
	for _, p := range c.Pieces() {
		if !p.Position().Valid() {
			t.Errorf("piece off the lattice at %v", p.Position())
			continue
		}
		if seen[p.Slot()] {
			t.Errorf("two pieces at %v", p.Position())
		}
		seen[p.Slot()] = true
	}
}

// assertAtHome checks that every piece sits at base * home and that its
// visual transform equals its base rotation.
func assertAtHome(t *testing.T, c *Cube) {
	t.Helper()
	for i, p := range c.Pieces() {
		if got := p.Base().Apply(p.Home()); got != p.Position() {
			t.Errorf("piece %d: base * home = %v, position %v", i, got, p.Position())
		}
		if p.Transform() != p.Base().Matrix4() {
			t.Errorf("piece %d: transform does not match base", i)
		}
	}
}

// assertStickersFollowColors checks that each mesh sticker, rotated by the
// piece base, faces the side whose logical color it shows.
func assertStickersFollowColors(t *testing.T, c *Cube) {
	t.Helper()
	for i, p := range c.Pieces() {
		for side, color := range p.Stickers() {
			if color == None {
				continue
			}
			n := p.Base().Apply(sideNormals[side])
			axis := normalAxis(n)
			if p.Position().Coord(axis) != n.Coord(axis) {
				t.Errorf("piece %d side %d faces %v from %v", i, side, n, p.Position())
			}
			if p.Color(axis) != color {
				t.Errorf("piece %d side %d shows %s, logical %s", i, side, color, p.Color(axis))
			}
		}
	}
}
