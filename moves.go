package cubeviz

// Predefined moves for convenience.
// Use these instead of constructing Move structs manually.
//
// Example:
//
//	err := cube.Queue(cubeviz.R, cubeviz.U, cubeviz.RPrime, cubeviz.UPrime)
var (
	// Right face moves
	R      = Move{Face: FaceR, Turn: CW}     // Right clockwise
	RPrime = Move{Face: FaceR, Turn: CCW}    // Right counter-clockwise
	R2     = Move{Face: FaceR, Turn: Double} // Right 180

	// Left face moves
	L      = Move{Face: FaceL, Turn: CW}     // Left clockwise
	LPrime = Move{Face: FaceL, Turn: CCW}    // Left counter-clockwise
	L2     = Move{Face: FaceL, Turn: Double} // Left 180

	// Up face moves
	U      = Move{Face: FaceU, Turn: CW}     // Up clockwise
	UPrime = Move{Face: FaceU, Turn: CCW}    // Up counter-clockwise
	U2     = Move{Face: FaceU, Turn: Double} // Up 180

	// Down face moves
	D      = Move{Face: FaceD, Turn: CW}     // Down clockwise
	DPrime = Move{Face: FaceD, Turn: CCW}    // Down counter-clockwise
	D2     = Move{Face: FaceD, Turn: Double} // Down 180

	// Front face moves
	F      = Move{Face: FaceF, Turn: CW}     // Front clockwise
	FPrime = Move{Face: FaceF, Turn: CCW}    // Front counter-clockwise
	F2     = Move{Face: FaceF, Turn: Double} // Front 180

	// Back face moves
	B      = Move{Face: FaceB, Turn: CW}     // Back clockwise
	BPrime = Move{Face: FaceB, Turn: CCW}    // Back counter-clockwise
	B2     = Move{Face: FaceB, Turn: Double} // Back 180
)

// DemoSequence is the sequence played by the viewer on start.
var DemoSequence = []Move{L, F, L2, UPrime, B, RPrime, LPrime}

// SexyMove is R U R' U', one of the most common triggers. It has order 6.
var SexyMove = []Move{R, U, RPrime, UPrime}

// TPerm swaps two corners and two edges of the top layer.
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}

// AllMoves lists all 18 moves, face by face in facelet order.
var AllMoves = []Move{
	L, LPrime, L2,
	U, UPrime, U2,
	F, FPrime, F2,
	D, DPrime, D2,
	R, RPrime, R2,
	B, BPrime, B2,
}
