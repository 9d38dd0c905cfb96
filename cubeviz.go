// Package cubeviz models and animates a 3x3x3 twisty puzzle.
//
// # Features
//
//   - 27-piece kinematic model with exact integer rotations
//   - Facelet string parsing and encoding
//   - FIFO move queue with eased, time-driven animation
//   - Per-piece transforms and sticker colors for any renderer
//
// # Quick Start
//
// Build a solved cube, queue moves and drive it from a frame loop:
//
//	cube, err := cubeviz.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := cube.Queue(cubeviz.SexyMove...); err != nil {
//	    log.Fatal(err)
//	}
//
//	start := time.Now()
//	for !cube.Idle() {
//	    if err := cube.Animate(time.Since(start)); err != nil {
//	        log.Fatal(err)
//	    }
//	    for d := range cube.Drawables() {
//	        draw(d.Home(), d.Stickers(), d.Transform())
//	    }
//	}
//
// # Facelet Strings
//
// A cube state is written as 54 letters (B, Y, R, W, G, O), nine per face,
// in face order Left, Up, Front, Down, Right, Back:
//
//	cube, err := cubeviz.FromFacelets(cubeviz.SolvedFacelets)
//	if err := cube.Apply(cubeviz.L, cubeviz.F); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cube.Facelets())
//
// Moves only change the logical state once their animation completes; use
// Apply to change an idle cube immediately.
package cubeviz
