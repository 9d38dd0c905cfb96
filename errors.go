package cubeviz

import "errors"

// Sentinel errors for the cubeviz package.
var (
	// Parsing errors
	ErrInvalidLength    = errors.New("cubeviz: facelet string must be 54 characters")
	ErrInvalidCharacter = errors.New("cubeviz: invalid facelet character")
	ErrInvalidNotation  = errors.New("cubeviz: invalid move notation")

	// Kinematics errors
	ErrInconsistentRotation = errors.New("cubeviz: inconsistent rotation")

	// State errors
	ErrAnimating     = errors.New("cubeviz: cube is animating")
	ErrInvalidOption = errors.New("cubeviz: invalid option")
)
