package orbit

import "cogentcore.org/core/math32"

// EventKind identifies a pointer event.
type EventKind int

const (
	MousePress EventKind = iota + 1
	MouseRelease
	MouseMotion
	MouseWheel
)

func (k EventKind) String() string {
	switch k {
	case MousePress:
		return "press"
	case MouseRelease:
		return "release"
	case MouseMotion:
		return "motion"
	case MouseWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Event is one pointer event of a frame.
type Event struct {
	Kind EventKind `json:"kind"`

	// Button is the button pressed or released, or for motion the button
	// held during the move.
	Button Button `json:"button"`

	// Delta is the pointer movement in pixels for motion, and the scroll
	// amount for wheel events (positive y scrolls up).
	Delta math32.Vector2 `json:"delta"`

	// Handled is set once a consumer has used the event. Consumers skip
	// handled events.
	Handled bool `json:"handled"`
}
