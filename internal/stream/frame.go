// Package stream serves the animated scene as JSON frames over a websocket.
package stream

import (
	"strings"

	"cogentcore.org/core/math32"

	"github.com/SeamusWaldron/cubeviz/internal/scene"
	"github.com/SeamusWaldron/cubeviz/pkg/orbit"
)

// Message types.
const (
	TypeFrame = "frame"
	TypeError = "error"
	TypeInput = "input"
	TypeQueue = "queue"
	TypeReset = "reset"
)

// Frame is one rendered state of the scene.
type Frame struct {
	Type     string       `json:"type"`
	TimeMS   int64        `json:"time_ms"`
	Camera   CameraState  `json:"camera"`
	Pieces   []PieceState `json:"pieces"`
	Current  string       `json:"current,omitempty"`
	Pending  int          `json:"pending"`
	Facelets string       `json:"facelets"`
}

// CameraState is the camera pose of a frame.
type CameraState struct {
	Position [3]float32 `json:"position"`
	Target   [3]float32 `json:"target"`
	Up       [3]float32 `json:"up"`
}

// PieceState is what a client needs to draw one piece.
type PieceState struct {
	Slot int    `json:"slot"`
	Home [3]int `json:"home"`
	// Stickers holds one facelet letter per mesh side in the order
	// left, up, front, down, right, back; '-' marks a bare side.
	Stickers  string      `json:"stickers"`
	Transform [16]float32 `json:"transform"`
}

// ClientMessage is a message sent by a client.
type ClientMessage struct {
	Type   string        `json:"type"`
	Events []orbit.Event `json:"events,omitempty"`
	Moves  string        `json:"moves,omitempty"`
}

// ErrorMessage answers a client message that could not be used.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewFrame captures the scene at now milliseconds.
func NewFrame(s *scene.Scene, timeMS int64) Frame {
	cam := s.Camera
	f := Frame{
		Type:   TypeFrame,
		TimeMS: timeMS,
		Camera: CameraState{
			Position: vec3(cam.Position()),
			Target:   vec3(cam.Target()),
			Up:       vec3(cam.Up()),
		},
		Pending:  s.Cube.Pending(),
		Facelets: s.Cube.Facelets(),
	}
	if cur, ok := s.Cube.Current(); ok {
		f.Current = cur.Notation()
	}

	for _, p := range s.Cube.Pieces() {
		home := p.Home()
		var stickers strings.Builder
		for _, c := range p.Stickers() {
			stickers.WriteString(c.String())
		}
		f.Pieces = append(f.Pieces, PieceState{
			Slot:      p.Slot(),
			Home:      [3]int{home.X, home.Y, home.Z},
			Stickers:  stickers.String(),
			Transform: [16]float32(p.Transform()),
		})
	}
	return f
}

func vec3(v math32.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
