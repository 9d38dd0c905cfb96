package protocol

import (
	"fmt"

	"github.com/SeamusWaldron/cubeviz"
)

// Rotation is one face turn reported by the cube. The face is named by
// the color of its center.
type Rotation struct {
	Code      byte
	Center    byte // center orientation, unused by the viewer
	Color     cubeviz.Color
	Clockwise bool
}

// colorCodes maps the color index of a rotation code to the center color.
var colorCodes = [6]cubeviz.Color{
	cubeviz.Blue,
	cubeviz.Green,
	cubeviz.White,
	cubeviz.Yellow,
	cubeviz.Red,
	cubeviz.Orange,
}

// DecodeRotation decodes a rotation payload made of (code, center) pairs.
// Even codes turn clockwise, and code/2 indexes the face color.
func DecodeRotation(payload []byte) ([]Rotation, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("%w: rotation payload length %d is odd", ErrPayload, len(payload))
	}

	rotations := make([]Rotation, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(colorCodes) {
			return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownColor, code)
		}
		rotations = append(rotations, Rotation{
			Code:      code,
			Center:    payload[i+1],
			Color:     colorCodes[idx],
			Clockwise: code%2 == 0,
		})
	}
	return rotations, nil
}

// Move returns the viewer move turning the face whose center has the
// rotation's color.
func (r Rotation) Move() (cubeviz.Move, error) {
	for i, c := range cubeviz.Colors {
		if c != r.Color {
			continue
		}
		turn := cubeviz.CCW
		if r.Clockwise {
			turn = cubeviz.CW
		}
		return cubeviz.Move{Face: cubeviz.Faces[i], Turn: turn}, nil
	}
	return cubeviz.Move{}, fmt.Errorf("%w: %s", ErrUnknownColor, r.Color.Name())
}

// DecodeBattery returns the battery level in percent.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("%w: empty battery payload", ErrPayload)
	}
	return int(payload[0]), nil
}

// DecodeCubeType returns "edge" or "standard".
func DecodeCubeType(payload []byte) (string, error) {
	if len(payload) < 1 {
		return "", fmt.Errorf("%w: empty cube type payload", ErrPayload)
	}
	if payload[0] == 0x01 {
		return "edge", nil
	}
	return "standard", nil
}
