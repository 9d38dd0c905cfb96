// Package protocol encodes and decodes GoCube BLE frames.
package protocol

import (
	"errors"
	"fmt"
)

// GoCube BLE service and characteristic UUIDs.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write
)

// Frame types sent by the cube.
const (
	TypeRotation    byte = 0x01
	TypeState       byte = 0x02
	TypeOrientation byte = 0x03
	TypeBattery     byte = 0x05
	TypeCubeType    byte = 0x08
)

// Command codes written to the RX characteristic.
const (
	CmdRequestBattery     byte = 0x32
	CmdRequestState       byte = 0x33
	CmdResetSolved        byte = 0x35
	CmdDisableOrientation byte = 0x37
	CmdRequestCubeType    byte = 0x56
)

const (
	framePrefix  byte = 0x2A // '*'
	frameSuffix1 byte = 0x0D // CR
	frameSuffix2 byte = 0x0A // LF
)

// Sentinel errors for the protocol package.
var (
	ErrShortFrame   = errors.New("protocol: frame too short")
	ErrFramePrefix  = errors.New("protocol: invalid frame prefix")
	ErrFrameSuffix  = errors.New("protocol: invalid frame suffix")
	ErrFrameLength  = errors.New("protocol: invalid frame length")
	ErrChecksum     = errors.New("protocol: invalid checksum")
	ErrPayload      = errors.New("protocol: invalid payload")
	ErrUnknownColor = errors.New("protocol: unknown color code")
)

// Frame is one decoded notification.
type Frame struct {
	Type    byte
	Payload []byte
}

// ParseFrame parses a raw notification.
//
// Layout: 0x2A, length, type, payload..., checksum, CR, LF. length counts
// the bytes after itself, and the checksum is the byte sum of everything
// before it.
func ParseFrame(data []byte) (Frame, error) {
	if len(data) < 5 {
		return Frame{}, ErrShortFrame
	}
	if data[0] != framePrefix {
		return Frame{}, ErrFramePrefix
	}

	length := int(data[1])
	if len(data) < 2+length {
		return Frame{}, fmt.Errorf("%w: expected %d, got %d", ErrFrameLength, 2+length, len(data))
	}

	sumIdx := length - 1
	if sumIdx < 3 {
		return Frame{}, ErrShortFrame
	}
	if data[sumIdx+1] != frameSuffix1 || data[sumIdx+2] != frameSuffix2 {
		return Frame{}, ErrFrameSuffix
	}

	var sum byte
	for _, b := range data[:sumIdx] {
		sum += b
	}
	if sum != data[sumIdx] {
		return Frame{}, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrChecksum, data[sumIdx], sum)
	}

	return Frame{
		Type:    data[2],
		Payload: data[3:sumIdx],
	}, nil
}

// EncodeFrame builds a frame of the given type and payload.
func EncodeFrame(typ byte, payload []byte) []byte {
	out := make([]byte, 0, len(payload)+6)
	out = append(out, framePrefix, byte(len(payload)+4), typ)
	out = append(out, payload...)

	var sum byte
	for _, b := range out {
		sum += b
	}
	return append(out, sum, frameSuffix1, frameSuffix2)
}

// Command builds a command frame with no payload.
func Command(code byte) []byte {
	// The cube expects length 1 for bare commands.
	length := byte(0x01)
	return []byte{framePrefix, length, code, framePrefix + length + code, frameSuffix1, frameSuffix2}
}

// TypeName returns a readable name for a frame type.
func TypeName(typ byte) string {
	switch typ {
	case TypeRotation:
		return "rotation"
	case TypeState:
		return "state"
	case TypeOrientation:
		return "orientation"
	case TypeBattery:
		return "battery"
	case TypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", typ)
	}
}
