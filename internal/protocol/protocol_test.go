package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubeviz"
)

func TestParseFrame(t *testing.T) {
	raw := EncodeFrame(TypeRotation, []byte{0x08, 0x00, 0x03, 0x06})
	f, err := ParseFrame(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeRotation, f.Type)
	assert.Equal(t, []byte{0x08, 0x00, 0x03, 0x06}, f.Payload)

	// Trailing bytes after the frame are ignored.
	f, err = ParseFrame(append(raw, 0xFF))
	require.NoError(t, err)
	assert.Len(t, f.Payload, 4)
}

func TestParseFrameErrors(t *testing.T) {
	good := EncodeFrame(TypeBattery, []byte{80})

	badSum := append([]byte(nil), good...)
	badSum[len(badSum)-3]++

	badSuffix := append([]byte(nil), good...)
	badSuffix[len(badSuffix)-1] = 0

	badPrefix := append([]byte(nil), good...)
	badPrefix[0] = 0

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", []byte{0x2A, 0x01}, ErrShortFrame},
		{"prefix", badPrefix, ErrFramePrefix},
		{"truncated", good[:len(good)-1], ErrFrameLength},
		{"suffix", badSuffix, ErrFrameSuffix},
		{"checksum", badSum, ErrChecksum},
		{"tiny length", []byte{0x2A, 0x03, 0x01, 0x2E, 0x0D, 0x0A}, ErrShortFrame},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFrame(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCommand(t *testing.T) {
	assert.Equal(t, []byte{0x2A, 0x01, 0x32, 0x5D, 0x0D, 0x0A}, Command(CmdRequestBattery))
}

func TestDecodeRotation(t *testing.T) {
	rots, err := DecodeRotation([]byte{0x08, 0x00, 0x03, 0x06, 0x0B, 0x03})
	require.NoError(t, err)
	require.Len(t, rots, 3)

	assert.Equal(t, cubeviz.Red, rots[0].Color)
	assert.True(t, rots[0].Clockwise)
	assert.Equal(t, cubeviz.Green, rots[1].Color)
	assert.False(t, rots[1].Clockwise)
	assert.Equal(t, byte(0x06), rots[1].Center)
	assert.Equal(t, cubeviz.Orange, rots[2].Color)

	_, err = DecodeRotation([]byte{0x08})
	assert.ErrorIs(t, err, ErrPayload)
	_, err = DecodeRotation([]byte{0x0C, 0x00})
	assert.ErrorIs(t, err, ErrUnknownColor)
}

func TestRotationMove(t *testing.T) {
	tests := []struct {
		code byte
		want cubeviz.Move
	}{
		{0x00, cubeviz.L},      // blue
		{0x03, cubeviz.RPrime}, // green
		{0x04, cubeviz.D},      // white
		{0x07, cubeviz.UPrime}, // yellow
		{0x08, cubeviz.F},      // red
		{0x0A, cubeviz.B},      // orange
	}
	for _, tt := range tests {
		rots, err := DecodeRotation([]byte{tt.code, 0})
		require.NoError(t, err)
		got, err := rots[0].Move()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "code 0x%02X", tt.code)
	}

	_, err := Rotation{Color: cubeviz.None}.Move()
	assert.ErrorIs(t, err, ErrUnknownColor)
}

func TestDecodeBatteryAndType(t *testing.T) {
	level, err := DecodeBattery([]byte{87})
	require.NoError(t, err)
	assert.Equal(t, 87, level)
	_, err = DecodeBattery(nil)
	assert.ErrorIs(t, err, ErrPayload)

	typ, err := DecodeCubeType([]byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, "edge", typ)
	typ, err = DecodeCubeType([]byte{0x00})
	require.NoError(t, err)
	assert.Equal(t, "standard", typ)

	assert.Equal(t, "battery", TypeName(TypeBattery))
	assert.Equal(t, "unknown_0x7F", TypeName(0x7F))
}
