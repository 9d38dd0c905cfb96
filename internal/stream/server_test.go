package stream

import (
	"context"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cogentcore.org/core/math32"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubeviz"
	"github.com/SeamusWaldron/cubeviz/internal/scene"
	"github.com/SeamusWaldron/cubeviz/pkg/orbit"
)

func newTestScene(t *testing.T) *scene.Scene {
	t.Helper()
	cube, err := cubeviz.New(cubeviz.WithMoveDuration(20 * time.Millisecond))
	require.NoError(t, err)
	s, err := scene.New(cube, orbit.DefaultSettings())
	require.NoError(t, err)
	return s
}

func startServer(t *testing.T) (*Server, string) {
	t.Helper()
	srv := NewServer(newTestScene(t), 5*time.Millisecond)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return srv, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until match accepts one or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, match func(typ string, data []byte) bool) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var head struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(data, &head))
		if match(head.Type, data) {
			return data
		}
	}
}

func TestFirstFrame(t *testing.T) {
	_, url := startServer(t)
	conn := dial(t, url)

	data := readUntil(t, conn, func(typ string, _ []byte) bool { return typ == TypeFrame })
	var f Frame
	require.NoError(t, json.Unmarshal(data, &f))

	assert.Equal(t, cubeviz.SolvedFacelets, f.Facelets)
	require.Len(t, f.Pieces, 27)
	assert.Equal(t, [3]float32{4.5, 0, 4.5}, f.Camera.Position)
	for i, p := range f.Pieces {
		assert.Equal(t, i, p.Slot)
		assert.Len(t, p.Stickers, 6)
		assert.Equal(t, float32(1), p.Transform[0])
		assert.Equal(t, float32(1), p.Transform[15])
	}
	// Slot 0 is the left-up-back corner.
	assert.Equal(t, [3]int{-1, 1, -1}, f.Pieces[0].Home)
	assert.Equal(t, "BY---O", f.Pieces[0].Stickers)
}

func TestQueueMoves(t *testing.T) {
	_, url := startServer(t)
	conn := dial(t, url)

	want, err := cubeviz.New()
	require.NoError(t, err)
	require.NoError(t, want.Apply(cubeviz.R, cubeviz.U))

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeQueue, Moves: "R U"}))

	sawTurn := false
	readUntil(t, conn, func(typ string, data []byte) bool {
		var f Frame
		require.NoError(t, json.Unmarshal(data, &f))
		if f.Current != "" {
			sawTurn = true
		}
		return f.Facelets == want.Facelets() && f.Current == "" && f.Pending == 0
	})
	assert.True(t, sawTurn)
}

func TestInvalidMessages(t *testing.T) {
	_, url := startServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeQueue, Moves: "R X"}))
	data := readUntil(t, conn, func(typ string, _ []byte) bool { return typ == TypeError })
	var e ErrorMessage
	require.NoError(t, json.Unmarshal(data, &e))
	assert.Contains(t, e.Message, "invalid move notation")

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "dance"}))
	data = readUntil(t, conn, func(typ string, _ []byte) bool { return typ == TypeError })
	require.NoError(t, json.Unmarshal(data, &e))
	assert.Contains(t, e.Message, "dance")
}

func TestInputOrbitsCamera(t *testing.T) {
	_, url := startServer(t)
	conn := dial(t, url)
	readUntil(t, conn, func(typ string, _ []byte) bool { return typ == TypeFrame })

	require.NoError(t, conn.WriteJSON(ClientMessage{
		Type: TypeInput,
		Events: []orbit.Event{
			{Kind: orbit.MousePress, Button: orbit.ButtonLeft},
			{Kind: orbit.MouseMotion, Button: orbit.ButtonLeft, Delta: math32.Vec2(50, 0)},
		},
	}))
	readUntil(t, conn, func(typ string, data []byte) bool {
		var f Frame
		require.NoError(t, json.Unmarshal(data, &f))
		return f.Camera.Position != [3]float32{4.5, 0, 4.5}
	})
}

func TestMessagesAfterStopDoNotBlock(t *testing.T) {
	srv := NewServer(newTestScene(t), 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, srv.Run(ctx), context.Canceled)

	done := make(chan error, 1)
	go func() {
		var last error
		for i := 0; i < 2*cap(srv.commands); i++ {
			if err := srv.handleMessage(context.Background(), ClientMessage{Type: TypeQueue, Moves: "R"}); err != nil {
				last = err
			}
		}
		done <- last
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrStopped)
	case <-time.After(2 * time.Second):
		t.Fatal("handleMessage blocked after the scene loop stopped")
	}
}

func TestServeShutsDown(t *testing.T) {
	srv := NewServer(newTestScene(t), 5*time.Millisecond)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ctx, ln) }()

	conn := dial(t, "ws://"+ln.Addr().String()+"/ws")
	readUntil(t, conn, func(typ string, _ []byte) bool { return typ == TypeFrame })
	assert.Equal(t, 1, srv.Clients())

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Zero(t, srv.Clients())
}
