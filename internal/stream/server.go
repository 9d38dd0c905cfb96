package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SeamusWaldron/cubeviz"
	"github.com/SeamusWaldron/cubeviz/internal/scene"
)

const sendBuffer = 16

// ErrStopped is returned for client messages that arrive after the scene
// loop has stopped.
var ErrStopped = errors.New("stream: scene stopped")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local viewers
	},
}

// Server ticks a scene and broadcasts every changed frame to all websocket
// clients. Clients steer the scene with input and queue messages.
type Server struct {
	scene    *scene.Scene
	interval time.Duration
	commands chan scene.Command
	stopped  chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer returns a server for s ticking every interval.
func NewServer(s *scene.Scene, interval time.Duration) *Server {
	return &Server{
		scene:    s,
		interval: interval,
		commands: make(chan scene.Command, 64),
		stopped:  make(chan struct{}),
		clients:  make(map[*client]struct{}),
	}
}

// Handler returns the HTTP handler serving /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run ticks the scene until ctx is done. Client messages that arrive
// afterwards fail with ErrStopped.
func (s *Server) Run(ctx context.Context) error {
	defer s.stopOnce.Do(func() { close(s.stopped) })

	sent := false
	return s.scene.Run(ctx, s.interval, s.commands, func(sc *scene.Scene, now time.Duration, changed bool) {
		if sent && !changed {
			return
		}
		data, err := json.Marshal(NewFrame(sc, now.Milliseconds()))
		if err != nil {
			slog.Error("stream: encode frame", "error", err)
			return
		}
		s.broadcast(data)
		sent = true
	})
}

// ListenAndServe serves on addr and runs the scene until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln and runs the scene until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler()}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	slog.Info("stream: serving", "addr", ln.Addr().String())

	runErr := s.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.closeClients()
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func (s *Server) broadcast(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = data
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			// Slow client, drop the frame.
		}
	}
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = struct{}{}
	if s.last != nil {
		c.send <- s.last
	}
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("stream: websocket upgrade", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	s.register(c)
	slog.Debug("stream: client connected", "remote", r.RemoteAddr)

	go c.writeLoop()
	defer func() {
		s.unregister(c)
		slog.Debug("stream: client disconnected", "remote", r.RemoteAddr)
	}()

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("stream: websocket read", "error", err)
			}
			return
		}
		if err := s.handleMessage(r.Context(), msg); err != nil {
			s.reply(c, err)
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, msg ClientMessage) error {
	var cmd scene.Command
	switch msg.Type {
	case TypeInput:
		cmd.Events = msg.Events
	case TypeQueue:
		moves, err := cubeviz.ParseMoves(msg.Moves)
		if err != nil {
			return err
		}
		cmd.Moves = moves
	case TypeReset:
		cmd.Reset = true
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}

	select {
	case s.commands <- cmd:
		return nil
	case <-s.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) reply(c *client, err error) {
	data, merr := json.Marshal(ErrorMessage{Type: TypeError, Message: err.Error()})
	if merr != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
