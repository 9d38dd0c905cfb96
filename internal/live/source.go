// Package live turns a GoCube's notifications into cube moves.
package live

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubeviz"
	"github.com/SeamusWaldron/cubeviz/internal/ble"
	"github.com/SeamusWaldron/cubeviz/internal/protocol"
)

// Source mirrors a physical cube. Callbacks run on the goroutine that
// delivers frames, so they should hand work off quickly.
//
//	src, err := live.Connect(ctx, result)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	src.OnMove(func(m cubeviz.Move) {
//	    program.Send(tui.MovesMsg{m})
//	})
type Source struct {
	client *ble.Client

	mu      sync.RWMutex
	state   *cubeviz.Cube
	history []cubeviz.Move

	onMove    func(cubeviz.Move)
	onBattery func(int)
	onSolved  func()
}

// NewSource returns a source whose mirror starts solved. Frames are fed
// with HandleFrame or HandleNotification.
func NewSource() (*Source, error) {
	state, err := cubeviz.New()
	if err != nil {
		return nil, err
	}
	return &Source{state: state}, nil
}

// Scan discovers nearby GoCubes.
func Scan(ctx context.Context, timeout time.Duration) ([]ble.ScanResult, error) {
	client, err := ble.NewClient()
	if err != nil {
		return nil, err
	}
	defer client.Disconnect()

	return client.Scan(ctx, timeout)
}

// Connect connects to a scanned GoCube and starts mirroring it.
func Connect(ctx context.Context, result ble.ScanResult) (*Source, error) {
	s, err := NewSource()
	if err != nil {
		return nil, err
	}

	client, err := ble.NewClient()
	if err != nil {
		return nil, err
	}
	client.SetFrameCallback(s.HandleFrame)
	if err := client.Connect(ctx, result); err != nil {
		return nil, err
	}
	s.client = client
	return s, nil
}

// Close disconnects from the cube.
func (s *Source) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect()
}

// DeviceName returns the connected device name.
func (s *Source) DeviceName() string {
	if s.client == nil {
		return ""
	}
	return s.client.DeviceName()
}

// Battery returns the last known battery level, or -1.
func (s *Source) Battery() int {
	if s.client == nil {
		return -1
	}
	return s.client.Battery()
}

// OnMove sets a callback that fires for each turn of the physical cube.
func (s *Source) OnMove(cb func(cubeviz.Move)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMove = cb
}

// OnBattery sets a callback for battery level updates.
func (s *Source) OnBattery(cb func(int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onBattery = cb
}

// OnSolved sets a callback that fires when a move solves the mirror.
func (s *Source) OnSolved(cb func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSolved = cb
}

// Facelets returns the facelet string of the mirror.
func (s *Source) Facelets() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Facelets()
}

// Moves returns the moves seen since connecting or the last Reset.
func (s *Source) Moves() []cubeviz.Move {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]cubeviz.Move(nil), s.history...)
}

// Reset marks the mirror solved and clears the history. With a connected
// cube it also tells the cube that its current state is solved.
func (s *Source) Reset() error {
	state, err := cubeviz.New()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.state = state
	s.history = nil
	s.mu.Unlock()

	if s.client != nil {
		return s.client.ResetSolved()
	}
	return nil
}

// HandleNotification parses and handles one raw notification.
func (s *Source) HandleNotification(data []byte) error {
	f, err := protocol.ParseFrame(data)
	if err != nil {
		return err
	}
	s.HandleFrame(f)
	return nil
}

// HandleFrame dispatches a decoded frame. Frame types the viewer does not
// use are ignored.
func (s *Source) HandleFrame(f protocol.Frame) {
	switch f.Type {
	case protocol.TypeRotation:
		if err := s.handleRotation(f.Payload); err != nil {
			slog.Warn("live: bad rotation frame", "error", err)
		}
	case protocol.TypeBattery:
		level, err := protocol.DecodeBattery(f.Payload)
		if err != nil {
			slog.Warn("live: bad battery frame", "error", err)
			return
		}
		s.mu.RLock()
		cb := s.onBattery
		s.mu.RUnlock()
		if cb != nil {
			cb(level)
		}
	default:
		slog.Debug("live: ignored frame", "type", protocol.TypeName(f.Type))
	}
}

func (s *Source) handleRotation(payload []byte) error {
	rotations, err := protocol.DecodeRotation(payload)
	if err != nil {
		return err
	}

	for _, rot := range rotations {
		move, err := rot.Move()
		if err != nil {
			return err
		}

		s.mu.Lock()
		if err := s.state.Apply(move); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("mirror %s: %w", move, err)
		}
		s.history = append(s.history, move)
		solved := s.state.IsSolved()
		moveCallback := s.onMove
		solvedCallback := s.onSolved
		s.mu.Unlock()

		// Fire callbacks outside the lock
		if moveCallback != nil {
			moveCallback(move)
		}
		if solved && solvedCallback != nil {
			solvedCallback()
		}
	}
	return nil
}
