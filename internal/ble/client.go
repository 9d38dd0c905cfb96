// Package ble talks to GoCube devices over Bluetooth Low Energy.
package ble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/cubeviz/internal/protocol"
)

// Sentinel errors for the ble package.
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: GoCube service not found")
)

var (
	serviceUUID = bluetooth.NewUUID(uuid.MustParse(protocol.ServiceUUID))
	txCharUUID  = bluetooth.NewUUID(uuid.MustParse(protocol.TxCharUUID))
	rxCharUUID  = bluetooth.NewUUID(uuid.MustParse(protocol.RxCharUUID))
)

// ScanResult is a discovered GoCube.
type ScanResult struct {
	Name    string
	ID      string
	RSSI    int16
	Address bluetooth.Address
}

// IsGoCube reports whether an advertised name belongs to a GoCube.
func IsGoCube(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "gocube")
}

// Client is a connection to one GoCube.
type Client struct {
	adapter *bluetooth.Adapter
	device  bluetooth.Device
	rxChar  bluetooth.DeviceCharacteristic

	mu         sync.RWMutex
	connected  bool
	deviceName string
	deviceID   string
	battery    int

	onFrame func(protocol.Frame)
}

// NewClient enables the default adapter.
func NewClient() (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	return &Client{
		adapter: adapter,
		battery: -1,
	}, nil
}

// SetFrameCallback sets the callback for incoming frames. It runs on the
// Bluetooth goroutine.
func (c *Client) SetFrameCallback(cb func(protocol.Frame)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFrame = cb
}

// Scan lists GoCubes seen before timeout or ctx ends.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var results []ScanResult
	var mu sync.Mutex
	seen := make(map[string]bool)
	done := make(chan error, 1)

	go func() {
		done <- c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			addr := result.Address.String()

			mu.Lock()
			defer mu.Unlock()
			if seen[addr] || !IsGoCube(name) {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{
				Name:    name,
				ID:      addr,
				RSSI:    result.RSSI,
				Address: result.Address,
			})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}

	c.adapter.StopScan()
	if err := <-done; err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

// Pick returns the result with id, or the first result if id is empty or
// was not seen.
func Pick(results []ScanResult, id string) (ScanResult, error) {
	if len(results) == 0 {
		return ScanResult{}, ErrDeviceNotFound
	}
	for _, r := range results {
		if r.ID == id {
			return r, nil
		}
	}
	return results[0], nil
}

// Connect connects to a scanned device and subscribes to its frames.
func (c *Client) Connect(ctx context.Context, result ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	device, err := c.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	rx, err := c.subscribe(device)
	if err != nil {
		device.Disconnect()
		return err
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rx
	c.connected = true
	c.deviceName = result.Name
	c.deviceID = result.ID
	c.mu.Unlock()

	slog.Info("ble: connected", "name", result.Name, "id", result.ID)

	if err := c.SendCommand(protocol.CmdRequestBattery); err != nil {
		slog.Warn("ble: battery request failed", "error", err)
	}
	return nil
}

// subscribe finds the GoCube characteristics and enables notifications.
func (c *Client) subscribe(device bluetooth.Device) (bluetooth.DeviceCharacteristic, error) {
	var rx bluetooth.DeviceCharacteristic

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		return rx, fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		return rx, ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		return rx, fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var tx bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			tx = ch
		case rxCharUUID:
			rx = ch
		}
	}

	if err := tx.EnableNotifications(c.handleNotification); err != nil {
		return rx, fmt.Errorf("failed to enable notifications: %w", err)
	}
	return rx, nil
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.deviceID = ""
	c.battery = -1

	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// DeviceID returns the connected device address.
func (c *Client) DeviceID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceID
}

// Battery returns the last known battery level, or -1.
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := protocol.Command(cmd)
	_, err := c.rxChar.WriteWithoutResponse(data)
	if err != nil {
		_, err = c.rxChar.Write(data)
	}
	return err
}

// ResetSolved tells the cube its current state is solved.
func (c *Client) ResetSolved() error {
	return c.SendCommand(protocol.CmdResetSolved)
}

func (c *Client) handleNotification(data []byte) {
	frame, err := protocol.ParseFrame(data)
	if err != nil {
		slog.Debug("ble: dropped notification", "error", err, "len", len(data))
		return
	}

	if frame.Type == protocol.TypeBattery {
		if level, err := protocol.DecodeBattery(frame.Payload); err == nil {
			c.mu.Lock()
			c.battery = level
			c.mu.Unlock()
		}
	}

	c.mu.RLock()
	cb := c.onFrame
	c.mu.RUnlock()

	if cb != nil {
		cb(frame)
	}
}
