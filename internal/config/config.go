// Package config manages the persistent viewer configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubeviz"
	"github.com/SeamusWaldron/cubeviz/pkg/orbit"
)

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("config: invalid")

// Config is the viewer configuration.
type Config struct {
	// MoveDuration is how long one move animates.
	MoveDuration Duration `toml:"move_duration" yaml:"move_duration"`
	// Smoothing is the ease exponent of a move animation.
	Smoothing float32 `toml:"smoothing" yaml:"smoothing"`
	// StartFacelets is the state a new cube starts in. Empty means solved.
	StartFacelets string `toml:"start_facelets,omitempty" yaml:"start_facelets,omitempty"`
	// FPS is the frame rate of the viewer and the frame stream.
	FPS int `toml:"fps" yaml:"fps"`

	DBPath     string `toml:"db_path,omitempty" yaml:"db_path,omitempty"`
	ListenAddr string `toml:"listen_addr" yaml:"listen_addr"`

	LastDeviceID   string `toml:"last_device_id,omitempty" yaml:"last_device_id,omitempty"`
	LastDeviceName string `toml:"last_device_name,omitempty" yaml:"last_device_name,omitempty"`

	Orbit orbit.Settings `toml:"orbit" yaml:"orbit"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		MoveDuration: Duration(500 * time.Millisecond),
		Smoothing:    2,
		FPS:          60,
		ListenAddr:   "127.0.0.1:8080",
		Orbit:        orbit.DefaultSettings(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MoveDuration <= 0 {
		return fmt.Errorf("%w: move_duration must be positive", ErrInvalidConfig)
	}
	if c.Smoothing <= 0 {
		return fmt.Errorf("%w: smoothing must be positive", ErrInvalidConfig)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive", ErrInvalidConfig)
	}
	if c.StartFacelets != "" {
		if err := cubeviz.ValidateFacelets(c.StartFacelets); err != nil {
			return fmt.Errorf("%w: start_facelets: %w", ErrInvalidConfig, err)
		}
	}
	if err := c.Orbit.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// CubeOptions returns the cube options for this configuration.
func (c Config) CubeOptions() []cubeviz.Option {
	return []cubeviz.Option{
		cubeviz.WithMoveDuration(time.Duration(c.MoveDuration)),
		cubeviz.WithSmoothing(c.Smoothing),
	}
}

// NewCube creates a cube in the configured start state.
func (c Config) NewCube() (*cubeviz.Cube, error) {
	start := c.StartFacelets
	if start == "" {
		start = cubeviz.SolvedFacelets
	}
	return cubeviz.FromFacelets(start, c.CubeOptions()...)
}

// FrameInterval returns the time between frames.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// Duration is a time.Duration written as a string such as "500ms".
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// File manages the configuration file. The format follows the extension:
// .yaml and .yml are YAML, anything else is TOML.
type File struct {
	path   string
	config Config
}

// DefaultDir returns the configuration directory, creating it if needed.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".cubeviz")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Open loads the config file at path. A missing file yields the defaults.
func Open(path string) (*File, error) {
	f := &File{path: path, config: Default()}

	if err := f.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return f, nil
}

// OpenDefault opens the config file at the default path.
func OpenDefault() (*File, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

func (f *File) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(f.path))
	return ext == ".yaml" || ext == ".yml"
}

// Load loads the config from disk over the defaults and validates it.
func (f *File) Load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}

	cfg := Default()
	if f.isYAML() {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", f.path, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", f.path, err)
	}

	f.config = cfg
	return nil
}

// Save writes the config to disk.
func (f *File) Save() error {
	var data []byte
	var err error
	if f.isYAML() {
		data, err = yaml.Marshal(f.config)
	} else {
		data, err = toml.Marshal(f.config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Path returns the config file path.
func (f *File) Path() string {
	return f.path
}

// Config returns the current configuration.
func (f *File) Config() Config {
	return f.config
}

// SetLastDevice records the last connected device.
func (f *File) SetLastDevice(deviceID, deviceName string) error {
	f.config.LastDeviceID = deviceID
	f.config.LastDeviceName = deviceName
	return f.Save()
}

// SetDBPath sets the database path.
func (f *File) SetDBPath(path string) error {
	f.config.DBPath = path
	return f.Save()
}
