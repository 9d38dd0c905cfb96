// Package cli implements the command-line interface for cubeviz.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeviz/internal/config"
	"github.com/SeamusWaldron/cubeviz/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool

	// Loaded by the root pre-run hook.
	configFile *config.File
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubeviz",
	Short: "Animated 3x3x3 cube viewer",
	Long: `cubeviz - An animated 3x3x3 cube viewer for the terminal and the browser.

Play move sequences with eased animations, orbit and zoom the camera with the
mouse, mirror a GoCube smart cube live over Bluetooth, and keep a library of
algorithms.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path, .toml or .yaml (default: ~/.cubeviz/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubeviz/cubeviz.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	setLogOutput(os.Stderr)

	var err error
	if configPath != "" {
		configFile, err = config.Open(configPath)
	} else {
		configFile, err = config.OpenDefault()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.Debug("cli: config loaded", "path", configFile.Path())
	return nil
}

// setLogOutput points the default logger at w.
func setLogOutput(w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// logToFile redirects logging to the log file while a TUI owns the
// terminal. The returned func restores stderr logging.
func logToFile() (func(), error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "cubeviz.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	setLogOutput(f)
	return func() {
		setLogOutput(os.Stderr)
		f.Close()
	}, nil
}

// cfg returns the loaded configuration.
func cfg() config.Config {
	if configFile == nil {
		return config.Default()
	}
	return configFile.Config()
}

// getDBPath returns the database path from flag, config or default.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if p := cfg().DBPath; p != "" {
		return p, nil
	}
	return storage.DefaultDBPath()
}

// openDB opens the algorithm database.
func openDB() (*storage.DB, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return storage.Open(path)
}
