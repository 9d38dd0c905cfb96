package cli

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeviz"
	"github.com/SeamusWaldron/cubeviz/internal/ble"
	"github.com/SeamusWaldron/cubeviz/internal/live"
	"github.com/SeamusWaldron/cubeviz/internal/scene"
	"github.com/SeamusWaldron/cubeviz/internal/tui"
)

var liveDevice string

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Mirror a GoCube in the terminal viewer",
	Long: `Scan for a GoCube, connect to it and animate every turn of the physical cube.

The viewer starts solved; solve the physical cube first, or press backspace
to mark the cube's current state as solved on both the viewer and the cube. Keyboard and mouse work as in 'cubeviz play'.`,
	RunE: runLive,
}

func init() {
	liveCmd.Flags().StringVar(&liveDevice, "device", "", "Device address to connect to (default: last device or first found)")
	rootCmd.AddCommand(liveCmd)
}

func runLive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	results, err := scanWithRetry(ctx, 3)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		printNoDevices()
		return nil
	}

	want := liveDevice
	if want == "" {
		want = cfg().LastDeviceID
	}
	target, err := ble.Pick(results, want)
	if err != nil {
		return err
	}

	fmt.Printf("Connecting to %s...\n", target.Name)
	src, err := live.Connect(ctx, target)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer src.Close()

	if configFile != nil {
		if err := configFile.SetLastDevice(target.ID, target.Name); err != nil {
			slog.Warn("cli: could not save last device", "error", err)
		}
	}

	c := cfg()
	c.StartFacelets = ""
	cube, err := c.NewCube()
	if err != nil {
		return err
	}
	s, err := scene.New(cube, c.Orbit)
	if err != nil {
		return err
	}

	restore, err := logToFile()
	if err != nil {
		return err
	}
	defer restore()

	model := tui.New(s, "cubeviz live", c.FrameInterval())
	model.OnReset(src.Reset)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	status := func(battery int) tea.Msg {
		if battery < 0 {
			return tui.StatusMsg(target.Name + " connected")
		}
		return tui.StatusMsg(fmt.Sprintf("%s connected, battery %d%%", target.Name, battery))
	}
	src.OnMove(func(m cubeviz.Move) {
		p.Send(tui.MovesMsg{m})
	})
	src.OnBattery(func(level int) {
		p.Send(status(level))
	})
	src.OnSolved(func() {
		slog.Info("live: cube solved", "moves", len(src.Moves()))
	})
	go p.Send(status(src.Battery()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
