package cli

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeviz"
	"github.com/SeamusWaldron/cubeviz/internal/scene"
	"github.com/SeamusWaldron/cubeviz/internal/storage"
	"github.com/SeamusWaldron/cubeviz/internal/tui"
)

var (
	playFacelets string
	playMoves    string
	playAlg      string
	playDemo     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Animate the cube in the terminal",
	Long: `Open the terminal viewer. Drag with the left mouse button to orbit the camera
and use the wheel to zoom.

Keyboard shortcuts:
  l u f d r b  - Turn a face clockwise (shift for counter-clockwise)
  2            - Toggle half turns
  space        - Queue the demo sequence
  backspace    - Reset to the start state
  n            - Toggle the unfolded net
  c            - Clear queued moves
  q/Esc        - Quit

Moves given with --moves or --alg are queued on start. A play of a stored
algorithm is recorded when the viewer closes.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playFacelets, "facelets", "", "Start state as a 54 letter facelet string (default: config or solved)")
	playCmd.Flags().StringVar(&playMoves, "moves", "", "Moves to queue on start, e.g. \"R U R' U'\"")
	playCmd.Flags().StringVar(&playAlg, "alg", "", "Name of a stored algorithm to play")
	playCmd.Flags().BoolVar(&playDemo, "demo", false, "Queue the demo sequence on start")
	playCmd.MarkFlagsMutuallyExclusive("moves", "alg", "demo")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	c := cfg()
	if playFacelets != "" {
		c.StartFacelets = playFacelets
	}

	var moves []cubeviz.Move
	var alg *storage.Algorithm
	var db *storage.DB
	switch {
	case playMoves != "":
		var err error
		if moves, err = cubeviz.ParseMoves(playMoves); err != nil {
			return err
		}
	case playAlg != "":
		var err error
		if db, err = openDB(); err != nil {
			return err
		}
		defer db.Close()
		if alg, err = storage.NewAlgorithmRepository(db).Get(playAlg); err != nil {
			return err
		}
		moves = alg.Moves
		if playFacelets == "" {
			c.StartFacelets = alg.StartFacelets
		}
	case playDemo:
		moves = cubeviz.DemoSequence
	}

	cube, err := c.NewCube()
	if err != nil {
		return err
	}
	if err := cube.Queue(moves...); err != nil {
		return err
	}
	s, err := scene.New(cube, c.Orbit)
	if err != nil {
		return err
	}

	title := "cubeviz"
	if alg != nil {
		title += " - " + alg.Name
	}

	restore, err := logToFile()
	if err != nil {
		return err
	}
	defer restore()

	model := tui.New(s, title, c.FrameInterval())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if alg != nil {
		end := model.Scene().Cube.Facelets()
		if _, err := storage.NewPlayRepository(db).Record(alg.AlgID, end); err != nil {
			slog.Warn("cli: play not recorded", "error", err)
		}
	}
	return nil
}
