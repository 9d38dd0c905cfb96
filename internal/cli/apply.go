package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeviz"
	"github.com/SeamusWaldron/cubeviz/internal/tui"
)

var (
	applyFacelets string
	applyInverse  bool
	applyPlain    bool
	applySimplify bool
)

var applyCmd = &cobra.Command{
	Use:   "apply MOVES...",
	Short: "Apply moves and print the resulting state",
	Long: `Apply a move sequence to a cube without animation and print the resulting
facelet string and unfolded net.

Example:
  cubeviz apply "R U R' U'"
  cubeviz apply --facelets BBBBBBBBBYYYYYYYYYRRRRRRRRRWWWWWWWWWGGGGGGGGGOOOOOOOOO L F L2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyFacelets, "facelets", cubeviz.SolvedFacelets, "Start state as a 54 letter facelet string")
	applyCmd.Flags().BoolVar(&applyInverse, "inverse", false, "Apply the inverse of the sequence")
	applyCmd.Flags().BoolVar(&applyPlain, "plain", false, "Print the net as letters")
	applyCmd.Flags().BoolVar(&applySimplify, "simplify", false, "Merge adjacent turns of the same face and print the result")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	moves, err := cubeviz.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if applyInverse {
		moves = cubeviz.InverseMoves(moves)
	}
	if applySimplify {
		moves = cubeviz.SimplifyMoves(moves)
		fmt.Printf("Moves: %s\n", cubeviz.FormatMoves(moves))
	}

	cube, err := cubeviz.FromFacelets(applyFacelets)
	if err != nil {
		return err
	}
	if err := cube.Apply(moves...); err != nil {
		return err
	}

	fmt.Println(cube.Facelets())
	fmt.Println()
	if applyPlain {
		fmt.Print(cube.Net())
	} else {
		fmt.Println(tui.RenderNet(cube.Facelets()))
	}
	if cube.IsSolved() {
		fmt.Println("Solved")
	}
	return nil
}
