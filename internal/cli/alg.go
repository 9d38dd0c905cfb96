package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeviz"
	"github.com/SeamusWaldron/cubeviz/internal/storage"
	"github.com/SeamusWaldron/cubeviz/internal/tui"
)

var algStart string

var algCmd = &cobra.Command{
	Use:   "alg",
	Short: "Manage the algorithm library",
}

var algAddCmd = &cobra.Command{
	Use:   "add NAME MOVES",
	Short: "Store a named move sequence",
	Args:  cobra.ExactArgs(2),
	RunE:  runAlgAdd,
}

var algListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored algorithms",
	Args:  cobra.NoArgs,
	RunE:  runAlgList,
}

var algShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show an algorithm and the state it leaves",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlgShow,
}

var algRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete an algorithm and its plays",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlgRm,
}

func init() {
	algAddCmd.Flags().StringVar(&algStart, "facelets", "", "Start state as a 54 letter facelet string (default: solved)")
	algCmd.AddCommand(algAddCmd, algListCmd, algShowCmd, algRmCmd)
	rootCmd.AddCommand(algCmd)
}

func runAlgAdd(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	alg, err := storage.NewAlgorithmRepository(db).Create(args[0], args[1], algStart)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s: %s (%d moves)\n", alg.Name, alg.Notation(), len(alg.Moves))
	return nil
}

func runAlgList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	algs, err := storage.NewAlgorithmRepository(db).List()
	if err != nil {
		return err
	}
	if len(algs) == 0 {
		fmt.Println("No algorithms stored. Add one with 'cubeviz alg add NAME MOVES'.")
		return nil
	}

	plays := storage.NewPlayRepository(db)
	for _, a := range algs {
		n, err := plays.Count(a.AlgID)
		if err != nil {
			return err
		}
		fmt.Printf("%-20s %3d moves %4d plays  %s\n", a.Name, len(a.Moves), n, a.Notation())
	}
	return nil
}

func runAlgShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	alg, err := storage.NewAlgorithmRepository(db).Get(args[0])
	if err != nil {
		return err
	}
	cube, err := cubeviz.FromFacelets(alg.Start())
	if err != nil {
		return err
	}
	if err := cube.Apply(alg.Moves...); err != nil {
		return err
	}

	plays, err := storage.NewPlayRepository(db).ForAlgorithm(alg.AlgID)
	if err != nil {
		return err
	}

	fmt.Printf("Name:    %s\n", alg.Name)
	fmt.Printf("Moves:   %s\n", alg.Notation())
	fmt.Printf("Inverse: %s\n", cubeviz.FormatMoves(cubeviz.InverseMoves(alg.Moves)))
	fmt.Printf("Added:   %s\n", alg.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("Plays:   %d\n", len(plays))
	if len(plays) > 0 {
		fmt.Printf("Last:    %s\n", plays[0].PlayedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Println(tui.RenderNet(cube.Facelets()))
	return nil
}

func runAlgRm(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewAlgorithmRepository(db).Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
