package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeviz/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration, library and device information",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	c := cfg()

	fmt.Println("cubeviz status")
	fmt.Println("==============")
	fmt.Println()

	if configFile != nil {
		fmt.Printf("Config:   %s\n", configFile.Path())
	}
	fmt.Printf("Move:     %s, smoothing %g\n", c.MoveDuration.String(), c.Smoothing)
	fmt.Printf("Frames:   %d fps\n", c.FPS)
	fmt.Printf("Listen:   %s\n", c.ListenAddr)

	path, err := getDBPath()
	if err != nil {
		return err
	}
	fmt.Printf("Database: %s\n", path)

	db, err := storage.Open(path)
	if err == nil {
		defer db.Close()
		algs, err := storage.NewAlgorithmRepository(db).List()
		if err == nil {
			fmt.Printf("Algorithms: %d\n", len(algs))
		}
	}

	fmt.Println()

	if c.LastDeviceID != "" {
		fmt.Printf("Last device: %s (%s)\n", c.LastDeviceName, c.LastDeviceID)
	} else {
		fmt.Println("No device history")
	}
	return nil
}
