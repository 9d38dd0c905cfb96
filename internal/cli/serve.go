package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeviz"
	"github.com/SeamusWaldron/cubeviz/internal/scene"
	"github.com/SeamusWaldron/cubeviz/internal/stream"
)

var (
	serveAddr     string
	serveFacelets string
	serveDemo     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Stream animated frames over a websocket",
	Long: `Run the scene headless and broadcast every frame as JSON on ws://ADDR/ws.

Clients send {"type":"queue","moves":"R U"} to queue moves,
{"type":"input","events":[...]} to orbit and zoom the camera, and
{"type":"reset"} to go back to the start state.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: config listen_addr)")
	serveCmd.Flags().StringVar(&serveFacelets, "facelets", "", "Start state as a 54 letter facelet string")
	serveCmd.Flags().BoolVar(&serveDemo, "demo", false, "Queue the demo sequence on start")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	c := cfg()
	if serveFacelets != "" {
		c.StartFacelets = serveFacelets
	}
	addr := serveAddr
	if addr == "" {
		addr = c.ListenAddr
	}

	cube, err := c.NewCube()
	if err != nil {
		return err
	}
	if serveDemo {
		if err := cube.Queue(cubeviz.DemoSequence...); err != nil {
			return err
		}
	}
	s, err := scene.New(cube, c.Orbit)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Printf("Streaming on ws://%s/ws (Ctrl+C to stop)\n", addr)
	return stream.NewServer(s, c.FrameInterval()).ListenAndServe(ctx, addr)
}
