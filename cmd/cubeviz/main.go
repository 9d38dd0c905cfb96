// cubeviz - animated 3x3x3 cube viewer for the terminal and the browser.
package main

import (
	"github.com/SeamusWaldron/cubeviz/internal/cli"
)

func main() {
	cli.Execute()
}
