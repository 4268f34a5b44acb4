// Command stitchcraft converts a raster image into a machine embroidery
// stitch pattern and writes it in one of the supported binary formats.
package main

import (
	"os"

	"github.com/lukifer23/embroiderypro/pkg/cli"
)

func main() {
	os.Exit(cli.RunCLI())
}
