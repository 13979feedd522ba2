package main

import (
	"os"

	"github.com/roach88/glyphos/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
