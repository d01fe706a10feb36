// Package main provides the canvas CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/canvas/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
