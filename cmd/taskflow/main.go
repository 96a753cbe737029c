package main

import (
	"os"

	"github.com/apper-canvas/taskflow/internal/cli"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and returns the process exit code. Cobra has
// already printed the error.
func run() int {
	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
