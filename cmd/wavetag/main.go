package main

import (
	"os"

	"github.com/wavetag/wavetag/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
