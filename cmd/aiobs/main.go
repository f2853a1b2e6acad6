package main

import (
	"os"

	"github.com/VyankateshD206/aiobs/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
