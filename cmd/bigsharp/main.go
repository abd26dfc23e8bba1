// Package main provides the bigsharp command.
package main

import (
	"os"

	"github.com/leapstack-labs/bigsharp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
