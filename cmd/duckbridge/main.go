// Package main provides the duckbridge command-line tool.
package main

import (
	"os"

	"github.com/duckbridge-labs/duckbridge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
