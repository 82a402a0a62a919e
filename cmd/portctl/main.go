// Package main provides the entry point for the portctl CLI.
package main

import (
	"os"

	"github.com/portctl/portctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
