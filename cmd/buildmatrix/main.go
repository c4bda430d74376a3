// Package main is the entry point for the buildmatrix CLI.
package main

import (
	"fmt"
	"os"

	"github.com/condatools/buildmatrix/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
