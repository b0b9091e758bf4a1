// Package main is the entry point for the whquote CLI.
package main

import (
	"os"

	"warehouse-quote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
