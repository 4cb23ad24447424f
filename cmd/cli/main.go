// Package main is the entry point for the dimensional CLI.
package main

import (
	"os"

	"dimensional/cmd/cli/cmd"
	"dimensional/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
