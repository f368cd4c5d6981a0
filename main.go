// Package main is the entry point for the feed-curator CLI
package main

import (
	"errors"
	"os"

	"feed-curator/cmd"
	"feed-curator/internal/output"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			output.NewPrinter(true).FormatError(cliErr)
		} else {
			os.Stderr.WriteString("Error: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}
