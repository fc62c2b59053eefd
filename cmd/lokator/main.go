package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/geocine/lokator/fileio"
	"github.com/geocine/lokator/internal/cli"
)

var version = "dev"

func main() {
	rootCmd := cli.NewRootCommand(fileio.NewOS(), version)

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
