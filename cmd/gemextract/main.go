// Package main is the entry point for the gemextract CLI.
package main

import (
	"os"

	"github.com/Palash-creator/gem-extract/cmd/gemextract/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
