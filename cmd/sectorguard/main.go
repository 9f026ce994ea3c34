// Package main is the entry point for the SectorGuard CLI.
package main

import (
	"os"

	"github.com/nlampros/sectorguard/cmd/sectorguard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
