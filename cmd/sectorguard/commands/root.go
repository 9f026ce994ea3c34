// Package commands wires the SectorGuard CLI commands.
package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd is the base command for the SectorGuard CLI
var rootCmd = &cobra.Command{
	Use:   "sectorguard",
	Short: "Portfolio sector-allocation compliance checker",
	Long: `SectorGuard evaluates a portfolio's sector-weight allocation against a
fixed set of risk rules (single-sector concentration, correlated-cluster
concentration, defensive floor, REIT ceiling, cyclical ceiling) and produces
a structured compliance report.

Example:
  sectorguard check --file weights.json
  sectorguard serve`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
