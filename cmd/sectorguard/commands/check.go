package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nlampros/sectorguard/internal/config"
	"github.com/nlampros/sectorguard/internal/modules/compliance"
	"github.com/nlampros/sectorguard/pkg/logger"
)

var (
	checkFile      string
	checkWeights   []string
	checkVerbose   bool
	checkRulesFile string
	checkFull      bool
)

// checkCmd runs a one-shot compliance check against a weights file
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a compliance check against a portfolio's sector weights",
	Long: `Reads sector weights from a JSON or YAML file (or inline --weight flags),
runs all five allocation rules and prints the report summary as indented JSON.
Exits non-zero when the portfolio has hard violations.

Example:
  sectorguard check --file weights.json
  sectorguard check --file - < weights.json
  sectorguard check --weight "Energy=40" --weight "Utilities=60" --verbose`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "weights file (JSON or YAML map of sector to weight, '-' for stdin)")
	checkCmd.Flags().StringArrayVarP(&checkWeights, "weight", "w", nil, "inline sector weight as 'Sector Name=12.5' (repeatable)")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "emit a per-rule diagnostic trace")
	checkCmd.Flags().StringVar(&checkRulesFile, "rules", "", "YAML rules file overriding built-in thresholds and correlation table")
	checkCmd.Flags().BoolVar(&checkFull, "full", false, "print the full report instead of only the summary")
}

func runCheck(cmd *cobra.Command, args []string) error {
	weights, err := loadWeights()
	if err != nil {
		return err
	}

	rules := config.DefaultRulesConfig()
	if checkRulesFile != "" {
		rules, err = config.LoadRulesFile(checkRulesFile)
		if err != nil {
			return err
		}
	}

	level := "warn"
	if checkVerbose {
		level = "info"
	}
	log := logger.New(logger.Config{Level: level, Pretty: true})

	evaluator := compliance.NewEvaluator(rules.Thresholds, rules.Groups, rules.Table, log)
	report, err := evaluator.Evaluate(weights, checkVerbose)
	if err != nil {
		return err
	}

	var out interface{} = report.Summary
	if checkFull {
		out = report
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))

	if report.Summary.HardViolationsCount > 0 {
		return fmt.Errorf("portfolio has %d hard violation(s)", report.Summary.HardViolationsCount)
	}
	return nil
}

// loadWeights assembles the sector weight map from --file and --weight flags.
func loadWeights() (map[string]float64, error) {
	weights := make(map[string]float64)

	if checkFile != "" {
		var data []byte
		var err error
		if checkFile == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(checkFile)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read weights: %w", err)
		}

		ext := strings.ToLower(filepath.Ext(checkFile))
		if ext == ".yaml" || ext == ".yml" {
			err = yaml.Unmarshal(data, &weights)
		} else {
			err = json.Unmarshal(data, &weights)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse weights: %w", err)
		}
	}

	for _, entry := range checkWeights {
		name, value, found := strings.Cut(entry, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --weight %q, expected 'Sector Name=12.5'", entry)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value in %q: %w", entry, err)
		}
		weights[strings.TrimSpace(name)] = w
	}

	if len(weights) == 0 {
		return nil, fmt.Errorf("no weights provided, use --file or --weight")
	}
	return weights, nil
}
