// Package correlation groups portfolio sectors into clusters of historically
// correlated sectors. Two sectors belong to the same cluster when they are
// connected (directly or transitively) by pairwise correlations above the
// table's threshold.
package correlation

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Default graph parameters. Coefficients at or below the threshold do not
// create an edge (strict comparison).
const (
	DefaultThreshold   = 0.6
	DefaultCoefficient = 0.7
)

// KnownSectors is the GICS sector vocabulary the default table is written
// against. Table entries naming sectors outside this vocabulary are dropped
// during sanitization.
var KnownSectors = []string{
	"Information Technology",
	"Communication Services",
	"Consumer Discretionary",
	"Consumer Staples",
	"Health Care",
	"Financials",
	"Industrials",
	"Energy",
	"Materials",
	"Real Estate",
	"Utilities",
}

// Pair is an unordered sector pair with its correlation coefficient.
type Pair struct {
	A           string  `json:"a" yaml:"a"`
	B           string  `json:"b" yaml:"b"`
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`
}

// Table is an immutable correlation configuration: the known high-correlation
// sector pairs and the threshold above which a pair forms a graph edge.
// Sectors not listed in any pair are treated as uncorrelated.
type Table struct {
	Pairs     []Pair  `json:"pairs" yaml:"pairs"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// DefaultTable returns the built-in high-correlation sector pairs.
func DefaultTable() Table {
	return Table{
		Threshold: DefaultThreshold,
		Pairs: []Pair{
			{A: "Information Technology", B: "Communication Services", Coefficient: DefaultCoefficient},
			{A: "Energy", B: "Materials", Coefficient: DefaultCoefficient},
			{A: "Consumer Staples", B: "Health Care", Coefficient: DefaultCoefficient},
			{A: "Industrials", B: "Financials", Coefficient: DefaultCoefficient},
			{A: "Consumer Discretionary", B: "Communication Services", Coefficient: DefaultCoefficient},
		},
	}
}

// Coefficient returns the correlation coefficient between two sectors.
// Self-correlation is 1.0; pairs not present in the table are 0.
func (t Table) Coefficient(a, b string) float64 {
	if a == b {
		return 1.0
	}
	for _, p := range t.Pairs {
		if (p.A == a && p.B == b) || (p.A == b && p.B == a) {
			return p.Coefficient
		}
	}
	return 0
}

// Validate checks that the threshold and all coefficients are in [0,1] and
// that no pair correlates a sector with itself.
func (t Table) Validate() error {
	if t.Threshold < 0 || t.Threshold > 1 {
		return fmt.Errorf("correlation threshold %.3f out of range [0,1]", t.Threshold)
	}
	for _, p := range t.Pairs {
		if p.A == "" || p.B == "" {
			return fmt.Errorf("correlation pair with empty sector name")
		}
		if p.A == p.B {
			return fmt.Errorf("correlation pair %q correlates a sector with itself", p.A)
		}
		if p.Coefficient < 0 || p.Coefficient > 1 {
			return fmt.Errorf("correlation coefficient %.3f for %q/%q out of range [0,1]", p.Coefficient, p.A, p.B)
		}
	}
	return nil
}

// Sanitized returns a copy of the table with pairs referencing sectors outside
// the known vocabulary removed. The table is allowed to be a superset of any
// portfolio's sectors, so unknown names are advisory, not fatal.
func (t Table) Sanitized(log zerolog.Logger) Table {
	known := make(map[string]bool, len(KnownSectors))
	for _, s := range KnownSectors {
		known[s] = true
	}

	out := Table{Threshold: t.Threshold, Pairs: make([]Pair, 0, len(t.Pairs))}
	for _, p := range t.Pairs {
		if !known[p.A] || !known[p.B] {
			log.Warn().
				Str("sector_a", p.A).
				Str("sector_b", p.B).
				Msg("Ignoring correlation pair with unknown sector name")
			continue
		}
		out.Pairs = append(out.Pairs, p)
	}
	return out
}
