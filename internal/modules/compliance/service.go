package compliance

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/nlampros/sectorguard/internal/modules/correlation"
)

// Evaluator runs the five allocation rules against a portfolio's sector
// weights. It holds only immutable configuration, so a single instance is
// safe for concurrent use.
type Evaluator struct {
	thresholds Thresholds
	groups     SectorGroups
	table      correlation.Table
	log        zerolog.Logger
}

// NewEvaluator creates an evaluator. The correlation table is sanitized
// against the known sector vocabulary; unknown entries are dropped with a
// warning rather than treated as fatal.
func NewEvaluator(thresholds Thresholds, groups SectorGroups, table correlation.Table, log zerolog.Logger) *Evaluator {
	l := log.With().Str("component", "compliance").Logger()
	return &Evaluator{
		thresholds: thresholds,
		groups:     groups,
		table:      table.Sanitized(l),
		log:        l,
	}
}

// Evaluate normalizes the raw weights to percentages summing to 100 and runs
// all five rules. Every rule always runs; violations never short-circuit the
// pass. When verbose is set, a per-rule trace is written to the evaluator's
// logger; the trace has no effect on the returned report.
func (e *Evaluator) Evaluate(weights map[string]float64, verbose bool) (*Report, error) {
	sectors, normalized, err := normalize(weights)
	if err != nil {
		return nil, err
	}

	weightOf := make(map[string]float64, len(sectors))
	for i, s := range sectors {
		weightOf[s] = normalized[i]
	}

	report := &Report{
		ID:           uuid.New().String(),
		Timestamp:    time.Now().UTC(),
		InputWeights: weightOf,
		Checks: []Finding{
			e.checkSingleSector(sectors, normalized),
			e.checkClusters(sectors, weightOf),
			e.checkDefensiveFloor(weightOf),
			e.checkREITCeiling(sectors, weightOf),
			e.checkCyclicalCeiling(weightOf),
		},
	}
	report.Summary = buildSummary(report.Checks)

	if verbose {
		e.log.Info().
			Int("total_sectors", len(sectors)).
			Float64("total_weight", round(floats.Sum(normalized), 2)).
			Msg("Rule check summary")
		for _, chk := range report.Checks {
			e.log.Info().
				Int("rule", chk.Rule).
				Str("status", string(chk.Status)).
				Msg(chk.Message)
		}
	}

	return report, nil
}

// normalize validates the raw weights and scales them to percentages summing
// to 100. Sectors are ordered by sorted name so the evaluation (and the
// cluster partition derived from it) is deterministic for map inputs.
func normalize(weights map[string]float64) ([]string, []float64, error) {
	if len(weights) == 0 {
		return nil, nil, fmt.Errorf("%w: no sector weights provided", ErrInvalidInput)
	}

	sectors := make([]string, 0, len(weights))
	for s := range weights {
		sectors = append(sectors, s)
	}
	sort.Strings(sectors)

	raw := make([]float64, len(sectors))
	for i, s := range sectors {
		w := weights[s]
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, nil, fmt.Errorf("%w: weight for %q is not finite", ErrInvalidInput, s)
		}
		if w < 0 {
			return nil, nil, fmt.Errorf("%w: weight for %q is negative (%.4f)", ErrInvalidInput, s, w)
		}
		raw[i] = w
	}

	total := floats.Sum(raw)
	if total == 0 {
		return nil, nil, fmt.Errorf("%w: total weight is zero", ErrInvalidInput)
	}

	// Multiply before dividing: for inputs already summing to 100 this keeps
	// representable weights exact, so boundary comparisons stay strict.
	normalized := make([]float64, len(raw))
	for i, w := range raw {
		normalized[i] = w * 100 / total
	}
	return sectors, normalized, nil
}

// checkSingleSector flags over-concentration in the largest single sector.
func (e *Evaluator) checkSingleSector(sectors []string, normalized []float64) Finding {
	maxIdx := 0
	for i, w := range normalized {
		if w > normalized[maxIdx] {
			maxIdx = i
		}
	}
	maxSector := sectors[maxIdx]
	maxWeight := normalized[maxIdx]

	status := StatusOK
	switch {
	case maxWeight > e.thresholds.SingleSectorHard:
		status = StatusHardViolation
	case maxWeight > e.thresholds.SingleSectorSoft:
		status = StatusSoftWarning
	}

	return Finding{
		Rule:    1,
		Status:  status,
		Sector:  maxSector,
		Value:   roundPtr(maxWeight, 2),
		Message: fmt.Sprintf("Single sector '%s' weight: %.2f%%", maxSector, maxWeight),
	}
}

// checkClusters partitions the portfolio into correlation clusters and flags
// clusters whose combined weight crosses the concentration thresholds. The
// finding itself is informational (always ANALYZED); violations are nested.
func (e *Evaluator) checkClusters(sectors []string, weightOf map[string]float64) Finding {
	clusters := e.table.Clusters(sectors)

	infos := make([]ClusterReport, 0, len(clusters))
	var violations []ClusterViolation
	for _, c := range clusters {
		var sum float64
		for _, m := range c.Members {
			sum += weightOf[m]
		}
		info := ClusterReport{
			Members:        c.Members,
			WeightSum:      round(sum, 2),
			AvgCorrelation: round(c.AvgCorrelation, 3),
		}
		infos = append(infos, info)

		switch {
		case sum > e.thresholds.ClusterHard:
			violations = append(violations, ClusterViolation{
				Status:         StatusHardViolation,
				Members:        c.Members,
				WeightSum:      info.WeightSum,
				AvgCorrelation: info.AvgCorrelation,
			})
		case sum > e.thresholds.ClusterSoft:
			violations = append(violations, ClusterViolation{
				Status:         StatusSoftWarning,
				Members:        c.Members,
				WeightSum:      info.WeightSum,
				AvgCorrelation: info.AvgCorrelation,
			})
		}
	}

	return Finding{
		Rule:       2,
		Status:     StatusAnalyzed,
		Clusters:   infos,
		Violations: violations,
		Message:    fmt.Sprintf("Correlation cluster analysis complete. Clusters: %d", len(infos)),
	}
}

// checkDefensiveFloor verifies the portfolio keeps a minimum allocation to
// defensive sectors. Defensive sectors absent from the portfolio contribute 0.
func (e *Evaluator) checkDefensiveFloor(weightOf map[string]float64) Finding {
	var sum float64
	for _, s := range e.groups.Defensive {
		sum += weightOf[s]
	}

	status := StatusOK
	switch {
	case sum < e.thresholds.DefensiveHardMin:
		status = StatusHardViolation
	case sum < e.thresholds.DefensiveSoftMin:
		status = StatusSoftWarning
	}

	return Finding{
		Rule:    3,
		Status:  status,
		Value:   roundPtr(sum, 2),
		Message: fmt.Sprintf("Defensive sector total: %.2f%% (recommended minimum: %.0f%%)", sum, e.thresholds.DefensiveSoftMin),
	}
}

// checkREITCeiling caps the combined weight of real-estate sector buckets,
// matched by substring so variants like "Real Estate (REITs)" are included.
func (e *Evaluator) checkREITCeiling(sectors []string, weightOf map[string]float64) Finding {
	var sum float64
	for _, s := range sectors {
		if strings.Contains(s, e.groups.REITSubstring) {
			sum += weightOf[s]
		}
	}

	status := StatusOK
	switch {
	case sum > e.thresholds.REITHard:
		status = StatusHardViolation
	case sum > e.thresholds.REITSoft:
		status = StatusSoftWarning
	}

	return Finding{
		Rule:    4,
		Status:  status,
		Value:   roundPtr(sum, 2),
		Message: fmt.Sprintf("REIT total: %.2f%% (recommended maximum: %.0f%%)", sum, e.thresholds.REITHard),
	}
}

// checkCyclicalCeiling caps the combined weight of cyclical sectors.
func (e *Evaluator) checkCyclicalCeiling(weightOf map[string]float64) Finding {
	var sum float64
	for _, s := range e.groups.Cyclical {
		sum += weightOf[s]
	}

	status := StatusOK
	switch {
	case sum > e.thresholds.CyclicalHard:
		status = StatusHardViolation
	case sum > e.thresholds.CyclicalSoft:
		status = StatusSoftWarning
	case sum > e.thresholds.CyclicalAdvisory:
		status = StatusAdvisory
	}

	return Finding{
		Rule:    5,
		Status:  status,
		Value:   roundPtr(sum, 2),
		Message: fmt.Sprintf("Cyclical sector total: %.2f%%", sum),
	}
}

// buildSummary counts hard violations and soft warnings among the top-level
// finding statuses. Rule 2's ANALYZED status never matches, so its nested
// cluster violations stay out of the counts.
func buildSummary(checks []Finding) Summary {
	summary := Summary{
		HardViolations: []Finding{},
		SoftWarnings:   []Finding{},
	}
	for _, chk := range checks {
		switch chk.Status {
		case StatusHardViolation:
			summary.HardViolations = append(summary.HardViolations, chk)
		case StatusSoftWarning:
			summary.SoftWarnings = append(summary.SoftWarnings, chk)
		}
	}
	summary.HardViolationsCount = len(summary.HardViolations)
	summary.SoftWarningsCount = len(summary.SoftWarnings)
	return summary
}

// round rounds to the given number of decimal places.
func round(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func roundPtr(val float64, precision int) *float64 {
	r := round(val, precision)
	return &r
}
