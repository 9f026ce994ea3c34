// Package compliance evaluates a portfolio's sector-weight allocation against
// a fixed set of risk rules and produces a structured compliance report.
package compliance

import (
	"time"
)

// Status is the severity tier of a rule finding.
type Status string

// Severity tiers, in increasing order of concern. StatusAnalyzed marks an
// informational rule that is never graded.
const (
	StatusOK            Status = "OK"
	StatusAdvisory      Status = "ADVISORY"
	StatusSoftWarning   Status = "SOFT_WARNING"
	StatusHardViolation Status = "HARD_VIOLATION"
	StatusAnalyzed      Status = "ANALYZED"
)

// ClusterReport describes one correlation cluster in the analyzed portfolio.
type ClusterReport struct {
	Members        []string `json:"members"`
	WeightSum      float64  `json:"weight_sum"`
	AvgCorrelation float64  `json:"avg_corr"`
}

// ClusterViolation is a cluster whose combined weight crossed a concentration
// threshold. These are nested inside the Rule 2 finding and are not counted in
// the top-level summary.
type ClusterViolation struct {
	Status         Status   `json:"status"`
	Members        []string `json:"members"`
	WeightSum      float64  `json:"weight_sum"`
	AvgCorrelation float64  `json:"avg_corr"`
}

// Finding is the result of one rule evaluation. Value is a pointer so the
// informational Rule 2 finding (which has no single numeric value) can omit
// it while a legitimate 0.0 still serializes.
type Finding struct {
	Rule       int                `json:"rule"`
	Status     Status             `json:"status"`
	Sector     string             `json:"sector,omitempty"`
	Value      *float64           `json:"value,omitempty"`
	Message    string             `json:"message"`
	Clusters   []ClusterReport    `json:"components,omitempty"`
	Violations []ClusterViolation `json:"violations,omitempty"`
}

// Summary aggregates the top-level finding statuses. Rule 2's status is always
// ANALYZED and therefore never appears here; its nested cluster violations are
// intentionally not folded into these counts.
type Summary struct {
	HardViolationsCount int       `json:"hard_violations_count"`
	SoftWarningsCount   int       `json:"soft_warnings_count"`
	HardViolations      []Finding `json:"hard_violations"`
	SoftWarnings        []Finding `json:"soft_warnings"`
}

// Report is the full result of one evaluation pass.
type Report struct {
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	InputWeights map[string]float64 `json:"input_weights"`
	Checks       []Finding          `json:"checks"`
	Summary      Summary            `json:"summary"`
}
