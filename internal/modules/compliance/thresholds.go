package compliance

import "fmt"

// Thresholds holds the rule cut-offs, in normalized percentage points.
// All comparisons against these values are strict, so a weight exactly at a
// threshold resolves to the less severe tier.
type Thresholds struct {
	// Rule 1: single-sector concentration ceiling.
	SingleSectorHard float64 `yaml:"single_sector_hard"`
	SingleSectorSoft float64 `yaml:"single_sector_soft"`

	// Rule 2: correlated-cluster concentration ceiling.
	ClusterHard float64 `yaml:"cluster_hard"`
	ClusterSoft float64 `yaml:"cluster_soft"`

	// Rule 3: defensive-sector floor.
	DefensiveHardMin float64 `yaml:"defensive_hard_min"`
	DefensiveSoftMin float64 `yaml:"defensive_soft_min"`

	// Rule 4: REIT ceiling.
	REITHard float64 `yaml:"reit_hard"`
	REITSoft float64 `yaml:"reit_soft"`

	// Rule 5: cyclical-sector ceiling.
	CyclicalHard     float64 `yaml:"cyclical_hard"`
	CyclicalSoft     float64 `yaml:"cyclical_soft"`
	CyclicalAdvisory float64 `yaml:"cyclical_advisory"`
}

// DefaultThresholds returns the built-in rule cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SingleSectorHard: 40,
		SingleSectorSoft: 30,
		ClusterHard:      60,
		ClusterSoft:      50,
		DefensiveHardMin: 5,
		DefensiveSoftMin: 10,
		REITHard:         20,
		REITSoft:         15,
		CyclicalHard:     25,
		CyclicalSoft:     20,
		CyclicalAdvisory: 15,
	}
}

// Validate checks tier ordering: for ceilings the hard threshold must sit
// above the soft one, for the defensive floor below it.
func (t Thresholds) Validate() error {
	ceilings := []struct {
		name       string
		hard, soft float64
	}{
		{"single_sector", t.SingleSectorHard, t.SingleSectorSoft},
		{"cluster", t.ClusterHard, t.ClusterSoft},
		{"reit", t.REITHard, t.REITSoft},
		{"cyclical", t.CyclicalHard, t.CyclicalSoft},
	}
	for _, c := range ceilings {
		if c.hard <= c.soft {
			return fmt.Errorf("%s thresholds inverted: hard %.2f must exceed soft %.2f", c.name, c.hard, c.soft)
		}
	}
	if t.CyclicalSoft <= t.CyclicalAdvisory {
		return fmt.Errorf("cyclical thresholds inverted: soft %.2f must exceed advisory %.2f", t.CyclicalSoft, t.CyclicalAdvisory)
	}
	if t.DefensiveHardMin >= t.DefensiveSoftMin {
		return fmt.Errorf("defensive thresholds inverted: hard floor %.2f must sit below soft floor %.2f", t.DefensiveHardMin, t.DefensiveSoftMin)
	}
	return nil
}

// SectorGroups names the sector sets referenced by the floor and ceiling
// rules. Sectors absent from a portfolio contribute zero to their group.
type SectorGroups struct {
	Defensive     []string `yaml:"defensive"`
	Cyclical      []string `yaml:"cyclical"`
	REITSubstring string   `yaml:"reit_substring"`
}

// DefaultSectorGroups returns the built-in group membership.
func DefaultSectorGroups() SectorGroups {
	return SectorGroups{
		Defensive:     []string{"Consumer Staples", "Health Care", "Utilities"},
		Cyclical:      []string{"Energy", "Materials"},
		REITSubstring: "Real Estate",
	}
}
