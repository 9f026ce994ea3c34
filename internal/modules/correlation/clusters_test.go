package correlation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusters_PartitionsAllSectors(t *testing.T) {
	table := DefaultTable()
	sectors := []string{
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

	clusters := table.Clusters(sectors)

	// Every sector appears in exactly one cluster
	seen := make(map[string]int)
	for _, c := range clusters {
		for _, m := range c.Members {
			seen[m]++
		}
	}
	assert.Equal(t, len(sectors), len(seen), "every input sector should be clustered")
	for s, count := range seen {
		assert.Equal(t, 1, count, "sector %s should appear in exactly one cluster", s)
	}

	// Expected partition for the default table
	var memberSets [][]string
	for _, c := range clusters {
		memberSets = append(memberSets, c.Members)
	}
	expected := [][]string{
		{"Information Technology", "Communication Services", "Consumer Discretionary"},
		{"Consumer Staples", "Health Care"},
		{"Financials", "Industrials"},
		{"Energy", "Materials"},
		{"Real Estate"},
		{"Utilities"},
	}
	require.Len(t, clusters, len(expected))
	for _, want := range expected {
		found := false
		for _, got := range memberSets {
			if len(got) == len(want) {
				matches := true
				for _, m := range want {
					if !contains(got, m) {
						matches = false
						break
					}
				}
				if matches {
					found = true
					break
				}
			}
		}
		assert.True(t, found, "expected cluster %v in partition %v", want, memberSets)
	}
}

func TestClusters_DeterministicOrdering(t *testing.T) {
	table := DefaultTable()
	sectors := []string{"Information Technology", "Energy", "Communication Services", "Materials"}

	first := table.Clusters(sectors)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, table.Clusters(sectors), "clustering should be deterministic")
	}

	// Clusters are emitted in order of their first member's input position
	require.Len(t, first, 2)
	assert.Equal(t, "Information Technology", first[0].Members[0])
	assert.Equal(t, "Energy", first[1].Members[0])
}

func TestClusters_ThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name         string
		coefficient  float64
		wantClusters int
	}{
		{"exactly at threshold forms no edge", 0.6, 2},
		{"just above threshold forms an edge", 0.6001, 1},
		{"below threshold forms no edge", 0.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Table{
				Threshold: 0.6,
				Pairs:     []Pair{{A: "Energy", B: "Materials", Coefficient: tt.coefficient}},
			}
			clusters := table.Clusters([]string{"Energy", "Materials"})
			assert.Len(t, clusters, tt.wantClusters)
		})
	}
}

func TestClusters_AbsentSectorProducesNoEdge(t *testing.T) {
	table := DefaultTable()

	// Materials is not in the portfolio, so the Energy/Materials pair is inert
	clusters := table.Clusters([]string{"Energy", "Utilities"})

	require.Len(t, clusters, 2)
	for _, c := range clusters {
		assert.Len(t, c.Members, 1)
		assert.Equal(t, 1.0, c.AvgCorrelation, "singleton average correlation is 1.0 by convention")
	}
}

func TestClusters_EmptyInput(t *testing.T) {
	assert.Nil(t, DefaultTable().Clusters(nil))
	assert.Nil(t, DefaultTable().Clusters([]string{}))
}

func TestClusters_AverageCorrelation(t *testing.T) {
	table := DefaultTable()

	// IT-CommServices (0.7) and CommServices-ConsDiscretionary (0.7) qualify;
	// IT-ConsDiscretionary is not in the table (0). Mean over the three
	// distinct pairs: (0.7 + 0.7 + 0) / 3.
	clusters := table.Clusters([]string{
		"Information Technology",
		"Communication Services",
		"Consumer Discretionary",
	})

	require.Len(t, clusters, 1)
	assert.InDelta(t, 1.4/3.0, clusters[0].AvgCorrelation, 1e-9)
}

func TestCoefficient(t *testing.T) {
	table := DefaultTable()

	assert.Equal(t, 1.0, table.Coefficient("Energy", "Energy"), "self-correlation is 1.0")
	assert.Equal(t, 0.7, table.Coefficient("Energy", "Materials"))
	assert.Equal(t, 0.7, table.Coefficient("Materials", "Energy"), "pairs are unordered")
	assert.Equal(t, 0.0, table.Coefficient("Energy", "Utilities"))
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
