package correlation

import (
	"gonum.org/v1/gonum/stat"
)

// Cluster is a maximal set of sectors connected by above-threshold pairwise
// correlation. AvgCorrelation is the mean coefficient over all distinct member
// pairs; for a singleton cluster it is 1.0 by convention (there is no pair to
// average).
type Cluster struct {
	Members        []string `json:"members"`
	AvgCorrelation float64  `json:"avg_corr"`
}

// Clusters partitions the given sectors into correlation clusters. Every
// sector lands in exactly one cluster; sectors with no qualifying edge form
// singleton clusters. Table pairs referencing sectors absent from the input
// simply produce no edge.
//
// The result is deterministic: clusters are emitted in the order their first
// member appears in the input, and members keep discovery order within each
// cluster.
func (t Table) Clusters(sectors []string) []Cluster {
	n := len(sectors)
	if n == 0 {
		return nil
	}

	index := make(map[string]int, n)
	for i, s := range sectors {
		index[s] = i
	}

	// Boolean adjacency over present sectors only.
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	for _, p := range t.Pairs {
		i, okA := index[p.A]
		j, okB := index[p.B]
		if !okA || !okB || i == j {
			continue
		}
		if p.Coefficient > t.Threshold {
			adj[i][j] = true
			adj[j][i] = true
		}
	}

	// Connected components via iterative depth-first traversal.
	visited := make([]bool, n)
	var clusters []Cluster
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		var members []int
		stack := []int{i}
		visited[i] = true
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, u)
			for v := 0; v < n; v++ {
				if adj[u][v] && !visited[v] {
					visited[v] = true
					stack = append(stack, v)
				}
			}
		}

		names := make([]string, len(members))
		for k, idx := range members {
			names[k] = sectors[idx]
		}
		clusters = append(clusters, Cluster{
			Members:        names,
			AvgCorrelation: t.averageCorrelation(names),
		})
	}
	return clusters
}

// averageCorrelation computes the mean pairwise coefficient across all
// distinct pairs of the given sectors. Returns 1.0 for fewer than two members.
func (t Table) averageCorrelation(members []string) float64 {
	if len(members) < 2 {
		return 1.0
	}
	var coeffs []float64
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			coeffs = append(coeffs, t.Coefficient(members[i], members[j]))
		}
	}
	return stat.Mean(coeffs, nil)
}
