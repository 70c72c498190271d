// Package testgraph generates small fixture graphs for property tests,
// adapted from lvlath/builder's generator family (RandomSparse, Cycle,
// Star, Path) and repurposed to emit graphview's dense int32 CSR
// representation instead of core.Graph's string-keyed mutable graph.
//
// This package is test-only: spec §1 explicitly places generator utilities
// (an Erdős–Rényi generator among them) out of scope for the shipped
// kernels, but spec §8's testable properties require exactly these
// fixtures ("Erdős–Rényi graphs of size ≤ 1000").
package testgraph

import (
	"math/rand"

	"github.com/katalvlaran/webkernel/graphview"
)

// DirectedPath builds the directed path 0->1->...->(n-1).
func DirectedPath(n int32) *graphview.ArrayGraph {
	adj := make([][]int32, n)
	for i := int32(0); i < n-1; i++ {
		adj[i] = []int32{i + 1}
	}
	return graphview.NewArrayGraph(n, adj)
}

// UndirectedPath builds the symmetric path 0-1-...-(n-1) as a bidirected
// graph (every edge represented by an arc in each direction).
func UndirectedPath(n int32) *graphview.ArrayGraph {
	adj := make([][]int32, n)
	for i := int32(0); i < n; i++ {
		var row []int32
		if i > 0 {
			row = append(row, i-1)
		}
		if i < n-1 {
			row = append(row, i+1)
		}
		adj[i] = row
	}
	return graphview.NewArrayGraph(n, adj)
}

// DirectedCycle builds the directed cycle i -> (i+1)%n, in stable
// increasing-i emission order (mirrors lvlath/builder's Cycle).
func DirectedCycle(n int32) *graphview.ArrayGraph {
	adj := make([][]int32, n)
	for i := int32(0); i < n; i++ {
		adj[i] = []int32{(i + 1) % n}
	}
	return graphview.NewArrayGraph(n, adj)
}

// BidirectionalCycle builds the cycle of n nodes with an arc in each
// direction between consecutive nodes (used by spec scenario S3).
func BidirectionalCycle(n int32) *graphview.ArrayGraph {
	adj := make([][]int32, n)
	for i := int32(0); i < n; i++ {
		prev := (i - 1 + n) % n
		next := (i + 1) % n
		if prev < next {
			adj[i] = []int32{prev, next}
		} else {
			adj[i] = []int32{next, prev}
		}
	}
	return graphview.NewArrayGraph(n, adj)
}

// UndirectedStar builds an undirected star with centre 0 and n-1 leaves.
func UndirectedStar(n int32) *graphview.ArrayGraph {
	adj := make([][]int32, n)
	leaves := make([]int32, 0, n-1)
	for i := int32(1); i < n; i++ {
		leaves = append(leaves, i)
		adj[i] = []int32{0}
	}
	adj[0] = leaves
	return graphview.NewArrayGraph(n, adj)
}

// Clique builds the undirected complete graph on n nodes.
func Clique(n int32) *graphview.ArrayGraph {
	adj := make([][]int32, n)
	for i := int32(0); i < n; i++ {
		row := make([]int32, 0, n-1)
		for j := int32(0); j < n; j++ {
			if j != i {
				row = append(row, j)
			}
		}
		adj[i] = row
	}
	return graphview.NewArrayGraph(n, adj)
}

// CompleteBinaryOutTree builds the complete binary out-tree of the given
// depth rooted at 0 (node i's children are 2i+1, 2i+2 when in range); used
// by spec scenario S6.
func CompleteBinaryOutTree(depth int32) *graphview.ArrayGraph {
	n := int32(1)<<(depth+1) - 1
	adj := make([][]int32, n)
	for i := int32(0); i < n; i++ {
		var row []int32
		for _, c := range []int32{2*i + 1, 2*i + 2} {
			if c < n {
				row = append(row, c)
			}
		}
		adj[i] = row
	}
	return graphview.NewArrayGraph(n, adj)
}

// CompleteBinaryInTree builds the reverse of CompleteBinaryOutTree: every
// non-root node has a single arc to its parent.
func CompleteBinaryInTree(depth int32) *graphview.ArrayGraph {
	return graphview.Transpose(CompleteBinaryOutTree(depth))
}

// ErdosRenyi builds a directed Erdős–Rényi graph G(n,p): each of the n*(n-1)
// ordered pairs is included independently with probability p, using a
// seeded RNG for reproducibility (mirrors lvlath/builder's RandomSparse
// contract: stable trial order i asc, j asc, deterministic given the seed).
func ErdosRenyi(n int32, p float64, seed int64) *graphview.ArrayGraph {
	rng := rand.New(rand.NewSource(seed))
	adj := make([][]int32, n)
	for i := int32(0); i < n; i++ {
		var row []int32
		for j := int32(0); j < n; j++ {
			if j == i {
				continue
			}
			if rng.Float64() < p {
				row = append(row, j)
			}
		}
		adj[i] = row
	}
	return graphview.NewArrayGraph(n, adj)
}

// UndirectedErdosRenyi builds an undirected Erdős–Rényi graph: each
// unordered pair {i,j}, i<j, is included independently with probability p,
// represented bidirectionally.
func UndirectedErdosRenyi(n int32, p float64, seed int64) *graphview.ArrayGraph {
	rng := rand.New(rand.NewSource(seed))
	adj := make([][]int32, n)
	for i := int32(0); i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}
	for i := range adj {
		sortInt32(adj[i])
	}
	return graphview.NewArrayGraph(n, adj)
}

func sortInt32(s []int32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
