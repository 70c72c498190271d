package scc

import "github.com/katalvlaran/webkernel/graphview"

// Condensation is the SCC-DAG: one node per component, one deduplicated
// arc per (source-component, target-component) pair with a source arc
// still connecting them, plus a cached bridge arc per DAG edge — a
// representative (u, v) with component[u]=c, component[v]=c', chosen to
// maximise out-degree(u)+in-degree(v) (spec glossary: "bridge arc").
//
// Both topk.TopKGeometricCentrality and sumsweep.SumSweepDirected need a
// DAG of SCCs with bridge arcs; spec §4.8/§4.9 describe the construction
// twice without naming a shared type, so it is factored out once here.
type Condensation struct {
	Graph   *graphview.ArrayGraph
	Bridges map[[2]int32]Bridge
}

// Bridge is the representative inter-component arc for one DAG edge.
type Bridge struct {
	U, V int32
}

// BuildCondensation constructs the SCC-DAG of g given its SCC result.
func BuildCondensation(g graphview.Graph, r *Result) *Condensation {
	n := g.NumNodes()
	outdeg := make([]int32, n)
	indeg := make([]int32, n)
	for v := int32(0); v < n; v++ {
		succ, l := g.SuccessorArray(v)
		outdeg[v] = l
		for i := int32(0); i < l; i++ {
			indeg[succ[i]]++
		}
	}

	type edgeKey = [2]int32
	bestScore := make(map[edgeKey]int32)
	bridges := make(map[edgeKey]Bridge)
	seen := make(map[edgeKey]struct{})
	adjSet := make([]map[int32]struct{}, r.NumComponents)

	for v := int32(0); v < n; v++ {
		cv := r.Component[v]
		succ, l := g.SuccessorArray(v)
		for i := int32(0); i < l; i++ {
			w := succ[i]
			cw := r.Component[w]
			if cv == cw {
				continue
			}
			key := edgeKey{cv, cw}
			seen[key] = struct{}{}
			score := outdeg[v] + indeg[w]
			if score > bestScore[key] {
				bestScore[key] = score
				bridges[key] = Bridge{U: v, V: w}
			}
			if adjSet[cv] == nil {
				adjSet[cv] = make(map[int32]struct{})
			}
			adjSet[cv][cw] = struct{}{}
		}
	}

	adj := make([][]int32, r.NumComponents)
	for c, set := range adjSet {
		row := make([]int32, 0, len(set))
		for w := range set {
			row = append(row, w)
		}
		sortInt32(row)
		adj[c] = row
	}
	return &Condensation{Graph: graphview.NewArrayGraph(r.NumComponents, adj), Bridges: bridges}
}

func sortInt32(s []int32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
