package components

import "github.com/katalvlaran/webkernel/graphview"

// ArticulationResult holds cut vertices and bridges found by Articulation,
// treating g as undirected (both directions of every arc considered).
type ArticulationResult struct {
	// Points marks, per node, whether it is an articulation point: removing
	// it increases the number of connected components.
	Points []bool

	// Bridges holds every edge (u, v) whose removal disconnects u from v.
	Bridges [][2]int32
}

// dfs phases for the iterative articulation-point walk, adapted from the
// explicit-stack low-link pattern shared with scc's Tarjan.
const (
	phaseInit = iota
	phaseEdges
	phasePostChild
)

type artFrame struct {
	node, parent int32
	idx          int32
	phase        int
	childCount   int32
}

// Articulation finds cut vertices and bridges using the standard low-link
// construction, via an explicit stack to tolerate deep graphs.
func Articulation(g graphview.Graph) *ArticulationResult {
	n := g.NumNodes()
	disc := make([]int32, n)
	low := make([]int32, n)
	visited := make([]bool, n)
	points := make([]bool, n)
	var bridges [][2]int32
	var clock int32

	for root := int32(0); root < n; root++ {
		if visited[root] {
			continue
		}
		visited[root] = true
		clock++
		disc[root] = clock
		low[root] = clock
		rootChildren := int32(0)
		stack := []*artFrame{{node: root, parent: -1, phase: phaseInit}}

		for len(stack) > 0 {
			f := stack[len(stack)-1]
			switch f.phase {
			case phaseInit:
				f.phase = phaseEdges
			case phaseEdges:
				succ, l := g.SuccessorArray(f.node)
				advanced := false
				for f.idx < l {
					w := succ[f.idx]
					f.idx++
					if w == f.node {
						continue // self-loop: no effect on undirected connectivity
					}
					if w == f.parent {
						// skip exactly one back-edge to the immediate parent
						// (handles simple graphs; parallel edges would need
						// an edge-id to disambiguate, out of scope here).
						f.parent = -2
						continue
					}
					if !visited[w] {
						visited[w] = true
						clock++
						disc[w] = clock
						low[w] = clock
						if f.node == root {
							rootChildren++
						}
						stack = append(stack, &artFrame{node: w, parent: f.node, phase: phaseInit})
						advanced = true
					} else if disc[w] < low[f.node] {
						low[f.node] = disc[w]
					}
					if advanced {
						break
					}
				}
				if advanced {
					continue
				}
				f.phase = phasePostChild
			case phasePostChild:
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					continue
				}
				parent := stack[len(stack)-1]
				if low[f.node] < low[parent.node] {
					low[parent.node] = low[f.node]
				}
				if low[f.node] > disc[parent.node] {
					bridges = append(bridges, [2]int32{parent.node, f.node})
				}
				if parent.node != root && low[f.node] >= disc[parent.node] {
					points[parent.node] = true
				}
			}
		}
		if rootChildren > 1 {
			points[root] = true
		}
	}
	return &ArticulationResult{Points: points, Bridges: bridges}
}
