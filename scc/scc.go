// Package scc computes strongly connected components with an iterative
// (explicit-stack) Tarjan algorithm — recursion is deliberately avoided
// because input graphs may have a long spine and ~10^9 nodes (spec §9) —
// plus the optional bucket classification and SCC-condensation DAG shared
// by topk and sumsweep.
package scc

import (
	"errors"

	"github.com/katalvlaran/webkernel/graphview"
)

// ErrGraphNil is returned when a nil graph is supplied.
var ErrGraphNil = errors.New("scc: graph is nil")

// ArcFilter accepts or rejects an arc by (source, target, label); used by
// the labelled-graph SCC variant. label is always 0 for the plain Compute.
type ArcFilter func(source, target int32, label int32) bool

// Result holds per-node component ids, the number of components, and an
// optional bucket bitmap.
type Result struct {
	// Component maps node -> component id, 0-based in the order Tarjan's
	// algorithm completes each component (reverse topological order).
	Component []int32

	// NumComponents is the total number of SCCs found.
	NumComponents int32

	// Buckets, when requested, marks each node true iff it lies in a
	// bucket: its SCC has >=1 outgoing arc and every out-neighbour of the
	// SCC lies in a bucket of the same terminal component (spec glossary).
	Buckets []bool
}

// stackFrame is one level of the explicit Tarjan recursion stack: the
// current node, an index into its (cached) successor slice, and whether an
// already-visited-but-unfinished node has been found among its children.
type stackFrame struct {
	node       int32
	succ       []int32
	idx        int32
	foundOlder bool
}

const (
	statusUnvisited int32 = 0
	// status > 0 encodes the discovery clock (1-based); status < 0 encodes
	// -(componentID)-1 once the node has been emitted.
)

// Compute runs iterative Tarjan over g and returns per-node component ids
// in O(n+m). buckets requests the bucket bitmap (spec §4.4).
func Compute(g graphview.Graph, buckets bool) (*Result, error) {
	return ComputeFiltered(g, nil, buckets)
}

// ComputeFiltered is Compute with an optional arc filter for labelled
// graphs: an arc is traversed only if filter(u, v, 0) is true (filter==nil
// traverses every arc).
func ComputeFiltered(g graphview.Graph, filter ArcFilter, buckets bool) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	n := g.NumNodes()
	status := make([]int32, n)
	lowlink := make([]int32, n)
	component := make([]int32, n)
	for i := range component {
		component[i] = -1
	}
	onCompStack := make([]bool, n)
	var compStack []int32
	var clock int32
	var numComponents int32

	var stack []stackFrame

	pushNode := func(v int32) {
		clock++
		status[v] = clock
		lowlink[v] = clock
		compStack = append(compStack, v)
		onCompStack[v] = true
		succ, l := g.SuccessorArray(v)
		cp := make([]int32, l)
		copy(cp, succ[:l])
		stack = append(stack, stackFrame{node: v, succ: cp})
	}

	for root := int32(0); root < n; root++ {
		if status[root] != statusUnvisited {
			continue
		}
		pushNode(root)

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			advanced := false
			for top.idx < int32(len(top.succ)) {
				w := top.succ[top.idx]
				top.idx++
				if filter != nil && !filter(top.node, w, 0) {
					continue
				}
				if status[w] == statusUnvisited {
					pushNode(w)
					advanced = true
					break
				}
				if onCompStack[w] {
					if status[w] < lowlink[top.node] {
						lowlink[top.node] = status[w]
					}
					top.foundOlder = true
				}
			}
			if advanced {
				continue
			}
			// children exhausted: pop
			node := top.node
			childLow := lowlink[node]
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := &stack[len(stack)-1]
				if childLow < lowlink[parent.node] {
					lowlink[parent.node] = childLow
				}
				if top.foundOlder {
					parent.foundOlder = true
				}
			}
			if lowlink[node] == status[node] {
				// node roots an SCC: pop compStack down to and including it
				cid := numComponents
				numComponents++
				for {
					w := compStack[len(compStack)-1]
					compStack = compStack[:len(compStack)-1]
					onCompStack[w] = false
					component[w] = cid
					if w == node {
						break
					}
				}
			}
		}
	}

	res := &Result{Component: component, NumComponents: numComponents}
	if buckets {
		res.Buckets = computeBuckets(g, component, numComponents)
	}
	return res, nil
}

// computeBuckets marks every node in a bucket component: terminal in the
// SCC-DAG (no arc leaves the component) and non-dangling (at least one arc
// stays inside), per the glossary definition.
func computeBuckets(g graphview.Graph, component []int32, numComponents int32) []bool {
	n := g.NumNodes()
	terminal := make([]bool, numComponents)
	hasIntraArc := make([]bool, numComponents)
	for c := range terminal {
		terminal[c] = true
	}
	for v := int32(0); v < n; v++ {
		c := component[v]
		succ, l := g.SuccessorArray(v)
		for i := int32(0); i < l; i++ {
			if component[succ[i]] != c {
				terminal[c] = false
			} else {
				hasIntraArc[c] = true
			}
		}
	}
	out := make([]bool, n)
	for v := int32(0); v < n; v++ {
		c := component[v]
		out[v] = terminal[c] && hasIntraArc[c]
	}
	return out
}

// ComputeSizes returns the number of nodes per component.
func (r *Result) ComputeSizes() []int32 {
	sizes := make([]int32, r.NumComponents)
	for _, c := range r.Component {
		sizes[c]++
	}
	return sizes
}

// SortBySize returns a permutation mapping old component ids to new ones
// sorted by descending size (largest first), along with the resized sizes
// slice; Component is not mutated in place — callers remap via the
// returned permutation.
func (r *Result) SortBySize() (perm []int32, sizes []int32) {
	sizes = r.ComputeSizes()
	order := make([]int32, r.NumComponents)
	for i := range order {
		order[i] = int32(i)
	}
	// simple insertion sort: numComponents is typically << n
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && sizes[order[j-1]] < sizes[order[j]]; j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}
	perm = make([]int32, r.NumComponents)
	newSizes := make([]int32, r.NumComponents)
	for newID, oldID := range order {
		perm[oldID] = int32(newID)
		newSizes[newID] = sizes[oldID]
	}
	return perm, newSizes
}
