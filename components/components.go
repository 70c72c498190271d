// Package components implements undirected connected components as a thin
// consumer of parallelbfs.VisitAll (spec §4.5), plus the induced-subgraph
// extraction of the largest component and an articulation-points operation
// built from the same explicit-stack low-link machinery scc already uses.
package components

import (
	"errors"

	"github.com/katalvlaran/webkernel/graphview"
	"github.com/katalvlaran/webkernel/parallelbfs"
)

// ErrGraphNil is returned when a nil graph is supplied.
var ErrGraphNil = errors.New("components: graph is nil")

// Result holds per-node component ids and the component count, exactly as
// VisitAll(Parent=false) produces: number of components = final round+1.
type Result struct {
	Component     []int32
	NumComponents int32
}

// Compute runs parallelbfs.VisitAll with Parent=false over the (assumed
// undirected, i.e. symmetric) graph g.
func Compute(g graphview.Graph, opts ...parallelbfs.Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	marker, rounds, err := parallelbfs.VisitAll(g, append(opts, func(o *parallelbfs.Options) { o.Parent = false })...)
	if err != nil {
		return nil, err
	}
	return &Result{Component: marker, NumComponents: rounds}, nil
}

// Sizes returns the number of nodes per component.
func (r *Result) Sizes() []int32 {
	sizes := make([]int32, r.NumComponents)
	for _, c := range r.Component {
		sizes[c]++
	}
	return sizes
}

// Largest returns the id of the largest component (ties broken by lowest
// id) and its size.
func (r *Result) Largest() (id int32, size int32) {
	sizes := r.Sizes()
	for c, s := range sizes {
		if s > size {
			size, id = s, int32(c)
		}
	}
	return id, size
}

// LargestComponentMapping builds a renumbering that maps every node in the
// largest component to a dense id in [0, size) (in original node-id order)
// and every other node to -1, ready for a caller's induced-subgraph-by-map
// primitive (spec §4.5).
func (r *Result) LargestComponentMapping() []int32 {
	largest, _ := r.Largest()
	mapping := make([]int32, len(r.Component))
	var next int32
	for v, c := range r.Component {
		if c == largest {
			mapping[v] = next
			next++
		} else {
			mapping[v] = -1
		}
	}
	return mapping
}

// InducedSubgraph builds the GraphView induced by mapping: node v survives
// iff mapping[v] >= 0, under its new id mapping[v]; arcs between two
// surviving nodes are kept, renumbered.
func InducedSubgraph(g graphview.Graph, mapping []int32) *graphview.ArrayGraph {
	var newN int32
	for _, m := range mapping {
		if m+1 > newN {
			newN = m + 1
		}
	}
	adj := make([][]int32, newN)
	n := g.NumNodes()
	for v := int32(0); v < n; v++ {
		nv := mapping[v]
		if nv < 0 {
			continue
		}
		succ, l := g.SuccessorArray(v)
		row := make([]int32, 0, l)
		for i := int32(0); i < l; i++ {
			nw := mapping[succ[i]]
			if nw >= 0 {
				row = append(row, nw)
			}
		}
		adj[nv] = row
	}
	return graphview.NewArrayGraph(newN, adj)
}
