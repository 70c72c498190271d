package graphview

// ArrayGraph is a concrete, in-memory GraphView backed by a CSR-style
// (compressed sparse row) successor layout: csr[off[v]:off[v+1]] holds v's
// successors in ascending order. It carries no compression and no
// memory-mapping — both explicitly out of scope (spec §1) — only the
// minimal array layout needed so every kernel and test has something
// concrete to run against.
type ArrayGraph struct {
	off []int32 // length n+1, off[v]..off[v+1] bounds v's successors
	csr []int32 // length m, concatenated successor lists

	// scratch is a per-handle buffer that Copy() allocates fresh for each
	// handle; no method of ArrayGraph reads or writes it.
	scratch []int32
}

var _ Graph = (*ArrayGraph)(nil)

// NewArrayGraph builds an ArrayGraph from n nodes and, for each node,
// an ascending-sorted slice of successor ids. adjacency[v] must already be
// sorted; NewArrayGraph does not sort it for you.
func NewArrayGraph(n int32, adjacency [][]int32) *ArrayGraph {
	off := make([]int32, n+1)
	var m int64
	for v := int32(0); v < n; v++ {
		m += int64(len(adjacency[v]))
	}
	csr := make([]int32, 0, m)
	for v := int32(0); v < n; v++ {
		off[v] = int32(len(csr))
		csr = append(csr, adjacency[v]...)
	}
	off[n] = int32(len(csr))
	return &ArrayGraph{off: off, csr: csr}
}

// NumNodes implements Graph.
func (g *ArrayGraph) NumNodes() int32 { return int32(len(g.off) - 1) }

// NumArcs implements Graph; ArrayGraph always knows its arc count.
func (g *ArrayGraph) NumArcs() (int64, bool) { return int64(len(g.csr)), true }

// Outdegree implements Graph.
func (g *ArrayGraph) Outdegree(v int32) int32 { return g.off[v+1] - g.off[v] }

// Successors implements Graph.
func (g *ArrayGraph) Successors(v int32) LazyIter {
	return &arraySliceIter{s: g.csr[g.off[v]:g.off[v+1]]}
}

// SuccessorArray implements Graph, returning the backing slice directly
// (read-only by contract; ArrayGraph never overwrites it in place, so no
// copy into scratch is made).
func (g *ArrayGraph) SuccessorArray(v int32) ([]int32, int32) {
	s := g.csr[g.off[v]:g.off[v+1]]
	return s, int32(len(s))
}

// Copy implements Graph: the CSR arrays are shared (read-only, immutable
// for the graph's lifetime) but each copy gets its own scratch buffer.
func (g *ArrayGraph) Copy() Graph {
	return &ArrayGraph{off: g.off, csr: g.csr, scratch: nil}
}

// NodeIterator implements Graph.
func (g *ArrayGraph) NodeIterator(from int32) NodeIterator {
	return &arrayNodeIter{g: g, next: from, n: g.NumNodes()}
}

type arraySliceIter struct {
	s []int32
	i int
}

// Next implements LazyIter.
func (it *arraySliceIter) Next() int32 {
	if it.i >= len(it.s) {
		return -1
	}
	v := it.s[it.i]
	it.i++
	return v
}

type arrayNodeIter struct {
	g    *ArrayGraph
	next int32
	n    int32
}

// HasNext implements NodeIterator.
func (it *arrayNodeIter) HasNext() bool { return it.next < it.n }

// Next implements NodeIterator.
func (it *arrayNodeIter) Next() int32 {
	v := it.next
	it.next++
	return v
}

// Successors implements NodeIterator, returning the successors of the node
// most recently returned by Next.
func (it *arrayNodeIter) Successors() ([]int32, int32) {
	return it.g.SuccessorArray(it.next - 1)
}

// Transpose builds G^T eagerly from any GraphView in O(n+m): every arc
// u->v in g becomes v->u in the result. Used everywhere the spec requires
// "derives its transpose as a second view" (SumSweep-directed, the
// negative/in- centralities of §4.7, HyperBall's systolic predecessor
// scheduling).
func Transpose(g Graph) *ArrayGraph {
	n := g.NumNodes()
	indeg := make([]int32, n+1)
	for v := int32(0); v < n; v++ {
		it := g.Successors(v)
		for w := it.Next(); w >= 0; w = it.Next() {
			indeg[w+1]++
		}
	}
	off := make([]int32, n+1)
	for i := int32(1); i <= n; i++ {
		off[i] = off[i-1] + indeg[i]
	}
	cursor := make([]int32, n)
	copy(cursor, off[:n])
	m, _ := g.NumArcs()
	csr := make([]int32, m)
	for v := int32(0); v < n; v++ {
		it := g.Successors(v)
		for w := it.Next(); w >= 0; w = it.Next() {
			csr[cursor[w]] = v
			cursor[w]++
		}
	}
	return &ArrayGraph{off: off, csr: csr}
}
