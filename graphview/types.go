// Package graphview defines the abstract, read-only directed-graph view
// every kernel in this module consumes (spec §4.1, §6.1), plus a concrete
// in-memory implementation (ArrayGraph) and the small set of derived
// structures (cumulative outdegree list, transpose, node iterator) that
// every kernel package builds on.
//
// Node identifiers are dense int32 in [0, n). Arcs are directed; self-loops
// are allowed; multi-arcs are forbidden. The underlying storage is never
// mutated for the lifetime of any Graph or any of its Copy()s — compression,
// memory-mapping, and transpose construction are explicitly out of scope
// (spec §1); ArrayGraph exists only so every kernel and test has something
// concrete to run against.
package graphview

import (
	"errors"
	"fmt"
)

// Sentinel errors for graphview construction and queries.
var (
	// ErrNegativeNode indicates a node id outside [0, n).
	ErrNegativeNode = errors.New("graphview: node id out of range")

	// ErrShapeMismatch indicates a graph and its claimed transpose disagree
	// on n or m.
	ErrShapeMismatch = errors.New("graphview: graph/transpose shape mismatch")

	// ErrUnsupported indicates an optional operation (e.g. NumArcs) that a
	// particular backend does not implement.
	ErrUnsupported = errors.New("graphview: operation not supported by this backend")
)

// Graph is the abstract, read-only view every kernel consumes. Any backend —
// compressed, memory-mapped, or in-memory — is admissible provided it
// honours this contract (spec §4.1).
type Graph interface {
	// NumNodes returns n, the number of nodes. Constant for the graph's
	// lifetime.
	NumNodes() int32

	// NumArcs returns m, the number of arcs, or (0, false) if the backend
	// cannot report it cheaply.
	NumArcs() (int64, bool)

	// Outdegree returns the out-degree of v. Must equal len(Successors(v)).
	Outdegree(v int32) int32

	// Successors returns a LazyIter over v's successors in monotone
	// ascending order. The iterator is restartable: calling Successors(v)
	// again yields a fresh iterator from the start.
	Successors(v int32) LazyIter

	// SuccessorArray returns a reused buffer holding v's successors and its
	// valid length. The caller must not mutate or retain the returned
	// slice past its next call on the same Graph.
	SuccessorArray(v int32) ([]int32, int32)

	// NodeIterator returns a NodeIterator enumerating nodes in ascending
	// order starting at from, pairing each node with its successors in one
	// pass.
	NodeIterator(from int32) NodeIterator

	// Copy returns an independent, lightweight handle safe for exclusive
	// use by a single worker goroutine. The returned Graph shares the
	// underlying immutable storage but owns any mutable scratch state
	// (e.g. SuccessorArray's reused buffer).
	Copy() Graph
}

// LazyIter produces a monotone ascending sequence of node ids, terminated by
// a negative sentinel. It is owned exclusively by its caller.
type LazyIter interface {
	// Next returns the next successor, or a negative value once exhausted.
	Next() int32
}

// NodeIterator enumerates nodes in ascending order, exposing each node's
// successors without a second lookup.
type NodeIterator interface {
	// HasNext reports whether another node remains.
	HasNext() bool

	// Next advances to and returns the next node id.
	Next() int32

	// Successors returns the current node's successor buffer and its
	// valid length, exactly as SuccessorArray would.
	Successors() ([]int32, int32)
}

// CumulativeOutdegree is the monotone prefix-sum sequence C[0..n], C[0]=0,
// C[i] = C[i-1] + outdegree(i-1), used to slice the arc space into
// approximately equal-mass tasks (spec §3).
type CumulativeOutdegree struct {
	c []int64
}

// NewCumulativeOutdegree builds C from g in O(n).
func NewCumulativeOutdegree(g Graph) *CumulativeOutdegree {
	n := g.NumNodes()
	c := make([]int64, n+1)
	for i := int32(0); i < n; i++ {
		c[i+1] = c[i] + int64(g.Outdegree(i))
	}
	return &CumulativeOutdegree{c: c}
}

// TotalArcs returns C[n], the total arc mass.
func (c *CumulativeOutdegree) TotalArcs() int64 { return c.c[len(c.c)-1] }

// At returns C[i].
func (c *CumulativeOutdegree) At(i int32) int64 { return c.c[i] }

// Len returns n+1, the length of the underlying sequence.
func (c *CumulativeOutdegree) Len() int32 { return int32(len(c.c)) }

// SkipTo returns the smallest index i such that C[i] >= target, rounded up
// to the next multiple of granularity (a small power of two, or 1 for no
// alignment) and clamped to n. Used by HyperBall's arc-adaptive task
// slicing.
func (c *CumulativeOutdegree) SkipTo(target int64, granularity int32) int32 {
	lo, hi := 0, len(c.c)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if c.c[mid] >= target {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if granularity > 1 {
		aligned := int32((int64(lo) + int64(granularity) - 1) / int64(granularity) * int64(granularity))
		if int64(aligned) > int64(len(c.c)-1) {
			return int32(len(c.c) - 1)
		}
		return aligned
	}
	return int32(lo)
}

// CheckTransposeShape verifies n(g) == n(gt) and, when both backends report
// arc counts, m(g) == m(gt). It does not check that every arc of g appears
// reversed in gt, and no function in this module checks that either.
func CheckTransposeShape(g, gt Graph) error {
	if g.NumNodes() != gt.NumNodes() {
		return fmt.Errorf("%w: n(g)=%d n(g^T)=%d", ErrShapeMismatch, g.NumNodes(), gt.NumNodes())
	}
	mg, okg := g.NumArcs()
	mt, okt := gt.NumArcs()
	if okg && okt && mg != mt {
		return fmt.Errorf("%w: m(g)=%d m(g^T)=%d", ErrShapeMismatch, mg, mt)
	}
	return nil
}
