package scc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/webkernel/graphview"
	"github.com/katalvlaran/webkernel/internal/testgraph"
	"github.com/katalvlaran/webkernel/scc"
)

func TestComputeDirectedCycleIsOneComponent(t *testing.T) {
	g := testgraph.DirectedCycle(5)
	r, err := scc.Compute(g, false)
	require.NoError(t, err)
	assert.Equal(t, int32(1), r.NumComponents)
}

func TestComputeDirectedPathEachNodeOwnComponent(t *testing.T) {
	g := testgraph.DirectedPath(4)
	r, err := scc.Compute(g, false)
	require.NoError(t, err)
	assert.Equal(t, int32(4), r.NumComponents)
}

func TestComputeMatchesReferenceOnRandomGraphs(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := testgraph.ErdosRenyi(40, 0.08, seed)
		r, err := scc.Compute(g, false)
		require.NoError(t, err)
		ref := referenceMutualReachability(g)
		for u := int32(0); u < g.NumNodes(); u++ {
			for v := int32(0); v < g.NumNodes(); v++ {
				got := r.Component[u] == r.Component[v]
				want := ref[u][v]
				assert.Equalf(t, want, got, "seed=%d u=%d v=%d", seed, u, v)
			}
		}
	}
}

func TestBucketsTerminalSelfLoopIsBucket(t *testing.T) {
	// 0 -> 1 -> 1 (self-loop): component {1} is terminal and non-dangling.
	g := graphview.NewArrayGraph(2, [][]int32{{1}, {1}})
	r, err := scc.Compute(g, true)
	require.NoError(t, err)
	assert.False(t, r.Buckets[0])
	assert.True(t, r.Buckets[1])
}

func referenceMutualReachability(g interface {
	NumNodes() int32
	SuccessorArray(int32) ([]int32, int32)
}) [][]bool {
	n := g.NumNodes()
	reach := make([][]bool, n)
	for s := int32(0); s < n; s++ {
		reach[s] = make([]bool, n)
		stack := []int32{s}
		reach[s][s] = true
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			succ, l := g.SuccessorArray(u)
			for i := int32(0); i < l; i++ {
				w := succ[i]
				if !reach[s][w] {
					reach[s][w] = true
					stack = append(stack, w)
				}
			}
		}
	}
	out := make([][]bool, n)
	for u := int32(0); u < n; u++ {
		out[u] = make([]bool, n)
		for v := int32(0); v < n; v++ {
			out[u][v] = reach[u][v] && reach[v][u]
		}
	}
	return out
}
