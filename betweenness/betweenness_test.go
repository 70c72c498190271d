package betweenness_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/webkernel/betweenness"
	"github.com/katalvlaran/webkernel/graphview"
	"github.com/katalvlaran/webkernel/internal/testgraph"
)

func TestDirectedPathBetweenness(t *testing.T) {
	g := testgraph.DirectedPath(3)
	b, err := betweenness.Compute(g)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 0}, b, 1e-9)
}

func TestUndirectedLozengeBetweenness(t *testing.T) {
	// 0-1, 0-2, 1-3, 2-3, both orientations.
	adj := [][]int32{
		{1, 2}, {0, 3}, {0, 3}, {1, 2},
	}
	g := graphview.NewArrayGraph(4, adj)
	b, err := betweenness.Compute(g)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.5, 0.5, 0}, b, 1e-9)
}

func TestDirectedCycleBetweennessUniform(t *testing.T) {
	n := int32(8)
	g := testgraph.DirectedCycle(n)
	b, err := betweenness.Compute(g)
	require.NoError(t, err)
	want := float64((n - 1) * (n - 2) / 2)
	for _, v := range b {
		assert.InDelta(t, want, v, 1e-9)
	}
}

// layeredBipartiteBlocks builds `blocks` consecutive layers of `width`
// nodes each, with a complete bipartite connection between every pair of
// adjacent layers and a single source feeding layer 0 with one arc per
// node: the shortest-path count to every node in layer k is exactly
// width^k, so the block count controls how close the count sits to the
// int64 overflow boundary (~9.22e18).
func layeredBipartiteBlocks(blocks, width int) *graphview.ArrayGraph {
	n := int32(1 + blocks*width)
	adj := make([][]int32, n)
	source := int32(0)
	node := func(layer, i int) int32 { return 1 + int32(layer*width+i) }
	srcOut := make([]int32, width)
	for i := 0; i < width; i++ {
		srcOut[i] = node(0, i)
	}
	adj[source] = srcOut
	for layer := 0; layer < blocks-1; layer++ {
		next := make([]int32, width)
		for i := 0; i < width; i++ {
			next[i] = node(layer+1, i)
		}
		for i := 0; i < width; i++ {
			adj[node(layer, i)] = next
		}
	}
	return graphview.NewArrayGraph(n, adj)
}

func TestOverflowDetection(t *testing.T) {
	// width=6: the deepest of 40 layers has 6^39 ~= 2.3e30 paths, which
	// overflows int64; the deepest of 20 layers has 6^19 ~= 6.1e14, which
	// does not.
	g := layeredBipartiteBlocks(40, 6)
	_, err := betweenness.Compute(g)
	require.ErrorIs(t, err, betweenness.ErrPathCountOverflow)

	small := layeredBipartiteBlocks(20, 6)
	_, err = betweenness.Compute(small)
	require.NoError(t, err)
}
