package topk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/webkernel/internal/testgraph"
	"github.com/katalvlaran/webkernel/topk"
)

func TestCliqueTopKLinAllNodesTied(t *testing.T) {
	g := testgraph.Clique(10)
	results, err := topk.Compute(g, 30, topk.Lin)
	require.NoError(t, err)
	require.Len(t, results, 10)
	seen := make(map[int32]bool)
	for _, r := range results {
		assert.InDelta(t, 10.0*10.0/9, r.Centrality, 1e-9)
		seen[r.Node] = true
	}
	assert.Len(t, seen, 10)
}

func TestDirectedPathTopKHarmonicOrdering(t *testing.T) {
	// 0->1->2->3: node 0 reaches the other 3 (harmonic 1+1/2+1/3), node 1
	// reaches 2 (1+1/2), node 2 reaches 1 (1), node 3 reaches none (0).
	g := testgraph.DirectedPath(4)
	// Single worker: deterministic submission order lets the first two
	// candidates (by descending out-degree, i.e. nodes 0 then 1) fill the
	// heap before any pruning bound becomes active.
	results, err := topk.Compute(g, 2, topk.Harmonic, topk.WithWorkers(1))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int32(0), results[0].Node)
	assert.Equal(t, int32(1), results[1].Node)
	assert.InDelta(t, 1+0.5+1.0/3, results[0].Centrality, 1e-9)
	assert.InDelta(t, 1+0.5, results[1].Centrality, 1e-9)
}

func TestInvalidKRejected(t *testing.T) {
	g := testgraph.DirectedPath(3)
	_, err := topk.Compute(g, 0, topk.Lin)
	require.ErrorIs(t, err, topk.ErrInvalidK)
}
