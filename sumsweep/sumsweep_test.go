package sumsweep_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/webkernel/graphview"
	"github.com/katalvlaran/webkernel/internal/testgraph"
	"github.com/katalvlaran/webkernel/sumsweep"
)

func TestUndirectedPathRadiusDiameterEccentricities(t *testing.T) {
	g := testgraph.UndirectedPath(3)
	res, err := sumsweep.SumSweepUndirected(g, sumsweep.All)
	require.NoError(t, err)
	assert.Equal(t, int32(1), res.Radius)
	assert.Equal(t, int32(2), res.Diameter)
	assert.Equal(t, []int32{2, 1, 2}, res.Ecc)
}

// spiderGraph builds the S2 fixture: a hub with `arms` legs of length 2
// (hub - ring - leaf), 1 + 2*arms nodes total.
func spiderGraph(arms int32) *graphview.ArrayGraph {
	n := 1 + 2*arms
	adj := make([][]int32, n)
	hub := int32(0)
	var hubOut []int32
	for a := int32(0); a < arms; a++ {
		ring := 1 + 2*a
		leaf := ring + 1
		hubOut = append(hubOut, ring)
		adj[ring] = []int32{hub, leaf}
		adj[leaf] = []int32{ring}
	}
	adj[hub] = hubOut
	return graphview.NewArrayGraph(n, adj)
}

func TestSpiderStarRadiusAndEccentricities(t *testing.T) {
	g := spiderGraph(4) // 9 nodes: hub + 4 rings + 4 leaves
	res, err := sumsweep.SumSweepUndirected(g, sumsweep.All)
	require.NoError(t, err)
	assert.Equal(t, int32(2), res.Radius)
	assert.Equal(t, int32(0), res.RadialV)
	for a := int32(0); a < 4; a++ {
		ring := 1 + 2*a
		leaf := ring + 1
		assert.Equal(t, int32(3), res.Ecc[ring])
		assert.Equal(t, int32(4), res.Ecc[leaf])
	}
}

func TestDirectedCycleEccentricitiesUniform(t *testing.T) {
	g := testgraph.DirectedCycle(6)
	res, err := sumsweep.SumSweepDirected(g, sumsweep.All)
	require.NoError(t, err)
	for _, e := range res.Ecc {
		assert.Equal(t, int32(5), e)
	}
	assert.Equal(t, int32(5), res.Radius)
	assert.Equal(t, int32(5), res.Diameter)
}

func TestFourSweepFringeDiameterOnPath(t *testing.T) {
	g := testgraph.UndirectedPath(10)
	lower, upper, err := sumsweep.FourSweepIterativeFringeDiameter(g)
	require.NoError(t, err)
	assert.Equal(t, int32(9), lower)
	assert.Equal(t, int32(9), upper)
}
