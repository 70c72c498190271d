package neighbourhood_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/webkernel/internal/testgraph"
	"github.com/katalvlaran/webkernel/neighbourhood"
)

func TestComputeExactOnClique(t *testing.T) {
	g := testgraph.Clique(6)
	nf, err := neighbourhood.ComputeExact(g)
	require.NoError(t, err)
	// Every node reaches every other node (and itself) at distance <= 1.
	require.Len(t, nf, 2)
	assert.Equal(t, float64(6), nf[0])
	assert.Equal(t, float64(36), nf[1])
}

func TestComputeExactOnDirectedPath(t *testing.T) {
	g := testgraph.DirectedPath(4)
	nf, err := neighbourhood.ComputeExact(g)
	require.NoError(t, err)
	// Node i reaches nodes i..3, i.e. (4-i) nodes including itself.
	// NF[0] = sum of 1 over all nodes = 4.
	assert.Equal(t, float64(4), nf[0])
	// NF[d] accumulates, across sources, the count reachable within d hops;
	// the path's final NF value is the total number of ordered reachable
	// pairs (including self-pairs): 4+3+2+1 = 10.
	assert.Equal(t, float64(10), nf[len(nf)-1])
	for d := 1; d < len(nf); d++ {
		assert.True(t, nf[d] >= nf[d-1])
	}
}

func TestComputeExactRejectsNilGraph(t *testing.T) {
	_, err := neighbourhood.ComputeExact(nil)
	require.ErrorIs(t, err, neighbourhood.ErrGraphNil)
}

func TestCDFAndPMF(t *testing.T) {
	nf := []float64{4, 8, 10, 10}
	cdf := neighbourhood.CDF(nf)
	assert.InDeltaSlice(t, []float64{0.4, 0.8, 1, 1}, cdf, 1e-9)

	pmf := neighbourhood.PMF(nf)
	assert.InDeltaSlice(t, []float64{0.4, 0.4, 0.2, 0}, pmf, 1e-9)
}

func TestAverageDistance(t *testing.T) {
	// PMF = [0.4, 0.4, 0.2, 0]; average = 0*0.4 + 1*0.4 + 2*0.2 + 3*0 = 0.8.
	nf := []float64{4, 8, 10, 10}
	assert.InDelta(t, 0.8, neighbourhood.AverageDistance(nf), 1e-9)
}

func TestMedianDistance(t *testing.T) {
	n := int32(4)
	// n*n/2 = 8; NF first reaches 8 at d=1.
	nf := []float64{4, 8, 10, 10}
	assert.Equal(t, float64(1), neighbourhood.MedianDistance(n, nf))

	// An NF that never reaches n*n/2 returns +Inf.
	short := []float64{1, 2}
	assert.True(t, math.IsInf(neighbourhood.MedianDistance(100, short), 1))
}

func TestHarmonicDiameter(t *testing.T) {
	// A 4-clique: NF = [4, 16]; all 12 ordered cross pairs sit at distance 1.
	nf := []float64{4, 16}
	// Sum_d>=1 (NF[d]-NF[d-1])/d = (16-4)/1 = 12.
	// harmonic = n(n-1)/sum = 4*3/12 = 1.
	assert.InDelta(t, 1, neighbourhood.HarmonicDiameter(4, nf), 1e-9)
}

func TestEffectiveDiameterExactInterpolation(t *testing.T) {
	nf := []float64{10, 40, 70, 80, 100, 100}
	got := neighbourhood.EffectiveDiameter(nf, 0.9)
	assert.InDelta(t, 3.5, got, 1e-9)
}

func TestSpidZeroWhenAllMassAtDistanceZero(t *testing.T) {
	// A single-step NF (all mass at d=0, i.e. a graph with no cross pairs)
	// has zero variance and Spid should come out to 0 via the mean==0 guard.
	nf := []float64{4, 4}
	assert.Equal(t, float64(0), neighbourhood.Spid(nf))
}

func TestSampleDistanceCDFShapeAndDeterminism(t *testing.T) {
	g := testgraph.Clique(10)
	res1, err := neighbourhood.SampleDistanceCDF(g, 5, 42)
	require.NoError(t, err)
	res2, err := neighbourhood.SampleDistanceCDF(g, 5, 42)
	require.NoError(t, err)
	assert.Equal(t, res1.NF, res2.NF)
	require.Len(t, res1.NF, len(res1.StdErr))

	// A clique's NF[0] should estimate n (every sampled source reaches
	// itself immediately, scaled by n).
	assert.InDelta(t, 10, res1.NF[0], 1e-6)
	// A clique's last NF entry should estimate n^2.
	assert.InDelta(t, 100, res1.NF[len(res1.NF)-1], 1e-6)
	// With a single, fully-homogeneous clique every sample agrees exactly,
	// so the jackknife standard error should be (near) zero.
	for _, se := range res1.StdErr {
		assert.InDelta(t, 0, se, 1e-6)
	}
}

func TestSampleDistanceCDFRejectsInvalidSampleSize(t *testing.T) {
	g := testgraph.Clique(4)
	_, err := neighbourhood.SampleDistanceCDF(g, 0, 1)
	require.ErrorIs(t, err, neighbourhood.ErrInvalidSampleSize)
}

func TestSampleDistanceCDFRejectsNilGraph(t *testing.T) {
	_, err := neighbourhood.SampleDistanceCDF(nil, 3, 1)
	require.ErrorIs(t, err, neighbourhood.ErrGraphNil)
}
