package ioformat_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/webkernel/ioformat"
)

func TestInt32RoundTrip(t *testing.T) {
	vals := []int32{0, 1, -1, 42, 1 << 20, -(1 << 20)}
	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteInt32s(&buf, vals))
	got, err := ioformat.ReadInt32s(&buf, len(vals))
	require.NoError(t, err)
	assert.Equal(t, vals, got)
}

func TestInt64RoundTrip(t *testing.T) {
	vals := []int64{0, 1, -1, 1 << 40}
	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteInt64s(&buf, vals))
	got, err := ioformat.ReadInt64s(&buf, len(vals))
	require.NoError(t, err)
	assert.Equal(t, vals, got)
}

func TestFloat64RoundTrip(t *testing.T) {
	vals := []float64{0, 1.5, -3.25, 11.111111111}
	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteFloat64s(&buf, vals))
	got, err := ioformat.ReadFloat64s(&buf, len(vals))
	require.NoError(t, err)
	assert.Equal(t, vals, got)
}

func TestFloat32RoundTrip(t *testing.T) {
	vals := []float32{0, 1.5, -3.25}
	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteFloat32s(&buf, vals))
	got, err := ioformat.ReadFloat32s(&buf, len(vals))
	require.NoError(t, err)
	assert.Equal(t, vals, got)
}

func TestBucketsRoundTripWithPadding(t *testing.T) {
	// 10 bits, not a multiple of 8, exercises the final padded byte.
	bits := []bool{true, false, true, true, false, false, true, false, true, true}
	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteBuckets(&buf, bits))
	assert.Equal(t, 2, buf.Len()) // ceil(10/8) = 2 bytes
	got, err := ioformat.ReadBuckets(&buf, len(bits))
	require.NoError(t, err)
	assert.Equal(t, bits, got)
}

func TestNeighbourhoodFunctionRoundTrip(t *testing.T) {
	nf := []float64{15, 29, 41, 49}
	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteNeighbourhoodFunction(&buf, nf))
	got, err := ioformat.ReadNeighbourhoodFunction(&buf)
	require.NoError(t, err)
	assert.Equal(t, nf, got)
}

func TestTopKRoundTrip(t *testing.T) {
	nodes := []int32{3, 1, 0}
	values := []float64{11.11, 9.5, 2.0}
	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteTopK(&buf, nodes, values))
	gotNodes, gotValues, err := ioformat.ReadTopK(&buf, len(nodes))
	require.NoError(t, err)
	assert.Equal(t, nodes, gotNodes)
	assert.Equal(t, values, gotValues)
}

func TestWriteTopKRejectsMismatchedLengths(t *testing.T) {
	var buf bytes.Buffer
	err := ioformat.WriteTopK(&buf, []int32{1, 2}, []float64{1.0})
	require.ErrorIs(t, err, ioformat.ErrCountMismatch)
}

func TestWeightsRoundTrip(t *testing.T) {
	weights := []int32{0, 1, 5, 100}
	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteWeights(&buf, weights))
	got, err := ioformat.ReadWeights(&buf, len(weights))
	require.NoError(t, err)
	assert.Equal(t, weights, got)
}

func TestWriteWeightsRejectsNegative(t *testing.T) {
	var buf bytes.Buffer
	err := ioformat.WriteWeights(&buf, []int32{1, -2, 3})
	require.ErrorIs(t, err, ioformat.ErrNegativeWeight)
	assert.Equal(t, 0, buf.Len(), "nothing should be written once a negative weight is found")
}

func TestReadInt32sErrorsOnShortInput(t *testing.T) {
	buf := bytes.NewReader([]byte{1, 2, 3})
	_, err := ioformat.ReadInt32s(buf, 2)
	require.Error(t, err)
}
