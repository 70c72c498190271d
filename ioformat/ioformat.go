package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteInt32s writes vals as a flat little-endian int32 array: the layout
// backing .wcc, .wccsizes, .scc, .sccsizes, eccentricities, and top-k node
// ids (spec §6.2).
func WriteInt32s(w io.Writer, vals []int32) error {
	bw := newWriter(w)
	buf := make([]byte, 4)
	for _, v := range vals {
		byteOrder.PutUint32(buf, uint32(v))
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadInt32s reads exactly n little-endian int32 values.
func ReadInt32s(r io.Reader, n int) ([]int32, error) {
	br := newReader(r)
	out := make([]int32, n)
	buf := make([]byte, 4)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, err
		}
		out[i] = int32(byteOrder.Uint32(buf))
	}
	return out, nil
}

// WriteInt64s writes vals as a flat little-endian int64 array: the layout
// backing the reachable-set-size output (spec §6.2).
func WriteInt64s(w io.Writer, vals []int64) error {
	bw := newWriter(w)
	buf := make([]byte, 8)
	for _, v := range vals {
		byteOrder.PutUint64(buf, uint64(v))
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadInt64s reads exactly n little-endian int64 values.
func ReadInt64s(r io.Reader, n int) ([]int64, error) {
	br := newReader(r)
	out := make([]int64, n)
	buf := make([]byte, 8)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, err
		}
		out[i] = int64(byteOrder.Uint64(buf))
	}
	return out, nil
}

// WriteFloat64s writes vals as a flat little-endian float64 array: the
// 64-bit variant of the centrality and top-k value outputs (spec §6.2).
func WriteFloat64s(w io.Writer, vals []float64) error {
	bw := newWriter(w)
	buf := make([]byte, 8)
	for _, v := range vals {
		byteOrder.PutUint64(buf, math64bits(v))
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadFloat64s reads exactly n little-endian float64 values.
func ReadFloat64s(r io.Reader, n int) ([]float64, error) {
	br := newReader(r)
	out := make([]float64, n)
	buf := make([]byte, 8)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, err
		}
		out[i] = bits64ToFloat(byteOrder.Uint64(buf))
	}
	return out, nil
}

// WriteFloat32s writes vals as a flat little-endian float32 array: the
// 32-bit variant of the centrality outputs (spec §6.2 allows either width).
func WriteFloat32s(w io.Writer, vals []float32) error {
	bw := newWriter(w)
	buf := make([]byte, 4)
	for _, v := range vals {
		byteOrder.PutUint32(buf, math32bits(v))
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadFloat32s reads exactly n little-endian float32 values.
func ReadFloat32s(r io.Reader, n int) ([]float32, error) {
	br := newReader(r)
	out := make([]float32, n)
	buf := make([]byte, 4)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, err
		}
		out[i] = bits32ToFloat(byteOrder.Uint32(buf))
	}
	return out, nil
}

// WriteBuckets serialises an n-bit bitmap, packing 8 bits per byte,
// least-significant bit first, padding the final byte with zero bits
// (spec §6.2's ".buckets" format).
func WriteBuckets(w io.Writer, bits []bool) error {
	bw := newWriter(w)
	n := len(bits)
	numBytes := (n + 7) / 8
	buf := make([]byte, numBytes)
	for i, b := range bits {
		if b {
			buf[i/8] |= 1 << uint(i%8)
		}
	}
	if _, err := bw.Write(buf); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadBuckets reads an n-bit bitmap written by WriteBuckets.
func ReadBuckets(r io.Reader, n int) ([]bool, error) {
	br := newReader(r)
	numBytes := (n + 7) / 8
	buf := make([]byte, numBytes)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, err
	}
	out := make([]bool, n)
	for i := range out {
		out[i] = buf[i/8]&(1<<uint(i%8)) != 0
	}
	return out, nil
}

// WriteNeighbourhoodFunction writes nf as ASCII decimal lines, one value
// per line (spec §6.2): depth+1 lines for a depth-d neighbourhood
// function.
func WriteNeighbourhoodFunction(w io.Writer, nf []float64) error {
	bw := newWriter(w)
	for _, v := range nf {
		if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadNeighbourhoodFunction reads the ASCII decimal lines written by
// WriteNeighbourhoodFunction until EOF.
func ReadNeighbourhoodFunction(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	var out []float64
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("ioformat: parsing neighbourhood function line %q: %w", line, err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteTopK writes a top-k result as the pair of flat arrays spec §6.2
// describes: k int32 node ids (most central first) followed immediately
// by k float64 centrality values, in the same order.
func WriteTopK(w io.Writer, nodes []int32, values []float64) error {
	if len(nodes) != len(values) {
		return ErrCountMismatch
	}
	if err := WriteInt32s(w, nodes); err != nil {
		return err
	}
	return WriteFloat64s(w, values)
}

// ReadTopK reads a top-k result of k entries written by WriteTopK.
func ReadTopK(r io.Reader, k int) (nodes []int32, values []float64, err error) {
	br := newReader(r)
	nodes, err = ReadInt32s(br, k)
	if err != nil {
		return nil, nil, err
	}
	values, err = ReadFloat64s(br, k)
	if err != nil {
		return nil, nil, err
	}
	return nodes, values, nil
}

// WriteWeights writes a node-weight input (spec §6.3): n non-negative
// int32 weights. A negative weight is rejected before anything is written.
func WriteWeights(w io.Writer, weights []int32) error {
	for _, v := range weights {
		if v < 0 {
			return ErrNegativeWeight
		}
	}
	return WriteInt32s(w, weights)
}

// ReadWeights reads n node weights, rejecting a negative value (spec
// §6.3).
func ReadWeights(r io.Reader, n int) ([]int32, error) {
	out, err := ReadInt32s(r, n)
	if err != nil {
		return nil, err
	}
	for _, v := range out {
		if v < 0 {
			return nil, ErrNegativeWeight
		}
	}
	return out, nil
}
