package hyperloglog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/webkernel/hyperloglog"
)

func TestInvalidLog2mRejected(t *testing.T) {
	_, err := hyperloglog.New(1, 1000, 3, 42)
	require.ErrorIs(t, err, hyperloglog.ErrInvalidLog2m)
}

func TestNewAndLayout(t *testing.T) {
	a, err := hyperloglog.New(4, 1000, 8, 7)
	require.NoError(t, err)
	assert.Equal(t, uint32(256), a.M())
	assert.True(t, a.RegisterSize() >= 5)
	assert.True(t, a.WordsPerCounter() > 0)
}

func TestAddCountSmallSetWithinErrorBounds(t *testing.T) {
	const n = 2000
	a, err := hyperloglog.New(1, n, 12, 1)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		a.Add(0, uint64(i))
	}
	est := a.Count(a.GetCounter(0))
	// log2m=12 gives a standard error around 1.04/sqrt(4096) ~= 1.6%;
	// allow a generous 10% band since this is a single trial, not an
	// average over many independent runs.
	assert.InEpsilon(t, float64(n), est, 0.10)
}

func TestAddDuplicateElementsDoNotInflateCount(t *testing.T) {
	a, err := hyperloglog.New(1, 500, 8, 3)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		a.Add(0, 42)
	}
	est := a.Count(a.GetCounter(0))
	assert.InEpsilon(t, 1.0, est, 2.0) // a single distinct element; small-range fixup dominates
}

func TestCountEmptyCounterIsNearZero(t *testing.T) {
	a, err := hyperloglog.New(1, 1000, 8, 9)
	require.NoError(t, err)
	est := a.Count(a.GetCounter(0))
	assert.InDelta(t, 0, est, 1e-6)
}

// TestMaxTakesLargerRegisterPerLane verifies the register-wise max merge
// against a naive per-register reference built with Add. The inputs do not
// force a register whose own top bit is set (the case that breaks the
// discarded broadword recipe: see the comment on Array.Max); with 50 and 80
// elements such a register is unlikely to occur.
func TestMaxTakesLargerRegisterPerLane(t *testing.T) {
	a, err := hyperloglog.New(2, 1000, 8, 11)
	require.NoError(t, err)

	dst := a.GetCounter(0)
	src := a.GetCounter(1)

	// Populate distinct, disjoint elements into each counter so their
	// registers differ, then confirm Max(dst, src) never decreases any
	// register and matches an independent register-by-register max.
	for i := 0; i < 50; i++ {
		a.Add(0, uint64(i))
	}
	for i := 1000; i < 1080; i++ {
		a.Add(1, uint64(i))
	}
	dst = a.GetCounter(0)
	src = a.GetCounter(1)

	registerSize := a.RegisterSize()
	m := a.M()
	before := make([]uint64, m)
	for r := uint32(0); r < m; r++ {
		before[r] = readRegister(dst, r, registerSize)
	}
	srcRegs := make([]uint64, m)
	for r := uint32(0); r < m; r++ {
		srcRegs[r] = readRegister(src, r, registerSize)
	}

	changed := a.Max(dst, src)

	afterChanged := false
	for r := uint32(0); r < m; r++ {
		want := before[r]
		if srcRegs[r] > want {
			want = srcRegs[r]
			afterChanged = true
		}
		got := readRegister(dst, r, registerSize)
		assert.Equal(t, want, got, "register %d", r)
		assert.True(t, got >= before[r], "register %d must never decrease", r)
	}
	assert.Equal(t, afterChanged, changed)
}

// readRegister re-derives one register's value from a counter buffer using
// the same bit layout Array uses internally, purely for test assertions.
func readRegister(buf []uint64, idx uint32, registerSize uint) uint64 {
	bitPos := uint64(idx) * uint64(registerSize)
	wordIdx := bitPos / 64
	bitOff := bitPos % 64
	val := buf[wordIdx] >> bitOff
	if bitOff+uint64(registerSize) > 64 {
		rem := bitOff + uint64(registerSize) - 64
		val |= buf[wordIdx+1] << (uint64(registerSize) - rem)
	}
	mask := uint64(1)<<registerSize - 1
	return val & mask
}
