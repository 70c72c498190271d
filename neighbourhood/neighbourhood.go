package neighbourhood

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/webkernel/graphview"
	"github.com/katalvlaran/webkernel/parallelbfs"
)

// ComputeExact computes the neighbourhood function exactly via n parallel
// BFSes (spec §4.12): source s's BFS.CutPoints[d+1] already is the number
// of nodes within distance <= d of s, so each source contributes directly
// to NF's prefix sum without a separate accumulation pass.
func ComputeExact(g graphview.Graph, opts ...Option) ([]float64, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := g.NumNodes()

	var mu sync.Mutex
	var nf []float64
	accumulate := func(reach []int32) {
		mu.Lock()
		defer mu.Unlock()
		if len(reach) > len(nf) {
			grown := make([]float64, len(reach))
			copy(grown, nf)
			var tail float64
			if len(nf) > 0 {
				tail = nf[len(nf)-1]
			}
			for i := len(nf); i < len(grown); i++ {
				grown[i] = tail
			}
			nf = grown
		}
		var sourceTail float64
		if len(reach) > 0 {
			sourceTail = float64(reach[len(reach)-1])
		}
		for d := 0; d < len(nf); d++ {
			if d < len(reach) {
				nf[d] += float64(reach[d])
			} else {
				nf[d] += sourceTail
			}
		}
	}

	var cursor int64
	grp := new(errgroup.Group)
	grp.SetLimit(workers)
	for w := 0; w < workers; w++ {
		gCopy := g.Copy()
		grp.Go(func() error {
			for {
				s := atomic.AddInt64(&cursor, 1) - 1
				if s >= int64(n) {
					return nil
				}
				res, err := parallelbfs.Visit(gCopy, int32(s))
				if err != nil {
					return err
				}
				reach := make([]int32, len(res.CutPoints)-1)
				for d := range reach {
					reach[d] = res.CutPoints[d+1]
				}
				accumulate(reach)
			}
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return nf, nil
}

// SampleResult holds SampleDistanceCDF's output: a point estimate of NF
// scaled to n, and a per-distance jackknife standard error.
type SampleResult struct {
	NF     []float64
	StdErr []float64
}

// SampleDistanceCDF estimates NF from k BFS samples (spec §4.14) instead of
// n exact ones. Each sample's source is drawn, by default, from the
// previous sample's visit queue (empirically better small-graph coverage
// per spec); the very first sample is uniform. Each sample's cutPoints are
// scaled by n to give an unbiased per-sample NF estimate, and the k
// estimates are combined with a delete-1 jackknife to produce a standard
// error alongside the mean.
func SampleDistanceCDF(g graphview.Graph, k int, seed int64, opts ...Option) (*SampleResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if k <= 0 {
		return nil, ErrInvalidSampleSize
	}
	n := g.NumNodes()
	rng := rand.New(rand.NewSource(seed))

	samples := make([][]float64, k)
	var lastQueue []int32
	maxLen := 0
	for i := 0; i < k; i++ {
		var s int32
		if len(lastQueue) > 0 {
			s = lastQueue[rng.Intn(len(lastQueue))]
		} else {
			s = int32(rng.Intn(int(n)))
		}
		res, err := parallelbfs.Visit(g, s)
		if err != nil {
			return nil, err
		}
		lastQueue = res.Queue

		reach := make([]float64, len(res.CutPoints)-1)
		for d := range reach {
			reach[d] = float64(res.CutPoints[d+1]) * float64(n)
		}
		samples[i] = reach
		if len(reach) > maxLen {
			maxLen = len(reach)
		}
	}
	for i := range samples {
		if len(samples[i]) == 0 {
			samples[i] = []float64{0}
		}
		for len(samples[i]) < maxLen {
			samples[i] = append(samples[i], samples[i][len(samples[i])-1])
		}
	}

	nf := make([]float64, maxLen)
	for d := 0; d < maxLen; d++ {
		var sum float64
		for i := 0; i < k; i++ {
			sum += samples[i][d]
		}
		nf[d] = sum / float64(k)
	}

	return &SampleResult{NF: nf, StdErr: jackknifeStdErr(samples, nf)}, nil
}

// jackknifeStdErr computes the delete-1 jackknife standard error at every
// distance index from the k per-sample estimates and their mean.
func jackknifeStdErr(samples [][]float64, mean []float64) []float64 {
	k := len(samples)
	se := make([]float64, len(mean))
	if k < 2 {
		return se
	}
	for j := range mean {
		var sumSq float64
		for i := 0; i < k; i++ {
			var looSum float64
			for t := 0; t < k; t++ {
				if t == i {
					continue
				}
				looSum += samples[t][j]
			}
			loo := looSum / float64(k-1)
			diff := loo - mean[j]
			sumSq += diff * diff
		}
		variance := float64(k-1) / float64(k) * sumSq
		se[j] = math.Sqrt(variance)
	}
	return se
}
