package hyperball

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/webkernel/graphview"
	"github.com/katalvlaran/webkernel/hyperloglog"
)

// block is a contiguous, roughly-equal-arc-mass slice of node ids, the unit
// of work arc-adaptive slicing hands to a worker (spec §4.13).
type block struct{ lo, hi int32 }

// planBlocks partitions [0, n) into blocks whose cumulative out-degree is
// roughly arcGranularity apart, using CumulativeOutdegree.SkipTo to find
// each boundary (spec §4.13's
// "cumulative_outdegrees.skip_to(nextArcs + arcGranularity)").
func planBlocks(cumOut *graphview.CumulativeOutdegree, n int32, arcGranularity int64) []block {
	if arcGranularity < 1 {
		arcGranularity = 1
	}
	var blocks []block
	pos := int32(0)
	for pos < n {
		target := cumOut.At(pos) + arcGranularity
		next := cumOut.SkipTo(target, 64)
		if next <= pos {
			next = pos + 1
		}
		if next > n {
			next = n
		}
		blocks = append(blocks, block{lo: pos, hi: next})
		pos = next
	}
	return blocks
}

// roundUp64 rounds x up to the next multiple of 64 (spec §4.13's adaptive
// granularity is always aligned to the register block boundary).
func roundUp64(x int64) int64 {
	return (x + 63) / 64 * 64
}

// seedCounters pre-loads every counter with {v}, or with k randomly-drawn
// elements when node weights are supplied (spec §4.13).
func seedCounters(a *hyperloglog.Array, n int32, weights []int32, seed uint64) {
	if weights == nil {
		for v := int32(0); v < n; v++ {
			a.Add(v, uint64(v))
		}
		return
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	for v := int32(0); v < n; v++ {
		k := weights[v]
		for i := int32(0); i < k; i++ {
			a.Add(v, rng.Uint64())
		}
	}
}

// kahanSum accumulates float64 contributions from multiple goroutines under
// a mutex, using compensated (Kahan) summation to keep NF's running total
// accurate over many small additions (spec §4.13).
type kahanSum struct {
	mu   sync.Mutex
	sum  float64
	comp float64
}

func (k *kahanSum) add(x float64) {
	k.mu.Lock()
	y := x - k.comp
	t := k.sum + y
	k.comp = (t - k.sum) - y
	k.sum = t
	k.mu.Unlock()
}

// Run executes HyperBall to convergence or upperBound iterations, whichever
// comes first. upperBound <= 0 means unbounded; threshold < 0 disables the
// ratio-based early stop, leaving modified_count == 0 as the only
// convergence signal (spec scenario S3: run(∞, -1)).
//
// Only Standard and Systolic scheduling are implemented. Pre-local, Local,
// and External modes are not: see DESIGN.md for the scope decision. Every
// node is still visited every iteration (systolic skips the expensive
// counter merge for unflagged nodes but not the block dispatch itself),
// trading some of systolic's intended speedup for a simpler, easier to
// verify-by-inspection driver.
func Run(g graphview.Graph, log2m uint, upperBound int, threshold float64, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := Options{Seed: defaultSeed, Granularity: DefaultGranularity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Granularity <= 0 {
		o.Granularity = DefaultGranularity
	}
	n := g.NumNodes()
	if o.Weights != nil && int32(len(o.Weights)) != n {
		return nil, ErrWeightShape
	}
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	cur, err := hyperloglog.New(n, int64(n)+1, log2m, o.Seed)
	if err != nil {
		return nil, err
	}
	next, err := hyperloglog.New(n, int64(n)+1, log2m, o.Seed)
	if err != nil {
		return nil, err
	}
	seedCounters(cur, n, o.Weights, o.Seed)

	res := &Result{
		SumOfDistances:        make([]float64, n),
		SumOfInverseDistances: make([]float64, n),
	}
	if len(o.Discounts) > 0 {
		res.Discounted = make([][]float64, len(o.Discounts))
		for i := range res.Discounted {
			res.Discounted[i] = make([]float64, n)
		}
	}

	nf0 := &kahanSum{}
	for v := int32(0); v < n; v++ {
		nf0.add(cur.Count(cur.GetCounter(v)))
	}
	res.NF = append(res.NF, nf0.sum)

	modifiedCounter := make([]bool, n)
	for i := range modifiedCounter {
		modifiedCounter[i] = true
	}
	modifiedResult := make([]bool, n)

	// mustBeChecked/nextMustBeChecked use int32 (0/1) rather than bool so
	// concurrent predecessor-marking writes during a round go through
	// atomic.StoreInt32 instead of racing on a shared []bool.
	var mustBeChecked, nextMustBeChecked []int32
	systolic := false

	cumOut := graphview.NewCumulativeOutdegree(g)
	totalArcs := cumOut.TotalArcs()
	if totalArcs == 0 {
		totalArcs = int64(n)
	}
	nodeGranularity := int64(o.Granularity)

	iteration := 0
	for upperBound <= 0 || iteration < upperBound {
		iteration++
		d := int32(iteration)

		arcGranularity := int64(math.Ceil(float64(totalArcs) * float64(nodeGranularity) / float64(n)))
		if arcGranularity < 1 {
			arcGranularity = 1
		}
		blocks := planBlocks(cumOut, n, arcGranularity)

		var modifiedCount int64
		sum := &kahanSum{}
		wasSystolic := systolic

		copies := make([]graphview.Graph, workers)
		transposeCopies := make([]graphview.Graph, workers)
		for i := range copies {
			copies[i] = g.Copy()
			if o.Transpose != nil {
				transposeCopies[i] = o.Transpose.Copy()
			}
		}
		var cursor int64
		grp := new(errgroup.Group)
		grp.SetLimit(workers)
		for w := 0; w < workers; w++ {
			gCopy, gtCopy := copies[w], transposeCopies[w]
			grp.Go(func() error {
				for {
					i := atomic.AddInt64(&cursor, 1) - 1
					if i >= int64(len(blocks)) {
						return nil
					}
					b := blocks[i]
					for v := b.lo; v < b.hi; v++ {
						processNode(v, d, gCopy, gtCopy, o, wasSystolic, mustBeChecked, modifiedCounter,
							cur, next, res, sum, &modifiedCount, modifiedResult, nextMustBeChecked)
					}
				}
			})
		}
		_ = grp.Wait()

		cur, next = next, cur
		modifiedCounter, modifiedResult = modifiedResult, modifiedCounter
		modifiedCountVal := atomic.LoadInt64(&modifiedCount)

		var nfCandidate float64
		if !wasSystolic {
			nfCandidate = sum.sum
		} else {
			nfCandidate = res.NF[len(res.NF)-1] + sum.sum
		}
		last := res.NF[len(res.NF)-1]
		if nfCandidate < last {
			nfCandidate = last
		}
		res.NF = append(res.NF, nfCandidate)
		res.Iterations = iteration

		willBeSystolic := o.Transpose != nil && modifiedCountVal < int64(n)/4
		if willBeSystolic && !wasSystolic {
			mustBeChecked = make([]int32, n)
			nextMustBeChecked = make([]int32, n)
			for v := int32(0); v < n; v++ {
				if modifiedCounter[v] {
					pred, l := o.Transpose.SuccessorArray(v)
					for i := int32(0); i < l; i++ {
						mustBeChecked[pred[i]] = 1
					}
				}
			}
		} else if willBeSystolic {
			mustBeChecked, nextMustBeChecked = nextMustBeChecked, mustBeChecked
			for i := range nextMustBeChecked {
				nextMustBeChecked[i] = 0
			}
		}
		systolic = willBeSystolic

		if modifiedCountVal == 0 {
			break
		}
		if threshold >= 0 && iteration >= 4 && last > 0 {
			if nfCandidate/last < 1+threshold {
				break
			}
		}

		g1 := int64(n) / int64(workers)
		if g1 < 1 {
			g1 = 1
		}
		g2 := int64(o.Granularity) * int64(n) / maxInt64(1, modifiedCountVal)
		nodeGranularity = roundUp64(minInt64(g1, g2))
	}

	return res, nil
}

// processNode runs the spec §4.13 per-node update logic for one node: merge
// its successors' (unmodified-and-skipped when systolic) counters into a
// scratch buffer, detect change, update accumulators, and persist the
// result into the double-buffered next counter array.
func processNode(v, d int32, g, gt graphview.Graph, o Options, systolic bool, mustBeChecked []int32, modifiedCounter []bool,
	cur, next *hyperloglog.Array, res *Result, sum *kahanSum, modifiedCount *int64,
	modifiedResult []bool, nextMustBeChecked []int32) {

	needProcess := !systolic || mustBeChecked[v] != 0
	if !needProcess {
		next.SetCounter(v, cur.GetCounter(v))
		modifiedResult[v] = false
		return
	}

	t := cur.GetCounter(v)
	prev := append([]uint64(nil), t...)

	succ, l := g.SuccessorArray(v)
	counterModified := false
	for i := int32(0); i < l; i++ {
		w := succ[i]
		if w == v {
			continue
		}
		if systolic && !modifiedCounter[w] {
			continue
		}
		u := cur.GetCounter(w)
		if cur.Max(t, u) {
			counterModified = true
		}
	}

	needPost := !systolic || counterModified
	var post, pre float64
	if needPost {
		post = cur.Count(t)
	}
	if counterModified {
		pre = cur.Count(prev)
	}
	if !systolic {
		sum.add(post)
	} else if counterModified {
		sum.add(post - pre)
	}

	if counterModified {
		delta := post - pre
		if delta < 0 {
			delta = 0
		}
		res.SumOfDistances[v] += delta * float64(d)
		res.SumOfInverseDistances[v] += delta / float64(d)
		for fi, f := range o.Discounts {
			res.Discounted[fi][v] += delta * f(d)
		}
		atomic.AddInt64(modifiedCount, 1)
		if systolic {
			pred, l := gt.SuccessorArray(v)
			for i := int32(0); i < l; i++ {
				atomic.StoreInt32(&nextMustBeChecked[pred[i]], 1)
			}
		}
	}

	next.SetCounter(v, t)
	modifiedResult[v] = counterModified
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
