// Package topk implements TopKGeometricCentrality via CutBFS: a truncated,
// per-source BFS that aborts as soon as SCC-condensation-derived reach
// bounds prove a source cannot enter the current top-k (spec §4.8).
package topk

import (
	"container/heap"
	"errors"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/webkernel/graphview"
	"github.com/katalvlaran/webkernel/scc"
)

// ErrGraphNil is returned when a nil graph is supplied.
var ErrGraphNil = errors.New("topk: graph is nil")

// ErrInvalidK is returned when k <= 0.
var ErrInvalidK = errors.New("topk: k must be positive")

// Kind selects which geometric centrality CutBFS bounds and ranks by.
type Kind int

const (
	Lin Kind = iota
	Harmonic
	Exponential
)

// Options configures Compute.
type Options struct {
	Workers int
	Alpha   float64 // used only by the Exponential kind
}

// Option configures a Compute call.
type Option func(*Options)

// WithWorkers sets the worker-pool size.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// WithAlpha sets the Exponential kind's decay base.
func WithAlpha(alpha float64) Option { return func(o *Options) { o.Alpha = alpha } }

// NodeScore is one entry of the top-k result, most-central first.
type NodeScore struct {
	Node       int32
	Centrality float64
}

// reachBounds holds the per-component lower/upper bounds on the number of
// nodes reachable from that component, derived from the condensation DAG
// (spec §4.8): reachL is the best single-successor chain plus own size;
// reachU sums every DAG child's reachU (capped at n), an overestimate safe
// for pruning since set union is never larger than the sum of set sizes.
func reachBounds(cond *scc.Condensation, sizes []int32, n int32) (reachL, reachU []int32) {
	numC := int32(len(sizes))
	reachL = make([]int32, numC)
	reachU = make([]int32, numC)
	// Component ids are assigned in reverse topological order by scc.Compute
	// (a component's id is smaller than every predecessor's in the
	// condensation DAG), so processing ids in increasing order visits every
	// successor before its predecessors.
	for c := int32(0); c < numC; c++ {
		bestSucc := int32(0)
		var sumSucc int64
		succ, l := cond.Graph.SuccessorArray(c)
		for i := int32(0); i < l; i++ {
			w := succ[i]
			if reachL[w] > bestSucc {
				bestSucc = reachL[w]
			}
			sumSucc += int64(reachU[w])
		}
		reachL[c] = sizes[c] + bestSucc
		u := int64(sizes[c]) + sumSucc
		if u > int64(n) {
			u = int64(n)
		}
		reachU[c] = int32(u)
	}
	return reachL, reachU
}

// orderByOutdegree returns node ids sorted by descending out-degree
// (counting sort over the bounded range of observed degrees, spec §4.8).
func orderByOutdegree(g graphview.Graph) []int32 {
	n := g.NumNodes()
	outdeg := make([]int32, n)
	var maxDeg int32
	for v := int32(0); v < n; v++ {
		d := g.Outdegree(v)
		outdeg[v] = d
		if d > maxDeg {
			maxDeg = d
		}
	}
	buckets := make([][]int32, maxDeg+1)
	for v := int32(0); v < n; v++ {
		d := outdeg[v]
		buckets[d] = append(buckets[d], v)
	}
	order := make([]int32, 0, n)
	for d := maxDeg; d >= 0; d-- {
		order = append(order, buckets[d]...)
	}
	return order
}

// minHeap is a k-bounded min-heap of NodeScore keyed by Centrality: the
// root is always the current kth-largest score once the heap holds k
// elements.
type minHeap []NodeScore

func (h minHeap) Len() int            { return len(h) }
func (h minHeap) Less(i, j int) bool  { return h[i].Centrality < h[j].Centrality }
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(NodeScore)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Compute runs TopKGeometricCentrality: it returns the k nodes with the
// largest `kind` centrality, most-central first.
func Compute(g graphview.Graph, k int, kind Kind, opts ...Option) ([]NodeScore, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}
	o := Options{Alpha: 0.5}
	for _, opt := range opts {
		opt(&o)
	}
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	n := g.NumNodes()
	sccRes, err := scc.Compute(g, false)
	if err != nil {
		return nil, err
	}
	cond := scc.BuildCondensation(g, sccRes)
	sizes := sccRes.ComputeSizes()
	reachLByComp, reachUByComp := reachBounds(cond, sizes, n)
	reachL := make([]int32, n)
	reachU := make([]int32, n)
	for v := int32(0); v < n; v++ {
		c := sccRes.Component[v]
		reachL[v] = reachLByComp[c]
		reachU[v] = reachUByComp[c]
	}

	order := orderByOutdegree(g)

	var mu sync.Mutex
	h := &minHeap{}
	heap.Init(h)
	kth := func() float64 {
		mu.Lock()
		defer mu.Unlock()
		if h.Len() < k {
			return 0
		}
		return (*h)[0].Centrality
	}
	push := func(ns NodeScore) {
		mu.Lock()
		defer mu.Unlock()
		if h.Len() < k {
			heap.Push(h, ns)
		} else if ns.Centrality > (*h)[0].Centrality {
			heap.Pop(h)
			heap.Push(h, ns)
		}
	}

	var cursor int64
	grp := new(errgroup.Group)
	grp.SetLimit(workers)
	for w := 0; w < workers; w++ {
		gCopy := g.Copy()
		grp.Go(func() error {
			wk := &cutWorker{g: gCopy, n: n, kind: kind, alpha: o.Alpha, reachL: reachL, reachU: reachU}
			for {
				i := atomic.AddInt64(&cursor, 1) - 1
				if i >= int64(len(order)) {
					return nil
				}
				v := order[i]
				value, included := wk.run(v, k, kth)
				if included {
					push(NodeScore{Node: v, Centrality: value})
				}
			}
		})
	}
	_ = grp.Wait()

	result := make([]NodeScore, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(h).(NodeScore)
	}
	return result, nil
}

// cutWorker carries one goroutine's reusable CutBFS scratch state.
type cutWorker struct {
	g      graphview.Graph
	n      int32
	kind   Kind
	alpha  float64
	reachL []int32
	reachU []int32

	dist  []int32
	queue []int32
}

// run executes one source's CutBFS, returning its final centrality and
// whether the bound allowed it to survive to completion. kth() reads the
// current top-k threshold (0 until the heap is full).
func (w *cutWorker) run(v int32, k int, kth func() float64) (float64, bool) {
	if w.dist == nil {
		w.dist = make([]int32, w.n)
		w.queue = make([]int32, 0, w.n)
	}
	for i := int32(0); i < w.n; i++ {
		w.dist[i] = -1
	}
	w.queue = w.queue[:0]
	w.dist[v] = 0
	w.queue = append(w.queue, v)

	reachL := float64(w.reachL[v])
	reachU := float64(w.reachU[v])

	var sumDist float64
	var nbVis float64 = 1
	head, layerStart := 0, 0
	var d int32

	for layerStart < len(w.queue) {
		layerEnd := len(w.queue)
		var gamma float64
		for head < layerEnd {
			u := w.queue[head]
			head++
			succ, l := w.g.SuccessorArray(u)
			gamma += float64(l)
			for i := int32(0); i < l; i++ {
				t := succ[i]
				if w.dist[t] != -1 {
					continue
				}
				w.dist[t] = d + 1
				w.queue = append(w.queue, t)
				nbVis++
				switch w.kind {
				case Lin:
					sumDist += float64(d + 1)
				case Harmonic:
					sumDist += 1 / float64(d+1)
				case Exponential:
					sumDist += math.Pow(w.alpha, float64(d+1))
				}
			}
		}
		layerStart = layerEnd
		kthVal := kth()
		if kthVal > 0 && w.prune(sumDist, gamma, nbVis, reachL, reachU, float64(d), kthVal) {
			return 0, false
		}
		d++
	}

	if nbVis <= 1 && w.kind == Lin {
		return 1, true
	}
	switch w.kind {
	case Lin:
		// nbVis counts the source itself plus every reached node, matching
		// geometric.Compute's Lin normalisation.
		return nbVis * nbVis / sumDist, true
	default:
		return sumDist, true
	}
}

// prune evaluates the spec §4.8 bound formulas and reports whether v can be
// safely abandoned given the current kth-best score.
func (w *cutWorker) prune(sumDist, gamma, nbVis, reachL, reachU, d, kth float64) bool {
	switch w.kind {
	case Lin:
		if reachL <= 0 || reachU <= 0 {
			return false
		}
		tildefL := (sumDist - gamma + (d+2)*(reachL-nbVis)) / (reachL * reachL)
		tildefU := (sumDist - gamma + (d+2)*(reachU-nbVis)) / (reachU * reachU)
		return tildefL >= 1/kth && tildefU >= 1/kth
	default: // Harmonic, Exponential: additive, so a single upper envelope suffices.
		tildefL := sumDist + gamma/(d+1) + (reachU-gamma-nbVis)/(d+2)
		return tildefL <= kth
	}
}
