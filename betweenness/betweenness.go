// Package betweenness implements multi-threaded Brandes betweenness
// centrality: one source per worker goroutine, sharing an atomic source
// cursor and a single mutex-protected accumulator array, with an overflow
// check on the 64-bit shortest-path-count accumulator (spec §4.6).
package betweenness

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/webkernel/graphview"
	"github.com/katalvlaran/webkernel/internal/kernelerr"
)

// ErrGraphNil is returned when a nil graph is supplied.
var ErrGraphNil = errors.New("betweenness: graph is nil")

// ErrPathCountOverflow wraps kernelerr.ErrInvariantViolation: the number of
// shortest paths through a node would overflow a signed 64-bit counter.
// Fatal: all workers stop as soon as one detects it.
var ErrPathCountOverflow = fmt.Errorf("betweenness: shortest-path count overflow: %w", kernelerr.ErrInvariantViolation)

// Options configures Compute.
type Options struct {
	// Workers bounds the goroutine pool size; 0 means GOMAXPROCS(0).
	Workers int
}

// Option configures a Compute call.
type Option func(*Options)

// WithWorkers sets the worker-pool size.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// Compute returns the betweenness centrality of every node in g: for each
// ordered pair (s,t) with s != t, every node on a shortest s->t path other
// than s and t accumulates sigma_st(v)/sigma_st, the fraction of the
// pair's shortest paths that pass through it (the standard Brandes
// accumulation).
func Compute(g graphview.Graph, opts ...Option) ([]float64, error) {
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
	betweenness := make([]float64, n)
	var mu sync.Mutex
	var nextSource int64
	var stopped int32

	grp := new(errgroup.Group)
	grp.SetLimit(workers)
	for w := 0; w < workers; w++ {
		gCopy := g.Copy()
		grp.Go(func() error {
			worker := &brandesWorker{g: gCopy, n: n}
			for {
				if atomic.LoadInt32(&stopped) != 0 {
					return nil
				}
				s := atomic.AddInt64(&nextSource, 1) - 1
				if s >= int64(n) {
					return nil
				}
				delta, err := worker.runSource(int32(s))
				if err != nil {
					atomic.StoreInt32(&stopped, 1)
					return err
				}
				mu.Lock()
				for v, d := range delta {
					betweenness[v] += d
				}
				mu.Unlock()
			}
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return betweenness, nil
}

// brandesWorker carries one goroutine's reusable per-source scratch state.
type brandesWorker struct {
	g graphview.Graph
	n int32

	dist  []int32
	sigma []int64
	delta []float64
	queue []int32
	cut   []int32
}

func (w *brandesWorker) reset(n int32) {
	if w.dist == nil {
		w.dist = make([]int32, n)
		w.sigma = make([]int64, n)
		w.delta = make([]float64, n)
	}
	for i := int32(0); i < n; i++ {
		w.dist[i] = -1
		w.sigma[i] = 0
		w.delta[i] = 0
	}
	w.queue = w.queue[:0]
	w.cut = w.cut[:0]
}

// runSource runs one Brandes source and returns its per-node delta
// contribution to betweenness.
func (w *brandesWorker) runSource(s int32) ([]float64, error) {
	w.reset(w.n)
	w.dist[s] = 0
	w.sigma[s] = 1
	w.queue = append(w.queue, s)

	// layered BFS, recording each layer's cut-point. cut[0]=0, cut[1]=1
	// seeds the source as its own layer so cut[d]..cut[d+1) holds exactly
	// the nodes at distance d, matching parallelbfs's cutpoint convention.
	head := 0
	w.cut = append(w.cut, 0, 1)
	for head < len(w.queue) {
		layerEnd := len(w.queue)
		for head < layerEnd {
			u := w.queue[head]
			head++
			d := w.dist[u]
			succ, l := w.g.SuccessorArray(u)
			for i := int32(0); i < l; i++ {
				t := succ[i]
				if w.dist[t] < 0 {
					w.dist[t] = d + 1
					w.queue = append(w.queue, t)
				}
				if w.dist[t] == d+1 {
					if w.sigma[u] > math.MaxInt64-w.sigma[t] {
						return nil, ErrPathCountOverflow
					}
					w.sigma[t] += w.sigma[u]
				}
			}
		}
		w.cut = append(w.cut, int32(len(w.queue)))
	}

	// Backward accumulation over layers from deepest-1 down to 1 (spec
	// §4.6 step 3): by the time layer d is processed, every node at depth
	// d+1 has already finished contributing to delta.
	delta := make([]float64, w.n)
	for layer := len(w.cut) - 2; layer >= 1; layer-- {
		for idx := w.cut[layer]; idx < w.cut[layer+1]; idx++ {
			u := w.queue[idx]
			succ, l := w.g.SuccessorArray(u)
			for i := int32(0); i < l; i++ {
				t := succ[i]
				if w.dist[t] == w.dist[u]+1 && w.sigma[t] > 0 {
					w.delta[u] += (float64(w.sigma[u]) / float64(w.sigma[t])) * (1 + w.delta[t])
				}
			}
			delta[u] = w.delta[u]
		}
	}
	return delta, nil
}
