// Package geometric implements GeometricCentralities and its generalisation
// LinearGeometricCentrality: per-source plain BFS accumulating closeness,
// Lin, harmonic and exponential centrality in one pass, run across a
// worker pool exactly like betweenness.Compute (spec §4.7).
package geometric

import (
	"errors"
	"math"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/webkernel/graphview"
)

// ErrGraphNil is returned when a nil graph is supplied.
var ErrGraphNil = errors.New("geometric: graph is nil")

// ErrInvalidAlpha is returned when alpha is not in (0, 1).
var ErrInvalidAlpha = errors.New("geometric: alpha must satisfy 0 < alpha < 1")

// Options configures Compute.
type Options struct {
	// Workers bounds the goroutine pool size; 0 means GOMAXPROCS(0).
	Workers int
	// Alpha is the base of the exponential centrality's decay term.
	Alpha float64
}

// Option configures a Compute call.
type Option func(*Options)

// WithWorkers sets the worker-pool size.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// WithAlpha sets the exponential centrality's decay base (default 0.5).
func WithAlpha(alpha float64) Option { return func(o *Options) { o.Alpha = alpha } }

// Result holds the four per-node geometric centrality arrays, all computed
// from outbound distances (spec §4.7's "Semantics note": pass a transposed
// graph to obtain the standard inbound/negative variants).
type Result struct {
	Closeness   []float64
	Lin         []float64
	Harmonic    []float64
	Exponential []float64
	Reachable   []int32
}

// Compute runs GeometricCentralities over g: for every source s, a plain
// BFS accumulates closeness, Lin, harmonic and exponential centrality from
// s's outbound distances.
func Compute(g graphview.Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := Options{Alpha: 0.5}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Alpha <= 0 || o.Alpha >= 1 {
		return nil, ErrInvalidAlpha
	}
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := g.NumNodes()
	res := &Result{
		Closeness:   make([]float64, n),
		Lin:         make([]float64, n),
		Harmonic:    make([]float64, n),
		Exponential: make([]float64, n),
		Reachable:   make([]int32, n),
	}

	var nextSource int64
	grp := new(errgroup.Group)
	grp.SetLimit(workers)
	for w := 0; w < workers; w++ {
		gCopy := g.Copy()
		grp.Go(func() error {
			wk := &worker{g: gCopy, n: n, alpha: o.Alpha}
			for {
				s := atomic.AddInt64(&nextSource, 1) - 1
				if s >= int64(n) {
					return nil
				}
				wk.runSource(int32(s), res)
			}
		})
	}
	// errgroup's Go funcs here never return an error; Wait only waits.
	_ = grp.Wait()
	return res, nil
}

// worker carries one goroutine's reusable per-source BFS scratch state.
type worker struct {
	g     graphview.Graph
	n     int32
	alpha float64

	dist  []int32
	queue []int32
}

func (w *worker) reset() {
	if w.dist == nil {
		w.dist = make([]int32, w.n)
	}
	for i := int32(0); i < w.n; i++ {
		w.dist[i] = -1
	}
	w.queue = w.queue[:0]
}

func (w *worker) runSource(s int32, res *Result) {
	w.reset()
	w.dist[s] = 0
	w.queue = append(w.queue, s)

	var sumDist float64
	var harmonic float64
	var exponential float64
	var reachable int32

	head := 0
	for head < len(w.queue) {
		u := w.queue[head]
		head++
		d := w.dist[u]
		succ, l := w.g.SuccessorArray(u)
		for i := int32(0); i < l; i++ {
			t := succ[i]
			if w.dist[t] != -1 {
				continue
			}
			w.dist[t] = d + 1
			w.queue = append(w.queue, t)

			dt := float64(d + 1)
			sumDist += dt
			harmonic += 1 / dt
			exponential += math.Pow(w.alpha, dt)
			reachable++
		}
	}

	res.Reachable[s] = reachable
	res.Harmonic[s] = harmonic
	res.Exponential[s] = exponential
	if sumDist == 0 {
		res.Closeness[s] = 0
		res.Lin[s] = 1
	} else {
		res.Closeness[s] = 1 / sumDist
		// Lin's "reachable" count includes the source itself, per the
		// normalisation in Lin's original 1976 definition (verified against
		// the worked transpose-path example: reachable=1 other node gives a
		// count of 2, not 1).
		withSelf := float64(reachable) + 1
		res.Lin[s] = withSelf * withSelf / sumDist
	}
}

// Coefficient is a generalised per-distance weight function for
// LinearGeometricCentrality: c(d)=1/d recovers harmonic, c(d)=alpha^d
// recovers exponential, c(d)=-d recovers negative peripherality.
type Coefficient func(d int32) float64

// Linear runs LinearGeometricCentrality: per source s, BFS accumulating
// sum_{t reachable} c(distance(s,t)) into centrality[s] (spec §4.7).
func Linear(g graphview.Graph, c Coefficient, opts ...Option) ([]float64, error) {
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
	centrality := make([]float64, n)

	var nextSource int64
	grp := new(errgroup.Group)
	grp.SetLimit(workers)
	for w := 0; w < workers; w++ {
		gCopy := g.Copy()
		grp.Go(func() error {
			dist := make([]int32, n)
			var queue []int32
			for {
				s := atomic.AddInt64(&nextSource, 1) - 1
				if s >= int64(n) {
					return nil
				}
				for i := int32(0); i < n; i++ {
					dist[i] = -1
				}
				queue = queue[:0]
				dist[s] = 0
				queue = append(queue, int32(s))
				var sum float64
				head := 0
				for head < len(queue) {
					u := queue[head]
					head++
					d := dist[u]
					succ, l := gCopy.SuccessorArray(u)
					for i := int32(0); i < l; i++ {
						t := succ[i]
						if dist[t] != -1 {
							continue
						}
						dist[t] = d + 1
						queue = append(queue, t)
						sum += c(d + 1)
					}
				}
				centrality[s] = sum
			}
		})
	}
	_ = grp.Wait()
	return centrality, nil
}
