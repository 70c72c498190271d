package parallelbfs

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/webkernel/graphview"
)

// Result holds one BFS's outcome: the visit queue in BFS order, the
// cut-points delimiting each layer, and the marker array (parent ids or
// round numbers per Options.Parent).
//
// Invariants (spec §3): CutPoints is strictly increasing; CutPoints[last] ==
// len(Queue); the eccentricity of the source equals len(CutPoints)-2.
type Result struct {
	Queue     []int32
	CutPoints []int32
	Marker    []int32
}

// Eccentricity returns the BFS eccentricity of the source: the maximum
// distance reached, i.e. len(CutPoints)-2, or 0 if only the source was
// visited.
func (r *Result) Eccentricity() int32 {
	if len(r.CutPoints) < 2 {
		return 0
	}
	return int32(len(r.CutPoints) - 2)
}

// NodeAtMaxDistance returns the last enqueued node: a node realising the
// eccentricity of the source.
func (r *Result) NodeAtMaxDistance() int32 {
	if len(r.Queue) == 0 {
		return -1
	}
	return r.Queue[len(r.Queue)-1]
}

// Visit runs a single parallel BFS from start, returning the visit queue,
// layer cut-points, and marker array. Marker semantics follow opts.Parent.
func Visit(g graphview.Graph, start int32, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	n := g.NumNodes()
	if start < 0 || start >= n {
		return nil, ErrStartNotFound
	}
	o := build(opts)
	e := newEngine(g, n, o)
	e.marker[start] = markRoot(start, o.Parent)
	e.queue = append(e.queue, start)
	e.cutPoints = append(e.cutPoints, 0, 1)
	if err := e.run(); err != nil {
		return nil, err
	}
	return &Result{Queue: e.queue, CutPoints: e.cutPoints, Marker: e.marker}, nil
}

// VisitAll runs BFS from every unvisited node in ascending id order,
// reusing a single marker array across sources; with Parent=false this
// produces connected-component ids (round number == component id). It
// returns the final marker array and the number of sources used
// (== number of components for an undirected graph).
func VisitAll(g graphview.Graph, opts ...Option) ([]int32, int32, error) {
	if g == nil {
		return nil, 0, ErrGraphNil
	}
	n := g.NumNodes()
	o := build(opts)
	marker := make([]int32, n)
	for i := range marker {
		marker[i] = unvisited
	}

	var round int32
	for s := int32(0); s < n; s++ {
		if marker[s] != unvisited {
			continue
		}
		e := &engine{g: g, n: n, opts: o, marker: marker}
		e.marker[s] = markRoot(s, o.Parent)
		e.queue = append(e.queue, s)
		e.cutPoints = append(e.cutPoints, 0, 1)
		if err := e.run(); err != nil {
			return nil, 0, err
		}
		if !o.Parent {
			for _, v := range e.queue {
				marker[v] = round
			}
		}
		round++
	}
	return marker, round, nil
}

func markRoot(v int32, parent bool) int32 {
	if parent {
		return v
	}
	return 0
}

// engine carries one Visit's mutable state: the shared marker array, queue,
// and cut-points, plus the worker-pool knobs from Options.
type engine struct {
	g    graphview.Graph
	n    int32
	opts Options

	marker []int32 // shared across workers; CAS-protected

	queueMu   sync.Mutex
	queue     []int32
	cutPoints []int32
}

func newEngine(g graphview.Graph, n int32, o Options) *engine {
	marker := make([]int32, n)
	for i := range marker {
		marker[i] = unvisited
	}
	return &engine{g: g, n: n, opts: o, marker: marker}
}

func (e *engine) workers() int {
	if e.opts.Workers > 0 {
		return e.opts.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (e *engine) append(v int32) {
	e.queueMu.Lock()
	e.queue = append(e.queue, v)
	e.queueMu.Unlock()
}

// run drives the layer loop: for each layer d, [cutPoints[d], cutPoints[d+1])
// is the frontier; a worker pool claims GRANULARITY-sized blocks of that
// range via an atomic cursor, CASes each successor's marker from unvisited,
// and appends newly discovered nodes to the shared queue. A single thread
// then records cutPoints[d+2], unless the layer discovered nothing, in
// which case the visit is already complete and no trailing entry is added.
func (e *engine) run() error {
	granularity := e.opts.Granularity
	if granularity <= 0 {
		granularity = DefaultGranularity
	}
	d := 0
	for {
		first, last := e.cutPoints[d], e.cutPoints[d+1]
		if first == last {
			break
		}
		before := int32(len(e.queue))
		if err := e.processLayer(first, last, granularity); err != nil {
			return err
		}
		after := int32(len(e.queue))
		if after == before {
			break
		}
		e.cutPoints = append(e.cutPoints, after)
		d++
	}
	return nil
}

// processLayer fans out over [first,last) via a worker pool bounded by
// Options.Workers, each worker claiming successive blocks of Granularity
// frontier positions from a shared atomic cursor.
func (e *engine) processLayer(first, last int32, granularity int32) error {
	var cursor int64 = int64(first)
	end := int64(last)
	workers := e.workers()
	grp := new(errgroup.Group)
	grp.SetLimit(workers)

	ctx := e.opts.Ctx
	for w := 0; w < workers; w++ {
		gCopy := e.g.Copy()
		grp.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				lo := atomic.AddInt64(&cursor, int64(granularity)) - int64(granularity)
				if lo >= end {
					return nil
				}
				hi := lo + int64(granularity)
				if hi > end {
					hi = end
				}
				for pos := lo; pos < hi; pos++ {
					u := e.queue[pos]
					it := gCopy.Successors(u)
					for s := it.Next(); s >= 0; s = it.Next() {
						if atomic.CompareAndSwapInt32(&e.marker[s], unvisited, markSucc(u, s, e.opts.Parent)) {
							e.append(s)
						}
					}
				}
			}
		})
	}
	if err := grp.Wait(); err != nil {
		return fmt.Errorf("%w: %v", ErrWorkerFailure, err)
	}
	return nil
}

func markSucc(u, s int32, parent bool) int32 {
	if parent {
		return u
	}
	return 0 // overwritten by VisitAll with the round number once the visit finishes
}
