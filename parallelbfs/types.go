// Package parallelbfs implements the parallel breadth-first visit engine
// shared by every kernel that needs a BFS: a worker pool decomposes each
// frontier layer into blocks, a barrier separates layers, and a shared
// marker array records either the BFS-tree parent or a round number
// (spec §4.3).
package parallelbfs

import (
	"context"
	"errors"

	"github.com/katalvlaran/webkernel/internal/kernelerr"
)

// Sentinel errors for parallelbfs.
var (
	// ErrGraphNil is returned when a nil graph is supplied.
	ErrGraphNil = errors.New("parallelbfs: graph is nil")

	// ErrStartNotFound is returned when start is outside [0, n).
	ErrStartNotFound = errors.New("parallelbfs: start node out of range")

	// ErrAsymmetricGraph is kernelerr.ErrInvariantViolation under a
	// package-local name. No function in this package returns it: VisitAll
	// does not compare reachable-set sizes across sources, so a graph whose
	// claimed symmetry does not hold is not detected.
	ErrAsymmetricGraph = kernelerr.ErrInvariantViolation

	// ErrWorkerFailure wraps kernelerr.ErrWorkerFailure: a worker goroutine
	// returned an error (or its context was cancelled) mid-layer.
	ErrWorkerFailure = kernelerr.ErrWorkerFailure
)

// unvisited is the marker-array sentinel for "not yet reached".
const unvisited int32 = -1

// DefaultGranularity is the default number of successor-positions a worker
// claims per atomic block acquisition.
const DefaultGranularity = 64

// Options configures a Visit/VisitAll call.
type Options struct {
	// Workers bounds the goroutine pool size. 0 (default) means
	// runtime.GOMAXPROCS(0); 1 gives the cooperative single-threaded
	// fallback required by spec §9.
	Workers int

	// Granularity is the number of successor-positions claimed per atomic
	// block. Must be a positive power of two; DefaultGranularity if unset.
	Granularity int32

	// Parent selects marker semantics: true stores the BFS-tree parent
	// (marker[root]=root); false stores the round number the node was
	// discovered in, which VisitAll uses as a component id.
	Parent bool

	// Ctx allows cooperative cancellation; checked at block-claim
	// boundaries.
	Ctx context.Context
}

// Option configures a call via the functional-options pattern (mirrors the
// teacher's bfs.Option).
type Option func(*Options)

// WithWorkers sets the worker-pool size.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// WithGranularity sets the block size claimed per atomic acquisition.
func WithGranularity(g int32) Option { return func(o *Options) { o.Granularity = g } }

// WithContext sets the cancellation context.
func WithContext(ctx context.Context) Option { return func(o *Options) { o.Ctx = ctx } }

func defaultOptions() Options {
	return Options{Granularity: DefaultGranularity, Ctx: context.Background()}
}

func build(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
