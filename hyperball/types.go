// Package hyperball implements HyperBall (spec §4.13): a dynamic-programming
// approximation of every node's ball counter C_d[v] = {w : dist(v,w) <= d},
// backed by HyperLogLog counters instead of exact sets, driven by a
// round-barrier loop shaped like parallelbfs's layer loop but iterating
// over counters rather than frontiers. It yields the neighbourhood function
// and, optionally, per-node distance-sum and discounted-centrality
// accumulators, without ever materialising an explicit BFS tree.
package hyperball

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/webkernel/graphview"
	"github.com/katalvlaran/webkernel/internal/kernelerr"
)

// ErrGraphNil is returned when a nil graph is supplied.
var ErrGraphNil = errors.New("hyperball: graph is nil")

// ErrWeightShape wraps kernelerr.ErrInputShape: the caller's node-weight
// array did not have exactly one entry per node.
var ErrWeightShape = fmt.Errorf("hyperball: %w: weight array must have one entry per node", kernelerr.ErrInputShape)

// DefaultGranularity is the baseline node-count granularity fed into the
// arc-adaptive block-slicing formula (spec §4.13's arcGranularity =
// ceil(m*granularity/n)) before any adaptive-granularity recomputation.
const DefaultGranularity int32 = 16

// defaultSeed is used when the caller does not supply one; any fixed
// constant works since HyperBall only needs determinism, not secrecy.
const defaultSeed uint64 = 0x9E3779B97F4A7C15

// DiscountFunc is a caller-supplied per-distance discount weight, applied to
// a node's discounted centrality accumulator as f(d) where d is the
// distance layer a newly-covered node was found at (spec §4.13).
type DiscountFunc func(d int32) float64

// Options configures a Run call.
type Options struct {
	// Transpose, if supplied, enables systolic scheduling: once an
	// iteration changes fewer than n/4 counters, only nodes flagged by the
	// previous round are reprocessed, using Transpose to find predecessors.
	Transpose graphview.Graph

	// Weights gives each node an initial ball of k randomly-drawn elements
	// (spec §4.13's node-weighted seeding) instead of the default singleton
	// {v}. Must have exactly NumNodes() entries when non-nil.
	Weights []int32

	// Seed controls both the HyperLogLog hash and the node-weight RNG.
	Seed uint64

	// Workers bounds the goroutine pool size; 0 means runtime.GOMAXPROCS(0).
	Workers int

	// Granularity is the baseline node-count granularity for arc-adaptive
	// block slicing; DefaultGranularity if zero.
	Granularity int32

	// Discounts registers additional per-distance discounted-centrality
	// accumulators, one result slice per entry, in order.
	Discounts []DiscountFunc
}

// Option configures a Run call via the functional-options pattern.
type Option func(*Options)

// WithTranspose supplies the graph's transpose, enabling systolic mode.
func WithTranspose(gt graphview.Graph) Option { return func(o *Options) { o.Transpose = gt } }

// WithWeights supplies per-node initial ball weights.
func WithWeights(w []int32) Option { return func(o *Options) { o.Weights = w } }

// WithSeed sets the HyperLogLog hash / RNG seed.
func WithSeed(seed uint64) Option { return func(o *Options) { o.Seed = seed } }

// WithWorkers sets the worker-pool size.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// WithGranularity sets the baseline node-count granularity.
func WithGranularity(g int32) Option { return func(o *Options) { o.Granularity = g } }

// WithDiscount registers one discounted-centrality accumulator.
func WithDiscount(f DiscountFunc) Option {
	return func(o *Options) { o.Discounts = append(o.Discounts, f) }
}

// Result holds one Run's accumulated output.
type Result struct {
	// NF is the neighbourhood function: NF[d] estimates the number of
	// (ordered) pairs (v,w) with dist(v,w) <= d, monotone non-decreasing,
	// NF[0] estimating n (every node reaches itself at distance 0).
	NF []float64

	// SumOfDistances[v] and SumOfInverseDistances[v] accumulate, over every
	// node newly covered by v's expanding ball, the distance (or its
	// inverse) at which it was first covered.
	SumOfDistances        []float64
	SumOfInverseDistances []float64

	// Discounted[i][v] is the accumulator for Options.Discounts[i].
	Discounted [][]float64

	// Iterations is the number of rounds actually run before convergence
	// or the upper bound.
	Iterations int
}
