// Package webkernel is a library of graph-analytic kernels built to run
// over graphs too large to fit comfortably in an all-pairs algorithm:
// strongly/weakly connected components, Brandes betweenness centrality,
// geometric (closeness/lin/harmonic/exponential) centralities, a cut-BFS
// top-k ranker, SumSweep exact eccentricity/radius/diameter, and HyperBall's
// HyperLogLog-backed approximate neighbourhood function and discounted
// centralities.
//
// Every kernel is parameterised by the graphview.Graph interface rather
// than a concrete storage format: any backend that honours its contract
// (monotone successor lists, a Copy() per worker) can be dropped in.
// Concurrency throughout follows the same shape: a fixed-size worker pool
// claims atomic blocks of work and barriers between rounds, never a
// growable goroutine-per-task pool; set Workers to 1 for a single-threaded
// fallback.
//
// Subpackages:
//
//	graphview/      — the Graph interface and the ArrayGraph (CSR) backend
//	parallelbfs/    — the shared parallel breadth-first visit engine
//	scc/            — Tarjan-style strongly connected components (iterative)
//	components/     — weakly/undirected connected components
//	betweenness/    — Brandes betweenness centrality
//	geometric/      — closeness, lin, harmonic, exponential centralities
//	topk/           — CutBFS top-k geometric centrality ranking
//	sumsweep/       — exact eccentricity/radius/diameter via SumSweep
//	hyperloglog/    — the bit-packed HyperLogLog counter array
//	hyperball/      — HyperBall's dynamic-programming NF/centrality engine
//	neighbourhood/  — neighbourhood-function analytics and sampling
//	ioformat/       — flat binary/ASCII persistence for kernel outputs
//
// See DESIGN.md for the grounding and scope decisions behind this package.
package webkernel
