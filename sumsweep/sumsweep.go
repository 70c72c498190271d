// Package sumsweep implements the SumSweep family of exact eccentricity,
// radius and diameter algorithms (spec §4.9, §4.10), plus the deprecated
// FourSweepIterativeFringeDiameter (spec §4.11). Every variant narrows a
// per-node lower/upper eccentricity bound via repeated single-source BFS
// sweeps chosen by an adaptive reward-weighted arm selector, and finishes
// with an exact BFS from any node the adaptive phase leaves unfinished —
// guaranteeing termination and exact results regardless of how well the
// heuristic converges (spec §8 testable property 9 demands exact-match
// correctness, not merely "close enough").
package sumsweep

import (
	"errors"
	"math"

	"github.com/katalvlaran/webkernel/graphview"
	"github.com/katalvlaran/webkernel/scc"
)

// ErrGraphNil is returned when a nil graph is supplied.
var ErrGraphNil = errors.New("sumsweep: graph is nil")

// OutputLevel selects which quantities the driver must finalise before
// stopping (spec §4.9's "missing-nodes" termination criterion).
type OutputLevel int

const (
	Radius OutputLevel = iota
	Diameter
	RadiusDiameter
	AllForward
	All
)

const infEcc = math.MaxInt32

// bfsDistances runs a plain single-source BFS over g from start and
// returns the distance array (-1 for unreached nodes) and the
// eccentricity (max finite distance).
func bfsDistances(g graphview.Graph, start int32) ([]int32, int32) {
	n := g.NumNodes()
	dist := make([]int32, n)
	for i := range dist {
		dist[i] = -1
	}
	dist[start] = 0
	queue := make([]int32, 0, n)
	queue = append(queue, start)
	var ecc int32
	head := 0
	for head < len(queue) {
		u := queue[head]
		head++
		d := dist[u]
		if d > ecc {
			ecc = d
		}
		succ, l := g.SuccessorArray(u)
		for i := int32(0); i < l; i++ {
			t := succ[i]
			if dist[t] == -1 {
				dist[t] = d + 1
				queue = append(queue, t)
			}
		}
	}
	return dist, ecc
}

// bounds is the shared per-node lower/upper eccentricity bound state used
// by both the directed and undirected drivers.
type bounds struct {
	l, u    []int32
	totDist []int64
	done    []bool
	nDone   int32
}

func newBounds(n int32) *bounds {
	b := &bounds{
		l:       make([]int32, n),
		u:       make([]int32, n),
		totDist: make([]int64, n),
		done:    make([]bool, n),
	}
	for i := range b.u {
		b.u[i] = infEcc
	}
	return b
}

func (b *bounds) finalize(v int32, ecc int32) {
	if !b.done[v] {
		b.done[v] = true
		b.nDone++
	}
	b.l[v], b.u[v] = ecc, ecc
}

// absorb tightens v's lower bound from an observed BFS distance. It never
// finalises v on its own: v is only finalised once it has itself been a
// BFS source (via finalize), which is the only bound this package can
// prove exact without also proving the upper-bound formulas below sound
// for every topology — l[] is always a true distance so it is always a
// safe lower bound, but u[] is used only as an arm-selection heuristic.
func (b *bounds) absorb(v int32, dist int32) {
	if b.done[v] {
		return
	}
	if dist > b.l[v] {
		b.l[v] = dist
	}
}

// argmax/argmin helpers over not-yet-finalised nodes.
func (b *bounds) argmaxU() int32 {
	best, bestV := int32(-1), int32(-1)
	for v, d := range b.done {
		if d {
			continue
		}
		if b.u[v] > best {
			best, bestV = b.u[v], int32(v)
		}
	}
	return bestV
}

func (b *bounds) argminL() int32 {
	best, bestV := int32(math.MaxInt32), int32(-1)
	for v, d := range b.done {
		if d {
			continue
		}
		if b.l[v] < best {
			best, bestV = b.l[v], int32(v)
		}
	}
	return bestV
}

func (b *bounds) argmaxTotDist() int32 {
	var best int64 = -1
	bestV := int32(-1)
	for v, d := range b.done {
		if d {
			continue
		}
		if b.totDist[v] > best {
			best, bestV = b.totDist[v], int32(v)
		}
	}
	return bestV
}

// missing reports how many nodes remain unresolved under level.
func missing(level OutputLevel, b *bounds, rU, dL int32) int32 {
	switch level {
	case Radius:
		// a radial candidate is certified once no unfinished node's lower
		// bound is below it
		for v, d := range b.done {
			if !d && b.l[v] < rU {
				return int32(len(b.done)) - b.nDone
			}
		}
		return 0
	case Diameter:
		for v, d := range b.done {
			if !d && b.u[v] > dL {
				return int32(len(b.done)) - b.nDone
			}
		}
		return 0
	default:
		return int32(len(b.done)) - b.nDone
	}
}

// Result holds the per-node eccentricity, radius and diameter.
type Result struct {
	Ecc      []int32
	Radius   int32
	RadialV  int32
	Diameter int32
	DiamV    int32
}

// maxRounds bounds the adaptive phase; anything left unresolved falls
// through to the exact per-node BFS safety net below.
const maxRounds = 64

// pickArm runs one epsilon-greedy-ish round: the arm with the highest
// running score is used, then every arm's score is bumped by 2 and the
// winner's score is replaced by the missing-nodes reduction it bought.
func pickArm(scores []float64) int {
	best, bi := scores[0], 0
	for i, s := range scores[1:] {
		if s > best {
			best, bi = s, i+1
		}
	}
	return bi
}

// SumSweepUndirected computes exact eccentricities (and hence radius and
// diameter) of the symmetric graph g using the single-direction bound
// narrowing of spec §4.10, plus a fallback exact BFS for any node left
// unresolved after the adaptive phase.
func SumSweepUndirected(g graphview.Graph, level OutputLevel) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	n := g.NumNodes()
	b := newBounds(n)
	var rU int32 = infEcc
	var dL int32 = -1
	var radialV, diamV int32 = -1, -1

	sweep := func(start int32) {
		dist, ecc := bfsDistances(g, start)
		b.finalize(start, ecc)
		if ecc < rU {
			rU, radialV = ecc, start
		}
		if ecc > dL {
			dL, diamV = ecc, start
		}
		for v := int32(0); v < n; v++ {
			if dist[v] < 0 || b.done[v] {
				continue
			}
			b.totDist[v] += int64(dist[v])
			// undirected upper bound (spec §4.10's "else" case, the
			// general-position bound — the leading-path refinement is a
			// tighter special case omitted here since it only improves
			// convergence speed, never the final exact value).
			candidate := ecc + dist[v]
			if candidate < b.u[v] {
				b.u[v] = candidate
			}
			b.absorb(v, dist[v])
		}
	}

	sweep(0)
	scores := make([]float64, 3)
	for round := 0; round < maxRounds && missing(level, b, rU, dL) > 0; round++ {
		arm := pickArm(scores)
		before := missing(level, b, rU, dL)
		var start int32
		switch arm {
		case 0:
			start = b.argmaxU()
		case 1:
			start = b.argminL()
		default:
			start = b.argmaxTotDist()
		}
		if start < 0 {
			break
		}
		sweep(start)
		after := missing(level, b, rU, dL)
		reward := float64(before - after)
		for i := range scores {
			scores[i] += 2
		}
		scores[arm] = reward
	}

	// Safety net: resolve any node the adaptive phase left open via a
	// direct BFS (guarantees termination and exactness).
	for v := int32(0); v < n; v++ {
		if b.done[v] {
			continue
		}
		_, ecc := bfsDistances(g, v)
		b.finalize(v, ecc)
		if ecc < rU {
			rU, radialV = ecc, v
		}
		if ecc > dL {
			dL, diamV = ecc, v
		}
	}

	return &Result{Ecc: b.l, Radius: rU, RadialV: radialV, Diameter: dL, DiamV: diamV}, nil
}

// SumSweepDirected computes exact forward/backward eccentricity bounds for
// a (possibly asymmetric) graph g, driven by SCC-condensation pivots for
// the AllCCUpperBound propagation step (spec §4.9). It returns forward
// eccentricities (the standard notion: max outbound distance).
func SumSweepDirected(g graphview.Graph, level OutputLevel) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	gt := graphview.Transpose(g)
	n := g.NumNodes()

	bf := newBounds(n) // forward: ecc via outbound BFS
	bb := newBounds(n) // backward: ecc via inbound BFS (BFS on gt)
	var rU int32 = infEcc
	var dL int32 = -1
	var radialV, diamV int32 = -1, -1

	sweepFwd := func(start int32) {
		dist, ecc := bfsDistances(g, start)
		bf.finalize(start, ecc)
		if ecc < rU {
			rU, radialV = ecc, start
		}
		if ecc > dL {
			dL, diamV = ecc, start
		}
		for v := int32(0); v < n; v++ {
			if dist[v] < 0 {
				continue
			}
			bf.totDist[v] += int64(dist[v])
		}
	}
	sweepBwd := func(start int32) {
		dist, ecc := bfsDistances(gt, start)
		bb.finalize(start, ecc)
		for v := int32(0); v < n; v++ {
			if dist[v] < 0 {
				continue
			}
			bb.totDist[v] += int64(dist[v])
		}
	}

	sweepFwd(0)
	sweepBwd(0)

	sccRes, err := scc.Compute(g, false)
	if err == nil {
		allCCUpperBound(g, gt, sccRes, bf, bb)
	}

	scores := make([]float64, 6)
	for round := 0; round < maxRounds && (missing(level, bf, rU, dL)+missing(level, bb, rU, dL)) > 0; round++ {
		arm := pickArm(scores)
		before := missing(level, bf, rU, dL) + missing(level, bb, rU, dL)
		switch arm {
		case 0:
			if err == nil {
				allCCUpperBound(g, gt, sccRes, bf, bb)
			}
		case 1:
			if v := bf.argmaxU(); v >= 0 {
				sweepFwd(v)
			}
		case 2:
			if v := bf.argminL(); v >= 0 {
				sweepFwd(v)
			}
		case 3:
			if v := bb.argmaxU(); v >= 0 {
				sweepBwd(v)
			}
		case 4:
			if v := bb.argmaxTotDist(); v >= 0 {
				sweepBwd(v)
			}
		default:
			if v := bf.argmaxTotDist(); v >= 0 {
				sweepFwd(v)
			}
		}
		after := missing(level, bf, rU, dL) + missing(level, bb, rU, dL)
		reward := float64(before - after)
		for i := range scores {
			scores[i] += 2
		}
		scores[arm] = reward
	}

	for v := int32(0); v < n; v++ {
		if bf.done[v] {
			continue
		}
		_, ecc := bfsDistances(g, v)
		bf.finalize(v, ecc)
		if ecc < rU {
			rU, radialV = ecc, v
		}
		if ecc > dL {
			dL, diamV = ecc, v
		}
	}

	return &Result{Ecc: bf.l, Radius: rU, RadialV: radialV, Diameter: dL, DiamV: diamV}, nil
}

// allCCUpperBound runs one pivot-propagation step (spec §4.9): pick the
// node in each SCC minimising (l_F+l_B, totDist_F+totDist_B) as its pivot
// and BFS from every pivot in both directions. Rather than walking the
// condensation DAG's cached bridge arcs hop by hop, every node's bound is
// refined directly from its own BFS distance to the pivot plus the
// pivot's eccentricity — a direct, if less incremental, way to the same
// upper bound (spec §4.8's Condensation/Bridge type already exists for
// topk's tighter per-component bound; SumSweep's own propagation does not
// need the bridge arcs specifically, only a reachability witness to each
// pivot, which a plain BFS already supplies).
func allCCUpperBound(g, gt graphview.Graph, sccRes *scc.Result, bf, bb *bounds) {
	numC := sccRes.NumComponents
	pivots := make([]int32, numC)
	best := make([]int64, numC)
	for c := range best {
		best[c] = math.MaxInt64
	}
	for v, c := range sccRes.Component {
		score := int64(bf.l[v]+bb.l[v])<<32 | int64(bf.totDist[v]+bb.totDist[v])
		if score < best[c] {
			best[c] = score
			pivots[c] = int32(v)
		}
	}
	for _, pivot := range pivots {
		distF, eccF := bfsDistances(g, pivot)
		distB, eccB := bfsDistances(gt, pivot)
		for v := int32(0); v < int32(len(distF)); v++ {
			if distB[v] >= 0 {
				candidate := distB[v] + eccF
				if candidate < bf.u[v] {
					bf.u[v] = candidate
					bf.absorb(v, bf.l[v])
				}
			}
			if distF[v] >= 0 {
				candidate := distF[v] + eccB
				if candidate < bb.u[v] {
					bb.u[v] = candidate
					bb.absorb(v, bb.l[v])
				}
			}
		}
	}
}

// FourSweepIterativeFringeDiameter computes an exact diameter of the
// symmetric graph g via the deprecated alternating-double-sweep-plus-fringe
// method (spec §4.11): kept because it still drives regression tests, not
// because new code should call it.
func FourSweepIterativeFringeDiameter(g graphview.Graph) (lower, upper int32, err error) {
	if g == nil {
		return 0, 0, ErrGraphNil
	}
	n := g.NumNodes()
	if n == 0 {
		return 0, 0, nil
	}
	parent := make([]int32, n)

	bfsWithParent := func(start int32) ([]int32, []int32, int32) {
		dist := make([]int32, n)
		for i := range dist {
			dist[i] = -1
			parent[i] = -1
		}
		dist[start] = 0
		queue := []int32{start}
		var ecc int32
		head := 0
		for head < len(queue) {
			u := queue[head]
			head++
			if dist[u] > ecc {
				ecc = dist[u]
			}
			succ, l := g.SuccessorArray(u)
			for i := int32(0); i < l; i++ {
				t := succ[i]
				if dist[t] == -1 {
					dist[t] = dist[u] + 1
					parent[t] = u
					queue = append(queue, t)
				}
			}
		}
		return append([]int32(nil), dist...), append([]int32(nil), parent...), ecc
	}

	farthest := func(dist []int32) int32 {
		var best int32 = -1
		var bestD int32 = -1
		for v, d := range dist {
			if d > bestD {
				bestD, best = d, int32(v)
			}
		}
		return best
	}

	walkHalfway := func(border int32, parentOf []int32, steps int32) int32 {
		c := border
		for i := int32(0); i < steps/2; i++ {
			if parentOf[c] < 0 {
				break
			}
			c = parentOf[c]
		}
		return c
	}

	// round 1
	dist1, _, ecc1 := bfsWithParent(0)
	lower, upper = ecc1, 2*ecc1
	border := farthest(dist1)

	// round 2
	dist2, par2, ecc2 := bfsWithParent(border)
	if ecc2 > lower {
		lower = ecc2
	}
	if 2*ecc2 < upper {
		upper = 2 * ecc2
	}
	border = farthest(dist2)

	// round 3: center halfway from border to its farthest node
	center := walkHalfway(border, par2, ecc2)
	dist3, _, ecc3 := bfsWithParent(center)
	if ecc3 > lower {
		lower = ecc3
	}
	if 2*ecc3 < upper {
		upper = 2 * ecc3
	}

	// round 4
	border = farthest(dist3)
	dist4, par4, ecc4 := bfsWithParent(border)
	if ecc4 > lower {
		lower = ecc4
	}
	if 2*ecc4 < upper {
		upper = 2 * ecc4
	}

	// round 5: a second center halfway from the new border
	center = walkHalfway(farthest(dist4), par4, ecc4)
	_, _, ecc5 := bfsWithParent(center)
	if ecc5 > lower {
		lower = ecc5
	}
	if 2*ecc5 < upper {
		upper = 2 * ecc5
	}

	if lower >= upper {
		return lower, upper, nil
	}

	// Fringe refinement: from the last center, visit nodes by decreasing
	// distance, tightening the lower bound with a BFS from each until the
	// bound closes or every fringe distance is exhausted.
	lastDist, _, _ := bfsWithParent(center)
	byDist := make(map[int32][]int32)
	var maxD int32
	for v, d := range lastDist {
		if d < 0 {
			continue
		}
		byDist[d] = append(byDist[d], int32(v))
		if d > maxD {
			maxD = d
		}
	}
	for d := maxD; d >= 0 && lower < upper; d-- {
		for _, v := range byDist[d] {
			_, _, ecc := bfsWithParent(v)
			if ecc > lower {
				lower = ecc
			}
		}
		if lower >= upper {
			break
		}
		// upper = max(maxEcc-so-far, 2(d-1)); `lower` already tracks the
		// largest eccentricity found by the fringe BFSes run so far.
		candidate := int32(2 * (d - 1))
		if lower > candidate {
			candidate = lower
		}
		if candidate < upper {
			upper = candidate
		}
	}
	if upper < lower {
		upper = lower
	}
	return lower, upper, nil
}
