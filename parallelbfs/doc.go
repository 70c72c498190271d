// See bfs.go for Visit/VisitAll and types.go for Options.
//
// Guarantees (spec §4.3): every node reachable from the source is visited
// exactly once — the CAS on the marker array ensures at-most-once enqueue;
// distances implied by CutPoints are correct BFS distances; across layers
// there is a strict happens-before barrier (no worker observes layer d+1
// until every arc of layer d has been processed), enforced here by waiting
// on the worker pool (errgroup.Wait) before recording the next cut-point.
package parallelbfs
