// Package kernelerr collects the sentinel error kinds shared by every
// kernel package, following spec §7's error-kind taxonomy: InputShape,
// InvariantViolation, Precision, WorkerFailure, and IO.
//
// Individual packages define their own sentinel errors for domain-specific
// failures (e.g. betweenness.ErrPathCountOverflow) and wrap one of the
// kinds below with %w so callers can test the failure class with
// errors.Is without depending on every package's private sentinels.
package kernelerr

import "errors"

var (
	// ErrInputShape marks a caller error: mismatched node/arc counts between
	// a graph and its transpose, a weight array of the wrong length, or an
	// operation requested before its prerequisite was computed.
	ErrInputShape = errors.New("kernelerr: input shape violation")

	// ErrInvariantViolation marks a kernel-detected contract breach: the
	// graph's own invariants (e.g. claimed symmetry) do not hold.
	ErrInvariantViolation = errors.New("kernelerr: invariant violation")

	// ErrPrecision marks a silent precision loss (HLL register saturation);
	// it is informational only and never returned as a call error, but is
	// exposed here so tests and progress loggers can name it uniformly.
	ErrPrecision = errors.New("kernelerr: precision loss")

	// ErrWorkerFailure marks a worker-pool goroutine failure that poisoned
	// the run. parallelbfs wraps the underlying cause with this sentinel
	// before returning it; other packages return the cause unwrapped.
	ErrWorkerFailure = errors.New("kernelerr: worker failure")

	// ErrIO marks a failure of HyperBall's external (disk-backed) update
	// file.
	ErrIO = errors.New("kernelerr: io failure")
)
