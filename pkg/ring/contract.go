// Package ring implements a family of consistent-assignment hashing
// rings: Consistent (virtual nodes), Jump, CARP, Maglev, Multi-Probe
// Consistent (MPC), Rendezvous, and Weighted Rendezvous. Every ring is
// a pure, in-memory, single-threaded mapping function from an opaque
// point to a node; none of them perform I/O, retry, or own background
// state.
//
// All rings share the contract in Ring: given a fixed hash builder and
// a fixed node set (and, for CARP and weighted rendezvous, fixed
// weights), GetNode is a deterministic function of the point's hash.
// Rings that support incremental mutation additionally expose
// InsertNode/RemoveNode with an algorithm-specific signature; Jump,
// CARP's initial construction, and Maglev only build from a batch
// node list because their internal state depends on the whole set at
// once.
package ring

import (
	"cmp"
	"errors"
)

// ErrEmptyRing is returned by GetNode when no nodes are registered.
var ErrEmptyRing = errors.New("ring: empty ring")

// ErrInvalidConfig is returned at construction time for parameters
// that can never produce a usable ring: zero buckets for Jump, zero
// hash count for MPC, an empty node list for Maglev, or a
// non-finite/non-positive weight for CARP and weighted rendezvous.
var ErrInvalidConfig = errors.New("ring: invalid configuration")

// ErrNaNWeight is returned at construction/insertion time when a
// weight is NaN, which would otherwise corrupt the ordering used to
// rank nodes.
var ErrNaNWeight = errors.New("ring: NaN weight")

// Ring is the contract every hashing ring in this package satisfies:
// map an arbitrary point to one of the registered nodes of type N.
type Ring[N cmp.Ordered] interface {
	// GetNode returns the node selected for point. It fails with
	// ErrEmptyRing if no nodes are currently registered.
	GetNode(point any) (N, error)

	// Len returns the number of registered nodes (or, for Jump, the
	// configured bucket count).
	Len() int

	// IsEmpty reports whether Len() == 0.
	IsEmpty() bool
}
