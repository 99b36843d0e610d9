package ring

import (
	"cmp"

	"github.com/o-tero/hashring/pkg/hashutil"
)

// mpcPrime is the constant MPC uses to space successive probes around
// the circle so they don't collapse onto the same position.
const mpcPrime uint64 = 0xFFFFFFFFFFFFFFC5

// MPCRing implements multi-probe consistent hashing: unlike
// ConsistentRing, each node occupies exactly one position on the
// ring (no replicas); instead, each lookup probes hashCount distinct
// positions derived from the point and returns the node owning
// whichever probe lands closest (by circular distance) to its
// successor.
type MPCRing[N cmp.Ordered] struct {
	builder   hashutil.Builder
	h0, h1    hashutil.Builder
	hashCount uint64
	positions []uint64
	owners    map[uint64]N
}

// NewMPCRing constructs an empty ring that probes hashCount times per
// lookup, using a freshly seeded hash builder for node identifiers.
// hashCount must be at least 1.
func NewMPCRing[N cmp.Ordered](hashCount uint64) (*MPCRing[N], error) {
	return NewMPCRingWithHasher[N](hashutil.NewBuilder(), hashCount)
}

// NewMPCRingWithHasher is NewMPCRing with an explicit hash builder for
// node identifiers; the two probe hashers are always independently
// seeded.
func NewMPCRingWithHasher[N cmp.Ordered](builder hashutil.Builder, hashCount uint64) (*MPCRing[N], error) {
	if hashCount == 0 {
		return nil, ErrInvalidConfig
	}
	return &MPCRing[N]{
		builder:   builder,
		h0:        hashutil.NewBuilder(),
		h1:        hashutil.NewBuilder(),
		hashCount: hashCount,
		owners:    make(map[uint64]N),
	}, nil
}

// InsertNode places id at Hash(id) on the ring, overwriting whatever
// was previously there on a hash collision.
func (r *MPCRing[N]) InsertNode(id N) {
	h := r.builder.Hash(id)
	r.positions = insertSortedUnique(r.positions, h)
	r.owners[h] = id
}

// RemoveNode removes id's position. It is a no-op if id was never
// inserted or if its position was stolen by a colliding node.
func (r *MPCRing[N]) RemoveNode(id N) {
	h := r.builder.Hash(id)
	if owner, ok := r.owners[h]; ok && owner == id {
		delete(r.owners, h)
		r.positions = removeSorted(r.positions, h)
	}
}

// GetNode probes hashCount positions derived from point and returns
// the node whose successor position minimizes circular distance to
// its probe, ties broken by the smaller successor position.
func (r *MPCRing[N]) GetNode(point any) (N, error) {
	var zero N
	if len(r.positions) == 0 {
		return zero, ErrEmptyRing
	}

	h0 := r.h0.Hash(point)
	h1 := r.h1.Hash(point)

	best := selectSuccessor(r.positions, h0, h1, r.hashCount)
	return r.owners[best], nil
}

// selectSuccessor runs the hashCount-probe search used by GetNode in
// isolation from the builder and owners map: probe i lands at
// h0 + (i*h1) mod mpcPrime, and the chosen successor is whichever
// probe's ceiling position minimizes circular distance, ties broken
// by the smaller successor position.
func selectSuccessor(positions []uint64, h0, h1, hashCount uint64) uint64 {
	found := false
	var bestDist, bestNext uint64
	for i := uint64(0); i < hashCount; i++ {
		probe := h0 + (i*h1)%mpcPrime
		next := ceilingOrWrap(positions, probe)
		dist := circularDistance(probe, next)
		if !found || dist < bestDist || (dist == bestDist && next < bestNext) {
			found = true
			bestDist = dist
			bestNext = next
		}
	}
	return bestNext
}

// circularDistance returns the forward distance from hash to next on
// the wrapping uint64 circle.
func circularDistance(hash, next uint64) uint64 {
	// Unsigned subtraction wraps modulo 2^64, which is exactly the
	// forward distance when next lies past the top of the circle.
	return next - hash
}

// Len returns the number of registered nodes.
func (r *MPCRing[N]) Len() int { return len(r.owners) }

// IsEmpty reports whether no nodes are registered.
func (r *MPCRing[N]) IsEmpty() bool { return len(r.owners) == 0 }

var _ Ring[string] = (*MPCRing[string])(nil)
