package ring

import (
	"cmp"

	"github.com/o-tero/hashring/pkg/hashutil"
)

// RendezvousRing implements rendezvous (highest-random-weight)
// hashing: each node is given replicas precomputed hashes, and a
// point maps to whichever node's maximum Combine(replicaHash,
// hash(point)) score is greatest across all nodes.
type RendezvousRing[N cmp.Ordered] struct {
	builder  hashutil.Builder
	replicas map[N][]uint64
	order    []N
}

// NewRendezvousRing constructs an empty ring with a freshly seeded
// hash builder.
func NewRendezvousRing[N cmp.Ordered]() *RendezvousRing[N] {
	return NewRendezvousRingWithHasher[N](hashutil.NewBuilder())
}

// NewRendezvousRingWithHasher is NewRendezvousRing with an explicit
// hash builder.
func NewRendezvousRingWithHasher[N cmp.Ordered](builder hashutil.Builder) *RendezvousRing[N] {
	return &RendezvousRing[N]{
		builder:  builder,
		replicas: make(map[N][]uint64),
	}
}

// InsertNode (re)computes replicas hashes for id. A second call for
// an id already present replaces its hash list.
func (r *RendezvousRing[N]) InsertNode(id N, replicas int) {
	idHash := r.builder.Hash(id)
	hashes := make([]uint64, replicas)
	for i := 0; i < replicas; i++ {
		hashes[i] = r.builder.Combine(idHash, r.builder.Hash(i))
	}

	if _, exists := r.replicas[id]; !exists {
		r.order = append(r.order, id)
	}
	r.replicas[id] = hashes
}

// RemoveNode removes id. It is a no-op if id was never inserted.
func (r *RendezvousRing[N]) RemoveNode(id N) {
	if _, exists := r.replicas[id]; !exists {
		return
	}
	delete(r.replicas, id)
	for i, n := range r.order {
		if n == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// GetNode returns the node whose maximum replica score for point is
// greatest, ties broken by the greater ID.
func (r *RendezvousRing[N]) GetNode(point any) (N, error) {
	var zero N
	if len(r.order) == 0 {
		return zero, ErrEmptyRing
	}

	pointHash := r.builder.Hash(point)
	found := false
	var bestScore uint64
	var bestID N
	for _, id := range r.order {
		var max uint64
		for i, h := range r.replicas[id] {
			score := r.builder.Combine(h, pointHash)
			if i == 0 || score > max {
				max = score
			}
		}
		if !found || max > bestScore || (max == bestScore && id > bestID) {
			found = true
			bestScore = max
			bestID = id
		}
	}
	return bestID, nil
}

// Len returns the number of registered nodes.
func (r *RendezvousRing[N]) Len() int { return len(r.order) }

// IsEmpty reports whether no nodes are registered.
func (r *RendezvousRing[N]) IsEmpty() bool { return len(r.order) == 0 }

var _ Ring[string] = (*RendezvousRing[string])(nil)
