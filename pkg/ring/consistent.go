package ring

import (
	"cmp"

	"github.com/o-tero/hashring/pkg/hashutil"
)

// ConsistentRing implements consistent hashing with virtual-node
// replicas: each node is placed on the ring at Combine(Hash(id),
// Hash(i)) for i in [0, replicas). A point maps to the node at the
// smallest position >= its hash, wrapping to the first position if
// none exists.
type ConsistentRing[N cmp.Ordered] struct {
	builder       hashutil.Builder
	positions     []uint64
	owners        map[uint64]N
	replicaCounts map[N]int
}

// NewConsistentRing constructs an empty ring with a freshly seeded
// hash builder.
func NewConsistentRing[N cmp.Ordered]() *ConsistentRing[N] {
	return NewConsistentRingWithHasher[N](hashutil.NewBuilder())
}

// NewConsistentRingWithHasher constructs an empty ring using builder
// for every hash computed by the ring.
func NewConsistentRingWithHasher[N cmp.Ordered](builder hashutil.Builder) *ConsistentRing[N] {
	return &ConsistentRing[N]{
		builder:       builder,
		owners:        make(map[uint64]N),
		replicaCounts: make(map[N]int),
	}
}

// InsertNode places replicas virtual copies of id on the ring. A
// second call for an id already present replaces its recorded replica
// count and re-places positions [0, replicas); positions from an
// earlier call with a larger count are not removed. Hash collisions
// between different nodes' replicas are resolved last-insert-wins.
func (r *ConsistentRing[N]) InsertNode(id N, replicas int) {
	idHash := r.builder.Hash(id)
	for i := 0; i < replicas; i++ {
		h := r.builder.Combine(idHash, r.builder.Hash(i))
		r.positions = insertSortedUnique(r.positions, h)
		r.owners[h] = id
	}
	r.replicaCounts[id] = replicas
}

// RemoveNode removes id and the replica positions for its recorded
// replica count from the ring. It is a no-op if id was never
// inserted.
func (r *ConsistentRing[N]) RemoveNode(id N) {
	replicas, exists := r.replicaCounts[id]
	if !exists {
		return
	}
	r.removeReplicas(id, replicas)
	delete(r.replicaCounts, id)
}

// removeReplicas drops id's replica positions, but only where id is
// still the recorded owner -- a collision may have handed the
// position to a different node since insertion.
func (r *ConsistentRing[N]) removeReplicas(id N, replicas int) {
	idHash := r.builder.Hash(id)
	for i := 0; i < replicas; i++ {
		h := r.builder.Combine(idHash, r.builder.Hash(i))
		if owner, ok := r.owners[h]; ok && owner == id {
			delete(r.owners, h)
			r.positions = removeSorted(r.positions, h)
		}
	}
}

// GetNode returns the node at the smallest ring position >= the
// hash of point, wrapping to the first position when none exists.
func (r *ConsistentRing[N]) GetNode(point any) (N, error) {
	var zero N
	if len(r.positions) == 0 {
		return zero, ErrEmptyRing
	}
	h := r.builder.Hash(point)
	return r.owners[ceilingOrWrap(r.positions, h)], nil
}

// Len returns the number of distinct nodes registered.
func (r *ConsistentRing[N]) Len() int { return len(r.replicaCounts) }

// IsEmpty reports whether no nodes are registered.
func (r *ConsistentRing[N]) IsEmpty() bool { return len(r.replicaCounts) == 0 }

var _ Ring[string] = (*ConsistentRing[string])(nil)
