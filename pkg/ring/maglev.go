package ring

import (
	"cmp"

	"github.com/o-tero/hashring/pkg/hashutil"
)

// maglevPermutation holds the offset/skip pair that defines one
// node's permutation over the lookup table, pi(i) = (offset +
// i*skip) mod M.
type maglevPermutation struct {
	offset uint64
	skip   uint64
}

// MaglevRing implements Maglev hashing: a lookup table of size M (the
// smallest prime >= the capacity hint) is populated once, at
// construction, by round-robin interleaving each node's permutation.
// Lookups are then a single hash plus a table index, O(1) on
// average. Like Jump, node membership is fixed at construction; there
// is no incremental InsertNode/RemoveNode.
type MaglevRing[N cmp.Ordered] struct {
	nodes        []N
	lookup       []int
	lookupHasher hashutil.Builder
}

// NewMaglevRing constructs a ring over nodes with the default
// capacity hint of len(nodes)*100. nodes must be non-empty.
func NewMaglevRing[N cmp.Ordered](nodes []N) (*MaglevRing[N], error) {
	return NewMaglevRingWithCapacity(nodes, len(nodes)*100)
}

// NewMaglevRingWithCapacity is NewMaglevRing with an explicit
// capacity hint; the actual table size is the next prime >=
// capacityHint. Rebuilding a ring after node removal should reuse the
// same capacity hint to keep the table size stable.
func NewMaglevRingWithCapacity[N cmp.Ordered](nodes []N, capacityHint int) (*MaglevRing[N], error) {
	if len(nodes) == 0 {
		return nil, ErrInvalidConfig
	}

	m, err := nextPrimeAtLeast(capacityHint)
	if err != nil {
		return nil, err
	}

	offsetHasher := hashutil.NewBuilder()
	skipHasher := hashutil.NewBuilder()
	lookup := populateMaglevLookup(nodes, offsetHasher, skipHasher, m)

	return &MaglevRing[N]{
		nodes:        append([]N(nil), nodes...),
		lookup:       lookup,
		lookupHasher: offsetHasher,
	}, nil
}

// populateMaglevLookup fills a lookup table of size m by repeatedly
// advancing each node's permutation until it lands on an unclaimed
// slot, round-robining across nodes until every slot is filled.
func populateMaglevLookup[N cmp.Ordered](nodes []N, offsetHasher, skipHasher hashutil.Builder, m uint64) []int {
	n := len(nodes)
	permutations := make([]maglevPermutation, n)
	for j, node := range nodes {
		permutations[j] = maglevPermutation{
			offset: offsetHasher.Hash(node) % m,
			skip:   (skipHasher.Hash(node) % (m - 1)) + 1,
		}
	}

	next := make([]uint64, n)
	entry := make([]int, m)
	for i := range entry {
		entry[i] = -1
	}

	var filled uint64
	for filled < m {
		for j := 0; j < n; j++ {
			perm := permutations[j]
			candidate := (perm.offset + next[j]*perm.skip) % m
			for entry[candidate] != -1 {
				next[j]++
				candidate = (perm.offset + next[j]*perm.skip) % m
			}
			entry[candidate] = j
			next[j]++
			filled++
			if filled == m {
				break
			}
		}
	}
	return entry
}

// GetNode returns nodes[lookup[hash(key) mod M]].
func (r *MaglevRing[N]) GetNode(key any) (N, error) {
	var zero N
	if len(r.nodes) == 0 {
		return zero, ErrEmptyRing
	}
	idx := r.lookupHasher.Hash(key) % uint64(len(r.lookup))
	return r.nodes[r.lookup[idx]], nil
}

// Nodes returns the number of distinct nodes in the ring.
func (r *MaglevRing[N]) Nodes() int { return len(r.nodes) }

// Capacity returns the lookup table size M.
func (r *MaglevRing[N]) Capacity() int { return len(r.lookup) }

// Len returns the number of distinct nodes in the ring.
func (r *MaglevRing[N]) Len() int { return len(r.nodes) }

// IsEmpty reports whether no nodes are registered.
func (r *MaglevRing[N]) IsEmpty() bool { return len(r.nodes) == 0 }

var _ Ring[string] = (*MaglevRing[string])(nil)
