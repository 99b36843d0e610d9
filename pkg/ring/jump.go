package ring

import "github.com/o-tero/hashring/pkg/hashutil"

// jumpMultiplier is the Lamping-Veach linear congruential multiplier
// used (with an increment of 1) to derive successive jump distances.
const jumpMultiplier uint64 = 2862933555777941757

// JumpRing implements the Lamping-Veach jump consistent hash. It
// maps a key to an integer bucket in [0, buckets) with (amortized)
// O(ln buckets) time, no memory overhead beyond the bucket count, and
// near-perfect key distribution. Unlike the other rings it does not
// support arbitrary node identifiers or incremental mutation: the
// bucket count is fixed at construction.
type JumpRing struct {
	builder hashutil.Builder
	buckets uint32
}

// NewJumpRing constructs a ring with the given number of buckets,
// using a freshly seeded hash builder. buckets must be at least 1.
func NewJumpRing(buckets uint32) (*JumpRing, error) {
	return NewJumpRingWithHasher(hashutil.NewBuilder(), buckets)
}

// NewJumpRingWithHasher is NewJumpRing with an explicit hash builder.
func NewJumpRingWithHasher(builder hashutil.Builder, buckets uint32) (*JumpRing, error) {
	if buckets < 1 {
		return nil, ErrInvalidConfig
	}
	return &JumpRing{builder: builder, buckets: buckets}, nil
}

// GetNode returns the bucket in [0, buckets) selected for key. It
// never fails, since construction guarantees at least one bucket.
func (r *JumpRing) GetNode(key any) (uint32, error) {
	h := r.builder.Hash(key)

	var b int64 = -1
	var j int64
	for j < int64(r.buckets) {
		b = j
		h = h*jumpMultiplier + 1
		j = int64((float64(b+1) * float64(int64(1)<<31)) / float64(int64(h>>33)+1))
	}
	return uint32(b), nil
}

// Nodes returns the configured number of buckets.
func (r *JumpRing) Nodes() uint32 { return r.buckets }

// Len returns the configured number of buckets.
func (r *JumpRing) Len() int { return int(r.buckets) }

// IsEmpty always reports false: construction rejects a zero bucket
// count.
func (r *JumpRing) IsEmpty() bool { return r.buckets == 0 }

var _ Ring[uint32] = (*JumpRing)(nil)
