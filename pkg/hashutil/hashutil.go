// Package hashutil provides the low-level hashing primitives shared by
// every ring implementation in pkg/ring: a builder that produces fresh
// hasher state on demand, and an order-sensitive way to combine two
// hashes into one.
//
// Design Notes:
//   - hash/maphash.Seed is Go's closest stdlib analogue of a "factory of
//     fresh hasher state": capturing one seed at construction and handing
//     out a new *maphash.Hash per call gives the same guarantee the ring
//     algorithms depend on -- two hashes of the same value, from the same
//     Builder, always agree.
//   - Combine must NOT be symmetric (Combine(a, b) != Combine(b, a) in
//     general), since replica hashes for different indices need to be
//     distinct even when the underlying hashes collide.
package hashutil

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"
)

// Builder is a factory of fresh hasher state. Two Builders constructed
// independently will, in general, disagree on the hash of the same
// value; a single Builder is immutable once created and always agrees
// with itself.
type Builder struct {
	seed maphash.Seed
}

// NewBuilder returns a Builder seeded from the process-global random
// source. Rings constructed with different Builders may assign the
// same point to different nodes.
func NewBuilder() Builder {
	return Builder{seed: maphash.MakeSeed()}
}

func (b Builder) newHasher() *maphash.Hash {
	h := &maphash.Hash{}
	h.SetSeed(b.seed)
	return h
}

// Hash returns a deterministic 64-bit hash of value. Strings and byte
// slices are hashed directly; everything else is hashed via its
// fmt.Stringer implementation if it has one, or its default %v
// formatting otherwise.
func (b Builder) Hash(value any) uint64 {
	h := b.newHasher()
	h.WriteString(stringify(value))
	return h.Sum64()
}

// Combine composes two hashes into a new one, order-sensitive, by
// feeding both into a fresh hasher drawn from b.
func (b Builder) Combine(h1, h2 uint64) uint64 {
	h := b.newHasher()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], h1)
	binary.LittleEndian.PutUint64(buf[8:16], h2)
	h.Write(buf[:])
	return h.Sum64()
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
