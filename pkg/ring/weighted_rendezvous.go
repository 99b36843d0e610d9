package ring

import (
	"cmp"
	"math"

	"github.com/o-tero/hashring/pkg/hashutil"
)

// minPositiveRatio stands in for h/math.MaxUint64 when h is exactly
// zero, so the log-transform below never divides by ln(0) = -Inf.
const minPositiveRatio = 1.0 / float64(math.MaxUint64)

// WeightedRendezvousRing implements weighted rendezvous hashing:
// each node carries a positive weight, and a point is scored per
// node as -weight / ln(u), where u is the node's combined hash with
// the point mapped into (0, 1]. The greatest score wins.
type WeightedRendezvousRing[N cmp.Ordered] struct {
	builder hashutil.Builder
	weights map[N]float64
	order   []N
}

// NewWeightedRendezvousRing constructs an empty ring with a freshly
// seeded hash builder.
func NewWeightedRendezvousRing[N cmp.Ordered]() *WeightedRendezvousRing[N] {
	return NewWeightedRendezvousRingWithHasher[N](hashutil.NewBuilder())
}

// NewWeightedRendezvousRingWithHasher is NewWeightedRendezvousRing
// with an explicit hash builder.
func NewWeightedRendezvousRingWithHasher[N cmp.Ordered](builder hashutil.Builder) *WeightedRendezvousRing[N] {
	return &WeightedRendezvousRing[N]{
		builder: builder,
		weights: make(map[N]float64),
	}
}

// InsertNode sets id's weight, which must be finite and positive. A
// second call for an id already present replaces its weight.
func (r *WeightedRendezvousRing[N]) InsertNode(id N, weight float64) error {
	if err := validateWeight(weight); err != nil {
		return err
	}
	if _, exists := r.weights[id]; !exists {
		r.order = append(r.order, id)
	}
	r.weights[id] = weight
	return nil
}

// RemoveNode removes id. It is a no-op if id was never inserted.
func (r *WeightedRendezvousRing[N]) RemoveNode(id N) {
	if _, exists := r.weights[id]; !exists {
		return
	}
	delete(r.weights, id)
	for i, n := range r.order {
		if n == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// GetNode returns the node with the greatest -weight/ln(u) score,
// ties broken by the greater ID.
func (r *WeightedRendezvousRing[N]) GetNode(point any) (N, error) {
	var zero N
	if len(r.order) == 0 {
		return zero, ErrEmptyRing
	}

	pointHash := r.builder.Hash(point)
	found := false
	var bestScore float64
	var bestID N
	for _, id := range r.order {
		h := r.builder.Combine(r.builder.Hash(id), pointHash)
		u := float64(h) / float64(math.MaxUint64)
		if u <= 0 {
			u = minPositiveRatio
		}
		score := -r.weights[id] / math.Log(u)
		if !found || score > bestScore || (score == bestScore && id > bestID) {
			found = true
			bestScore = score
			bestID = id
		}
	}
	return bestID, nil
}

// Len returns the number of registered nodes.
func (r *WeightedRendezvousRing[N]) Len() int { return len(r.order) }

// IsEmpty reports whether no nodes are registered.
func (r *WeightedRendezvousRing[N]) IsEmpty() bool { return len(r.order) == 0 }

var _ Ring[string] = (*WeightedRendezvousRing[string])(nil)
