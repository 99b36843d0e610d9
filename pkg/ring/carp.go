package ring

import (
	"cmp"
	"math"
	"sort"

	"github.com/o-tero/hashring/pkg/hashutil"
)

// weightEpsilon is the tolerance used when comparing node weights for
// equality during sort and tie-break, avoiding NaN-driven ordering
// artifacts from exact floating-point comparison.
const weightEpsilon = 1e-9

// CarpNode describes one node's input to a CarpRing: an identifier
// and a weight. Weight must be finite and strictly positive.
type CarpNode[N cmp.Ordered] struct {
	ID     N
	Weight float64

	hash           uint64
	relativeWeight float64
}

// CarpRing implements the Cache Array Routing Protocol: every node's
// weight is converted into a relative weight via the rebalance
// algorithm, and a point is scored per node as
// Combine(node.hash, point.hash) * node.relativeWeight, with the
// greatest score winning.
type CarpRing[N cmp.Ordered] struct {
	builder hashutil.Builder
	nodes   []CarpNode[N]
}

// NewCarpRing constructs a ring from the given nodes, deduping by ID
// (last occurrence wins) and rebalancing relative weights. It fails
// with ErrNaNWeight or ErrInvalidConfig if any weight is NaN,
// infinite, or non-positive.
func NewCarpRing[N cmp.Ordered](nodes []CarpNode[N]) (*CarpRing[N], error) {
	return NewCarpRingWithHasher(hashutil.NewBuilder(), nodes)
}

// NewCarpRingWithHasher is NewCarpRing with an explicit hash builder.
func NewCarpRingWithHasher[N cmp.Ordered](builder hashutil.Builder, nodes []CarpNode[N]) (*CarpRing[N], error) {
	r := &CarpRing[N]{builder: builder}

	dedup := make(map[N]CarpNode[N], len(nodes))
	order := make([]N, 0, len(nodes))
	for _, n := range nodes {
		if _, exists := dedup[n.ID]; !exists {
			order = append(order, n.ID)
		}
		dedup[n.ID] = n
	}

	result := make([]CarpNode[N], 0, len(order))
	for _, id := range order {
		n := dedup[id]
		if err := validateWeight(n.Weight); err != nil {
			return nil, err
		}
		n.hash = builder.Hash(n.ID)
		result = append(result, n)
	}

	r.nodes = result
	sortCarpNodes(r.nodes)
	r.rebalance()
	return r, nil
}

func validateWeight(w float64) error {
	if math.IsNaN(w) {
		return ErrNaNWeight
	}
	if math.IsInf(w, 0) || w <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

func sortCarpNodes[N cmp.Ordered](nodes []CarpNode[N]) {
	sort.Slice(nodes, func(i, j int) bool {
		if math.Abs(nodes[i].Weight-nodes[j].Weight) < weightEpsilon {
			return nodes[i].ID < nodes[j].ID
		}
		return nodes[i].Weight < nodes[j].Weight
	})
}

// rebalance recomputes every node's relativeWeight from scratch,
// following CARP's geometric-progression load-factor formula, then
// normalizes so the largest relative weight is 1.0.
func (r *CarpRing[N]) rebalance() {
	n := float64(len(r.nodes))
	if n == 0 {
		return
	}

	product := 1.0
	for i := range r.nodes {
		idx := float64(i)
		var res float64
		if i == 0 {
			res = math.Pow(n*r.nodes[0].Weight, 1/n)
		} else {
			res = (n-idx)*(r.nodes[i].Weight-r.nodes[i-1].Weight)/product +
				math.Pow(r.nodes[i-1].relativeWeight, n-idx)
			res = math.Pow(res, 1/(n-idx))
		}
		product *= res
		r.nodes[i].relativeWeight = res
	}

	max := r.nodes[len(r.nodes)-1].relativeWeight
	for i := range r.nodes {
		r.nodes[i].relativeWeight /= max
	}
}

// InsertNode inserts or replaces a node, re-sorts by (weight, id), and
// rebalances relative weights.
func (r *CarpRing[N]) InsertNode(node CarpNode[N]) error {
	if err := validateWeight(node.Weight); err != nil {
		return err
	}
	node.hash = r.builder.Hash(node.ID)

	replaced := false
	for i := range r.nodes {
		if r.nodes[i].ID == node.ID {
			r.nodes[i] = node
			replaced = true
			break
		}
	}
	if !replaced {
		r.nodes = append(r.nodes, node)
	}

	sortCarpNodes(r.nodes)
	r.rebalance()
	return nil
}

// RemoveNode removes id, rebalancing the remaining nodes. It is a
// no-op if id was never inserted.
func (r *CarpRing[N]) RemoveNode(id N) {
	for i := range r.nodes {
		if r.nodes[i].ID == id {
			r.nodes = append(r.nodes[:i], r.nodes[i+1:]...)
			r.rebalance()
			return
		}
	}
}

// GetNode returns the node with the greatest
// Combine(node.hash, hash(point)) * node.relativeWeight score, ties
// broken by the greater ID.
func (r *CarpRing[N]) GetNode(point any) (N, error) {
	var zero N
	if len(r.nodes) == 0 {
		return zero, ErrEmptyRing
	}

	pointHash := r.builder.Hash(point)
	found := false
	var bestScore float64
	var bestID N
	for _, node := range r.nodes {
		score := float64(r.builder.Combine(node.hash, pointHash)) * node.relativeWeight
		if !found || score > bestScore || (score == bestScore && node.ID > bestID) {
			found = true
			bestScore = score
			bestID = node.ID
		}
	}
	return bestID, nil
}

// Len returns the number of registered nodes.
func (r *CarpRing[N]) Len() int { return len(r.nodes) }

// IsEmpty reports whether no nodes are registered.
func (r *CarpRing[N]) IsEmpty() bool { return len(r.nodes) == 0 }

var _ Ring[string] = (*CarpRing[string])(nil)
