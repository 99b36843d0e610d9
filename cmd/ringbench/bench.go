package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/o-tero/hashring/internal/workload"
	"github.com/o-tero/hashring/pkg/ring"
)

func parseDistribution(s string) (workload.Distribution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uniform":
		return workload.Uniform, nil
	case "normal":
		return workload.Normal, nil
	case "lognormal", "log-normal", "log_normal":
		return workload.LogNormal, nil
	default:
		return 0, fmt.Errorf("unknown distribution %q", s)
	}
}

func splitCSVList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func randomNodeIDs(n int) []uint64 {
	ids := make([]uint64, n)
	for i := range ids {
		ids[i] = rand.Uint64()
	}
	return ids
}

// runBenchmark routes keys through the named algorithm and tallies
// each node's observed traffic share against its ideal share.
func runBenchmark(ctx context.Context, algorithm string, numNodes, replicas int, keys []uint64) (Result, error) {
	nodes := randomNodeIDs(numNodes)

	var route func(point any) (uint64, error)
	var ideal map[uint64]float64

	switch algorithm {
	case "consistent":
		r := ring.NewConsistentRing[uint64]()
		for _, id := range nodes {
			r.InsertNode(id, replicas)
		}
		route = r.GetNode
		ideal = uniformIdeal(nodes)

	case "jump":
		r, err := ring.NewJumpRing(uint32(numNodes))
		if err != nil {
			return Result{}, err
		}
		route = func(point any) (uint64, error) {
			b, err := r.GetNode(point)
			return uint64(b), err
		}
		ideal = make(map[uint64]float64, numNodes)
		for i := 0; i < numNodes; i++ {
			ideal[uint64(i)] = 1.0 / float64(numNodes)
		}

	case "carp":
		carpNodes := make([]ring.CarpNode[uint64], numNodes)
		var totalWeight float64
		for i, id := range nodes {
			w := 1.0 + float64(i%5)
			carpNodes[i] = ring.CarpNode[uint64]{ID: id, Weight: w}
			totalWeight += w
		}
		r, err := ring.NewCarpRing(carpNodes)
		if err != nil {
			return Result{}, err
		}
		route = r.GetNode
		ideal = make(map[uint64]float64, numNodes)
		for _, n := range carpNodes {
			ideal[n.ID] = n.Weight / totalWeight
		}

	case "maglev":
		r, err := ring.NewMaglevRing(nodes)
		if err != nil {
			return Result{}, err
		}
		route = r.GetNode
		ideal = uniformIdeal(nodes)

	case "mpc":
		r, err := ring.NewMPCRing[uint64](21)
		if err != nil {
			return Result{}, err
		}
		for _, id := range nodes {
			r.InsertNode(id)
		}
		route = r.GetNode
		ideal = uniformIdeal(nodes)

	case "rendezvous":
		r := ring.NewRendezvousRing[uint64]()
		for _, id := range nodes {
			r.InsertNode(id, replicas)
		}
		route = r.GetNode
		ideal = uniformIdeal(nodes)

	case "weighted_rendezvous":
		r := ring.NewWeightedRendezvousRing[uint64]()
		var totalWeight float64
		weights := make(map[uint64]float64, numNodes)
		for i, id := range nodes {
			w := 1.0 + float64(i%5)
			if err := r.InsertNode(id, w); err != nil {
				return Result{}, err
			}
			weights[id] = w
			totalWeight += w
		}
		route = r.GetNode
		ideal = make(map[uint64]float64, numNodes)
		for id, w := range weights {
			ideal[id] = w / totalWeight
		}

	default:
		return Result{}, fmt.Errorf("unknown algorithm %q", algorithm)
	}

	occ := make(map[uint64]int, len(ideal))
	for i, key := range keys {
		if i%4096 == 0 {
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			default:
			}
		}
		id, err := route(key)
		if err != nil {
			return Result{}, err
		}
		occ[id]++
	}

	return Result{
		Algorithm:  algorithm,
		NodeErrors: nodeErrors(ideal, occ, len(keys)),
	}, nil
}

func uniformIdeal(nodes []uint64) map[uint64]float64 {
	ideal := make(map[uint64]float64, len(nodes))
	share := 1.0 / float64(len(nodes))
	for _, id := range nodes {
		ideal[id] = share
	}
	return ideal
}

func nodeErrors(ideal map[uint64]float64, occ map[uint64]int, total int) []NodeError {
	errs := make([]NodeError, 0, len(ideal))
	for id, expected := range ideal {
		actual := float64(occ[id]) / float64(total)
		errs = append(errs, NodeError{
			NodeID:   id,
			Expected: expected,
			Actual:   actual,
			Error:    relativeError(expected, actual),
		})
	}
	return errs
}

func relativeError(expected, actual float64) float64 {
	if expected == 0 {
		return 0
	}
	diff := expected - actual
	if diff < 0 {
		diff = -diff
	}
	return diff / expected
}
