// Package workload produces synthetic key streams for exercising a
// ring under different access patterns: uniform, normal, and
// log-normal key distributions, optionally paced to a fixed rate so a
// benchmark run can model a bounded-throughput origin rather than a
// tight loop.
package workload

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"golang.org/x/time/rate"
)

// Distribution selects how Generator samples the next key.
type Distribution int

const (
	// Uniform samples keys uniformly across the full uint64 range.
	Uniform Distribution = iota
	// Normal samples a float from N(mean, stddev) and floors it into a key.
	Normal
	// LogNormal samples a float from a log-normal distribution with
	// the given underlying normal mean/stddev and floors it into a key.
	LogNormal
)

// String renders the distribution the way it would appear in a
// benchmark report row.
func (d Distribution) String() string {
	switch d {
	case Uniform:
		return "uniform"
	case Normal:
		return "normal"
	case LogNormal:
		return "lognormal"
	default:
		return fmt.Sprintf("distribution(%d)", int(d))
	}
}

// Config holds Generator construction parameters, the same
// struct-plus-DefaultConfig shape the rest of this codebase uses for
// runtime configuration.
type Config struct {
	Distribution Distribution
	// Mean and StdDev parameterize the underlying normal distribution
	// for both Normal and LogNormal (the log-normal case exponentiates
	// a N(Mean, StdDev) sample, matching the reference generator).
	Mean   float64
	StdDev float64
}

// DefaultConfig returns the reference generator's fixed N(5, 1)
// parameterization for the normal and log-normal cases.
func DefaultConfig(dis Distribution) Config {
	return Config{
		Distribution: dis,
		Mean:         5.0,
		StdDev:       1.0,
	}
}

// Generator produces an unbounded stream of uint64 keys drawn from a
// configured Distribution. A Generator is not safe for concurrent use
// by multiple goroutines.
type Generator struct {
	dis    Distribution
	rng    *rand.Rand
	mean   float64
	stddev float64
}

// New constructs a Generator sampling from dis using DefaultConfig's
// mean/stddev and a randomly seeded source.
func New(dis Distribution) *Generator {
	return NewWithConfig(DefaultConfig(dis))
}

// NewWithConfig constructs a Generator from an explicit Config, using
// a randomly seeded source.
func NewWithConfig(cfg Config) *Generator {
	return &Generator{
		dis:    cfg.Distribution,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		mean:   cfg.Mean,
		stddev: cfg.StdDev,
	}
}

// Next returns the next key in the stream.
func (g *Generator) Next() uint64 {
	switch g.dis {
	case Normal:
		return floorToKey(g.rng.NormFloat64()*g.stddev + g.mean)
	case LogNormal:
		return floorToKey(math.Exp(g.rng.NormFloat64()*g.stddev + g.mean))
	default:
		return g.rng.Uint64()
	}
}

// NextN returns the next n keys in the stream.
func (g *Generator) NextN(n int) []uint64 {
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = g.Next()
	}
	return keys
}

// Stream emits keys onto the returned channel until ctx is canceled.
// When limiter is non-nil, each send waits on it first, modeling a
// workload bounded to a fixed rate rather than the generator's raw
// sampling speed.
func (g *Generator) Stream(ctx context.Context, limiter *rate.Limiter) <-chan uint64 {
	out := make(chan uint64)
	go func() {
		defer close(out)
		for {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
			}
			select {
			case <-ctx.Done():
				return
			case out <- g.Next():
			}
		}
	}()
	return out
}

func floorToKey(f float64) uint64 {
	if f < 0 {
		f = -f
	}
	return uint64(math.Floor(f))
}
