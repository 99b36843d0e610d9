// Command ringbench drives each ring algorithm against a synthetic
// key workload and reports, per algorithm, the largest relative error
// of a node's traffic share against the ideal split and the achieved
// throughput; the CSV output adds every node's relative error.
//
// Design Notes:
//   - Uses the standard flag package: a single-purpose benchmark CLI
//     doesn't warrant a command framework.
//   - Every run gets a correlation ID (github.com/google/uuid), stamped
//     on each start/done/error log line the way request IDs tag HTTP
//     requests in the rest of this codebase. The summary table and CSV
//     rows do not carry it.
//   - Algorithms run concurrently via golang.org/x/sync/errgroup; a
//     failure in one (e.g. an invalid weight) cancels the rest.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/o-tero/hashring/internal/workload"
	"github.com/o-tero/hashring/pkg/telemetry"
)

func main() {
	var (
		nodes      = flag.Int("nodes", 10, "number of nodes to register on the ring")
		replicas   = flag.Int("replicas", 100, "virtual replicas per node (consistent/rendezvous only)")
		items      = flag.Int("items", 100000, "number of keys to route per algorithm")
		dis        = flag.String("distribution", "uniform", "key distribution: uniform, normal, or lognormal")
		algorithms = flag.String("algorithms", "consistent,jump,carp,maglev,mpc,rendezvous,weighted_rendezvous", "comma-separated list of algorithms to run")
		outputCSV  = flag.String("output", "", "CSV file to append results to; empty disables file output")
	)
	flag.Parse()

	distribution, err := parseDistribution(*dis)
	if err != nil {
		log.Fatalf("ringbench: %v", err)
	}

	names := splitCSVList(*algorithms)
	runID := telemetry.NewRunID()
	logger := telemetry.New(runID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]Result, len(names))

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			logger.Event(name, "start", nil)
			gen := workload.New(distribution)
			keys := gen.NextN(*items)

			start := time.Now()
			result, err := runBenchmark(ctx, name, *nodes, *replicas, keys)
			if err != nil {
				logger.Event(name, "error", map[string]any{"message": err.Error()})
				return err
			}
			result.Elapsed = time.Since(start)
			result.Distribution = distribution.String()
			result.Items = *items
			result.Nodes = *nodes
			results[i] = result
			logger.Event(name, "done", nil)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("ringbench: run %s failed: %v", runID, err)
	}

	PrintSummary(os.Stdout, results)
	if *outputCSV != "" {
		if err := AppendCSV(*outputCSV, results); err != nil {
			log.Fatalf("ringbench: writing %s: %v", *outputCSV, err)
		}
	}
}
