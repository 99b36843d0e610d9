package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// NodeError captures one node's observed traffic share against the
// algorithm's ideal share for that node, mirroring the per-node
// statistic the reference benchmark prints.
type NodeError struct {
	NodeID   uint64
	Expected float64
	Actual   float64
	Error    float64
}

// Result summarizes one algorithm's benchmark run.
type Result struct {
	Algorithm    string
	Distribution string
	Nodes        int
	Items        int
	Elapsed      time.Duration
	NodeErrors   []NodeError
}

// MaxError returns the largest per-node relative error observed.
func (r Result) MaxError() float64 {
	var max float64
	for _, e := range r.NodeErrors {
		if e.Error > max {
			max = e.Error
		}
	}
	return max
}

// Throughput returns routed keys per second.
func (r Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Items) / r.Elapsed.Seconds()
}

// PrintSummary writes a human-readable table of results to w,
// one row per algorithm, in the style of the reference benchmark's
// per-run console report.
func PrintSummary(w io.Writer, results []Result) {
	fmt.Fprintf(w, "%-22s %10s %12s %14s %12s\n", "algorithm", "nodes", "items", "ops/sec", "max error")
	for _, r := range results {
		if r.Algorithm == "" {
			continue
		}
		fmt.Fprintf(w, "%-22s %10d %12d %14.0f %12.4f\n", r.Algorithm, r.Nodes, r.Items, r.Throughput(), r.MaxError())
	}
}

// AppendCSV appends one row per result to path, creating the file
// (and any header) if it doesn't already exist.
func AppendCSV(path string, results []Result) error {
	_, statErr := os.Stat(path)
	needsHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if needsHeader {
		if _, err := io.WriteString(f, "algorithm,distribution,nodes,items,ops_per_sec,max_error,per_node_errors\n"); err != nil {
			return err
		}
	}

	for _, r := range results {
		if r.Algorithm == "" {
			continue
		}
		row := fmt.Sprintf("%s,%s,%d,%d,%.3f,%.6f,%s\n",
			r.Algorithm, r.Distribution, r.Nodes, r.Items, r.Throughput(), r.MaxError(), formatNodeErrors(r.NodeErrors))
		if _, err := io.WriteString(f, row); err != nil {
			return err
		}
	}
	return nil
}

func formatNodeErrors(errs []NodeError) string {
	sorted := append([]NodeError(nil), errs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].NodeID < sorted[j].NodeID })

	parts := make([]string, len(sorted))
	for i, e := range sorted {
		parts[i] = fmt.Sprintf("%d:%.6f", e.NodeID, e.Error)
	}
	return strings.Join(parts, ";")
}
