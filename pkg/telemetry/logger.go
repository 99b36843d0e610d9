// Package telemetry provides structured logging for ringbench runs.
//
// Design Notes:
//   - Uses standard log package for compatibility.
//   - Correlation IDs (one per benchmark run) tie together the
//     start/done/error lines a multi-algorithm run produces.
//   - JSON structured logging: easy to grep or feed into a log
//     aggregator, same trade-off the rest of this codebase makes.
//
// Trade-offs:
//   - Structured JSON logging vs human-readable: chose JSON for parsing.
//   - Log level: Info for normal events, Error for failures.
package telemetry

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

// NewRunID mints a correlation ID for one benchmark invocation.
func NewRunID() string {
	return uuid.New().String()
}

// Logger emits structured JSON log lines tagged with a run ID, the
// way request logging tags every line with a request ID.
type Logger struct {
	runID string
}

// New returns a Logger that stamps every entry with runID.
func New(runID string) *Logger {
	return &Logger{runID: runID}
}

// Event logs a single structured event. fields is merged into the
// entry alongside the standard timestamp/run_id/algorithm/event keys.
func (l *Logger) Event(algorithm, event string, fields map[string]any) {
	entry := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"run_id":    l.runID,
		"algorithm": algorithm,
		"event":     event,
	}
	for k, v := range fields {
		entry[k] = v
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Printf("[ERROR] telemetry: failed to marshal log entry: %v", err)
		log.Printf("[INFO] run=%s algorithm=%s event=%s", l.runID, algorithm, event)
		return
	}

	if event == "error" {
		log.Printf("[ERROR] %s", string(data))
	} else {
		log.Printf("[INFO] %s", string(data))
	}
}
