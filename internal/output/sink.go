// Package output implements the append-only NDJSON sink reports are
// written to. Each row is flushed as soon as it is written so partial
// results survive a crash mid-run.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// Sink appends one JSON line per scored repository. It is safe for
// concurrent use so the orchestrator can later fan out without changing
// the sink contract.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
	c  io.Closer
}

// NewSink wraps an arbitrary writer, typically for tests or stdout.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// NewFileSink opens (or truncates) path for appending report rows.
func NewFileSink(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}
	return &Sink{w: f, c: f}, nil
}

// WriteReport appends one report row, rounded to 5 significant digits.
func (s *Sink) WriteReport(r Report) error {
	return s.writeLine(r.Rounded())
}

// WriteErrorRow appends a row-level error as a JSON-encoded string, the
// degraded form a repository takes when its pipeline failed.
func (s *Sink) WriteErrorRow(message string) error {
	return s.writeLine(message)
}

func (s *Sink) writeLine(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output row: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append output row: %w", err)
	}
	if f, ok := s.w.(*os.File); ok {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("failed to flush output row: %w", err)
		}
	}
	return nil
}

// Close closes the underlying file, if any.
func (s *Sink) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}
