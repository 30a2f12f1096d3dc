package results

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// TrialTrace is one line of the experiment trace log.
type TrialTrace struct {
	Worker     int    `json:"worker"`
	Trial      int    `json:"trial"`
	Seed       int64  `json:"seed"`
	Steps      int    `json:"steps"`
	Vegetation int    `json:"vegetation"`
	Outcome    string `json:"outcome"`
}

// TraceWriter streams per-trial records to a zstd-compressed JSONL file.
// It is safe for concurrent use, though the orchestrator only writes from
// the single-threaded drain.
type TraceWriter struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewTraceWriter creates (truncating) the trace file at path.
func NewTraceWriter(path string) (*TraceWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	return &TraceWriter{f: f, enc: enc, w: bufio.NewWriter(enc)}, nil
}

// Write appends v as a single JSONL line.
func (t *TraceWriter) Write(v any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := t.w.Write(b); err != nil {
		return err
	}
	return t.w.WriteByte('\n')
}

// Close flushes and closes the stream.
func (t *TraceWriter) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.w.Flush(); err != nil {
		return err
	}
	if err := t.enc.Close(); err != nil {
		return err
	}
	return t.f.Close()
}
