package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// TraceWriter appends one JSON-encoded view per line, optionally inside an lz4 frame
type TraceWriter struct {
	file io.Closer
	zw   *lz4.Writer
	buf  *bufio.Writer
	enc  *json.Encoder
	n    int
}

// NewTraceWriter wraps w. When compress is set the stream is an lz4 frame.
func NewTraceWriter(w io.Writer, compress bool) *TraceWriter {
	t := &TraceWriter{}
	if compress {
		t.zw = lz4.NewWriter(w)
		w = t.zw
	}
	t.buf = bufio.NewWriter(w)
	t.enc = json.NewEncoder(t.buf)
	return t
}

// CreateTrace opens path for writing. A ".lz4" suffix selects compression.
func CreateTrace(path string) (*TraceWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace %s: %w", path, err)
	}
	t := NewTraceWriter(f, strings.HasSuffix(path, ".lz4"))
	t.file = f
	return t, nil
}

// Write appends a view
func (t *TraceWriter) Write(v View) error {
	if err := t.enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write trace line %d: %w", t.n, err)
	}
	t.n++
	return nil
}

// Lines returns how many views were written
func (t *TraceWriter) Lines() int { return t.n }

// Close flushes buffered lines, ends the lz4 frame and closes the file if the writer owns one
func (t *TraceWriter) Close() error {
	if err := t.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush trace: %w", err)
	}
	if t.zw != nil {
		if err := t.zw.Close(); err != nil {
			return fmt.Errorf("failed to close lz4 frame: %w", err)
		}
	}
	if t.file != nil {
		return t.file.Close()
	}
	return nil
}

// ReadTrace decodes every view of a trace stream
func ReadTrace(r io.Reader, compressed bool) ([]View, error) {
	if compressed {
		r = lz4.NewReader(r)
	}
	dec := json.NewDecoder(r)
	var views []View
	for {
		var v View
		err := dec.Decode(&v)
		if err == io.EOF {
			return views, nil
		}
		if err != nil {
			return views, fmt.Errorf("failed to read trace line %d: %w", len(views), err)
		}
		views = append(views, v)
	}
}
