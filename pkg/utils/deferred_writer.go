package utils

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// DefaultDeferredLimit caps how much a DeferredWriter holds in memory.
const DefaultDeferredLimit = 1 << 20

// DeferredWriter buffers writes in memory until Flush is called. It holds
// log output while the terminal is owned by the full-screen view. Writes
// beyond Limit bytes are dropped and reported on Flush.
// Safe for concurrent use.
type DeferredWriter struct {
	Limit int

	mu      sync.Mutex
	buf     bytes.Buffer
	dropped int
}

// Write stores p, or counts it as dropped once the buffer is full. It
// never returns an error so the logger keeps working.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	limit := d.Limit
	if limit <= 0 {
		limit = DefaultDeferredLimit
	}
	if d.buf.Len()+len(p) > limit {
		d.dropped += len(p)
		return len(p), nil
	}
	return d.buf.Write(p)
}

// Flush writes all buffered data to w and resets the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buf.Len() > 0 {
		if _, err := d.buf.WriteTo(w); err != nil {
			return err
		}
	}
	if d.dropped > 0 {
		if _, err := fmt.Fprintf(w, "(%d bytes of log output dropped)\n", d.dropped); err != nil {
			return err
		}
		d.dropped = 0
	}
	return nil
}
