package sink

import "fmt"

// MemorySink collects every chunk it receives, in order, entirely in
// memory. It exists for tests and small demos where persisting chunks to a
// real backing store isn't the point.
type MemorySink struct {
	Chunks [][]byte
	pos    int64
	closed bool
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

// Write implements chunker.Sink.
func (m *MemorySink) Write(p []byte) (int, error) {
	if m.closed {
		return 0, fmt.Errorf("sink: write after close")
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	m.Chunks = append(m.Chunks, cp)
	m.pos += int64(len(p))
	return len(p), nil
}

// Seek implements chunker.Sink. MemorySink tracks only a logical position;
// it does not support random-access rewrites of already-collected chunks.
func (m *MemorySink) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 0:
		m.pos = offset
	case 1:
		m.pos += offset
	case 2:
		return 0, fmt.Errorf("sink: SeekEnd is not supported by MemorySink")
	default:
		return 0, fmt.Errorf("sink: invalid whence %d", whence)
	}
	return m.pos, nil
}

// Flush implements chunker.Sink; MemorySink has nothing to flush.
func (m *MemorySink) Flush() error { return nil }

// Bytes concatenates every collected chunk into one slice.
func (m *MemorySink) Bytes() []byte {
	var out []byte
	for _, c := range m.Chunks {
		out = append(out, c...)
	}
	return out
}

// Lengths returns the length of each collected chunk, in order.
func (m *MemorySink) Lengths() []int {
	out := make([]int, len(m.Chunks))
	for i, c := range m.Chunks {
		out[i] = len(c)
	}
	return out
}

// Close marks the sink closed; further writes return an error.
func (m *MemorySink) Close() { m.closed = true }
