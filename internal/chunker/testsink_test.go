package chunker

import "errors"

// testSink is a minimal in-memory Sink used across this package's tests: it
// records every chunk handed to it, verbatim and in order, and concatenates
// them so callers can assert conservation/contiguity directly.
type testSink struct {
	chunks [][]byte
	seekTo int64
	closed bool
}

func newTestSink() *testSink { return &testSink{} }

func (s *testSink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, errors.New("testSink: write after close")
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	s.chunks = append(s.chunks, cp)
	return len(p), nil
}

func (s *testSink) Seek(offset int64, whence int) (int64, error) {
	s.seekTo = offset
	return offset, nil
}

func (s *testSink) Flush() error { return nil }

func (s *testSink) all() []byte {
	var out []byte
	for _, c := range s.chunks {
		out = append(out, c...)
	}
	return out
}

func (s *testSink) lengths() []int {
	out := make([]int, len(s.chunks))
	for i, c := range s.chunks {
		out[i] = len(c)
	}
	return out
}
