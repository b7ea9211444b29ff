package sink

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// WriterSink adapts any io.Writer+io.Seeker pair into a chunker.Sink,
// logging each chunk at debug level. It loops internally over the
// underlying writer in case that writer partial-writes, so the chunker
// above it always observes a full-consumption write per call.
type WriterSink struct {
	w      io.Writer
	seeker io.Seeker
	logger *zap.Logger

	written int64
	chunks  int64
}

// NewWriterSink wraps dst. seeker may be nil if the destination does not
// support seeking; Seek then returns an error rather than panicking.
func NewWriterSink(dst io.Writer, seeker io.Seeker, logger *zap.Logger) *WriterSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WriterSink{w: dst, seeker: seeker, logger: logger}
}

// Write implements chunker.Sink.
func (s *WriterSink) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := s.w.Write(p[written:])
		written += n
		if err != nil {
			return written, fmt.Errorf("sink: write chunk: %w", err)
		}
		if n == 0 {
			return written, fmt.Errorf("sink: write chunk: underlying writer made no progress")
		}
	}

	s.chunks++
	s.written += int64(written)
	s.logger.Debug("wrote chunk",
		zap.Int("size", written),
		zap.Int64("chunk_index", s.chunks-1),
		zap.Int64("total_written", s.written))

	return written, nil
}

// Seek implements chunker.Sink.
func (s *WriterSink) Seek(offset int64, whence int) (int64, error) {
	if s.seeker == nil {
		return 0, fmt.Errorf("sink: underlying writer does not support seeking")
	}
	return s.seeker.Seek(offset, whence)
}

// Flush implements chunker.Sink. The wrapped io.Writer has no flush
// primitive of its own, so this only flushes the logger.
func (s *WriterSink) Flush() error {
	return s.logger.Sync()
}

// ChunksWritten reports how many chunks have been written so far.
func (s *WriterSink) ChunksWritten() int64 { return s.chunks }

// BytesWritten reports the total byte count written so far.
func (s *WriterSink) BytesWritten() int64 { return s.written }
