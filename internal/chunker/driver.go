package chunker

import (
	"fmt"
	"io"
)

// Sink is the downstream byte consumer a Chunker drives. Each call to Write
// carries exactly one chunk's worth of bytes and must consume it in full —
// chunk boundaries are how callers downstream of the sink learn where one
// chunk ends and the next begins, so a sink that short-writes silently would
// corrupt that signal. The driver panics rather than tolerate a short write.
type Sink interface {
	io.Writer
	io.Seeker
	Flush() error
}

// Chunker streams bytes through a Strategy and emits whole chunks to a Sink.
// One Chunker instance serves exactly one logical stream; its buffer and
// strategy are not safe for concurrent use.
type Chunker struct {
	sink     Sink
	buf      *ChunkerBuf
	strategy Strategy
	maxChunk int
}

// New constructs a Chunker bound to sink, driven by strategy, with a buffer
// at the package's default capacity (Cap).
func New(sink Sink, strategy Strategy) *Chunker {
	return NewWithCapacity(sink, strategy, Cap)
}

// NewWithCapacity is like New but allocates the internal ChunkerBuf at
// capacity bytes instead of the default Cap. Production callers should use
// New; a smaller capacity exists for tests and for config.ChunkerOptions'
// BufferCapacityOverride, which callers that want it applied should pass
// through here rather than leave unused.
func NewWithCapacity(sink Sink, strategy Strategy, capacity int) *Chunker {
	return &Chunker{
		sink:     sink,
		buf:      NewChunkerBufWithCapacity(capacity),
		strategy: strategy,
		maxChunk: strategy.Sizes().Max,
	}
}

// Write appends p to the internal buffer and emits every chunk that becomes
// cuttable as a result, in order. It returns the number of bytes of p that
// were accepted; the caller must resubmit any residue (p[n:]) on a
// subsequent call once buffer room frees up.
func (c *Chunker) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n := c.buf.Append(p)

	for c.buf.HasSomething() {
		posBefore := c.buf.Pos()
		r, ok := c.strategy.NextCut(c.buf)
		if !ok {
			// Either there isn't enough buffered data to decide yet, or the
			// strategy made partial progress but still needs more bytes.
			// Either way, if this call didn't advance pos, calling again
			// right now would just repeat the same answer, so wait for the
			// caller to append more data instead of spinning.
			if c.buf.Pos() == posBefore || c.buf.PossibleSize() < c.maxChunk {
				break
			}
			continue
		}

		if r.End != c.buf.Pos() || r.Len() != c.buf.ChunkLen() {
			panic(fmt.Sprintf("chunker: strategy returned inconsistent range %+v (pos=%d chunkLen=%d)",
				r, c.buf.Pos(), c.buf.ChunkLen()))
		}

		if err := c.emit(r); err != nil {
			return n, err
		}

		c.buf.SetChunkLen(0)
		c.buf.MaybeCompact(c.maxChunk)
	}

	return n, nil
}

func (c *Chunker) emit(r Range) error {
	written, err := c.sink.Write(c.buf.Bytes(r))
	if err != nil {
		return fmt.Errorf("chunker: write chunk: %w", err)
	}
	if written != r.Len() {
		panic(fmt.Sprintf("chunker: sink short write: wrote %d of %d bytes", written, r.Len()))
	}
	return nil
}

// Flush emits any trailing, not-yet-cut bytes as a final (possibly
// short) chunk, resets the buffer, and flushes the sink.
func (c *Chunker) Flush() error {
	tail := c.buf.TailRange()
	if tail.Len() > 0 {
		if err := c.emit(tail); err != nil {
			return err
		}
	}
	c.buf.Reset()
	return c.sink.Flush()
}

// Seek delegates to the sink. The chunker itself has no notion of random
// access; it only forwards the call so the sink can manage its own
// addressing.
func (c *Chunker) Seek(offset int64, whence int) (int64, error) {
	return c.sink.Seek(offset, whence)
}

// Finalize flushes any residue and returns the underlying sink to the
// caller, surrendering ownership.
func (c *Chunker) Finalize() (Sink, error) {
	if err := c.Flush(); err != nil {
		return nil, err
	}
	return c.sink, nil
}
