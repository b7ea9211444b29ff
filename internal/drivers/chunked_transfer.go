// internal/drivers/chunked_transfer.go
package drivers

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/FairForge/cdcchunker/internal/chunker"
)

// StreamTransfer reads an io.Reader in fixed-size pieces and feeds each
// piece to a *chunker.Chunker, re-submitting any residue the chunker's
// internal buffer couldn't accept in one call. The read size only
// controls how much is pulled from r per Read call; it has no bearing on
// the emitted chunk boundaries, which are decided entirely by the
// chunker's configured strategy.
type StreamTransfer struct {
	readSize int
	logger   *zap.Logger
}

// NewStreamTransfer creates a transfer helper that reads readSize bytes at
// a time (defaulting to 5MB for readSize <= 0).
func NewStreamTransfer(readSize int, logger *zap.Logger) *StreamTransfer {
	if readSize <= 0 {
		readSize = 5 * 1024 * 1024
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamTransfer{readSize: readSize, logger: logger}
}

// Run drains r through c until EOF, flushing c when done, and returns the
// total number of bytes read from r.
func (s *StreamTransfer) Run(c *chunker.Chunker, r io.Reader) (int64, error) {
	buffer := make([]byte, s.readSize)
	var total int64

	for {
		n, rerr := r.Read(buffer)
		if n > 0 {
			total += int64(n)
			if err := s.feed(c, buffer[:n]); err != nil {
				return total, err
			}
		}

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return total, fmt.Errorf("read chunk: %w", rerr)
		}
	}

	if err := c.Flush(); err != nil {
		return total, fmt.Errorf("flush chunker: %w", err)
	}

	s.logger.Debug("stream transfer complete", zap.Int64("total_bytes", total))
	return total, nil
}

// feed pushes p into c, resubmitting whatever the chunker's buffer
// couldn't accept in a single Write call until all of p is consumed.
func (s *StreamTransfer) feed(c *chunker.Chunker, p []byte) error {
	for len(p) > 0 {
		n, err := c.Write(p)
		if err != nil {
			return fmt.Errorf("write chunk: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("write chunk: chunker made no progress on %d residual bytes", len(p))
		}
		p = p[n:]
	}
	return nil
}
