package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkerBuf_AppendAndCursors(t *testing.T) {
	t.Run("append reports bytes copied and advances clen", func(t *testing.T) {
		// Arrange
		buf := NewChunkerBuf()

		// Act
		n := buf.Append([]byte("hello"))

		// Assert
		assert.Equal(t, 5, n)
		assert.Equal(t, 5, buf.Len())
		assert.True(t, buf.HasSomething())
	})

	t.Run("append truncates when capacity is exhausted", func(t *testing.T) {
		// Arrange
		buf := NewChunkerBuf()
		big := make([]byte, Cap-3)
		buf.Append(big)

		// Act
		n := buf.Append([]byte("overflow"))

		// Assert
		assert.Equal(t, 3, n)
	})

	t.Run("has something is false once pos reaches clen", func(t *testing.T) {
		buf := NewChunkerBuf()
		buf.Append([]byte("abc"))
		buf.SetPos(3)
		assert.False(t, buf.HasSomething())
	})
}

func TestChunkerBuf_ResetPosition(t *testing.T) {
	t.Run("compacts unscanned tail to the head", func(t *testing.T) {
		// Arrange
		buf := NewChunkerBuf()
		buf.Append([]byte("0123456789"))
		buf.SetPos(4)

		// Act
		buf.ResetPosition()

		// Assert
		require.Equal(t, 0, buf.Pos())
		assert.Equal(t, 6, buf.Len())
		assert.Equal(t, []byte("456789"), buf.Bytes(Range{0, 6}))
	})

	t.Run("panics if a chunk is in flight", func(t *testing.T) {
		buf := NewChunkerBuf()
		buf.Append([]byte("0123456789"))
		buf.SetPos(4)
		buf.SetChunkLen(2)

		assert.Panics(t, func() { buf.ResetPosition() })
	})
}

func TestChunkerBuf_PossibleSize(t *testing.T) {
	buf := NewChunkerBuf()
	buf.Append([]byte("0123456789"))
	buf.SetPos(6)
	buf.SetChunkLen(2)

	// unscanned tail (10-6=4) + in-flight chunk (2) = 6
	assert.Equal(t, 6, buf.PossibleSize())
}

func TestChunkerBuf_AppendOnFullBufferPanics(t *testing.T) {
	buf := NewChunkerBuf()
	buf.Append(make([]byte, Cap))
	assert.Panics(t, func() { buf.Append([]byte("x")) })
}
