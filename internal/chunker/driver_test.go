package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunker_EmptyWrite(t *testing.T) {
	sink := newTestSink()
	c := New(sink, NewSuperCDCStrategy())

	n, err := c.Write(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, c.Flush())
	assert.Empty(t, sink.chunks)
}

func TestChunker_SingleByte(t *testing.T) {
	sink := newTestSink()
	c := New(sink, NewSuperCDCStrategy())

	n, err := c.Write([]byte{0x42})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, c.Flush())
	assert.Equal(t, []byte{0x42}, sink.all())
}

func TestChunker_ExactlyMaxChunkOfIdenticalBytes(t *testing.T) {
	strategy := NewFastCDCStrategy()
	sink := newTestSink()
	c := New(sink, strategy)

	data := make([]byte, strategy.Sizes().Max)
	for i := range data {
		data[i] = 0xAB
	}

	_, err := c.Write(data)
	require.NoError(t, err)
	require.NoError(t, c.Flush())

	assert.Equal(t, data, sink.all())
	for _, l := range sink.lengths() {
		assert.LessOrEqual(t, l, strategy.Sizes().Max)
	}
}

func TestChunker_NewWithCapacityAppliesOverride(t *testing.T) {
	strategy := NewFastCDCStrategy()
	sink := newTestSink()
	c := NewWithCapacity(sink, strategy, 4096)

	assert.Equal(t, 4096, c.buf.cap)
	assert.Equal(t, 4096-0, c.buf.Room())

	data := make([]byte, 4096)
	n, err := c.Write(data)
	require.NoError(t, err)
	assert.LessOrEqual(t, n, 4096, "a 4096-byte buffer cannot accept more than 4096 bytes in one call")

	require.NoError(t, c.Flush())
}

func TestChunker_FinalizeReturnsSink(t *testing.T) {
	sink := newTestSink()
	c := New(sink, NewSuperCDCStrategy())

	_, err := c.Write([]byte("hello world"))
	require.NoError(t, err)

	got, err := c.Finalize()
	require.NoError(t, err)
	assert.Same(t, sink, got)
}

func TestChunker_SinkShortWritePanics(t *testing.T) {
	c := New(&shortWriteSink{}, NewFastCDCStrategy())

	data := make([]byte, NewFastCDCStrategy().Sizes().Max*2)
	assert.Panics(t, func() { _, _ = c.Write(data) })
}

// shortWriteSink always claims to have written one fewer byte than it was
// given, to exercise the driver's short-write panic.
type shortWriteSink struct{}

func (shortWriteSink) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return len(p) - 1, nil
}
func (shortWriteSink) Seek(offset int64, whence int) (int64, error) { return offset, nil }
func (shortWriteSink) Flush() error                                 { return nil }
