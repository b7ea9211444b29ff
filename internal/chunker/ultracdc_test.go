package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUltraCDCStrategy_Sizes(t *testing.T) {
	s := NewUltraCDCStrategy()
	sizes := s.Sizes()

	assert.Equal(t, 2*1024, sizes.Min)
	assert.Equal(t, 64*1024, sizes.Max)
}

func TestUltraCDCStrategy_LowEntropyRunForcesEarlyCut(t *testing.T) {
	// A long run of identical 8-byte windows should trigger the
	// low-entropy fast path well before MaxSize.
	s := NewUltraCDCStrategy()
	sink := newTestSink()
	c := New(sink, s)

	data := make([]byte, s.Sizes().Max)
	for i := range data {
		data[i] = 0x55
	}

	_, err := c.Write(data)
	require.NoError(t, err)
	require.NoError(t, c.Flush())

	assert.Equal(t, data, sink.all())
	require.NotEmpty(t, sink.chunks)
	assert.Less(t, sink.lengths()[0], s.Sizes().Max,
		"a long identical run should cut before reaching MaxSize")
}
