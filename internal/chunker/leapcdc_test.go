package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeapCDCStrategy_Sizes(t *testing.T) {
	s := NewLeapCDCStrategyWithSeed(1)
	sizes := s.Sizes()

	assert.Equal(t, 16*1024, sizes.Min)
	assert.Equal(t, 64*1024, sizes.Max)
}

func TestLeapCDCStrategy_SeededDeterminism(t *testing.T) {
	data := randomBytes(t, 200*1024, 321)

	a := chunkAll(t, NewLeapCDCStrategyWithSeed(7), data, len(data))
	b := chunkAll(t, NewLeapCDCStrategyWithSeed(7), data, len(data))

	assert.Equal(t, a.lengths(), b.lengths())
}

func TestLeapCDCStrategy_UnseededInstancesDiffer(t *testing.T) {
	// Not a hard guarantee (two random matrices could coincide), but
	// astronomically unlikely for a 256x5 parity table.
	s1 := NewLeapCDCStrategy()
	s2 := NewLeapCDCStrategy()
	assert.NotEqual(t, s1.efMatrix, s2.efMatrix)
}

func TestLeapCDCStrategy_RespectsMaxSize(t *testing.T) {
	s := NewLeapCDCStrategyWithSeed(3)
	sink := newTestSink()
	c := New(sink, s)

	data := randomBytes(t, 256*1024, 55)
	_, err := c.Write(data)
	require.NoError(t, err)
	require.NoError(t, c.Flush())

	for _, l := range sink.lengths() {
		assert.LessOrEqual(t, l, s.Sizes().Max)
	}
}
