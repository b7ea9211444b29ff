package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuperCDCStrategy_Sizes(t *testing.T) {
	s := NewSuperCDCStrategy()
	sizes := s.Sizes()

	assert.Equal(t, 2*1024, sizes.Min)
	assert.Equal(t, 10*1024, sizes.Avg)
	assert.Equal(t, 64*1024, sizes.Max)
}

func TestSuperCDCStrategy_DivergesFromFastCDCOnSameInput(t *testing.T) {
	data := randomBytes(t, 256*1024, 1234)

	fastSink := chunkAll(t, NewFastCDCStrategy(), data, len(data))
	superSink := chunkAll(t, NewSuperCDCStrategy(), data, len(data))

	assert.NotEqual(t, fastSink.lengths(), superSink.lengths(),
		"the salted gear table should keep Super from mirroring Fast's boundaries")
}
