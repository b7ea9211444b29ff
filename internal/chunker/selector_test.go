package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStrategy_AllKnownAlgorithms(t *testing.T) {
	for _, algo := range []Algorithm{AlgorithmRabin, AlgorithmFast, AlgorithmSuper, AlgorithmUltra, AlgorithmLeap} {
		t.Run(string(algo), func(t *testing.T) {
			s, err := NewStrategy(algo)
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestNewStrategy_UnknownAlgorithm(t *testing.T) {
	_, err := NewStrategy(Algorithm("bogus"))
	assert.Error(t, err)
}

func TestDefault_IsSuper(t *testing.T) {
	assert.Equal(t, AlgorithmSuper, Default())
}

func TestAlgorithm_Valid(t *testing.T) {
	assert.True(t, AlgorithmRabin.Valid())
	assert.False(t, Algorithm("nope").Valid())
}
