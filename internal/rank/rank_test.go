package rank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEngineDeterministic(t *testing.T) {
	e := newHashEngine()
	v1, err := e.Embed(context.Background(), "cats are mammals")
	require.NoError(t, err)
	v2, err := e.Embed(context.Background(), "cats are mammals")
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
	assert.Equal(t, hashDimensions, e.Dimensions())
}

func TestCosineSimilarityIdenticalVectors(t *testing.T) {
	v := []float32{1, 2, 3}
	sim, err := CosineSimilarity(v, v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestCosineSimilarityDimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})
	assert.Error(t, err)
}

func TestSelectRanksBySimilarity(t *testing.T) {
	e := newHashEngine()
	candidates := []Candidate{
		{Index: 0, Description: "addition commutes"},
		{Index: 1, Description: "cats chase mice"},
		{Index: 2, Description: "addition is associative"},
	}
	ranked, err := Select(context.Background(), e, "a proof about addition", candidates)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	// The two addition-related descriptions should outrank the unrelated one.
	assert.NotEqual(t, 1, ranked[0])
	assert.Equal(t, 1, ranked[2])
}

func TestSelectEmptyCandidates(t *testing.T) {
	e := newHashEngine()
	ranked, err := Select(context.Background(), e, "goal", nil)
	require.NoError(t, err)
	assert.Nil(t, ranked)
}

func TestNewEngineUnsupportedProvider(t *testing.T) {
	_, err := NewEngine(Config{Provider: "nonsense"}, nil)
	assert.Error(t, err)
}

func TestNewEngineDefaultsToHash(t *testing.T) {
	eng, err := NewEngine(Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hash", eng.Name())
}
