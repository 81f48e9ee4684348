package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleUniqueDistinct(t *testing.T) {
	g := NewDataGenerator()
	src := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	for run := 0; run < 200; run++ {
		got, err := SampleUnique(g, src, 4)
		require.NoError(t, err)
		require.Len(t, got, 4)

		seen := make(map[int]bool)
		for _, v := range got {
			assert.False(t, seen[v], "duplicate %d in %v", v, got)
			seen[v] = true
		}
	}
}

func TestSampleUniqueWholePopulation(t *testing.T) {
	got, err := SampleUnique(NewDataGenerator(), []string{"a", "b", "c"}, 3)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, got)
}

func TestSampleUniqueNeverTruncates(t *testing.T) {
	_, err := SampleUnique(NewDataGenerator(), []int{1, 2}, 3)
	assert.ErrorIs(t, err, ErrInsufficientPopulation)

	_, err = SampleUnique[int](NewDataGenerator(), nil, 1)
	assert.ErrorIs(t, err, ErrInsufficientPopulation)
}

func TestSampleUniqueDeterministicProvider(t *testing.T) {
	got, err := SampleUnique(&scriptedProvider{}, []int{7, 8, 9}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 8}, got)
}

func TestSampleRange(t *testing.T) {
	g := NewDataGenerator()
	src := []int{1, 2, 3}

	for run := 0; run < 100; run++ {
		got, err := SampleRange(g, src, 1, 20)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(got), 1)
		assert.LessOrEqual(t, len(got), 3)
	}

	_, err := SampleRange(g, src, 5, 20)
	assert.ErrorIs(t, err, ErrInsufficientPopulation)
}

func TestSequence(t *testing.T) {
	var s Sequence
	assert.Equal(t, int64(1), s.Next())
	assert.Equal(t, int64(2), s.Next())
	assert.Equal(t, int64(3), s.Next())

	var other Sequence
	assert.Equal(t, int64(1), other.Next())
}
