package zonemapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CptQuak/taxi/domain/entities/trip"
)

func TestNewBuildsSortedVocabulary(t *testing.T) {
	mapping, err := New(
		[]int{1, 2, 3, 4, 7},
		[]string{"EWR", "Queens", "Bronx", "Manhattan", "Queens"},
	)
	require.NoError(t, err)

	assert.Equal(t, 5, mapping.Len())
	assert.Equal(t, []string{"Bronx", "EWR", "Manhattan", "Queens"}, mapping.Vocabulary())

	borough, ok := mapping.Lookup(7)
	assert.True(t, ok)
	assert.Equal(t, "Queens", borough)

	_, ok = mapping.Lookup(264)
	assert.False(t, ok)
}

func TestNewLastWriteWins(t *testing.T) {
	mapping, err := New([]int{10, 10}, []string{"Queens", "Brooklyn"})
	require.NoError(t, err)

	borough, ok := mapping.Lookup(10)
	require.True(t, ok)
	assert.Equal(t, "Brooklyn", borough)
	assert.Equal(t, []string{"Brooklyn"}, mapping.Vocabulary())
}

func TestNewMismatchedColumns(t *testing.T) {
	_, err := New([]int{1, 2}, []string{"EWR"})
	assert.ErrorIs(t, err, ErrMismatchedColumns)
}

func TestCategorize(t *testing.T) {
	mapping, err := New([]int{1, 2, 3}, []string{"EWR", "Queens", "Bronx"})
	require.NoError(t, err)

	assert.Equal(t, trip.Borough{Code: 0, Name: "Bronx"}, mapping.Categorize(3))
	assert.Equal(t, trip.Borough{Code: 1, Name: "EWR"}, mapping.Categorize(1))
	assert.Equal(t, trip.Borough{Code: 2, Name: "Queens"}, mapping.Categorize(2))
	assert.Equal(t, trip.UndefinedBorough, mapping.Categorize(265))
}

func TestVocabularyIsACopy(t *testing.T) {
	mapping, err := New([]int{1}, []string{"EWR"})
	require.NoError(t, err)

	vocabulary := mapping.Vocabulary()
	vocabulary[0] = "Staten Island"
	assert.Equal(t, []string{"EWR"}, mapping.Vocabulary())
}

func TestEmptyMapping(t *testing.T) {
	mapping, err := New(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, mapping.Len())
	assert.Empty(t, mapping.Vocabulary())
	assert.Equal(t, trip.UndefinedBorough, mapping.Categorize(1))
}
