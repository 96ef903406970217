package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRanking(t *testing.T) {
	t.Run("bare list", func(t *testing.T) {
		ranking, err := parseRanking("[3,1,2]")
		require.NoError(t, err)
		assert.Equal(t, []int{3, 1, 2}, ranking)
	})

	t.Run("list embedded in free text", func(t *testing.T) {
		ranking, err := parseRanking("Sure! Based on the profile my order would be [2, 4, 1, 3, 5] - hope that helps.")
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 1, 3, 5}, ranking)
	})

	t.Run("whitespace inside brackets", func(t *testing.T) {
		ranking, err := parseRanking("ranking: [ 1 ,  2 ,3 ]")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, ranking)
	})

	t.Run("first match wins", func(t *testing.T) {
		ranking, err := parseRanking("Either [5,4] or [1,2] would work.")
		require.NoError(t, err)
		assert.Equal(t, []int{5, 4}, ranking)
	})

	t.Run("single element", func(t *testing.T) {
		ranking, err := parseRanking("[1]")
		require.NoError(t, err)
		assert.Equal(t, []int{1}, ranking)
	})

	t.Run("no list present", func(t *testing.T) {
		_, err := parseRanking("I think the second option is clearly the best one.")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEnrichmentParse)
	})

	t.Run("empty brackets are not a ranking", func(t *testing.T) {
		_, err := parseRanking("here: []")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEnrichmentParse)
	})

	t.Run("non-integer content is not matched", func(t *testing.T) {
		_, err := parseRanking(`["a", "b"]`)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEnrichmentParse)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := parseRanking("")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEnrichmentParse)
	})
}
