package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagio/voyagio-server/internal/types"
)

func TestApplyExternalRanking_Permutation(t *testing.T) {
	candidates := generateCandidates(types.ServiceAccommodation, "Lisbon", 5)

	result := applyExternalRanking(candidates, []int{3, 1, 2}, 5, 10)
	require.Len(t, result, 5)

	// First three entries: original candidates at indices 2, 0, 1
	assert.Equal(t, candidates[2].ID, result[0].ID)
	assert.Equal(t, candidates[0].ID, result[1].ID)
	assert.Equal(t, candidates[1].ID, result[2].ID)
	require.NotNil(t, result[0].Score)
	assert.InDelta(t, 1.0, *result[0].Score, 1e-9)
	assert.InDelta(t, 0.9, *result[1].Score, 1e-9)
	assert.InDelta(t, 0.8, *result[2].Score, 1e-9)

	// Unmentioned candidates follow in generation order at the neutral score
	assert.Equal(t, candidates[3].ID, result[3].ID)
	assert.Equal(t, candidates[4].ID, result[4].ID)
	assert.InDelta(t, 0.5, *result[3].Score, 1e-9)
	assert.InDelta(t, 0.5, *result[4].Score, 1e-9)
}

func TestApplyExternalRanking_OutOfRangeIgnored(t *testing.T) {
	candidates := generateCandidates(types.ServiceActivities, "Kyoto", 5)

	result := applyExternalRanking(candidates, []int{7, 0, -1, 2}, 5, 10)
	require.Len(t, result, 5)

	// Only 2 was honored; it takes the score of its list position.
	assert.Equal(t, candidates[1].ID, result[0].ID)
	assert.InDelta(t, 1.0-3*0.1, *result[0].Score, 1e-9)

	// Everyone else is appended unmentioned.
	assert.Equal(t, candidates[0].ID, result[1].ID)
	assert.InDelta(t, 0.5, *result[1].Score, 1e-9)
}

func TestApplyExternalRanking_DuplicatesAppearTwice(t *testing.T) {
	candidates := generateCandidates(types.ServiceAccommodation, "Lisbon", 3)

	result := applyExternalRanking(candidates, []int{2, 2, 1}, 3, 10)
	require.Len(t, result, 4)

	assert.Equal(t, candidates[1].ID, result[0].ID)
	assert.Equal(t, candidates[1].ID, result[1].ID)
	assert.InDelta(t, 1.0, *result[0].Score, 1e-9)
	assert.InDelta(t, 0.9, *result[1].Score, 1e-9)
	assert.Equal(t, candidates[0].ID, result[2].ID)
	assert.Equal(t, candidates[2].ID, result[3].ID)
	assert.InDelta(t, 0.5, *result[3].Score, 1e-9)
}

func TestApplyExternalRanking_Truncation(t *testing.T) {
	candidates := generateCandidates(types.ServiceAccommodation, "Lisbon", 15)
	result := applyExternalRanking(candidates, []int{5, 4, 3, 2, 1}, 5, 10)
	assert.Len(t, result, 10)
}

func TestApplyExternalRanking_DoesNotMutateOriginals(t *testing.T) {
	candidates := generateCandidates(types.ServiceAccommodation, "Lisbon", 5)
	_ = applyExternalRanking(candidates, []int{1, 2, 3}, 5, 10)
	for _, c := range candidates {
		assert.Nil(t, c.Score, "ranking must copy, not mutate")
	}
}

func TestApplyHeuristicRanking_ScoreBounds(t *testing.T) {
	profiles := []types.TravelerProfile{
		{VacationStyle: "adventurous", BudgetLevel: "luxury"},
		{VacationStyle: "relaxed", BudgetLevel: "budget"},
		{VacationStyle: "adventurous", BudgetLevel: "moderate"},
		{},
	}
	for _, profile := range profiles {
		candidates := generateCandidates(types.ServiceAccommodation, "Lisbon", 20)
		result := applyHeuristicRanking(candidates, profile, len(candidates))
		for _, c := range result {
			require.NotNil(t, c.Score)
			assert.GreaterOrEqual(t, *c.Score, 0.1)
			assert.LessOrEqual(t, *c.Score, 1.0)
		}
	}
}

func TestApplyHeuristicRanking_Deterministic(t *testing.T) {
	profile := types.TravelerProfile{VacationStyle: "adventurous", BudgetLevel: "moderate"}
	candidates := generateCandidates(types.ServiceActivities, "Kyoto", 10)

	first := applyHeuristicRanking(candidates, profile, 10)
	second := applyHeuristicRanking(candidates, profile, 10)
	assert.Equal(t, first, second)
}

func TestApplyHeuristicRanking_SortedDescending(t *testing.T) {
	profile := types.TravelerProfile{VacationStyle: "relaxed", BudgetLevel: "luxury"}
	candidates := generateCandidates(types.ServiceAccommodation, "Lisbon", 10)

	result := applyHeuristicRanking(candidates, profile, 10)
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, *result[i-1].Score, *result[i].Score)
	}
}

func TestApplyHeuristicRanking_BudgetBonus(t *testing.T) {
	candidates := []types.ServiceCandidate{
		{ID: "a", Price: 1500, Rating: 4.0},
		{ID: "b", Price: 1500, Rating: 4.0},
	}

	// Same base candidates, but only the budget profile gets the bonus.
	plain := applyHeuristicRanking(candidates, types.TravelerProfile{}, 10)
	boosted := applyHeuristicRanking(candidates, types.TravelerProfile{BudgetLevel: "budget"}, 10)

	assert.InDelta(t, *plain[0].Score+0.1, *boosted[0].Score, 1e-9)
}

func TestApplyHeuristicRanking_StyleBonusRequiresHighRating(t *testing.T) {
	profile := types.TravelerProfile{VacationStyle: "adventurous"}
	candidates := []types.ServiceCandidate{
		{ID: "high", Price: 9999, Rating: 4.5},
		{ID: "low", Price: 9999, Rating: 4.2}, // not strictly above the threshold
	}

	result := applyHeuristicRanking(candidates, profile, 10)
	require.Len(t, result, 2)
	assert.Equal(t, "high", result[0].ID)
	assert.InDelta(t, 0.85, *result[0].Score, 1e-9)
	assert.InDelta(t, 0.75, *result[1].Score, 1e-9)
}

func TestBudgetMatches(t *testing.T) {
	assert.True(t, budgetMatches("luxury", 3001))
	assert.False(t, budgetMatches("luxury", 3000))
	assert.True(t, budgetMatches("budget", 1999))
	assert.False(t, budgetMatches("budget", 2000))
	assert.True(t, budgetMatches("moderate", 2000))
	assert.True(t, budgetMatches("moderate", 4000))
	assert.False(t, budgetMatches("moderate", 4001))
	assert.False(t, budgetMatches("", 1000))
	assert.False(t, budgetMatches("unknown", 1000))
}
