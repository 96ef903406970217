package recommendation

import (
	"fmt"
	"sort"

	"github.com/voyagio/voyagio-server/internal/types"
)

const (
	neutralScore = 0.5
	minScore     = 0.1
	maxScore     = 1.0
)

// applyExternalRanking merges a parsed best-to-worst ranking into the
// generated candidates. Ranking values are 1-based positions into the ranked
// subset; out-of-range values are ignored silently. A duplicate value causes
// the same candidate to appear again with the score of its later position —
// the ranking source is untrusted and its list is honored as given. Any
// candidate never mentioned is appended afterward with a neutral score, in
// generation order.
func applyExternalRanking(candidates []types.ServiceCandidate, ranking []int, subsetSize, topK int) []types.ServiceCandidate {
	if subsetSize > len(candidates) {
		subsetSize = len(candidates)
	}

	mentioned := make(map[int]bool, subsetSize)
	scored := make([]types.ServiceCandidate, 0, len(candidates))
	for pos, r := range ranking {
		if r < 1 || r > subsetSize {
			continue
		}
		c := candidates[r-1]
		score := maxScore - float64(pos)*0.1
		c.Score = &score
		c.MatchReasons = append(append([]string{}, c.MatchReasons...),
			fmt.Sprintf("Ranked #%d for your preferences", pos+1))
		scored = append(scored, c)
		mentioned[r-1] = true
	}

	for i, c := range candidates {
		if mentioned[i] {
			continue
		}
		score := neutralScore
		c.Score = &score
		scored = append(scored, c)
	}

	return truncate(scored, topK)
}

// applyHeuristicRanking is the deterministic fallback: a generation-order
// base score plus profile-driven bonuses, clamped to [0.1, 1.0]. The stable
// sort keeps generation order as the tie-break, which the decreasing base
// score already encodes.
func applyHeuristicRanking(candidates []types.ServiceCandidate, profile types.TravelerProfile, topK int) []types.ServiceCandidate {
	scored := make([]types.ServiceCandidate, 0, len(candidates))
	for i, c := range candidates {
		score := 0.8 - float64(i)*0.05
		reasons := append([]string{}, c.MatchReasons...)

		if budgetMatches(profile.BudgetLevel, c.Price) {
			score += 0.1
			reasons = append(reasons, fmt.Sprintf("Fits your %s budget", profile.BudgetLevel))
		}
		if profile.VacationStyle == "adventurous" && c.Rating > 4.2 {
			score += 0.05
			reasons = append(reasons, "Great fit for adventurous travelers")
		}

		score = clampScore(score)
		c.Score = &score
		c.MatchReasons = reasons
		scored = append(scored, c)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return *scored[i].Score > *scored[j].Score
	})
	return truncate(scored, topK)
}

// budgetMatches reports whether a price falls in the band declared by the
// profile's budget level. Bands deliberately overlap at the edges; an unknown
// level matches nothing.
func budgetMatches(budgetLevel string, price float64) bool {
	switch budgetLevel {
	case "luxury":
		return price > 3000
	case "budget":
		return price < 2000
	case "moderate":
		return price >= 2000 && price <= 4000
	}
	return false
}

func clampScore(score float64) float64 {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func truncate(candidates []types.ServiceCandidate, topK int) []types.ServiceCandidate {
	if topK >= 0 && len(candidates) > topK {
		return candidates[:topK]
	}
	return candidates
}
