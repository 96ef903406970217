package recommendation

import (
	"fmt"
	"strings"

	"github.com/voyagio/voyagio-server/internal/types"
)

// rankedSubsetSize is how many generated candidates are offered to the
// external reasoning call for ranking.
const rankedSubsetSize = 5

func buildRankingPrompt(candidates []types.ServiceCandidate, profile types.TravelerProfile) string {
	var b strings.Builder

	b.WriteString("You are a travel concierge. Rank the following ")
	fmt.Fprintf(&b, "%s options from best to worst for this traveler.\n\n", candidates[0].Type)

	fmt.Fprintf(&b, "Traveler profile: vacation style %q, budget level %q.\n",
		profile.VacationStyle, profile.BudgetLevel)
	if len(profile.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s.\n", strings.Join(profile.Interests, ", "))
	}
	b.WriteString("\nOptions:\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.Name)
	}

	fmt.Fprintf(&b, "\nRespond with the option numbers as a bracketed list, best first, e.g. [2, 1, %d].\n", len(candidates))
	return b.String()
}
