package recommendation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// rankingPattern matches the first bracketed, comma-separated integer list
// embedded anywhere in free text, e.g. "Best order: [3, 1, 2]".
var rankingPattern = regexp.MustCompile(`\[\s*\d+(?:\s*,\s*\d+)*\s*\]`)

// parseRanking extracts a best-to-worst ranking from an enrichment response.
// The response is untrusted free text; the grammar is optional whitespace and
// comma-separated integers inside matching brackets, first match wins.
func parseRanking(text string) ([]int, error) {
	match := rankingPattern.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("%w: %q", ErrEnrichmentParse, truncateForLog(text))
	}

	inner := strings.Trim(match, "[]")
	parts := strings.Split(inner, ",")
	ranking := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid integer %q", ErrEnrichmentParse, part)
		}
		ranking = append(ranking, n)
	}
	return ranking, nil
}

func truncateForLog(text string) string {
	const max = 120
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
