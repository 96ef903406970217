package recommendation

import (
	"fmt"
	"strings"

	"github.com/voyagio/voyagio-server/internal/types"
)

// Per-type candidate templates. Generation is pure and deterministic: same
// type, location and count always produce the same candidates, which makes
// step 1 of the pipeline the guaranteed baseline when everything else fails.
var (
	accommodationNames = []string{
		"Grand %s Hotel",
		"%s Palace Resort",
		"The %s Boutique Stay",
		"%s Harbor Suites",
		"%s Garden Lodge",
	}
	activityNames = []string{
		"%s Walking Tour",
		"%s Adventure Trek",
		"%s Food & Culture Experience",
		"%s Sunset Cruise",
		"%s Heritage Museum Pass",
	}
	transportationNames = []string{
		"%s Airport Express",
		"%s Private Car Service",
		"%s City Rail Pass",
		"%s Scenic Coach Line",
		"%s Ferry Connection",
	}

	accommodationFeatures = []string{"free wifi", "pool", "spa", "breakfast included", "city view", "airport shuttle"}
	activityFeatures      = []string{"local guide", "small group", "skip-the-line", "hotel pickup", "photo stops", "refreshments"}
	transportFeatures     = []string{"air conditioning", "luggage space", "onboard wifi", "flexible departure", "door-to-door", "priority boarding"}

	// Ratings cycle through a fixed ladder so every batch spans the
	// adventurous-style bonus threshold in both directions.
	ratingLadder = []float64{4.8, 4.6, 4.3, 4.1, 3.9, 4.7, 4.4, 4.2, 4.0, 3.8}
)

// Price ladders per service type: base price plus a fixed step per ordinal,
// spanning the budget, moderate and luxury price bands.
var priceLadder = map[types.ServiceType]struct{ base, step float64 }{
	types.ServiceAccommodation:  {base: 1200, step: 650},
	types.ServiceActivities:     {base: 800, step: 400},
	types.ServiceTransportation: {base: 500, step: 550},
}

// generateCandidates synthesizes exactly count candidates for the requested
// service type and location. It cannot fail and performs no I/O.
func generateCandidates(serviceType types.ServiceType, location string, count int) []types.ServiceCandidate {
	if count <= 0 {
		return []types.ServiceCandidate{}
	}

	names := namesFor(serviceType)
	features := featuresFor(serviceType)
	ladder, ok := priceLadder[serviceType]
	if !ok {
		ladder = priceLadder[types.ServiceActivities]
	}
	slug := slugify(location)

	candidates := make([]types.ServiceCandidate, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf(names[i%len(names)], location)
		if i >= len(names) {
			// Keep names unique once the template list wraps around.
			name = fmt.Sprintf("%s %d", name, i/len(names)+1)
		}
		candidates = append(candidates, types.ServiceCandidate{
			ID:           fmt.Sprintf("%s-%s-%d", serviceType, slug, i+1),
			Name:         name,
			Type:         serviceType,
			Location:     location,
			Rating:       ratingLadder[i%len(ratingLadder)],
			Price:        ladder.base + ladder.step*float64(i),
			MatchReasons: []string{fmt.Sprintf("Popular choice in %s", location)},
			Description:  descriptionFor(serviceType, name, location),
			Features:     []string{features[i%len(features)], features[(i+1)%len(features)]},
			Available:    true,
			BookingContact: types.BookingContact{
				Phone:   fmt.Sprintf("+1-555-%04d", 1000+i),
				Email:   fmt.Sprintf("bookings@%s-%d.example.com", slug, i+1),
				Website: fmt.Sprintf("https://%s-%d.example.com", slug, i+1),
			},
		})
	}
	return candidates
}

func namesFor(serviceType types.ServiceType) []string {
	switch serviceType {
	case types.ServiceAccommodation:
		return accommodationNames
	case types.ServiceTransportation:
		return transportationNames
	default:
		return activityNames
	}
}

func featuresFor(serviceType types.ServiceType) []string {
	switch serviceType {
	case types.ServiceAccommodation:
		return accommodationFeatures
	case types.ServiceTransportation:
		return transportFeatures
	default:
		return activityFeatures
	}
}

func descriptionFor(serviceType types.ServiceType, name, location string) string {
	switch serviceType {
	case types.ServiceAccommodation:
		return fmt.Sprintf("%s offers comfortable stays in the heart of %s.", name, location)
	case types.ServiceTransportation:
		return fmt.Sprintf("%s provides reliable transport around %s.", name, location)
	default:
		return fmt.Sprintf("%s is a highly rated experience in %s.", name, location)
	}
}

func slugify(location string) string {
	slug := strings.ToLower(strings.TrimSpace(location))
	slug = strings.ReplaceAll(slug, " ", "-")
	if slug == "" {
		slug = "anywhere"
	}
	return slug
}
