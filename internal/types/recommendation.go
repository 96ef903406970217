package types

// ServiceType identifies the category of travel service being recommended.
type ServiceType string

const (
	ServiceAccommodation  ServiceType = "accommodation"
	ServiceActivities     ServiceType = "activities"
	ServiceTransportation ServiceType = "transportation"
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceAccommodation, ServiceActivities, ServiceTransportation:
		return true
	}
	return false
}

// TravelerProfile carries the preference signals used to bias ranking.
type TravelerProfile struct {
	VacationStyle string   `json:"vacation_style"`
	BudgetLevel   string   `json:"budget_level"`
	Interests     []string `json:"interests,omitempty"`
}

// ServiceCandidate is one proposed travel service awaiting ranking.
// Candidates are value objects: ranking passes copy a candidate to attach a
// score, the generated original is never mutated in place.
type ServiceCandidate struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Type           ServiceType    `json:"type"`
	Location       string         `json:"location"`
	Rating         float64        `json:"rating"`
	Price          float64        `json:"price"`
	Score          *float64       `json:"score,omitempty"`
	MatchReasons   []string       `json:"match_reasons,omitempty"`
	Description    string         `json:"description"`
	Features       []string       `json:"features"`
	Available      bool           `json:"available"`
	BookingContact BookingContact `json:"booking_contact"`
}

type BookingContact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// Request/Response types for the recommendation API
type RecommendRequest struct {
	ServiceType ServiceType     `json:"service_type"`
	Location    string          `json:"location"`
	Profile     TravelerProfile `json:"profile"`
	Context     map[string]any  `json:"context,omitempty"`
}

type RecommendResponse struct {
	Recommendations []ServiceCandidate `json:"recommendations"`
	Count           int                `json:"count"`
}

type RerankRequest struct {
	Candidates []ServiceCandidate `json:"candidates"`
	Profile    TravelerProfile    `json:"profile"`
}
