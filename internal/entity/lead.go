package entity

import "strings"

// BusinessStatus mirrors the operating state reported for a business listing.
type BusinessStatus string

const (
	StatusOperational       BusinessStatus = "OPERATIONAL"
	StatusClosedTemporarily BusinessStatus = "CLOSED_TEMPORARILY"
	StatusClosedPermanently BusinessStatus = "CLOSED_PERMANENTLY"
)

// Lead is a normalized business record produced by a single discovery run.
// ID and PlaceID are minted per batch and are not stable across searches.
type Lead struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Address           string         `json:"address"`
	Phone             string         `json:"phone,omitempty"`
	Rating            float64        `json:"rating"`
	UserRatingsTotal  int            `json:"user_ratings_total"`
	BusinessStatus    BusinessStatus `json:"business_status"`
	Website           *string        `json:"website"`
	Types             []string       `json:"types"`
	PlaceID           string         `json:"place_id"`
	SuggestedSolution string         `json:"suggested_solution,omitempty"`
	SuggestionReason  string         `json:"suggestion_reason,omitempty"`
	EmailDraftSubject string         `json:"email_draft_subject,omitempty"`
	EmailDraftBody    string         `json:"email_draft_body,omitempty"`
}

// HasWebsite reports whether the lead carries a non-blank website value.
func (l Lead) HasWebsite() bool {
	return l.Website != nil && strings.TrimSpace(*l.Website) != ""
}

// IsActionable reports whether the lead is open for business and has no website.
func (l Lead) IsActionable() bool {
	return l.BusinessStatus == StatusOperational && !l.HasWebsite()
}
