package dto

import (
	"net/url"
	"strings"

	"github.com/octobees/lead-discovery/internal/entity"
	"github.com/octobees/lead-discovery/internal/service/scoring"
)

// SearchRequest selects a category and location to search.
type SearchRequest struct {
	Category string `json:"category"`
	Location string `json:"location"`
}

// OutreachLinks are ready-made URLs for following up on a lead.
type OutreachLinks struct {
	Maps          string `json:"maps"`
	WebsiteLookup string `json:"website_lookup"`
	Email         string `json:"email"`
}

// LeadResponse is a lead enriched with its opportunity score and links.
type LeadResponse struct {
	entity.Lead
	Score          int            `json:"score"`
	ScoreBreakdown map[string]int `json:"score_breakdown"`
	Links          OutreachLinks  `json:"links"`
}

// SearchResponse is returned by the search endpoints.
type SearchResponse struct {
	Sequence   uint64         `json:"sequence"`
	Superseded bool           `json:"superseded"`
	Category   string         `json:"category"`
	Location   string         `json:"location"`
	Count      int            `json:"count"`
	Leads      []LeadResponse `json:"leads"`
}

// NewSearchResponse decorates leads in their original order.
func NewSearchResponse(sequence uint64, category, location string, leads []entity.Lead) SearchResponse {
	items := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, NewLeadResponse(lead))
	}
	return SearchResponse{
		Sequence: sequence,
		Category: category,
		Location: location,
		Count:    len(items),
		Leads:    items,
	}
}

// NewLeadResponse scores a lead and builds its outreach links.
func NewLeadResponse(lead entity.Lead) LeadResponse {
	score := scoring.ComputeScore(scoring.LeadFeatures{
		Rating:           lead.Rating,
		UserRatingsTotal: lead.UserRatingsTotal,
		Phone:            lead.Phone,
		Address:          lead.Address,
	})
	return LeadResponse{
		Lead:           lead,
		Score:          score.Total,
		ScoreBreakdown: score.Breakdown,
		Links:          NewOutreachLinks(lead),
	}
}

// NewOutreachLinks builds the maps, website lookup and email draft URLs.
func NewOutreachLinks(lead entity.Lead) OutreachLinks {
	place := strings.TrimSpace(lead.Name + " " + lead.Address)
	return OutreachLinks{
		Maps:          "https://www.google.com/maps/search/?api=1&query=" + escapeComponent(place),
		WebsiteLookup: "https://www.google.com/search?q=" + escapeComponent(place+" official website"),
		Email:         "mailto:?subject=" + escapeComponent(lead.EmailDraftSubject) + "&body=" + escapeComponent(lead.EmailDraftBody),
	}
}

// escapeComponent percent-encodes value with spaces as %20, which mail
// clients expect in mailto URLs.
func escapeComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
