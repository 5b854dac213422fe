package service

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/octobees/lead-discovery/internal/entity"
)

func fixedNormalizer() Normalizer {
	return Normalizer{
		PhoneRegion: "PT",
		Now:         func() time.Time { return time.UnixMilli(1700000000123) },
	}
}

func TestNormalize_FullRecord(t *testing.T) {
	payload := `[{
		"name": "Café Lua",
		"address": "Rua Nova 5, Porto",
		"phone": "22 200 0111",
		"rating": 4.6,
		"user_ratings_total": 128,
		"business_status": "OPERATIONAL",
		"website": null,
		"types": ["cafe", "bakery"],
		"suggested_solution": "Online Ordering",
		"suggestion_reason": "Busy takeaway counter.",
		"email_draft_subject": "Orders at Café Lua",
		"email_draft_body": "Hello!"
	}]`

	leads, err := fixedNormalizer().Normalize(payload, "cafe", "Porto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(leads))
	}

	lead := leads[0]
	if lead.ID != "live_1700000000123_0" || lead.PlaceID != "pid_0" {
		t.Fatalf("unexpected identifiers %q %q", lead.ID, lead.PlaceID)
	}
	if lead.Name != "Café Lua" || lead.Address != "Rua Nova 5, Porto" {
		t.Fatalf("unexpected name/address: %+v", lead)
	}
	if lead.Phone != "+351222000111" {
		t.Fatalf("expected E.164 phone, got %q", lead.Phone)
	}
	if lead.Rating != 4.6 || lead.UserRatingsTotal != 128 {
		t.Fatalf("unexpected rating fields: %v %d", lead.Rating, lead.UserRatingsTotal)
	}
	if lead.Website != nil {
		t.Fatalf("expected nil website, got %q", *lead.Website)
	}
	if lead.BusinessStatus != entity.StatusOperational {
		t.Fatalf("expected operational, got %s", lead.BusinessStatus)
	}
	if strings.Join(lead.Types, ",") != "cafe,bakery" {
		t.Fatalf("unexpected types %v", lead.Types)
	}
	if lead.SuggestedSolution != "Online Ordering" || lead.EmailDraftBody != "Hello!" {
		t.Fatalf("unexpected pitch fields: %+v", lead)
	}
}

func TestNormalize_Fallbacks(t *testing.T) {
	leads, err := fixedNormalizer().Normalize(`[{}, "not an object", 7]`, "bakery", "Braga")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 3 {
		t.Fatalf("expected one lead per element, got %d", len(leads))
	}

	for idx, lead := range leads {
		if lead.Name != FallbackName {
			t.Fatalf("lead %d: expected fallback name, got %q", idx, lead.Name)
		}
		if lead.Address != "Braga" {
			t.Fatalf("lead %d: expected location as address, got %q", idx, lead.Address)
		}
		if lead.Rating != 0 || lead.UserRatingsTotal != 0 {
			t.Fatalf("lead %d: expected zero ratings", idx)
		}
		if lead.Website != nil {
			t.Fatalf("lead %d: expected nil website", idx)
		}
		if len(lead.Types) != 1 || lead.Types[0] != "bakery" {
			t.Fatalf("lead %d: expected category as type, got %v", idx, lead.Types)
		}
		if lead.SuggestedSolution != FallbackSuggestedSolution || lead.SuggestionReason != FallbackSuggestionReason {
			t.Fatalf("lead %d: unexpected suggestion fallbacks: %+v", idx, lead)
		}
		if lead.EmailDraftSubject != "Quick question about Unknown Business" {
			t.Fatalf("lead %d: unexpected subject %q", idx, lead.EmailDraftSubject)
		}
		wantBody := "Hi team,\n\nI noticed Unknown Business doesn't have a main website. I help local businesses automate their workflows. Would you be open to a quick chat about setting up a digital system?"
		if lead.EmailDraftBody != wantBody {
			t.Fatalf("lead %d: unexpected body %q", idx, lead.EmailDraftBody)
		}
		if lead.Phone != "" {
			t.Fatalf("lead %d: expected no phone", idx)
		}
	}
	if leads[2].ID != "live_1700000000123_2" || leads[2].PlaceID != "pid_2" {
		t.Fatalf("expected index based identifiers, got %q %q", leads[2].ID, leads[2].PlaceID)
	}
}

func TestNormalize_PitchUsesSuggestedSolution(t *testing.T) {
	leads, err := fixedNormalizer().Normalize(`[{"name":"Tasca do Zé","suggested_solution":"Booking System"}]`, "restaurant", "Lisboa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(leads[0].EmailDraftBody, "setting up a Booking System?") {
		t.Fatalf("expected pitch to mention solution, got %q", leads[0].EmailDraftBody)
	}
	if leads[0].EmailDraftSubject != "Quick question about Tasca do Zé" {
		t.Fatalf("unexpected subject %q", leads[0].EmailDraftSubject)
	}
}

func TestNormalize_Coercion(t *testing.T) {
	payload := `[
		{"rating": "4.2", "user_ratings_total": "37"},
		{"rating": -3, "user_ratings_total": -10},
		{"rating": true, "user_ratings_total": "many"},
		{"rating": 4.9, "user_ratings_total": 12.7},
		{"user_ratings_total": 1e12},
		{"name": "  ", "website": "   ", "types": []},
		{"name": 42, "website": "https://example.pt", "types": ["cafe", 3, "", "gym"]},
		{"types": "cafe", "phone": "not a phone"}
	]`

	leads, err := fixedNormalizer().Normalize(payload, "cafe", "Porto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if leads[0].Rating != 4.2 || leads[0].UserRatingsTotal != 37 {
		t.Fatalf("expected numeric strings coerced, got %v %d", leads[0].Rating, leads[0].UserRatingsTotal)
	}
	if leads[1].Rating != 0 || leads[1].UserRatingsTotal != 0 {
		t.Fatalf("expected negatives clamped, got %v %d", leads[1].Rating, leads[1].UserRatingsTotal)
	}
	if leads[2].Rating != 0 || leads[2].UserRatingsTotal != 0 {
		t.Fatalf("expected non-numeric values zeroed, got %v %d", leads[2].Rating, leads[2].UserRatingsTotal)
	}
	if leads[3].UserRatingsTotal != 12 {
		t.Fatalf("expected truncated count, got %d", leads[3].UserRatingsTotal)
	}
	if leads[4].UserRatingsTotal != math.MaxInt32 {
		t.Fatalf("expected clamped count, got %d", leads[4].UserRatingsTotal)
	}
	if leads[5].Name != FallbackName || leads[5].Website != nil {
		t.Fatalf("expected blank strings treated as absent: %+v", leads[5])
	}
	if leads[5].Types == nil || len(leads[5].Types) != 0 {
		t.Fatalf("expected empty types list preserved, got %v", leads[5].Types)
	}
	if leads[6].Name != "42" {
		t.Fatalf("expected numeric name stringified, got %q", leads[6].Name)
	}
	if leads[6].Website == nil || *leads[6].Website != "https://example.pt" {
		t.Fatalf("expected website kept")
	}
	if strings.Join(leads[6].Types, ",") != "cafe,3,gym" {
		t.Fatalf("unexpected types %v", leads[6].Types)
	}
	if len(leads[7].Types) != 1 || leads[7].Types[0] != "cafe" {
		t.Fatalf("expected non-list types to fall back to category, got %v", leads[7].Types)
	}
	if leads[7].Phone != "" {
		t.Fatalf("expected invalid phone dropped, got %q", leads[7].Phone)
	}
}

func TestNormalize_Errors(t *testing.T) {
	tests := map[string]struct {
		payload string
		want    error
	}{
		"malformed": {payload: `[{"name": "A",`, want: ErrMalformedPayload},
		"empty":     {payload: ``, want: ErrMalformedPayload},
		"prose":     {payload: `Here are some businesses`, want: ErrMalformedPayload},
		"object":    {payload: `{"name": "A"}`, want: ErrNotAList},
		"string":    {payload: `"[]"`, want: ErrNotAList},
		"null":      {payload: `null`, want: ErrNotAList},
		"number":    {payload: `12`, want: ErrNotAList},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			leads, err := NormalizeLeads(tt.payload, "cafe", "Porto")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if leads != nil {
				t.Fatalf("expected no leads on error")
			}
		})
	}
}

func TestNormalize_EmptyList(t *testing.T) {
	leads, err := NormalizeLeads(`[]`, "cafe", "Porto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if leads == nil || len(leads) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", leads)
	}
}
