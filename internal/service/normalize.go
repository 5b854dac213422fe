package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/octobees/lead-discovery/internal/entity"
)

// Fallback values applied when the backend omits a field.
const (
	FallbackName              = "Unknown Business"
	FallbackSuggestedSolution = "Professional Landing Page"
	FallbackSuggestionReason  = "Establishing a digital presence helps attract local organic traffic."
	fallbackPitchSolution     = "digital system"
)

var (
	// ErrMalformedPayload is returned when the sanitized text is not valid JSON.
	ErrMalformedPayload = eris.New("normalize: payload is not valid JSON")
	// ErrNotAList is returned when the payload parses but is not a JSON array.
	ErrNotAList = eris.New("normalize: payload is not a list")
)

// Normalizer coerces raw discovery records into Lead entities.
type Normalizer struct {
	PhoneRegion string
	Now         func() time.Time
}

// NormalizeLeads parses payload with the default normalizer.
func NormalizeLeads(payload, category, location string) ([]entity.Lead, error) {
	return Normalizer{}.Normalize(payload, category, location)
}

// Normalize parses payload as a JSON array and builds one Lead per element.
// Individual field defects never fail the batch; only a malformed payload or a
// non-list top level does.
func (n Normalizer) Normalize(payload, category, location string) ([]entity.Lead, error) {
	var parsed any
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, eris.Wrap(ErrMalformedPayload, err.Error())
	}

	items, ok := parsed.([]any)
	if !ok {
		return nil, eris.Wrapf(ErrNotAList, "got %T", parsed)
	}

	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	batchStamp := now().UnixMilli()

	leads := make([]entity.Lead, 0, len(items))
	for idx, item := range items {
		record, _ := item.(map[string]any)
		leads = append(leads, n.buildLead(record, idx, batchStamp, category, location))
	}
	return leads, nil
}

func (n Normalizer) buildLead(record map[string]any, idx int, batchStamp int64, category, location string) entity.Lead {
	name := stringOr(record["name"], FallbackName)
	rawSolution := stringField(record["suggested_solution"])

	pitchSolution := rawSolution
	if pitchSolution == "" {
		pitchSolution = fallbackPitchSolution
	}

	lead := entity.Lead{
		ID:                fmt.Sprintf("live_%d_%d", batchStamp, idx),
		Name:              name,
		Address:           stringOr(record["address"], strings.TrimSpace(location)),
		Phone:             normalizePhone(stringField(record["phone"]), n.PhoneRegion),
		Rating:            nonNegativeNumber(record["rating"]),
		UserRatingsTotal:  nonNegativeInt(record["user_ratings_total"]),
		BusinessStatus:    entity.StatusOperational,
		Website:           optionalString(record["website"]),
		Types:             stringList(record["types"], category),
		PlaceID:           fmt.Sprintf("pid_%d", idx),
		SuggestedSolution: stringOr(rawSolution, FallbackSuggestedSolution),
		SuggestionReason:  stringOr(record["suggestion_reason"], FallbackSuggestionReason),
		EmailDraftSubject: stringOr(record["email_draft_subject"], fmt.Sprintf("Quick question about %s", name)),
		EmailDraftBody: stringOr(record["email_draft_body"], fmt.Sprintf(
			"Hi team,\n\nI noticed %s doesn't have a main website. I help local businesses automate their workflows. "+
				"Would you be open to a quick chat about setting up a %s?", name, pitchSolution)),
	}
	return lead
}

// stringField returns the trimmed textual form of a scalar JSON value, or "".
func stringField(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func stringOr(value any, fallback string) string {
	if s := stringField(value); s != "" {
		return s
	}
	return fallback
}

func optionalString(value any) *string {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// toNumber coerces numbers and numeric strings; anything else is 0.
func toNumber(value any) float64 {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func nonNegativeNumber(value any) float64 {
	return math.Max(0, toNumber(value))
}

func nonNegativeInt(value any) int {
	f := math.Trunc(nonNegativeNumber(value))
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

func stringList(value any, category string) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{strings.TrimSpace(category)}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := stringField(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
