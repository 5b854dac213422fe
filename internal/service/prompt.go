package service

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/octobees/lead-discovery/internal/entity"
)

var (
	websitePhraseExpr = regexp.MustCompile(`(?i)\b(?:(?:with\s+)?no|without(?:\s+a)?|lacking(?:\s+a)?|sem|que\s+n[aã]o\s+t[eê]m)\s+(?:professional\s+)?(?:website|web\s*site|site|p[aá]gina)s?\b`)
	stopwordExpr      = regexp.MustCompile(`(?i)\b(?:find|search|show|list|me|please|all|some|the|any|local|businesses|business|procura|procurar|encontra|encontrar|todos|todas|os|as|de|do|da|quero|mostra)\b`)
	locationPattern   = regexp.MustCompile(`(?i)^(.*)\b(?:in|em|near|around|no|na|nos|nas)\s+([\p{L}][\p{L}\s,.'-]*)$`)
)

// categoryKeywords maps lower-case prompt fragments to a category.
var categoryKeywords = []struct {
	keyword  string
	category entity.Category
}{
	{"restaurant", entity.CategoryRestaurant},
	{"restaurante", entity.CategoryRestaurant},
	{"tasca", entity.CategoryRestaurant},
	{"pizzeria", entity.CategoryRestaurant},
	{"marisqueira", entity.CategoryRestaurant},
	{"bakery", entity.CategoryBakery},
	{"bakeries", entity.CategoryBakery},
	{"padaria", entity.CategoryBakery},
	{"pastelaria", entity.CategoryBakery},
	{"cafe", entity.CategoryCafe},
	{"café", entity.CategoryCafe},
	{"coffee", entity.CategoryCafe},
	{"hair", entity.CategoryHairCare},
	{"salon", entity.CategoryHairCare},
	{"barber", entity.CategoryHairCare},
	{"cabeleireir", entity.CategoryHairCare},
	{"barbearia", entity.CategoryHairCare},
	{"clothing", entity.CategoryClothingStore},
	{"boutique", entity.CategoryClothingStore},
	{"fashion", entity.CategoryClothingStore},
	{"roupa", entity.CategoryClothingStore},
	{"gym", entity.CategoryGym},
	{"fitness", entity.CategoryGym},
	{"ginásio", entity.CategoryGym},
	{"ginasio", entity.CategoryGym},
	{"crossfit", entity.CategoryGym},
}

// PromptService interprets free-form search prompts.
type PromptService struct {
	DefaultLocation string
}

// PromptResult contains structured parameters derived from a prompt.
type PromptResult struct {
	Category entity.Category
	Location string
}

// NewPromptService creates a prompt parser with sensible defaults.
func NewPromptService(defaultLocation string) *PromptService {
	if strings.TrimSpace(defaultLocation) == "" {
		defaultLocation = defaultSearchLocation
	}
	return &PromptService{DefaultLocation: strings.TrimSpace(defaultLocation)}
}

// Parse converts a prompt such as "cafes in Porto" or "padarias em Braga"
// into a category and a location. Unrecognised categories resolve to "all".
func (s *PromptService) Parse(prompt string) (PromptResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return PromptResult{}, eris.New("prompt is required")
	}

	subject, location := extractSubjectAndLocation(prompt)
	if location == "" {
		location = s.DefaultLocation
	}

	return PromptResult{
		Category: detectCategory(subject),
		Location: location,
	}, nil
}

func extractSubjectAndLocation(prompt string) (string, string) {
	cleaned := websitePhraseExpr.ReplaceAllString(prompt, " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	match := locationPattern.FindStringSubmatch(cleaned)
	if len(match) < 3 {
		return cleaned, ""
	}
	location := strings.Trim(strings.TrimSpace(match[2]), ",.")
	return strings.TrimSpace(match[1]), titleCase(location)
}

func detectCategory(subject string) entity.Category {
	lower := strings.ToLower(stopwordExpr.ReplaceAllString(subject, " "))
	for _, entry := range categoryKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.category
		}
	}
	return entity.CategoryAll
}

func titleCase(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	parts := strings.Fields(value)
	for i, p := range parts {
		lower := strings.ToLower(p)
		if len(lower) == 0 {
			continue
		}
		runes := []rune(lower)
		parts[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
	}
	return strings.Join(parts, " ")
}
