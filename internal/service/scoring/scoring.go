package scoring

import (
	"math"
	"strings"
	"unicode"
)

const (
	categoryReputation   = "reputation"
	categoryVisibility   = "visibility"
	categoryReachability = "reachability"

	maxRating = 5.0
)

// reviewTiers awards visibility points by review volume, highest tier first.
var reviewTiers = []struct {
	minReviews int
	points     int
}{
	{500, 30},
	{200, 25},
	{100, 20},
	{50, 15},
	{20, 10},
	{5, 5},
}

// LeadFeatures captures the signals used to rank an outreach opportunity.
type LeadFeatures struct {
	Rating           float64
	UserRatingsTotal int
	Phone            string
	Address          string
}

// ScoreResult reports the aggregate score and the per-category breakdown.
type ScoreResult struct {
	Total     int
	Breakdown map[string]int
}

// ComputeScore evaluates the provided features and returns a 0-100 score.
// Well reviewed, busy and reachable businesses score highest.
func ComputeScore(input LeadFeatures) ScoreResult {
	breakdown := map[string]int{
		categoryReputation:   scoreReputation(input),
		categoryVisibility:   scoreVisibility(input),
		categoryReachability: scoreReachability(input),
	}

	total := 0
	for _, value := range breakdown {
		total += value
	}

	return ScoreResult{
		Total:     total,
		Breakdown: breakdown,
	}
}

func scoreReputation(input LeadFeatures) int {
	rating := input.Rating
	if math.IsNaN(rating) || rating <= 0 {
		return 0
	}
	if rating > maxRating {
		rating = maxRating
	}
	return int(math.Round(rating / maxRating * 40))
}

func scoreVisibility(input LeadFeatures) int {
	for _, tier := range reviewTiers {
		if input.UserRatingsTotal >= tier.minReviews {
			return tier.points
		}
	}
	return 0
}

func scoreReachability(input LeadFeatures) int {
	score := 0
	if strings.TrimSpace(input.Phone) != "" {
		score += 15
	}
	if hasCompleteAddress(input.Address) {
		score += 15
	}
	return score
}

func hasCompleteAddress(raw string) bool {
	addr := strings.TrimSpace(raw)
	if len(addr) < 10 {
		return false
	}
	var hasLetter, hasDigit bool
	separatorCount := 0
	for _, r := range addr {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case r == ',':
			separatorCount++
		}
	}
	return hasLetter && hasDigit && separatorCount >= 1
}
