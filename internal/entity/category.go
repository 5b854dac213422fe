package entity

import "strings"

// Category is one of the business verticals a search can target.
type Category string

const (
	CategoryAll           Category = "all"
	CategoryRestaurant    Category = "restaurant"
	CategoryCafe          Category = "cafe"
	CategoryBakery        Category = "bakery"
	CategoryHairCare      Category = "hair_care"
	CategoryClothingStore Category = "clothing_store"
	CategoryGym           Category = "gym"
)

var knownCategories = []Category{
	CategoryAll,
	CategoryRestaurant,
	CategoryCafe,
	CategoryBakery,
	CategoryHairCare,
	CategoryClothingStore,
	CategoryGym,
}

// Categories returns the supported categories, sentinel first.
func Categories() []Category {
	out := make([]Category, len(knownCategories))
	copy(out, knownCategories)
	return out
}

// ParseCategory resolves a user supplied value to a known category.
func ParseCategory(value string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, c := range knownCategories {
		if string(c) == normalized {
			return c, true
		}
	}
	return "", false
}
