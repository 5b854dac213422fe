package service

import "github.com/octobees/lead-discovery/internal/entity"

// FilterActionable keeps operational leads without a website, preserving order.
// The website rule is literal: only nil or blank values count as missing.
func FilterActionable(leads []entity.Lead) []entity.Lead {
	out := make([]entity.Lead, 0, len(leads))
	for _, lead := range leads {
		if lead.IsActionable() {
			out = append(out, lead)
		}
	}
	return out
}
