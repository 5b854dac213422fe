package service

import (
	"fmt"
	"strings"

	"github.com/octobees/lead-discovery/internal/entity"
)

// MinimumResults is the number of businesses the discovery prompt asks for.
const MinimumResults = 20

const discoveryPromptTemplate = `Act as a Lead Discovery Agent for a Web Development & Automation Agency.
Your goal is to find potential clients who need a website and recommend a specific digital automation for them.

Task:
Find at least %d operational %s in '%s'.

CRITICAL CRITERIA FOR SELECTION:
1. STRICTLY prioritize businesses that DO NOT have a website listed.
2. If a business uses a Facebook, Instagram, TikTok, Linktree or other social media URL as their "website", treat this as "No Professional Website" and set the "website" field to null.
3. Exclude large international franchises. Focus on local, independent businesses.

For each business:
1. Analyze its name and category to determine the best digital automation to sell them (e.g. Booking System, Order Automation, Inventory Sync).
2. Write a short cold email (max 80 words) pitching this specific automation.

Return a RAW JSON array of objects with exactly these keys:
{
  "name": string,
  "address": string,
  "phone": string | null,
  "rating": number,
  "user_ratings_total": number,
  "business_status": "OPERATIONAL",
  "website": string | null,
  "types": string[],
  "suggested_solution": string,
  "suggestion_reason": string,
  "email_draft_subject": string,
  "email_draft_body": string
}

"suggested_solution" names the automation (e.g. "Automated Reservation System"), "suggestion_reason" is one sentence explaining why,
"email_draft_subject" is a subject line such as "Question about [Business Name] reservations" and "email_draft_body" is the
professional, casual email text offering to build the automation.

Do not wrap the array in Markdown code blocks and do not add any prose before or after it.
IMPORTANT: If a website is not found, unknown, or is a social media link, explicitly set "website" to null.`

// BuildDiscoveryPrompt composes the grounded search instruction for a category and location.
func BuildDiscoveryPrompt(category, location string) string {
	return fmt.Sprintf(discoveryPromptTemplate, MinimumResults, describeCategory(category), strings.TrimSpace(location))
}

func describeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, string(entity.CategoryAll)) {
		return "local businesses of any category"
	}
	return fmt.Sprintf("'%s' businesses", category)
}
