package dto

// PromptSearchRequest represents a free-form search prompt.
type PromptSearchRequest struct {
	Prompt string `json:"prompt"`
}

// PromptQuery echoes the parameters interpreted from the prompt.
type PromptQuery struct {
	Prompt   string `json:"prompt"`
	Category string `json:"category"`
	Location string `json:"location"`
}

// PromptSearchResponse is a search response with its interpreted query.
type PromptSearchResponse struct {
	Query PromptQuery `json:"query"`
	SearchResponse
}
