package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octobees/lead-discovery/internal/dto"
	"github.com/octobees/lead-discovery/internal/entity"
	"github.com/octobees/lead-discovery/internal/service"
)

// LeadSearcher runs sequenced lead searches.
type LeadSearcher interface {
	Search(ctx context.Context, category, location string) service.SearchResult
	IsLatest(seq uint64) bool
}

// LeadsHandler exposes the lead discovery endpoints.
type LeadsHandler struct {
	searcher LeadSearcher
	prompts  *service.PromptService
	logger   *zap.Logger
}

// NewLeadsHandler wires the handler.
func NewLeadsHandler(searcher LeadSearcher, prompts *service.PromptService, logger *zap.Logger) *LeadsHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &LeadsHandler{searcher: searcher, prompts: prompts, logger: logger}
}

// Search handles POST /leads/search. A blank category searches all categories.
func (h *LeadsHandler) Search(c echo.Context) error {
	var req dto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	category := entity.CategoryAll
	if strings.TrimSpace(req.Category) != "" {
		parsed, ok := entity.ParseCategory(req.Category)
		if !ok {
			return Error(c, http.StatusBadRequest, "unknown category "+strings.TrimSpace(req.Category))
		}
		category = parsed
	}

	resp := h.run(c, category, req.Location)
	return Success(c, http.StatusOK, searchMessage(resp.Count), resp)
}

// PromptSearch handles POST /leads/prompt-search.
func (h *LeadsHandler) PromptSearch(c echo.Context) error {
	var req dto.PromptSearchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		return Error(c, http.StatusBadRequest, "prompt is required")
	}

	parsed, err := h.prompts.Parse(req.Prompt)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	resp := h.run(c, parsed.Category, parsed.Location)
	return Success(c, http.StatusOK, searchMessage(resp.Count), dto.PromptSearchResponse{
		Query: dto.PromptQuery{
			Prompt:   req.Prompt,
			Category: string(parsed.Category),
			Location: resp.Location,
		},
		SearchResponse: resp,
	})
}

func (h *LeadsHandler) run(c echo.Context, category entity.Category, location string) dto.SearchResponse {
	result := h.searcher.Search(c.Request().Context(), string(category), location)
	resp := dto.NewSearchResponse(result.Sequence, result.Category, result.Location, result.Leads)
	resp.Superseded = !h.searcher.IsLatest(result.Sequence)
	if resp.Superseded {
		h.logger.Info("search superseded by a newer request", zap.Uint64("sequence", result.Sequence))
	}
	return resp
}

func searchMessage(count int) string {
	if count == 0 {
		return "no leads found"
	}
	return "leads discovered"
}
