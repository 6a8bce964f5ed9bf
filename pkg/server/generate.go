package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/openai/openai-go/v3"

	"jongubooks/pkg/prompt"
	"jongubooks/pkg/schema"
)

type generateCharactersRequest struct {
	StoryContext schema.StoryContext `json:"story_context"`
	Count        int                 `json:"num_characters"`
}

// POST /api/gpt/generate_characters
func (s *Server) handleGenerateCharacters(c echo.Context) error {
	var req generateCharactersRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}

	params := &openai.ChatCompletionNewParams{
		Temperature:    openai.Float(0.9),
		ResponseFormat: schema.CharacterListResponseFormat(),
	}
	var out schema.CharacterList
	user := prompt.Characters(req.StoryContext, req.Count)
	if err := s.Gateway.Structured(c.Request().Context(), "generate_characters", storytellerPrompt, user, params, &out); err != nil {
		return fail(c, err)
	}
	log.Info("characters drafted", "count", len(out.Characters))
	return ok(c, out.Characters, "")
}

type generateFoundationRequest struct {
	StoryContext schema.StoryContext `json:"story_context"`
	Idea         string              `json:"idea"`
}

// POST /api/gpt/generate_story_foundation
func (s *Server) handleGenerateFoundation(c echo.Context) error {
	var req generateFoundationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}

	params := &openai.ChatCompletionNewParams{
		Temperature:    openai.Float(0.9),
		ResponseFormat: schema.FoundationResponseFormat(),
	}
	var out schema.Foundation
	user := prompt.Foundation(req.StoryContext, req.Idea)
	if err := s.Gateway.Structured(c.Request().Context(), "generate_story_foundation", storytellerPrompt, user, params, &out); err != nil {
		return fail(c, err)
	}
	log.Info("foundation drafted", "title", out.Title)
	return ok(c, out, "")
}

type generatePageTextRequest struct {
	StoryContext     schema.StoryContext `json:"story_context"`
	PageNumber       int                 `json:"page_number"`
	TotalPages       int                 `json:"total_pages"`
	PreviousPageText string              `json:"previous_page_text"`
}

// POST /api/gpt/generate_page_text
func (s *Server) handleGeneratePageText(c echo.Context) error {
	var req generatePageTextRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	if req.PageNumber <= 0 {
		return badRequest(c, "page_number must be positive")
	}

	params := &openai.ChatCompletionNewParams{
		Temperature:    openai.Float(0.8),
		ResponseFormat: schema.PageDraftResponseFormat(),
	}
	var out schema.PageDraft
	user := prompt.PageText(req.StoryContext, req.PageNumber, req.TotalPages, req.PreviousPageText)
	if err := s.Gateway.Structured(c.Request().Context(), "generate_page_text", storytellerPrompt, user, params, &out); err != nil {
		return fail(c, err)
	}
	return ok(c, out, "")
}

type generateAllPagesRequest struct {
	StoryContext schema.StoryContext `json:"story_context"`
	Count        int                 `json:"num_pages"`
}

// POST /api/gpt/generate_all_pages
func (s *Server) handleGenerateAllPages(c echo.Context) error {
	var req generateAllPagesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}

	params := &openai.ChatCompletionNewParams{
		Temperature:    openai.Float(0.8),
		ResponseFormat: schema.PageListResponseFormat(),
	}
	var out schema.PageList
	user := prompt.AllPages(req.StoryContext, req.Count)
	if err := s.Gateway.Structured(c.Request().Context(), "generate_all_pages", storytellerPrompt, user, params, &out); err != nil {
		return fail(c, err)
	}
	log.Info("full page set drafted", "pages", len(out.Pages))
	return ok(c, out.Pages, "")
}

type validatePromptRequest struct {
	Prompt string `json:"prompt"`
}

// POST /api/validate_prompt — lints an image prompt for text-triggering
// keywords. The response shape is the lint result itself, not the standard
// envelope.
func (s *Server) handleValidatePrompt(c echo.Context) error {
	var req validatePromptRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	return c.JSON(http.StatusOK, prompt.Validate(req.Prompt))
}
