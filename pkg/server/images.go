package server

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"jongubooks/pkg/prompt"
	"jongubooks/pkg/schema"
	"jongubooks/pkg/utils"
)

type imageResponse struct {
	URL string `json:"url"`
}

type generateImageRequest struct {
	Character schema.Character `json:"character"`
	Style     string           `json:"style"`
}

// POST /api/gpt/generate_image — a standalone character portrait.
func (s *Server) handleGenerateImage(c echo.Context) error {
	var req generateImageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	if strings.TrimSpace(req.Character.Name) == "" {
		return badRequest(c, "character name is required")
	}

	p := prompt.Portrait(req.Character, req.Style)
	url, err := s.Gateway.PaintURL(c.Request().Context(), "generate_image", p)
	if err != nil {
		return fail(c, err)
	}
	log.Info("portrait generated", "character", req.Character.Name, "url", utils.LimitStr(url, 80))
	return ok(c, imageResponse{URL: url}, "")
}

type generatePageImageRequest struct {
	StoryID            string              `json:"story_id"`
	StoryContext       schema.StoryContext `json:"story_context"`
	PageNumber         int                 `json:"page_number"`
	Text               string              `json:"text"`
	IllustrationPrompt string              `json:"illustration_prompt"`
}

// POST /api/gpt/generate_page_image — a scene illustration for one page,
// citing adjacent pages' illustration URLs and cached character references
// for continuity.
func (s *Server) handleGeneratePageImage(c echo.Context) error {
	var req generatePageImageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	if req.PageNumber <= 0 {
		return badRequest(c, "page_number must be positive")
	}

	text, illustration := req.Text, req.IllustrationPrompt
	refs := prompt.PageRefs{Characters: make(map[string]string)}
	for _, page := range req.StoryContext.Pages {
		switch page.PageNumber {
		case req.PageNumber:
			if text == "" {
				text = page.Text
			}
			if illustration == "" {
				illustration = page.IllustrationPrompt
			}
		case req.PageNumber - 1:
			refs.Previous = page.IllustrationURL
		case req.PageNumber + 1:
			refs.Next = page.IllustrationURL
		}
	}
	for _, ch := range req.StoryContext.Characters {
		if ch.ReferenceImageURL != "" {
			refs.Characters[ch.Name] = ch.ReferenceImageURL
		}
	}
	if req.StoryID != "" {
		for name, url := range s.Refs.ForStory(req.StoryID) {
			refs.Characters[name] = url
		}
	}

	p := prompt.PageImage(req.StoryContext, req.PageNumber, text, illustration, refs)
	url, err := s.Gateway.PaintURL(c.Request().Context(), "generate_page_image", p)
	if err != nil {
		return fail(c, err)
	}
	log.Info("page illustration generated", "page", req.PageNumber, "url", utils.LimitStr(url, 80))
	return ok(c, imageResponse{URL: url}, "")
}

type generateMinimalImageRequest struct {
	Description string `json:"description"`
}

// POST /api/gpt/generate_minimal_image — a deliberately sparse,
// text-suppressed variant.
func (s *Server) handleGenerateMinimalImage(c echo.Context) error {
	var req generateMinimalImageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}

	p := prompt.MinimalImage(req.Description)
	url, err := s.Gateway.PaintURL(c.Request().Context(), "generate_minimal_image", p)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, imageResponse{URL: url}, "")
}

type storeReferenceRequest struct {
	StoryID string `json:"story_id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
}

// POST /api/store_character_reference — records a character's likeness URL
// for later page-image prompts. The cache is independent of the story store;
// registering a reference for an unknown story is allowed.
func (s *Server) handleStoreCharacterReference(c echo.Context) error {
	var req storeReferenceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	if req.StoryID == "" || strings.TrimSpace(req.Name) == "" || req.URL == "" {
		return badRequest(c, "story_id, name, and url are required")
	}
	s.Refs.Store(req.StoryID, req.Name, req.URL)
	return ok(c, nil, "Character reference stored!")
}

// GET /api/character_reference?story_id=...&name=...
func (s *Server) handleGetCharacterReference(c echo.Context) error {
	storyID, name := c.QueryParam("story_id"), c.QueryParam("name")
	if storyID == "" || name == "" {
		return badRequest(c, "story_id and name are required")
	}
	ref, found := s.Refs.Get(storyID, name)
	if !found {
		return c.JSON(http.StatusNotFound, utils.ErrJSON("Character reference not found"))
	}
	return ok(c, ref, "")
}
