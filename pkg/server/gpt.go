package server

import (
	"strings"

	"github.com/labstack/echo/v4"

	"jongubooks/pkg/inference"
)

// The /api/gpt family mirrors the interactive endpoints for an automated
// agent. The agent sends story_id as a query parameter rather than a path
// segment; semantics are otherwise identical.

// POST /api/gpt/add_character?story_id=...
func (s *Server) handleAddCharacterQuery(c echo.Context) error {
	storyID := c.QueryParam("story_id")
	if storyID == "" {
		return badRequest(c, "story_id is required")
	}
	return s.addCharacter(c, storyID)
}

// POST /api/gpt/add_page?story_id=...
func (s *Server) handleAddPageQuery(c echo.Context) error {
	storyID := c.QueryParam("story_id")
	if storyID == "" {
		return badRequest(c, "story_id is required")
	}
	return s.addPage(c, storyID)
}

type chatRequest struct {
	Messages []inference.Message `json:"messages"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// POST /api/gpt/chat — forwards a caller-supplied conversation behind the
// fixed assistant persona.
func (s *Server) handleChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	if len(req.Messages) == 0 {
		return badRequest(c, "messages are required")
	}
	for _, m := range req.Messages {
		if strings.TrimSpace(m.Content) == "" {
			return badRequest(c, "messages must not be empty")
		}
	}

	reply, err := s.Gateway.Chat(c.Request().Context(), "chat", assistantPersona, req.Messages)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, chatResponse{Reply: reply}, "")
}
