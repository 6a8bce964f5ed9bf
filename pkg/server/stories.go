package server

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"jongubooks/pkg/schema"
)

// GET /api/stories
func (s *Server) handleListStories(c echo.Context) error {
	stories := s.Store.List()
	return okCount(c, stories, len(stories))
}

// POST /api/stories and POST /api/gpt/create_story
func (s *Server) handleCreateStory(c echo.Context) error {
	var story schema.Story
	if err := c.Bind(&story); err != nil {
		return badRequest(c, "invalid json")
	}
	if strings.TrimSpace(story.Title) == "" {
		return badRequest(c, "title is required")
	}
	created := s.Store.Create(story)
	return ok(c, created, fmt.Sprintf("Story '%s' created successfully!", created.Title))
}

// GET /api/stories/:id
func (s *Server) handleGetStory(c echo.Context) error {
	story, err := s.Store.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, story, "")
}

// PUT /api/stories/:id — full replace; id and created_at are preserved no
// matter what the payload carries.
func (s *Server) handleUpdateStory(c echo.Context) error {
	var story schema.Story
	if err := c.Bind(&story); err != nil {
		return badRequest(c, "invalid json")
	}
	if strings.TrimSpace(story.Title) == "" {
		return badRequest(c, "title is required")
	}
	updated, err := s.Store.Replace(c.Param("id"), story)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, updated, "Story updated successfully!")
}

// DELETE /api/stories/:id
func (s *Server) handleDeleteStory(c echo.Context) error {
	deleted, err := s.Store.Delete(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, nil, fmt.Sprintf("Story '%s' deleted successfully!", deleted.Title))
}

// POST /api/stories/:id/characters
func (s *Server) handleAddCharacter(c echo.Context) error {
	return s.addCharacter(c, c.Param("id"))
}

// POST /api/stories/:id/pages
func (s *Server) handleAddPage(c echo.Context) error {
	return s.addPage(c, c.Param("id"))
}

func (s *Server) addCharacter(c echo.Context, storyID string) error {
	var character schema.Character
	if err := c.Bind(&character); err != nil {
		return badRequest(c, "invalid json")
	}
	if strings.TrimSpace(character.Name) == "" {
		return badRequest(c, "character name is required")
	}
	added, err := s.Store.AppendCharacter(storyID, character)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, added, fmt.Sprintf("Character '%s' added to story!", added.Name))
}

func (s *Server) addPage(c echo.Context, storyID string) error {
	var page schema.Page
	if err := c.Bind(&page); err != nil {
		return badRequest(c, "invalid json")
	}
	if strings.TrimSpace(page.Text) == "" {
		return badRequest(c, "page text is required")
	}
	added, err := s.Store.AppendPage(storyID, page)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, added, fmt.Sprintf("Page %d added to story!", added.PageNumber))
}
