package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"jongubooks/pkg/export"
	"jongubooks/pkg/utils"
)

// GET /api/export/:id/pdf — renders the story as a printable booklet.
func (s *Server) handleExportPDF(c echo.Context) error {
	story, err := s.Store.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}

	data, err := export.PDF(story)
	if err != nil {
		return fail(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", utils.SanitizeFilename(story.Title)+".pdf"))
	return c.Blob(http.StatusOK, "application/pdf", data)
}
