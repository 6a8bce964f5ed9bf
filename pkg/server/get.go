package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleGetRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": "Jongu Books API",
		"status":  "ok",
	})
}

// GET /health — liveness plus a story count.
func (s *Server) handleGetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":        "healthy",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"stories_count": s.Store.Count(),
	})
}
