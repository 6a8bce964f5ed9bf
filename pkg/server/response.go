package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"jongubooks/pkg/gateway"
	"jongubooks/pkg/store"
	"jongubooks/pkg/utils"
)

// envelope is the uniform success shape. Callers are expected to check the
// success flag rather than rely on the transport status alone.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func ok(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func okCount(c echo.Context, data any, count int) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

// fail maps the error taxonomy onto transport statuses: NotFound → 404,
// missing credential → 503, generation failure → 500.
func fail(c echo.Context, err error) error {
	var cfgErr *gateway.ConfigError
	var genErr *gateway.GenerationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, utils.ErrJSON("Story not found"))
	case errors.As(err, &cfgErr):
		log.Error("AI call without configured credential", "op", cfgErr.Op)
		return c.JSON(http.StatusServiceUnavailable, utils.ErrJSON(cfgErr.Error()))
	case errors.As(err, &genErr):
		log.Error("generation failed", "op", genErr.Op, "error", genErr.Err)
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON(genErr.Error()))
	default:
		log.Error("request failed", "error", err)
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON(err.Error()))
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, utils.ErrJSON(msg))
}
