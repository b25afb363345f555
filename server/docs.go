package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type docsChatRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleDocsChat(c echo.Context) error {
	request := &docsChatRequest{}
	if err := c.Bind(request); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if request.Question == "" {
		return badRequest(c, "No question provided")
	}
	if s.docs == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "Document QA is not available"})
	}

	answer, err := s.docs.Respond(c.Request().Context(), request.Question)
	if err != nil {
		slog.Error("document QA failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, answer)
}
