package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acadassist/acadassist/ai"
	"github.com/acadassist/acadassist/chatbot"
)

type chatRequest struct {
	Question string `json:"question"`
	RoleID   int32  `json:"role_id"`
	UserID   int32  `json:"user_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}

func (s *Server) handleChat(c echo.Context) error {
	request := &chatRequest{}
	if err := c.Bind(request); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if request.Question == "" {
		return badRequest(c, "No question provided")
	}
	if request.RoleID == 0 {
		return badRequest(c, "No role ID provided")
	}
	role := chatbot.Role(request.RoleID)
	if !role.Valid() {
		return badRequest(c, "Invalid role ID")
	}
	if role.RequiresUserID() && request.UserID == 0 {
		return badRequest(c, "User ID required for this role")
	}

	answer, err := s.engine.Respond(c.Request().Context(), request.Question, role, request.UserID)
	if err != nil {
		return s.chatError(c, err)
	}

	chatRequests.WithLabelValues(answer.Intent.String(), "ok").Inc()
	return c.JSON(http.StatusOK, answer)
}

// chatError maps the pipeline error taxonomy onto status codes. The error
// message goes out as-is; execution errors carry the database error
// verbatim.
func (s *Server) chatError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	outcome := "internal_error"

	var validation *chatbot.ValidationError
	var permission *chatbot.PermissionError
	var notFound *chatbot.NotFoundError
	var multiple *chatbot.MultipleMatchesError
	var upstream *chatbot.UpstreamError
	var execution *chatbot.ExecutionError
	switch {
	case errors.As(err, &validation):
		status, outcome = http.StatusBadRequest, "validation_error"
	case errors.As(err, &permission):
		status, outcome = http.StatusForbidden, "permission_denied"
	case errors.As(err, &notFound):
		status, outcome = http.StatusNotFound, "not_found"
	case errors.As(err, &multiple):
		status, outcome = http.StatusConflict, "multiple_matches"
	case errors.As(err, &upstream):
		status, outcome = http.StatusBadGateway, "upstream_error"
		if errors.Is(err, ai.ErrUpstreamTimeout) {
			status, outcome = http.StatusGatewayTimeout, "upstream_timeout"
		}
	case errors.As(err, &execution):
		status, outcome = http.StatusInternalServerError, "execution_error"
	default:
		slog.Error("chat request failed", slog.String("error", err.Error()))
	}

	chatRequests.WithLabelValues("", outcome).Inc()
	return c.JSON(status, errorResponse{Error: err.Error()})
}

type studentInfoRequest struct {
	StudentID string `json:"student_id"`
}

func (s *Server) handleStudentInfo(c echo.Context) error {
	request := &studentInfoRequest{}
	if err := c.Bind(request); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if request.StudentID == "" {
		return badRequest(c, "No student ID provided")
	}

	info, err := s.Store.GetStudentInfo(c.Request().Context(), request.StudentID)
	if err != nil {
		slog.Error("student info lookup failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Student not found"})
	}
	return c.JSON(http.StatusOK, info)
}
