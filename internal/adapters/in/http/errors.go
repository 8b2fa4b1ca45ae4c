package http

import (
	"errors"
	"fmt"
	"net/http"

	"docflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// fail writes the error response for a use-case error. Invariant violations and
// unexpected errors are reported without detail.
func (s *Server) fail(ctx echo.Context, err error) error {
	code, message := classify(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
	}
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func classify(err error) (int, string) {
	var notAllowed *errs.TransitionNotAllowedError
	switch {
	case errors.As(err, &notAllowed):
		return http.StatusConflict, fmt.Sprintf("%s cannot move from %q to %q",
			notAllowed.Category, notAllowed.From, notAllowed.To)
	case errors.Is(err, errs.ErrTransitionNotAllowed):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrInvariantViolation):
		return http.StatusInternalServerError, "Internal server error"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "Document not found"
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
