package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hospitalhq/records-system/internal/api/response"
	"github.com/hospitalhq/records-system/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the uniform envelope {isSuccess, data, message, errorCode, errors}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, env := resolveError(err, log, c)
		_ = c.JSON(code, env)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, response.Envelope) {
	// Itemized request validation failures.
	var ve *response.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest,
			response.Failure("Validation failed.", response.CodeValidation, ve.Fields)
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code,
			response.Failure(fmt.Sprintf("%v", he.Message), codeForStatus(he.Code), nil)
	}

	// Known domain errors → deterministic HTTP codes. The invalid-credentials
	// message is identical for unknown user and wrong password.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized,
			response.Failure("Invalid credentials.", response.CodeAuthInvalid, nil)
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest,
			response.Failure("Username already exists.", response.CodeAuthInvalid, nil)
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests,
			response.Failure("Too many login attempts. Try again later.", response.CodeRateLimited, nil)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden,
			response.Failure("Access forbidden.", response.CodeForbidden, nil)
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound,
			response.Failure("Resource not found.", response.CodeNotFound, nil)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError,
		response.Failure("Internal server error.", response.CodeInternal, nil)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return response.CodeUnauthenticated
	case http.StatusForbidden:
		return response.CodeForbidden
	case http.StatusNotFound:
		return response.CodeNotFound
	case http.StatusTooManyRequests:
		return response.CodeRateLimited
	case http.StatusBadRequest:
		return response.CodeBadRequest
	default:
		return response.CodeInternal
	}
}
