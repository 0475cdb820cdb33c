package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/assetdesk/inventory-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrAssetNotFound):
		return http.StatusNotFound, "asset not found"
	case errors.Is(err, domain.ErrAssignmentNotFound):
		return http.StatusNotFound, "assignment not found"
	case errors.Is(err, domain.ErrDirectoryUserNotFound):
		return http.StatusNotFound, "directory user not found"
	case errors.Is(err, domain.ErrOSOptionNotFound):
		return http.StatusNotFound, "os option not found"
	case errors.Is(err, domain.ErrOperatorNotFound):
		return http.StatusNotFound, "operator not found"
	case errors.Is(err, domain.ErrDuplicateSerialNumber):
		return http.StatusConflict, "serial number already in use"
	case errors.Is(err, domain.ErrDuplicateOSOption):
		return http.StatusConflict, "os option already exists"
	case errors.Is(err, domain.ErrDuplicatePrincipalName):
		return http.StatusConflict, "principal name already in use"
	case errors.Is(err, domain.ErrAssetAlreadyAssigned):
		return http.StatusConflict, "asset already has an active assignment"
	case errors.Is(err, domain.ErrOperatorExists):
		return http.StatusConflict, "operator already exists"
	case errors.Is(err, domain.ErrSyncAlreadyRunning):
		return http.StatusConflict, "directory sync already running"
	case errors.Is(err, domain.ErrInvalidAssetStatus):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrDirectoryUnavailable):
		return http.StatusBadGateway, "directory service unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
