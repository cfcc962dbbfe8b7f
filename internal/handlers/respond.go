package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/inkpost/backend/internal/middleware"
	"github.com/anonto42/inkpost/backend/internal/services"
	"github.com/anonto42/inkpost/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

var kindStatus = map[string]int{
	"VALIDATION_FAILED":    http.StatusBadRequest,
	"UNAUTHORIZED":         http.StatusUnauthorized,
	"FORBIDDEN":            http.StatusForbidden,
	"NOT_FOUND":            http.StatusNotFound,
	"PARENT_NOT_FOUND":     http.StatusNotFound,
	"DUPLICATE_ENGAGEMENT": http.StatusConflict,
	"CONFLICT":             http.StatusConflict,
	"STORAGE_FAILURE":      http.StatusInternalServerError,
}

// respondError maps a service error onto an HTTP status and the common error body.
// Storage failures are logged here and hidden behind a generic message.
func respondError(c echo.Context, err error) error {
	kind := services.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status == http.StatusInternalServerError {
		logger.Error.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return echo.NewHTTPError(status, echo.Map{
		"success": false,
		"error":   kind,
		"message": services.MessageOf(err),
	})
}

type normalizer interface {
	Normalize()
}

// bindAndValidate binds the JSON body, trims it and runs the struct validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return services.Validation("Invalid request payload")
	}
	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}
	if err := c.Validate(req); err != nil {
		return services.Validation("%s", err.Error())
	}
	return nil
}

func parseID(c echo.Context, param, noun string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, services.Validation("Invalid %s ID", noun)
	}
	return uint(id), nil
}

// viewerID is 0 for anonymous requests
func viewerID(c echo.Context) uint {
	id, _ := middleware.CurrentUserID(c)
	return id
}

func requireUserID(c echo.Context) (uint, error) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
			"success": false,
			"error":   "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}
	return id, nil
}
