package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ValidationErrorMessage is the only detail a client gets about a rejected body
const ValidationErrorMessage = "Check your data"

// Welcome godoc
// @Summary Welcome message
// @Tags meta
// @Produce json
// @Success 200 {object} MessageResponse
// @Router / [get]
func Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: "Welcome to responder!"})
}

// bindAndValidate decodes the request body into req and runs struct validation.
// Both failures produce the same 400 response.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ValidationErrorMessage).SetInternal(err)
	}

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ValidationErrorMessage).SetInternal(err)
	}

	return nil
}

// Request/Response types

type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
