package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the standard error response shape.
type ErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Error sends a JSON error response with the given status.
func Error(c echo.Context, status int, msg string) error {
	return c.JSON(status, ErrorBody{Error: msg})
}

// Unauthorized sends 401 with the given message.
func Unauthorized(c echo.Context, msg string) error {
	return Error(c, http.StatusUnauthorized, msg)
}

// BadRequest sends 400 with the given message.
func BadRequest(c echo.Context, msg string) error {
	return Error(c, http.StatusBadRequest, msg)
}

// StoreError sends 500 for a persistence-layer fault. The stable "db_error"
// code lets clients distinguish store faults from validation failures.
func StoreError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ErrorBody{Error: "db_error", Detail: detail})
}
