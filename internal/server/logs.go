package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/logcentral/logcentral/internal/auth"
	"github.com/logcentral/logcentral/internal/ingest"
	"github.com/logcentral/logcentral/internal/query"
	"github.com/logcentral/logcentral/internal/response"
	"github.com/logcentral/logcentral/internal/store"
)

// LogsHandler serves POST /logs and GET /logs.
type LogsHandler struct {
	Pipeline *ingest.Pipeline
	Store    store.Store
}

// Create ingests a batch of log items (POST /logs). Partial success is
// success: 201 as long as at least one item was persisted.
func (h *LogsHandler) Create(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "cannot read request body")
	}

	report, err := h.Pipeline.Ingest(
		c.Request().Context(),
		c.Request().Header.Get(echo.HeaderAuthorization),
		body,
	)
	switch {
	case errors.Is(err, auth.ErrAuthFailure):
		return response.Unauthorized(c, auth.ErrAuthFailure.Error())
	case errors.Is(err, ingest.ErrBadPayload):
		return response.BadRequest(c, ingest.ErrBadPayload.Error())
	case err != nil:
		return response.StoreError(c, err.Error())
	}

	if report.Accepted == 0 {
		return c.JSON(http.StatusBadRequest, report)
	}
	return c.JSON(http.StatusCreated, report)
}

// List returns persisted records matching the query filters (GET /logs),
// most recently received first.
func (h *LogsHandler) List(c echo.Context) error {
	filters, err := query.ParseListParams(c.QueryParams())
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	records, err := h.Store.Query(c.Request().Context(), filters)
	if err != nil {
		return response.StoreError(c, err.Error())
	}
	return c.JSON(http.StatusOK, records)
}

func root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"ok":   true,
		"hint": "use /health to check the service",
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "logcentral",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
