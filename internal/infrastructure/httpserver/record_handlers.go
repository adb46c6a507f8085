package httpserver

import (
	"errors"
	"net/http"

	"github.com/cachefront/cachefront/internal/application/orchestrator"
	"github.com/labstack/echo/v4"
)

// setFieldRequest carries the value for a single-field write. The value may be
// any JSON type; strings are validated against the schema after decoding, the
// same way the cache round-trip would see them.
type setFieldRequest struct {
	Value any `json:"value"`
}

func (s *Server) listCollections(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"collections": s.cacheSvc.Collections()})
}

func (s *Server) getField(c echo.Context) error {
	collection := c.Param("collection")
	id := c.Param("id")
	field := c.Param("field")

	value, found, err := s.cacheSvc.Get(c.Request().Context(), collection, id, field)
	if err != nil {
		return cacheError(err)
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]interface{}{"found": false})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"found": true, "value": value})
}

func (s *Server) getRecord(c echo.Context) error {
	collection := c.Param("collection")
	id := c.Param("id")

	record, found, err := s.cacheSvc.GetAll(c.Request().Context(), collection, id)
	if err != nil {
		return cacheError(err)
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]interface{}{"found": false})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"found": true, "record": record})
}

func (s *Server) setField(c echo.Context) error {
	collection := c.Param("collection")
	id := c.Param("id")
	field := c.Param("field")

	var req setFieldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := s.cacheSvc.Set(c.Request().Context(), collection, id, field, req.Value); err != nil {
		return cacheError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}

// cacheError maps orchestrator error kinds to HTTP statuses.
func cacheError(err error) error {
	switch {
	case errors.Is(err, orchestrator.ErrUnknownCollection):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, orchestrator.ErrSchemaViolation):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, orchestrator.ErrNotConnected), errors.Is(err, orchestrator.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
