package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cachefront/cachefront/internal/application/orchestrator"
	"github.com/cachefront/cachefront/internal/core/domain/document"
	"github.com/cachefront/cachefront/internal/core/ports"
	"github.com/cachefront/cachefront/internal/infrastructure/httpserver"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// cacheServiceMock is a lightweight mock for ports.CacheService.
type cacheServiceMock struct {
	getFn    func(ctx context.Context, collection, id, field string) (any, bool, error)
	getAllFn func(ctx context.Context, collection, id string) (document.Record, bool, error)
	setFn    func(ctx context.Context, collection, id, field string, value any) error
}

func (m *cacheServiceMock) RegisterCollection(col ports.Collection) {}
func (m *cacheServiceMock) Collections() []string                  { return []string{"Dog"} }
func (m *cacheServiceMock) WaitReady(ctx context.Context) error    { return nil }

func (m *cacheServiceMock) Get(ctx context.Context, collection, id, field string) (any, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, collection, id, field)
	}
	return nil, false, nil
}

func (m *cacheServiceMock) GetAll(ctx context.Context, collection, id string) (document.Record, bool, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx, collection, id)
	}
	return nil, false, nil
}

func (m *cacheServiceMock) Set(ctx context.Context, collection, id, field string, value any) error {
	if m.setFn != nil {
		return m.setFn(ctx, collection, id, field, value)
	}
	return nil
}

func newTestServer(svc ports.CacheService) *httpserver.Server {
	cfg := &httpserver.ServerConfig{Host: "127.0.0.1", Port: "0"}
	return httpserver.NewServer(cfg, logrus.New(), httpserver.ServerDeps{CacheService: svc})
}

func TestGetField_ReturnsValue(t *testing.T) {
	svc := &cacheServiceMock{getFn: func(ctx context.Context, collection, id, field string) (any, bool, error) {
		require.Equal(t, "Dog", collection)
		require.Equal(t, "dog-1", id)
		require.Equal(t, "name", field)
		return "Rex", true, nil
	}}
	s := newTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collections/Dog/records/dog-1/fields/name", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"value":"Rex"`)
}

func TestGetField_AbsentReturns404(t *testing.T) {
	s := newTestServer(&cacheServiceMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collections/Dog/records/nobody/fields/name", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), `"found":false`)
}

func TestGetField_UnknownCollectionReturns404(t *testing.T) {
	svc := &cacheServiceMock{getFn: func(ctx context.Context, collection, id, field string) (any, bool, error) {
		return nil, false, orchestrator.ErrUnknownCollection
	}}
	s := newTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collections/Cat/records/cat-1/fields/name", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetField_NotConnectedReturns503(t *testing.T) {
	svc := &cacheServiceMock{getFn: func(ctx context.Context, collection, id, field string) (any, bool, error) {
		return nil, false, orchestrator.ErrNotConnected
	}}
	s := newTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collections/Dog/records/dog-1/fields/name", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetRecord_ReturnsRecord(t *testing.T) {
	svc := &cacheServiceMock{getAllFn: func(ctx context.Context, collection, id string) (document.Record, bool, error) {
		return document.Record{"name": "Rex", "isBarking": true}, true, nil
	}}
	s := newTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collections/Dog/records/dog-1", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"name":"Rex"`)
}

func TestSetField_WritesValue(t *testing.T) {
	var gotValue any
	svc := &cacheServiceMock{setFn: func(ctx context.Context, collection, id, field string, value any) error {
		gotValue = value
		return nil
	}}
	s := newTestServer(svc)

	body := strings.NewReader(`{"value": "true"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/collections/Dog/records/dog-1/fields/isBarking", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "true", gotValue)
}

func TestSetField_SchemaViolationReturns422(t *testing.T) {
	svc := &cacheServiceMock{setFn: func(ctx context.Context, collection, id, field string, value any) error {
		return orchestrator.ErrSchemaViolation
	}}
	s := newTestServer(svc)

	body := strings.NewReader(`{"value": "notabool"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/collections/Dog/records/dog-1/fields/isBarking", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListCollections(t *testing.T) {
	s := newTestServer(&cacheServiceMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collections", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Dog"`)
}
