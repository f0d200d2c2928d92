package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abgdnv/productcatalog/internal/config"
	"github.com/abgdnv/productcatalog/internal/product/store"
	pkgconfig "github.com/abgdnv/productcatalog/pkg/config"
	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/abgdnv/productcatalog/pkg/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Storage.Driver = pkgconfig.StorageDriverMemory
	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"
	return cfg
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig()
	productStore := NewStore(cfg, nil, logger)
	deps := SetupDependencies(productStore, messaging.NoopPublisher{}, NewRegistry(), logger)
	return SetupHttpHandler(deps, cfg)
}

func TestNewStore_MemoryDriver(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	productStore := NewStore(testConfig(), nil, logger)

	_, isBreaker := productStore.(*store.BreakerStore)
	assert.False(t, isBreaker, "in-memory store is never wrapped")
	require.NoError(t, productStore.Ping(context.Background()))
}

func TestSetupHttpHandler_WiresMiddlewareAndMetrics(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/products",
		strings.NewReader(`{"id":1,"name":"Widget","price":9.99,"category":"tools","stockQuantity":5,"brand":"Acme"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(web.RequestIDHeader))

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "http_requests_total{")
	assert.Contains(t, rr.Body.String(), `status="201"`)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestSearchByCategory_EmptiedAndUnusedCategoriesLookAlike(t *testing.T) {
	handler := newTestHandler(t)
	serve := func(method, target, body string) *httptest.ResponseRecorder {
		t.Helper()
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(method, target, strings.NewReader(body)))
		return rr
	}

	rr := serve(http.MethodPost, "/api/products", `{"id":7,"name":"Widget","price":9.99,"category":"tools","brand":"Acme"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, http.StatusOK, serve(http.MethodGet, "/api/products/search?category=tools", "").Code)
	require.Equal(t, http.StatusOK, serve(http.MethodDelete, "/api/products/7", "").Code)

	emptied := serve(http.MethodGet, "/api/products/search?category=tools", "")
	unused := serve(http.MethodGet, "/api/products/search?category=never", "")

	assert.Equal(t, http.StatusNotFound, emptied.Code)
	assert.Equal(t, unused.Code, emptied.Code)
	assert.JSONEq(t, `{"error":"No products found in category: tools"}`, emptied.Body.String())
	assert.JSONEq(t, `{"error":"No products found in category: never"}`, unused.Body.String())

	blank := serve(http.MethodGet, "/api/products/search?category=", "")
	assert.Equal(t, http.StatusNotFound, blank.Code, "an empty category is a valid, unmatched query")
	assert.JSONEq(t, `{"error":"No products found in category: "}`, blank.Body.String())
}
