package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medadhere/drugresolver/config"
	"github.com/medadhere/drugresolver/internal/alias"
	"github.com/medadhere/drugresolver/internal/loader"
	"github.com/medadhere/drugresolver/internal/resolver"
	"github.com/medadhere/drugresolver/services"
)

const testCSV = `registration_id,generic_name,brand_name,strength,form,category
REG-001,Metformin,Glucophage,500mg,tablet,antidiabetic
REG-002,Paracetamol,Panadol,500mg,tablet,analgesic
REG-003,Ibuprofen,,200mg,capsule,nsaid
`

// setupRouter wires a full engine over an in-memory dataset behind the real
// route table.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	settings := &config.Settings{}
	settings.ApplyDefaults()

	coordinator := loader.New(loader.Config{
		Fetch: func(ctx context.Context) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(testCSV)), nil
		},
	})
	svc, err := resolver.NewService(coordinator, alias.New(nil), settings.Engine, nil)
	require.NoError(t, err)

	router := gin.New()
	SetupRoutes(router, svc, coordinator, settings)
	return router
}

func doRequest(router *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	// No query has run yet, so the index has not been built.
	assert.Equal(t, false, body["ready"])
}

func TestSuggest(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/suggest?q=metf", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result services.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "REG-001", result.Hits[0].Record.RegistrationID)
	assert.Equal(t, services.MatchKindPrefix, result.Hits[0].Kind)
	assert.Equal(t, "Glucophage", result.Hits[0].Display)
	assert.NotEmpty(t, result.QueryID)
}

func TestSuggestShortQueryIsEmptyNotError(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/suggest?q=m", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result services.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 0, result.Total)
	assert.NotNil(t, result.Hits)
}

func TestSuggestInvalidLimit(t *testing.T) {
	router := setupRouter(t)

	for _, limit := range []string{"abc", "0", "-5"} {
		w := doRequest(router, http.MethodGet, "/api/suggest?q=metf&limit="+limit, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", limit)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
		assert.Equal(t, ErrorCodeInvalidQuery, apiErr.Code)
		assert.Contains(t, apiErr.Message, "limit")
	}
}

func TestResolve(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/resolve?q=metaflorin", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result services.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotZero(t, result.Total)
	assert.Equal(t, "REG-001", result.Hits[0].Record.RegistrationID)
	assert.Equal(t, services.MatchKindAlias, result.Hits[0].Kind)
	assert.Equal(t, 95, result.Hits[0].Score)
}

func TestResolveInvalidMaxDistance(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/resolve?q=metf&max_distance=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCorrect(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodPost, "/api/correct", `{"query":"metaflorin"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var correction services.Correction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &correction))
	assert.Equal(t, "metformin", correction.Corrected)
	assert.Equal(t, 95, correction.Confidence)
	assert.Equal(t, "metaflorin", correction.Original)
}

func TestCorrectInvalidBody(t *testing.T) {
	router := setupRouter(t)

	for _, body := range []string{"", "{", `{"query":""}`, `{"other":"x"}`} {
		w := doRequest(router, http.MethodPost, "/api/correct", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body=%q", body)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
		assert.Equal(t, ErrorCodeInvalidJSON, apiErr.Code)
	}
}

func TestFindExact(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/records/exact?name=panadol", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "REG-002", body["registration_id"])
}

func TestFindExactNotFound(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/records/exact?name=notadrug", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, ErrorCodeRecordNotFound, apiErr.Code)
}

func TestFindExactMissingName(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/records/exact", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestIDPropagated(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "test-id-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "test-id-123", w.Header().Get("X-Request-ID"))
}

func TestHealthReadyAfterFirstQuery(t *testing.T) {
	router := setupRouter(t)

	doRequest(router, http.MethodGet, "/api/suggest?q=metf", "")

	w := doRequest(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ready"])
	assert.Equal(t, false, body["degraded"])
	assert.Equal(t, float64(3), body["record_count"])
}
