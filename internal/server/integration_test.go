package server

import (
	"encoding/json"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-keywords/internal/clients/serpapi"
	"github.com/maxaizer/job-keywords/internal/config"
	"github.com/maxaizer/job-keywords/internal/domain/models"
	"github.com/maxaizer/job-keywords/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

type upstreamStub struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newUpstreamStub(t *testing.T, fixture string) *upstreamStub {
	t.Helper()
	body, err := os.ReadFile("../clients/serpapi/testdata/" + fixture)
	require.NoError(t, err)

	stub := &upstreamStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.calls.Add(1)
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "google_jobs", r.URL.Query().Get("engine"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func newIntegrationServer(t *testing.T, upstreamURL, apiKey string) (*Server, *services.ResultCache) {
	t.Helper()
	client := serpapi.NewClient(5 * time.Second)
	client.SetBaseURL(upstreamURL)

	cache := services.NewResultCache(time.Minute)
	t.Cleanup(cache.Close)

	pipeline := services.NewQueryPipeline(EventBus.New(), client, cache, apiKey)
	return New(config.ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}}, pipeline, cache), cache
}

func Test_Integration_WhenSameQueryRepeated_ShouldServeSecondFromCache(t *testing.T) {
	upstream := newUpstreamStub(t, "search.json")
	srv, cache := newIntegrationServer(t, upstream.server.URL, "secret")

	first := serve(srv, httptest.NewRequest(http.MethodGet, "/api/jobs?keyword=nurse&location=Texas", nil))
	require.Equal(t, http.StatusOK, first.Code)

	var result models.SearchResult
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &result))
	require.Len(t, result.Jobs, 2)
	assert.Equal(t, 134, result.TotalResults)
	require.NotNil(t, result.NextPageToken)

	rn := result.Jobs[0]
	assert.Equal(t, "Texas Health Resources", rn.Company)
	assert.Equal(t, "https://careers.texashealth.org/jobs/12345", rn.ApplyURL)
	assert.LessOrEqual(t, len(rn.ATSKeywords), 10)

	adjunct := result.Jobs[1]
	assert.Equal(t, models.DefaultSalary, adjunct.Salary)
	assert.Contains(t, adjunct.ApplyURL, "https://www.google.com/search?q=")

	second := serve(srv, httptest.NewRequest(http.MethodPost, "/api/jobs?keyword=nurse&location=Texas", nil))
	require.Equal(t, http.StatusOK, second.Code)

	var cached models.SearchResult
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &cached))
	assert.Equal(t, result.Jobs, cached.Jobs)
	assert.Equal(t, 2, cached.TotalResults)
	assert.Nil(t, cached.NextPageToken)

	assert.Equal(t, int32(1), upstream.calls.Load())
	assert.Equal(t, 1, cache.Len())
}

func Test_Integration_WhenProviderRejectsKey_ShouldReturnDetails(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid API key. Your API key should be here: https://serpapi.com/manage-api-key"}`))
	}))
	defer upstream.Close()

	srv, _ := newIntegrationServer(t, upstream.URL, "wrong")

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/jobs?keyword=nurse", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.NotEmpty(t, body.Error)
	assert.Contains(t, body.Details, "Invalid API key")
}

func Test_Integration_WhenAPIKeyMissing_ShouldNotCallProvider(t *testing.T) {
	upstream := newUpstreamStub(t, "search.json")
	srv, _ := newIntegrationServer(t, upstream.server.URL, "")

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/jobs?keyword=nurse", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, int32(0), upstream.calls.Load())
}

func Test_Integration_WhenKeywordIsWhitespace_ShouldRejectWithoutCallingProvider(t *testing.T) {
	upstream := newUpstreamStub(t, "search.json")
	srv, _ := newIntegrationServer(t, upstream.server.URL, "secret")

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/jobs?keyword=%20%20%20", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errorResponse{Error: "keyword is required"}, decodeError(t, rec))
	assert.Equal(t, int32(0), upstream.calls.Load())
}
