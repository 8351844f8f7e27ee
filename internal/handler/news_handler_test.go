package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newstracker/internal/model"
	"newstracker/pkg/news"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeClient struct {
	articles   []news.Article
	trends     []news.Trend
	err        error
	configured bool
	lastQuery  news.Query
}

func (f *fakeClient) FetchArticles(ctx context.Context, q news.Query) ([]news.Article, error) {
	f.lastQuery = q
	return f.articles, f.err
}

func (f *fakeClient) FetchTrends(ctx context.Context) ([]news.Trend, error) {
	return f.trends, f.err
}

func (f *fakeClient) Configured() bool {
	return f.configured
}

func (f *fakeClient) Name() string {
	return "Fake"
}

type fakeUsageStore struct {
	usage *model.ApiUsage
	err   error
}

func (f *fakeUsageStore) GetUsage(ctx context.Context, apiName string, day time.Time) (*model.ApiUsage, error) {
	return f.usage, f.err
}

func newTestRouter(client news.NewsClient, usage UsageStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewNewsHandler(client), NewUsageHandler(usage, "Fake"))
	return r
}

func scenarioArticles() []news.Article {
	summary := "Concerns over inflation persist."
	return []news.Article{
		{
			ID:        1,
			Title:     "Fed raises rates",
			Summary:   &summary,
			Source:    "Reuters",
			Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        2,
			Title:     "Tech layoffs",
			Source:    "AP",
			Timestamp: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetRoot(t *testing.T) {
	r := newTestRouter(&fakeClient{}, nil)

	w := get(r, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"message":"Welcome to the Global News Tracker API"}`, w.Body.String())
}

func TestGetNews_TermFilter(t *testing.T) {
	client := &fakeClient{articles: scenarioArticles()}
	r := newTestRouter(client, nil)

	w := get(r, "/news?q=tech")

	assert.Equal(t, http.StatusOK, w.Code)

	var res []ArticleResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, "Tech layoffs", res[0].Title)
	assert.Equal(t, 2, res[0].ID)
	assert.Equal(t, "2024-02-01T00:00:00Z", res[0].Timestamp)
	assert.Equal(t, "tech", client.lastQuery.Term)
	assert.Equal(t, "newest", client.lastQuery.SortBy)
}

func TestGetNews_SortOldest(t *testing.T) {
	r := newTestRouter(&fakeClient{articles: scenarioArticles()}, nil)

	w := get(r, "/news?sort_by=oldest")

	var res []ArticleResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, "Fed raises rates", res[0].Title)
	assert.Equal(t, "Tech layoffs", res[1].Title)
}

func TestGetNews_UnknownSortIsNotAnError(t *testing.T) {
	r := newTestRouter(&fakeClient{articles: scenarioArticles()}, nil)

	w := get(r, "/news?sort_by=popularity")

	assert.Equal(t, http.StatusOK, w.Code)

	var res []ArticleResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Fed raises rates", res[0].Title)
}

func TestGetNews_UpstreamError(t *testing.T) {
	r := newTestRouter(&fakeClient{err: errors.New("upstream 500")}, nil)

	w := get(r, "/news")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetNews_NullableFields(t *testing.T) {
	r := newTestRouter(&fakeClient{articles: scenarioArticles()}, nil)

	w := get(r, "/news?q=layoffs")

	var res []map[string]any
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res))

	value, present := res[0]["summary"]
	assert.Equal(t, true, present)
	assert.Equal(t, nil, value)
	assert.Equal(t, 0.0, res[0]["relevanceScore"])
}

func TestGetNews_UpstreamEndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	client := news.NewEventRegistryClient("test-key", upstream.URL, 5*time.Second, nil)
	r := newTestRouter(client, nil)

	w := get(r, "/news?q=anything")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetNews_CountryAgainstUpstream(t *testing.T) {
	var sent map[string]any
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&sent)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"articles":{"results":[
			{"title":"Senate vote","source":{"title":"AP","location":{"type":"country","uri":"http://en.wikipedia.org/wiki/United_States"}},"dateTimePub":"2026-10-17T10:00:00Z"},
			{"title":"Tokyo markets","source":{"title":"NYT","location":{"country":{"uri":"http://en.wikipedia.org/wiki/United_States"}}},"location":{"country":{"uri":"http://en.wikipedia.org/wiki/Japan"}},"dateTimePub":"2026-10-17T09:00:00Z"}
		]}}`))
	}))
	defer upstream.Close()

	client := news.NewEventRegistryClient("test-key", upstream.URL, 5*time.Second, nil)
	r := newTestRouter(client, nil)

	w := get(r, "/news?country=USA")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://en.wikipedia.org/wiki/United_States", sent["sourceLocationUri"])
	assert.Equal(t, true, sent["includeSourceLocation"])

	var res []ArticleResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, "Senate vote", res[0].Title)
	assert.Equal(t, "USA", *res[0].Country)
	assert.Equal(t, "Tokyo markets", res[1].Title)
	assert.Equal(t, "USA", *res[1].Country)
}

func TestGetNews_TimestampKeepsFraction(t *testing.T) {
	client := &fakeClient{articles: []news.Article{{
		ID:        1,
		Title:     "Late edition",
		Source:    "AP",
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 123000000, time.UTC),
	}}}
	r := newTestRouter(client, nil)

	w := get(r, "/news")

	var res []ArticleResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, "2024-03-01T12:00:00.123Z", res[0].Timestamp)
}

func TestGetTrends(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"trends":{"trends":{"results":[{"uri":"u1","label":"AI","score":0.9}]}}}`))
	}))
	defer upstream.Close()

	client := news.NewEventRegistryClient("test-key", upstream.URL, 5*time.Second, nil)
	r := newTestRouter(client, nil)

	w := get(r, "/trends")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"trends":[{"uri":"u1","label":"AI","score":0.9}]}`, w.Body.String())
}

func TestGetTrends_Error(t *testing.T) {
	r := newTestRouter(&fakeClient{err: news.ErrMissingAPIKey}, nil)

	w := get(r, "/trends")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"trends":[]}`, w.Body.String())
}

func TestGetHealth_Healthy(t *testing.T) {
	r := newTestRouter(&fakeClient{configured: true}, nil)

	w := get(r, "/health")

	var res HealthResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", res.Status)
}

func TestGetHealth_Unhealthy(t *testing.T) {
	r := newTestRouter(&fakeClient{}, nil)

	w := get(r, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var res HealthResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "unhealthy", res.Status)
	assert.Equal(t, "unconfigured", res.Upstream)
}

func TestCORS_AllowsAnyOrigin(t *testing.T) {
	r := newTestRouter(&fakeClient{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://example.org")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(&fakeClient{}, nil)

	w := get(r, "/")
	assert.NotEqual(t, "", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
