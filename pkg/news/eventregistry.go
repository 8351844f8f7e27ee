package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://eventregistry.org"

	// PageSize is the number of articles requested per fetch.
	PageSize = 20
	// RecencyWindowDays bounds how far back the provider searches.
	RecencyWindowDays = 31

	placeholderAPIKey = "YOUR_API_KEY_HERE"

	// maxResponseBytes caps an upstream body; a full page is far smaller.
	maxResponseBytes = 10 << 20
)

var (
	ErrMissingAPIKey    = errors.New("news API key is not configured")
	ErrUpstreamStatus   = errors.New("unexpected upstream status")
	ErrResponseTooLarge = errors.New("upstream response too large")
)

var providerSortKeys = map[string]string{
	"newest":    "date",
	"oldest":    "date",
	"relevance": "rel",
	"source":    "sourceImportance",
}

type EventRegistryClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	usage      UsageRecorder
}

// NewEventRegistryClient returns a client for the Event Registry article and
// trends APIs. usage may be nil.
func NewEventRegistryClient(apiKey, baseURL string, timeout time.Duration, usage UsageRecorder) *EventRegistryClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &EventRegistryClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		usage:      usage,
	}
}

func (c *EventRegistryClient) Name() string {
	return "EventRegistry"
}

// Configured reports whether a usable API key is set.
func (c *EventRegistryClient) Configured() bool {
	return KeyConfigured(c.apiKey)
}

func KeyConfigured(apiKey string) bool {
	key := strings.TrimSpace(apiKey)
	return key != "" && key != placeholderAPIKey
}

func (c *EventRegistryClient) FetchArticles(ctx context.Context, q Query) ([]Article, error) {
	req := articlesRequest{
		Action:                   "getArticles",
		ResultType:               "articles",
		ArticlesPage:             1,
		ArticlesCount:            PageSize,
		ArticlesSortBy:           ProviderSortKey(q.SortBy),
		ArticlesSortByAsc:        q.SortBy == "oldest",
		ForceMaxDataTimeWindow:   RecencyWindowDays,
		IncludeArticleImage:      true,
		IncludeArticleCategories: true,
		IncludeArticleConcepts:   true,
		IncludeArticleLocation:   true,
		IncludeSourceLocation:    true,
		APIKey:                   c.apiKey,
	}

	if term := strings.TrimSpace(q.Term); term != "" {
		req.Keyword = term
	}

	if q.Country != "" {
		if uri, ok := Countries.URI(q.Country); ok {
			req.SourceLocationURI = uri
		} else {
			slog.Warn("unknown country, not filtering at provider", "country", q.Country)
		}
	}

	if q.Category != "" {
		if uri, ok := Categories.URI(q.Category); ok {
			req.CategoryURI = uri
		} else {
			slog.Warn("unknown category, not filtering at provider", "category", q.Category)
		}
	}

	body, err := c.post(ctx, "/api/v1/article/getArticles", req)
	if err != nil {
		return nil, err
	}

	var raw articlesResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("eventregistry decode articles: %w", err)
	}

	return Normalize(raw.items()), nil
}

func (c *EventRegistryClient) FetchTrends(ctx context.Context) ([]Trend, error) {
	req := trendsRequest{
		Action: "getTrendingConcepts",
		Source: "news",
		Count:  PageSize,
		APIKey: c.apiKey,
	}

	body, err := c.post(ctx, "/api/v1/trends", req)
	if err != nil {
		return nil, err
	}

	return NormalizeTrends(body), nil
}

// ProviderSortKey maps a /news sort_by value to the provider's sort key.
func ProviderSortKey(sortBy string) string {
	if key, ok := providerSortKeys[sortBy]; ok {
		return key
	}
	return "date"
}

func (c *EventRegistryClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrMissingAPIKey
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("eventregistry encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("eventregistry request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.recordUsage(ctx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eventregistry fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("eventregistry %s: %w: %d", path, ErrUpstreamStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("eventregistry read: %w", err)
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("eventregistry %s: %w", path, ErrResponseTooLarge)
	}

	return body, nil
}

func (c *EventRegistryClient) recordUsage(ctx context.Context) {
	if c.usage == nil {
		return
	}
	if err := c.usage.IncrementUsage(ctx, c.Name(), time.Now()); err != nil {
		slog.Warn("error recording api usage", "api", c.Name(), "error", err)
	}
}

type articlesRequest struct {
	Action                   string `json:"action"`
	Keyword                  string `json:"keyword,omitempty"`
	SourceLocationURI        string `json:"sourceLocationUri,omitempty"`
	CategoryURI              string `json:"categoryUri,omitempty"`
	ResultType               string `json:"resultType"`
	ArticlesPage             int    `json:"articlesPage"`
	ArticlesCount            int    `json:"articlesCount"`
	ArticlesSortBy           string `json:"articlesSortBy"`
	ArticlesSortByAsc        bool   `json:"articlesSortByAsc"`
	ForceMaxDataTimeWindow   int    `json:"forceMaxDataTimeWindow"`
	IncludeArticleImage      bool   `json:"includeArticleImage"`
	IncludeArticleCategories bool   `json:"includeArticleCategories"`
	IncludeArticleConcepts   bool   `json:"includeArticleConcepts"`
	IncludeArticleLocation   bool   `json:"includeArticleLocation"`
	IncludeSourceLocation    bool   `json:"includeSourceLocation"`
	APIKey                   string `json:"apiKey"`
}

type trendsRequest struct {
	Action string `json:"action"`
	Source string `json:"source"`
	Count  int    `json:"count"`
	APIKey string `json:"apiKey"`
}

// articlesResponse accepts both {"articles": {"results": [...]}} and a flat
// {"articles": [...]}.
type articlesResponse struct {
	Articles json.RawMessage `json:"articles"`
}

func (r articlesResponse) items() []json.RawMessage {
	var flat []json.RawMessage
	if err := json.Unmarshal(r.Articles, &flat); err == nil {
		return flat
	}

	var nested struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(r.Articles, &nested); err == nil {
		return nested.Results
	}

	return nil
}
