package handler

import (
	"net/http"
	"time"

	"newstracker/internal/query"
	"newstracker/pkg/news"

	"github.com/gin-gonic/gin"
)

const WelcomeMessage = "Welcome to the Global News Tracker API"

type NewsHandler struct {
	client news.NewsClient
}

func NewNewsHandler(client news.NewsClient) *NewsHandler {
	return &NewsHandler{client: client}
}

func (h *NewsHandler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: WelcomeMessage})
}

// GetNews fetches from the provider and filters/sorts locally. Upstream
// failures are logged and answered with an empty list.
func (h *NewsHandler) GetNews(c *gin.Context) {
	log := requestLogger(c)

	params := query.Params{
		Term:     c.Query("q"),
		Country:  c.Query("country"),
		Category: c.Query("category"),
		SortBy:   c.DefaultQuery("sort_by", query.SortNewest),
	}

	articles, err := h.client.FetchArticles(c.Request.Context(), news.Query{
		Term:     params.Term,
		Country:  params.Country,
		Category: params.Category,
		SortBy:   params.SortBy,
	})
	if err != nil {
		log.Error("error fetching articles", "source", h.client.Name(), "error", err)
		articles = nil
	}

	results := query.Apply(articles, params)

	res := make([]ArticleResponse, 0, len(results))
	for _, a := range results {
		res = append(res, toArticleResponse(a))
	}

	log.Info("news query served", "q", params.Term, "country", params.Country, "category", params.Category,
		"sort_by", params.SortBy, "fetched", len(articles), "returned", len(res))

	c.JSON(http.StatusOK, res)
}

func (h *NewsHandler) GetTrends(c *gin.Context) {
	trends, err := h.client.FetchTrends(c.Request.Context())
	if err != nil {
		requestLogger(c).Error("error fetching trends", "source", h.client.Name(), "error", err)
		trends = nil
	}

	res := TrendsResponse{Trends: make([]TrendResponse, 0, len(trends))}
	for _, t := range trends {
		res.Trends = append(res.Trends, TrendResponse{
			URI:   t.URI,
			Label: t.Label,
			Score: t.Score,
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *NewsHandler) GetHealth(c *gin.Context) {
	if !h.client.Configured() {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Upstream: "unconfigured",
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:   "healthy",
		Upstream: "configured",
	})
}

func toArticleResponse(a news.Article) ArticleResponse {
	return ArticleResponse{
		ID:             a.ID,
		Title:          a.Title,
		Summary:        a.Summary,
		Source:         a.Source,
		Country:        a.Country,
		Category:       a.Category,
		Timestamp:      a.Timestamp.Format(time.RFC3339Nano),
		ImageURL:       a.ImageURL,
		RelevanceScore: a.RelevanceScore,
	}
}
