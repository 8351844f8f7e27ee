package handler

import (
	"context"
	"net/http"
	"time"

	"newstracker/internal/model"

	"github.com/gin-gonic/gin"
)

type UsageStore interface {
	GetUsage(ctx context.Context, apiName string, day time.Time) (*model.ApiUsage, error)
}

type UsageHandler struct {
	repository UsageStore
	apiName    string
}

// NewUsageHandler serves today's upstream request count for apiName.
// A nil repository means usage tracking is disabled.
func NewUsageHandler(repository UsageStore, apiName string) *UsageHandler {
	return &UsageHandler{repository: repository, apiName: apiName}
}

func (h *UsageHandler) GetUsage(c *gin.Context) {
	if h.repository == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usage tracking disabled"})
		return
	}

	usage, err := h.repository.GetUsage(c.Request.Context(), h.apiName, time.Now())
	if err != nil {
		requestLogger(c).Error("error fetching api usage", "api", h.apiName, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Usage store error"})
		return
	}

	c.JSON(http.StatusOK, UsageResponse{
		API:      usage.ApiName,
		Date:     usage.UsageDate.Format(model.UsageDateLayout),
		Requests: usage.RequestCount,
	})
}
