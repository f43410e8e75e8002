package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func NewHandler(runner RunnerInterface, snapshots SnapshotReader) *Handler {
	return &Handler{
		runner:    runner,
		snapshots: snapshots,
	}
}

// GetKyukou runs a full synchronous fetch-classify-persist cycle and returns
// the run result. force_refresh=true discards the loaded cache contents so
// every announcement is re-analyzed.
func (h *Handler) GetKyukou(c *gin.Context) {
	token := c.Query("canvas_token")
	forceRefresh := c.Query("force_refresh") == "true"

	slog.Info("Cancellation fetch requested", "has_token", token != "", "force_refresh", forceRefresh)

	result, err := h.runner.Run(c.Request.Context(), token, forceRefresh)
	if err != nil {
		slog.Error("Run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLatest serves the newest snapshot without triggering a fetch.
func (h *Handler) GetLatest(c *gin.Context) {
	result, err := h.snapshots.Latest()
	if err != nil {
		slog.Error("Failed to read latest snapshot", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to read latest results",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	})
}
