package handler

import (
	"context"
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"engagement-service/metrics"
	"engagement-service/middleware"
	"engagement-service/store"
)

type feedSubscriber interface {
	SubscribeFeed(ctx context.Context, viewerID string) (*store.FeedSubscription, error)
}

// StreamHandler exposes the live article feed over SSE. Each event carries a
// full re-projected snapshot, mirroring what the subscription delivers.
type StreamHandler struct {
	feed feedSubscriber
}

func NewStreamHandler(feed feedSubscriber) *StreamHandler {
	return &StreamHandler{feed: feed}
}

func (h *StreamHandler) StreamFeed(c *gin.Context) {
	viewerID := middleware.UserID(c)

	sub, err := h.feed.SubscribeFeed(c.Request.Context(), viewerID)
	if err != nil {
		log.Printf("Feed subscription failed for user %s: %v", viewerID, err)
		c.JSON(statusForStoreError(err), gin.H{"error": "Failed to open feed stream"})
		return
	}
	defer sub.Cancel()

	metrics.FeedConnectionsActive.Inc()
	defer metrics.FeedConnectionsActive.Dec()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-sub.Snapshots:
			if !ok {
				return false
			}
			c.SSEvent("articles", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
