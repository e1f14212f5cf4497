package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"engagement-service/middleware"
	"engagement-service/model"
	"engagement-service/store"
)

type articleLister interface {
	List(ctx context.Context, viewerID string) ([]model.Article, error)
	ListLiked(ctx context.Context, viewerID string) ([]model.Article, error)
}

type engagementService interface {
	ToggleLike(ctx context.Context, userID, articleID string) (bool, error)
	RecordView(ctx context.Context, articleID string) error
}

// ArticlesHandler serves the projected article feed and the engagement
// endpoints.
type ArticlesHandler struct {
	articles   articleLister
	engagement engagementService
}

func NewArticlesHandler(articles articleLister, engagement engagementService) *ArticlesHandler {
	return &ArticlesHandler{articles: articles, engagement: engagement}
}

// List returns the full feed projected for the authenticated viewer.
func (h *ArticlesHandler) List(c *gin.Context) {
	viewerID := middleware.UserID(c)

	articles, err := h.articles.List(c.Request.Context(), viewerID)
	if err != nil {
		log.Printf("Failed to list articles for user %s: %v", viewerID, err)
		c.JSON(statusForStoreError(err), gin.H{"error": "Failed to load articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
	})
}

// ListLiked returns the viewer's saved tab: only the articles they like.
func (h *ArticlesHandler) ListLiked(c *gin.Context) {
	viewerID := middleware.UserID(c)

	articles, err := h.articles.ListLiked(c.Request.Context(), viewerID)
	if err != nil {
		log.Printf("Failed to list liked articles for user %s: %v", viewerID, err)
		c.JSON(statusForStoreError(err), gin.H{"error": "Failed to load liked articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
	})
}

// ToggleLike flips the viewer's like on the article.
func (h *ArticlesHandler) ToggleLike(c *gin.Context) {
	userID := middleware.UserID(c)
	articleID := c.Param("id")

	liked, err := h.engagement.ToggleLike(c.Request.Context(), userID, articleID)
	if err != nil {
		log.Printf("Like toggle failed for article %s, user %s: %v", articleID, userID, err)
		c.JSON(statusForStoreError(err), gin.H{"error": "Failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"articleId": articleID, "liked": liked})
}

// RecordView records one view, fire-and-forget. The write continues in the
// background; the client gets an immediate 202.
func (h *ArticlesHandler) RecordView(c *gin.Context) {
	articleID := c.Param("id")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.engagement.RecordView(ctx, articleID); err != nil {
			log.Printf("Failed to record view for article %s: %v", articleID, err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"articleId": articleID})
}

func statusForStoreError(err error) int {
	switch {
	case errors.Is(err, store.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, store.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
