package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-service/middleware"
	"engagement-service/model"
)

type quoteStore interface {
	List(ctx context.Context, userID string) ([]model.Quote, error)
	Create(ctx context.Context, userID, content, author string) (model.Quote, error)
}

// QuotesHandler serves the quotes journal. Quotes are append-only, so there
// is no update or delete route.
type QuotesHandler struct {
	quotes quoteStore
}

func NewQuotesHandler(quotes quoteStore) *QuotesHandler {
	return &QuotesHandler{quotes: quotes}
}

func (h *QuotesHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	quotes, err := h.quotes.List(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to list quotes for user %s: %v", userID, err)
		c.JSON(statusForStoreError(err), gin.H{"error": "Failed to load quotes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotes": quotes, "count": len(quotes)})
}

func (h *QuotesHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req struct {
		Content string `json:"content" binding:"required"`
		Author  string `json:"author" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.quotes.Create(c.Request.Context(), userID, req.Content, req.Author)
	if err != nil {
		log.Printf("Failed to create quote for user %s: %v", userID, err)
		c.JSON(statusForStoreError(err), gin.H{"error": "Failed to create quote"})
		return
	}

	c.JSON(http.StatusCreated, quote)
}
