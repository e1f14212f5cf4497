package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-service/middleware"
	"engagement-service/model"
)

type todoStore interface {
	List(ctx context.Context, userID string) ([]model.Todo, error)
	Create(ctx context.Context, userID, title string) (model.Todo, error)
	SetCompleted(ctx context.Context, userID, todoID string, isCompleted bool) error
	Delete(ctx context.Context, userID, todoID string) error
}

type TodosHandler struct {
	todos todoStore
}

func NewTodosHandler(todos todoStore) *TodosHandler {
	return &TodosHandler{todos: todos}
}

func (h *TodosHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	todos, err := h.todos.List(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to list todos for user %s: %v", userID, err)
		c.JSON(statusForStoreError(err), gin.H{"error": "Failed to load todos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"todos": todos, "count": len(todos)})
}

func (h *TodosHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), userID, req.Title)
	if err != nil {
		log.Printf("Failed to create todo for user %s: %v", userID, err)
		c.JSON(statusForStoreError(err), gin.H{"error": "Failed to create todo"})
		return
	}

	c.JSON(http.StatusCreated, todo)
}

func (h *TodosHandler) SetCompleted(c *gin.Context) {
	userID := middleware.UserID(c)
	todoID := c.Param("id")

	var req struct {
		IsCompleted *bool `json:"isCompleted" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.todos.SetCompleted(c.Request.Context(), userID, todoID, *req.IsCompleted); err != nil {
		log.Printf("Failed to update todo %s for user %s: %v", todoID, userID, err)
		c.JSON(statusForStoreError(err), gin.H{"error": "Failed to update todo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": todoID, "isCompleted": *req.IsCompleted})
}

func (h *TodosHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	todoID := c.Param("id")

	if err := h.todos.Delete(c.Request.Context(), userID, todoID); err != nil {
		log.Printf("Failed to delete todo %s for user %s: %v", todoID, userID, err)
		c.JSON(statusForStoreError(err), gin.H{"error": "Failed to delete todo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": todoID, "deleted": true})
}
