package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-service/middleware"
	"engagement-service/model"
)

type userGetter interface {
	GetByID(ctx context.Context, id string) (model.User, error)
}

// UsersHandler serves the authenticated user's own profile.
type UsersHandler struct {
	users userGetter
}

func NewUsersHandler(users userGetter) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) Me(c *gin.Context) {
	userID := middleware.UserID(c)

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to load profile for user %s: %v", userID, err)
		c.JSON(statusForStoreError(err), gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}
