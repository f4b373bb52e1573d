package handlers

import (
	"errors"
	"fmt"

	"account-panel/internal/api/middleware"
	"account-panel/internal/models"
	"account-panel/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
	activities  *services.ActivityService
}

func NewUserHandler(userService *services.UserService, authService *services.AuthService, activities *services.ActivityService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		activities:  activities,
	}
}

type UpdateProfileRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfile handles self-service edits. A password change requires the
// current password; either way a fresh token carrying the updated identity is
// returned so the client doesn't keep presenting stale claims.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(claims.UserID, req.Username, req.Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(401, gin.H{"message": "Current password is incorrect"})
			return
		}
		c.JSON(500, gin.H{"message": "Error updating profile"})
		return
	}

	if req.NewPassword != "" {
		h.activities.Record(&user.ID, models.ActionPasswordChanged,
			fmt.Sprintf("%s changed their password", user.Username), nil)
	} else {
		h.activities.Record(&user.ID, models.ActionProfileUpdated,
			fmt.Sprintf("%s updated their profile", user.Username), nil)
	}

	token, err := h.authService.GenerateToken(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		c.JSON(500, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(200, gin.H{"message": "Profile updated successfully", "token": token})
}

// GetActivities returns the role-scoped activity feed
func (h *UserHandler) GetActivities(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)

	entries, err := h.activities.Feed(claims.UserID, claims.Role == "admin")
	if err != nil {
		c.JSON(500, gin.H{"message": "Error fetching activities"})
		return
	}

	c.JSON(200, entries)
}
