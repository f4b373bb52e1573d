package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"account-panel/internal/api/middleware"
	"account-panel/internal/models"
	"account-panel/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	userService *services.UserService
	activities  *services.ActivityService
}

func NewAdminHandler(userService *services.UserService, activities *services.ActivityService) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		activities:  activities,
	}
}

type UpdateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type userSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// GetUsers returns all users without password hashes
func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers()
	if err != nil {
		c.JSON(500, gin.H{"message": "Error fetching users"})
		return
	}

	summaries := make([]userSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, userSummary{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
		})
	}

	c.JSON(200, summaries)
}

// UpdateUser applies an admin edit to the target user
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid user ID"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.userService.UpdateUser(uint(id), req.Username, req.Email, req.Role); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(404, gin.H{"message": "User not found"})
			return
		}
		c.JSON(500, gin.H{"message": "Error updating user"})
		return
	}

	claims, _ := middleware.GetClaims(c)
	targetID := uint(id)
	h.activities.Record(&claims.UserID, models.ActionUserUpdated,
		fmt.Sprintf("%s updated user %s", claims.Username, req.Username), &targetID)

	c.JSON(200, gin.H{"message": "User updated successfully"})
}

// DeleteUser hard-deletes the target user. The target is fetched before the
// delete so its username can still appear in the audit description.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid user ID"})
		return
	}

	user, err := h.userService.DeleteUser(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(404, gin.H{"message": "User not found"})
			return
		}
		c.JSON(500, gin.H{"message": "Error deleting user"})
		return
	}

	claims, _ := middleware.GetClaims(c)
	h.activities.Record(&claims.UserID, models.ActionUserDeleted,
		fmt.Sprintf("%s deleted user %s", claims.Username, user.Username), &user.ID)

	c.JSON(200, gin.H{"message": "User deleted successfully"})
}
