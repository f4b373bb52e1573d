package handlers

import (
	"errors"
	"fmt"

	"account-panel/internal/api/middleware"
	"account-panel/internal/models"
	"account-panel/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
	activities  *services.ActivityService
}

func NewAuthHandler(authService *services.AuthService, activities *services.ActivityService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		activities:  activities,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles account creation. The endpoint is open; an authenticated
// caller may also use it, in which case the activity record is attributed to
// the caller rather than the new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			c.JSON(400, gin.H{"message": "Username or email already exists"})
			return
		}
		c.JSON(500, gin.H{"message": "Error creating user"})
		return
	}

	actorID := user.ID
	if claims, ok := middleware.GetClaims(c); ok {
		actorID = claims.UserID
	}
	h.activities.Record(&actorID, models.ActionAccountCreated,
		fmt.Sprintf("Account created for %s", user.Username), &user.ID)

	c.JSON(201, gin.H{"message": "User registered successfully", "userId": user.ID})
}

// Login authenticates by email and password and issues a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(401, gin.H{"message": "Invalid credentials"})
			return
		}
		c.JSON(500, gin.H{"message": "Error during login"})
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		c.JSON(500, gin.H{"message": "Failed to generate token"})
		return
	}

	h.activities.Record(&user.ID, models.ActionUserLogin,
		fmt.Sprintf("%s logged in", user.Username), nil)

	c.JSON(200, gin.H{"token": token})
}

// Verify re-checks that the token's account still exists. A token for a
// since-deleted user verifies structurally but reports valid: false.
func (h *AuthHandler) Verify(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)

	exists, err := h.authService.UserExists(claims.UserID)
	if err != nil {
		c.JSON(500, gin.H{"message": "Error verifying token"})
		return
	}

	c.JSON(200, gin.H{"valid": exists})
}
