package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabiansimon/Frello/internal/dto"
	"github.com/fabiansimon/Frello/internal/services"
)

// AuthHandler coordinates authentication and profile HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a user and returns it with an access token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Name:      req.Name,
		Role:      req.Role,
		Email:     req.Email,
		Expertise: req.Expertise,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{User: dto.ToUserDTO(*result.User), Token: result.Token})
}

// Login issues a token for the user registered under the given email.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{User: dto.ToUserDTO(*result.User), Token: result.Token})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateCurrentUser edits the caller's name, role or expertise.
func (h *AuthHandler) UpdateCurrentUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.UpdateUser(c.Request.Context(), userID, services.UpdateUserInput{
		Name:      req.Name,
		Role:      req.Role,
		Expertise: req.Expertise,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
