package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fabiansimon/Frello/internal/auth"
	"github.com/fabiansimon/Frello/internal/constants"
	apierrors "github.com/fabiansimon/Frello/internal/errors"
)

// Authenticate reads a bearer token and stores the user ID in the context when
// it is valid. Requests without a valid token pass through unauthenticated.
func Authenticate(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.Next()
			return
		}

		userID, err := tokens.Parse(strings.TrimSpace(token))
		if err == nil {
			c.Set(constants.ContextKeyUserID, userID)
		}
		c.Next()
	}
}

// RequireAuth rejects requests that Authenticate did not identify
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
