package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/fabiansimon/Frello/internal/errors"
)

func paramKey(name string) string {
	return "param_uuid_" + name
}

// RequireUUIDParams rejects the request with 400 unless every named path
// parameter is a UUID. Parsed values are read back with GetUUIDParam.
func RequireUUIDParams(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range names {
			id, err := uuid.Parse(c.Param(name))
			if err != nil {
				apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
				return
			}
			c.Set(paramKey(name), id)
		}
		c.Next()
	}
}

func GetUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	value, exists := c.Get(paramKey(name))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
