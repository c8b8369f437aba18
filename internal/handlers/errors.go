package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/fabiansimon/Frello/internal/errors"
	"github.com/fabiansimon/Frello/internal/middleware"
	"github.com/fabiansimon/Frello/internal/services"
)

// respondError maps service errors to API errors. Unknown errors become 500
// and are attached to the context for the request logger.
func respondError(c *gin.Context, err error) {
	var forbidden *services.ForbiddenError
	if errors.As(err, &forbidden) {
		apierrors.Forbidden(c, forbidden.Reason)
		return
	}

	switch {
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.AlreadyExists(c, "User already exists with that email. Please log in instead.")
	case errors.Is(err, services.ErrAlreadyMember):
		apierrors.AlreadyExists(c, "User is already part of the project.")
	case errors.Is(err, services.ErrCannotRemoveAdmin):
		apierrors.Conflict(c, "The admin cannot be removed from the project.")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "No user found with that email")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "No project found with the provided project ID.")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task ID was not found.")
	case errors.Is(err, services.ErrCommentNotFound):
		apierrors.NotFound(c, "No comment found with that ID")
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, "User not found with the provided ID.")
	case errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, "User is not part of the project.")
	case errors.Is(err, services.ErrTitleEmpty):
		apierrors.BadRequest(c, "Title cannot be empty")
	case errors.Is(err, services.ErrCommentEmpty):
		apierrors.BadRequest(c, "Comment cannot be empty")
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, "Invalid task status")
	case errors.Is(err, services.ErrInvalidSuggestion):
		apierrors.BadGateway(c, "AI suggestion did not name a project member")
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	case errors.Is(err, services.ErrAIRequestFailed):
		apierrors.ServiceUnavailable(c, "AI service is temporarily unavailable")
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

func respondBindError(c *gin.Context, err error) {
	apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
}

// currentUser returns the authenticated user, answering 401 when there is none.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
	}
	return userID, ok
}

// bodyUUID parses an ID sent in a request body with the same rule path
// parameters use, answering 400 when it is malformed.
func bodyUUID(c *gin.Context, field, value string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+field)
		return uuid.Nil, false
	}
	return id, true
}

// uuidParam returns a path parameter validated by middleware.RequireUUIDParams,
// falling back to parsing it directly.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	if id, ok := middleware.GetUUIDParam(c, name); ok {
		return id, true
	}
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
