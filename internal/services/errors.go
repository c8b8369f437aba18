package services

import (
	"errors"

	"github.com/fabiansimon/Frello/internal/policy"
)

var (
	ErrEmailTaken        = errors.New("user already exists with that email")
	ErrUserNotFound      = errors.New("user not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrAssigneeNotFound  = errors.New("assignee not found")
	ErrAlreadyMember     = errors.New("user is already part of the project")
	ErrMemberNotFound    = errors.New("user is not part of the project")
	ErrCannotRemoveAdmin = errors.New("the admin cannot be removed from the project")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrTitleEmpty        = errors.New("title cannot be empty")
	ErrForbidden         = errors.New("forbidden")

	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrInvalidSuggestion      = errors.New("AI suggestion is not a valid project member")
)

// ForbiddenError carries the policy reason for a denied action.
// errors.Is(err, ErrForbidden) holds for it.
type ForbiddenError struct {
	Action policy.Action
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

func authorize(req policy.Request) error {
	decision := policy.Decide(req)
	if decision.Allowed() {
		return nil
	}
	return &ForbiddenError{Action: decision.Action, Reason: decision.Reason}
}
