package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/fabiansimon/Frello/internal/models"
)

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	TaskID    uuid.UUID `json:"task_id"`
	UserID    uuid.UUID `json:"user_id"`
	User      *UserDTO  `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	TaskID    string `json:"task_id" binding:"required"`
	Text      string `json:"text" binding:"required"`
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:        comment.ID,
		Content:   comment.Content,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		CreatedAt: comment.CreatedAt,
	}

	// Include author if preloaded
	if comment.User.ID != uuid.Nil {
		author := ToUserDTO(comment.User)
		dto.User = &author
	}

	return dto
}

func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	out := make([]CommentDTO, len(comments))
	for i, c := range comments {
		out[i] = ToCommentDTO(c)
	}
	return out
}
