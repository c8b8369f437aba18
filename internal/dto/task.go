package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/fabiansimon/Frello/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	ProjectID   uuid.UUID         `json:"project_id"`
	AssigneeID  *uuid.UUID        `json:"assignee_id"`
	Assignee    *UserDTO          `json:"assignee,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status" binding:"omitempty,oneof=ToDo InProgress InReview Declined Done"`
	ProjectID   string  `json:"project_id" binding:"required"`
	AssigneeID  *string `json:"assignee_id"`
}

// UpdateTaskRequest is a partial update. assignee_id may be null to unassign.
type UpdateTaskRequest struct {
	ProjectID   string           `json:"project_id" binding:"required"`
	Title       *string          `json:"title" binding:"omitempty,min=1"`
	Description *string          `json:"description"`
	Status      *string          `json:"status" binding:"omitempty,oneof=ToDo InProgress InReview Declined Done"`
	AssigneeID  Nullable[string] `json:"assignee_id"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		ProjectID:   task.ProjectID,
		AssigneeID:  task.AssigneeID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include assignee if preloaded
	if task.Assignee != nil {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}
