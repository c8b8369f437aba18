package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/fabiansimon/Frello/internal/board"
	"github.com/fabiansimon/Frello/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AdminID     uuid.UUID `json:"admin_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ColumnDTO is one board column
type ColumnDTO struct {
	Status models.TaskStatus `json:"status"`
	Title  string            `json:"title"`
	Color  board.Color       `json:"color"`
	Tasks  []TaskDTO         `json:"tasks"`
}

type BoardDTO struct {
	Columns []ColumnDTO `json:"columns"`
}

// ProjectDetailResponse is everything the project page needs
type ProjectDetailResponse struct {
	Project ProjectDTO `json:"project"`
	Tasks   []TaskDTO  `json:"tasks"`
	Users   []UserDTO  `json:"users"`
	Board   BoardDTO   `json:"board"`
}

type BoardResponse struct {
	Board   BoardDTO           `json:"board"`
	Summary board.BoardSummary `json:"summary"`
}

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type SuggestAssigneeRequest struct {
	TaskDescription string `json:"task_description" binding:"required"`
}

type SuggestAssigneeResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		AdminID:     project.AdminID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = ToProjectDTO(p)
	}
	return out
}

// ToBoardDTO converts a derived board, keeping column order
func ToBoardDTO(b board.Board) BoardDTO {
	columns := make([]ColumnDTO, len(b.Columns))
	for i, col := range b.Columns {
		columns[i] = ColumnDTO{
			Status: col.Status,
			Title:  col.Title,
			Color:  col.Color,
			Tasks:  ToTaskDTOs(col.Tasks),
		}
	}
	return BoardDTO{Columns: columns}
}
