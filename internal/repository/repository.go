package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fabiansimon/Frello/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Update persists all fields of user
	Update(ctx context.Context, user *models.User) error
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// CreateWithAdmin creates the project and the admin's membership atomically
	CreateWithAdmin(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)

	// ListForUser lists the projects userID is a member of, newest first
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error)

	// Delete removes the project together with its tasks, their comments and all memberships
	Delete(ctx context.Context, id uuid.UUID) error

	// AddMember adds a member to a project
	AddMember(ctx context.Context, member *models.ProjectMember) error

	// RemoveMember removes the membership and unassigns the user's tasks in the project
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error

	// FindMember finds a specific project member
	FindMember(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectMember, error)

	// IsMember reports whether userID belongs to the project
	IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)

	// ListMembers lists all members of a project with their users preloaded
	ListMembers(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uuid.UUID, preload ...string) (*models.Task, error)

	// ListByProject lists a project's tasks, oldest first, with assignees preloaded
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error)

	// UpdateFields writes only the given columns of the task
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error

	// Delete removes a task and its comments
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID finds a comment by ID with its task and author preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)

	// ListByTask lists a task's comments, oldest first, with authors preloaded
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Comment, error)

	// Delete removes a comment
	Delete(ctx context.Context, id uuid.UUID) error
}
