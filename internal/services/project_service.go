package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fabiansimon/Frello/internal/board"
	"github.com/fabiansimon/Frello/internal/models"
	"github.com/fabiansimon/Frello/internal/policy"
	"github.com/fabiansimon/Frello/internal/repository"
)

// ProjectService handles projects and their membership.
type ProjectService struct {
	projectAccess
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
	log      *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, taskRepo repository.TaskRepository, log *zap.Logger) *ProjectService {
	return &ProjectService{
		projectAccess: projectAccess{projectRepo: projectRepo},
		userRepo:      userRepo,
		taskRepo:      taskRepo,
		log:           log,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Title       string
	Description string
	AdminID     uuid.UUID
}

// ProjectDetail is a project with everything its board page needs.
type ProjectDetail struct {
	Project *models.Project
	Tasks   []models.Task
	Users   []models.User
	Board   board.Board
}

// BoardView is the board plus its tile summary for one viewer.
type BoardView struct {
	Board   board.Board
	Summary board.BoardSummary
}

// ListUserProjects returns the projects userID is a member of.
func (s *ProjectService) ListUserProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	projects, err := s.projectRepo.ListForUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list projects", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns the project with its tasks, members and board.
func (s *ProjectService) GetProject(ctx context.Context, projectID, userID uuid.UUID) (*ProjectDetail, error) {
	project, err := s.authorizeProject(ctx, projectID, userID, policy.ActionViewProject)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(ctx, project.ID)
	if err != nil {
		s.log.Error("Failed to list tasks", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	members, err := s.projectRepo.ListMembers(ctx, project.ID)
	if err != nil {
		s.log.Error("Failed to list members", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	b, err := board.Partition(tasks)
	if err != nil {
		s.log.Error("Failed to build board", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to build board: %w", err)
	}

	users := make([]models.User, 0, len(members))
	for _, m := range members {
		users = append(users, m.User)
	}

	return &ProjectDetail{Project: project, Tasks: tasks, Users: users, Board: b}, nil
}

// GetBoard returns the board of the project and the viewer's summary.
func (s *ProjectService) GetBoard(ctx context.Context, projectID, userID uuid.UUID) (*BoardView, error) {
	detail, err := s.GetProject(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	return &BoardView{Board: detail.Board, Summary: board.Summary(detail.Board, userID)}, nil
}

// CreateProject creates a project administered by the caller.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleEmpty
	}

	project := &models.Project{
		Title:       title,
		Description: input.Description,
		AdminID:     input.AdminID,
	}

	if err := s.projectRepo.CreateWithAdmin(ctx, project); err != nil {
		s.log.Error("Failed to create project", zap.String("admin_id", input.AdminID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// DeleteProject removes the project and everything in it. Admin only.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID, actorID uuid.UUID) error {
	if _, err := s.authorizeProject(ctx, projectID, actorID, policy.ActionDeleteProject); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		s.log.Error("Failed to delete project", zap.String("project_id", projectID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.log.Info("Project deleted", zap.String("project_id", projectID.String()), zap.String("actor_id", actorID.String()))
	return nil
}

// AddMember adds the user registered under email to the project. Admin only.
func (s *ProjectService) AddMember(ctx context.Context, email string, projectID, actorID uuid.UUID) (*models.User, error) {
	if _, err := s.authorizeProject(ctx, projectID, actorID, policy.ActionAddMember); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	isMember, err := s.projectRepo.IsMember(ctx, projectID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify project membership: %w", err)
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	if err := s.projectRepo.AddMember(ctx, &models.ProjectMember{ProjectID: projectID, UserID: user.ID}); err != nil {
		s.log.Error("Failed to add member",
			zap.String("project_id", projectID.String()),
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return user, nil
}

// RemoveMember removes userID from the project and unassigns their tasks there. Admin only.
func (s *ProjectService) RemoveMember(ctx context.Context, userID, projectID, actorID uuid.UUID) error {
	project, err := s.authorizeProject(ctx, projectID, actorID, policy.ActionRemoveMember)
	if err != nil {
		return err
	}

	if project.IsAdmin(userID) {
		return ErrCannotRemoveAdmin
	}

	if _, err := s.projectRepo.FindMember(ctx, projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if err := s.projectRepo.RemoveMember(ctx, projectID, userID); err != nil {
		s.log.Error("Failed to remove member",
			zap.String("project_id", projectID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
