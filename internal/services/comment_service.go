package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fabiansimon/Frello/internal/models"
	"github.com/fabiansimon/Frello/internal/policy"
	"github.com/fabiansimon/Frello/internal/repository"
)

var ErrCommentEmpty = errors.New("comment cannot be empty")

// CommentService handles task comments
type CommentService struct {
	projectAccess
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	log         *zap.Logger
}

func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, log *zap.Logger) *CommentService {
	return &CommentService{
		projectAccess: projectAccess{projectRepo: projectRepo},
		commentRepo:   commentRepo,
		taskRepo:      taskRepo,
		log:           log,
	}
}

// CreateComment posts text on a task of the project. Members only.
func (s *CommentService) CreateComment(ctx context.Context, projectID, taskID uuid.UUID, text string, actorID uuid.UUID) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentEmpty
	}

	project, err := s.authorizeProject(ctx, projectID, actorID, policy.ActionCreateComment)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if task.ProjectID != project.ID {
		return nil, ErrTaskNotFound
	}

	comment := &models.Comment{
		Content: text,
		TaskID:  task.ID,
		UserID:  actorID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment", zap.String("task_id", taskID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.commentRepo.FindByID(ctx, comment.ID)
}

// RemoveComment deletes a comment. Allowed for its author and the project admin.
func (s *CommentService) RemoveComment(ctx context.Context, projectID, commentID, actorID uuid.UUID) (*models.Comment, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	if comment.Task.ProjectID != project.ID {
		return nil, ErrCommentNotFound
	}

	res, err := s.resource(ctx, project, actorID)
	if err != nil {
		return nil, err
	}
	res.AuthorID = comment.UserID
	if err := authorize(policy.Request{Actor: actorID, Action: policy.ActionDeleteComment, Resource: res}); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		s.log.Error("Failed to delete comment", zap.String("comment_id", commentID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	return comment, nil
}

// ListComments returns a task's comments, oldest first. Members only.
func (s *CommentService) ListComments(ctx context.Context, taskID, actorID uuid.UUID) ([]models.Comment, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.authorizeProject(ctx, task.ProjectID, actorID, policy.ActionViewComments); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(ctx, task.ID)
	if err != nil {
		s.log.Error("Failed to list comments", zap.String("task_id", taskID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
