package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fabiansimon/Frello/internal/metrics"
	"github.com/fabiansimon/Frello/internal/models"
	"github.com/fabiansimon/Frello/internal/notifications"
	"github.com/fabiansimon/Frello/internal/policy"
	"github.com/fabiansimon/Frello/internal/repository"
)

// TaskService handles task business logic
type TaskService struct {
	projectAccess
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	mailer   notifications.Mailer
	log      *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	mailer notifications.Mailer,
	log *zap.Logger,
) *TaskService {
	return &TaskService{
		projectAccess: projectAccess{projectRepo: projectRepo},
		taskRepo:      taskRepo,
		userRepo:      userRepo,
		mailer:        mailer,
		log:           log,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	ProjectID   uuid.UUID
	AssigneeID  *uuid.UUID
	ActorID     uuid.UUID
}

// UpdateTaskInput represents a partial task update. Nil fields are left as is.
// When AssigneeSet is true the assignee is replaced by AssigneeID, and a nil
// AssigneeID unassigns the task.
type UpdateTaskInput struct {
	ProjectID   uuid.UUID
	Title       *string
	Description *string
	Status      *models.TaskStatus
	AssigneeSet bool
	AssigneeID  *uuid.UUID
}

// CreateTask creates a task in a project the actor belongs to
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleEmpty
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusToDo
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if _, err := s.authorizeProject(ctx, input.ProjectID, input.ActorID, policy.ActionCreateTask); err != nil {
		return nil, err
	}

	if input.AssigneeID != nil {
		if _, err := s.findAssignee(ctx, *input.AssigneeID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Status:      status,
		ProjectID:   input.ProjectID,
		AssigneeID:  input.AssigneeID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		s.log.Error("Failed to create task", zap.String("project_id", input.ProjectID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID, "Assignee")
}

// UpdateTask applies a partial update. Only the project admin and the current
// assignee may update a task. Naming an assignee sends them a reminder email
// once the update is stored; a failed email does not fail the update.
func (s *TaskService) UpdateTask(ctx context.Context, taskID, actorID uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	project, err := s.loadProject(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.ProjectID != project.ID {
		return nil, ErrTaskNotFound
	}

	res, err := s.resource(ctx, project, actorID)
	if err != nil {
		return nil, err
	}
	res.AssigneeID = task.AssigneeID
	if err := authorize(policy.Request{Actor: actorID, Action: policy.ActionUpdateTask, Resource: res}); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		fields["title"] = title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		fields["status"] = string(*input.Status)
	}

	var assignee *models.User
	if input.AssigneeSet {
		if input.AssigneeID == nil {
			fields["assignee_id"] = nil
		} else {
			assignee, err = s.findAssignee(ctx, *input.AssigneeID)
			if err != nil {
				return nil, err
			}
			fields["assignee_id"] = assignee.ID.String()
		}
	}

	if err := s.taskRepo.UpdateFields(ctx, task.ID, fields); err != nil {
		s.log.Error("Failed to update task", zap.String("task_id", taskID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.taskRepo.FindByID(ctx, task.ID, "Assignee")
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	if assignee != nil {
		s.sendReminder(ctx, assignee, project.ID, task.ID)
	}

	return updated, nil
}

// DeleteTask deletes a task and its comments. Admin only.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, actorID uuid.UUID) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}

	if _, err := s.authorizeProject(ctx, task.ProjectID, actorID, policy.ActionDeleteTask); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		s.log.Error("Failed to delete task", zap.String("task_id", taskID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (s *TaskService) sendReminder(ctx context.Context, assignee *models.User, projectID, taskID uuid.UUID) {
	err := s.mailer.SendTaskReminder(ctx, notifications.Reminder{
		Email:     assignee.Email,
		ProjectID: projectID,
		TaskID:    taskID,
	})
	metrics.RecordReminder(err == nil)
	if err != nil {
		s.log.Warn("Failed to send task reminder",
			zap.String("task_id", taskID.String()),
			zap.String("assignee_id", assignee.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *TaskService) findTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) findAssignee(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}
	return user, nil
}
