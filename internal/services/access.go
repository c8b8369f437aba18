package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fabiansimon/Frello/internal/models"
	"github.com/fabiansimon/Frello/internal/policy"
	"github.com/fabiansimon/Frello/internal/repository"
)

// projectAccess loads the facts the policy needs about a project.
type projectAccess struct {
	projectRepo repository.ProjectRepository
}

func (a projectAccess) loadProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	project, err := a.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (a projectAccess) resource(ctx context.Context, project *models.Project, actorID uuid.UUID) (policy.Resource, error) {
	isMember, err := a.projectRepo.IsMember(ctx, project.ID, actorID)
	if err != nil {
		return policy.Resource{}, fmt.Errorf("failed to verify project membership: %w", err)
	}
	return policy.Resource{AdminID: project.AdminID, IsMember: isMember}, nil
}

// authorizeProject loads the project and checks action for actorID on it.
func (a projectAccess) authorizeProject(ctx context.Context, projectID, actorID uuid.UUID, action policy.Action) (*models.Project, error) {
	project, err := a.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	res, err := a.resource(ctx, project, actorID)
	if err != nil {
		return nil, err
	}

	if err := authorize(policy.Request{Actor: actorID, Action: action, Resource: res}); err != nil {
		return nil, err
	}
	return project, nil
}
