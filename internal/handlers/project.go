package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabiansimon/Frello/internal/dto"
	"github.com/fabiansimon/Frello/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	aiService      *services.AIService
}

func NewProjectHandler(projectService *services.ProjectService, aiService *services.AIService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		aiService:      aiService,
	}
}

// ListProjects returns the projects the current user is a member of
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListUserProjects(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectDTOs(projects)})
}

// CreateProject creates a project with the current user as admin
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		AdminID:     userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// GetProject returns the project with its tasks, members and board
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.projectService.GetProject(c.Request.Context(), projectID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProjectDetailResponse{
		Project: dto.ToProjectDTO(*detail.Project),
		Tasks:   dto.ToTaskDTOs(detail.Tasks),
		Users:   dto.ToUserDTOs(detail.Users),
		Board:   dto.ToBoardDTO(detail.Board),
	})
}

func (h *ProjectHandler) GetBoard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	view, err := h.projectService.GetBoard(c.Request.Context(), projectID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BoardResponse{Board: dto.ToBoardDTO(view.Board), Summary: view.Summary})
}

// DeleteProject deletes the project and everything in it
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), projectID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// AddMember adds a registered user to the project by email
func (h *ProjectHandler) AddMember(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.projectService.AddMember(c.Request.Context(), req.Email, projectID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// RemoveMember removes a member from the project
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := uuidParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.projectService.RemoveMember(c.Request.Context(), memberID, projectID, actorID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

// SuggestAssignee asks the AI which member fits the described task best
func (h *ProjectHandler) SuggestAssignee(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.SuggestAssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	suggestion, err := h.aiService.SuggestAssignee(c.Request.Context(), projectID, req.TaskDescription, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuggestAssigneeResponse{UserID: suggestion.UserID})
}
