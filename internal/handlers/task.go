package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabiansimon/Frello/internal/dto"
	"github.com/fabiansimon/Frello/internal/models"
	"github.com/fabiansimon/Frello/internal/services"
)

type TaskHandler struct {
	taskService    *services.TaskService
	commentService *services.CommentService
}

func NewTaskHandler(taskService *services.TaskService, commentService *services.CommentService) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		commentService: commentService,
	}
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	projectID, ok := bodyUUID(c, "project_id", req.ProjectID)
	if !ok {
		return
	}

	input := services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		ProjectID:   projectID,
		ActorID:     userID,
	}
	if req.AssigneeID != nil {
		assigneeID, ok := bodyUUID(c, "assignee_id", *req.AssigneeID)
		if !ok {
			return
		}
		input.AssigneeID = &assigneeID
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates only the fields present in the body
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	projectID, ok := bodyUUID(c, "project_id", req.ProjectID)
	if !ok {
		return
	}

	input := services.UpdateTaskInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		AssigneeSet: req.AssigneeID.Set,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.AssigneeID.Set && req.AssigneeID.Valid {
		assigneeID, ok := bodyUUID(c, "assignee_id", req.AssigneeID.Value)
		if !ok {
			return
		}
		input.AssigneeID = &assigneeID
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task and its comments
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// ListComments returns the comments of a task, oldest first
func (h *TaskHandler) ListComments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), taskID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": dto.ToCommentDTOs(comments)})
}
