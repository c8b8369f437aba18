package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabiansimon/Frello/internal/dto"
	"github.com/fabiansimon/Frello/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateComment posts a comment on a task
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	projectID, ok := bodyUUID(c, "project_id", req.ProjectID)
	if !ok {
		return
	}
	taskID, ok := bodyUUID(c, "task_id", req.TaskID)
	if !ok {
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), projectID, taskID, req.Text, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// RemoveComment deletes a comment and returns it
func (h *CommentHandler) RemoveComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := uuidParam(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.commentService.RemoveComment(c.Request.Context(), projectID, commentID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}
