package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fabiansimon/Frello/internal/auth"
	"github.com/fabiansimon/Frello/internal/dto"
	apierrors "github.com/fabiansimon/Frello/internal/errors"
	"github.com/fabiansimon/Frello/internal/middleware"
	"github.com/fabiansimon/Frello/internal/models"
	"github.com/fabiansimon/Frello/internal/notifications"
	"github.com/fabiansimon/Frello/internal/repository"
	"github.com/fabiansimon/Frello/internal/services"
	"github.com/fabiansimon/Frello/internal/testutil"
)

type HandlerSuite struct {
	suite.Suite

	db     *gorm.DB
	tokens *auth.TokenManager
	engine *gin.Engine
	auth   *services.AuthService

	admin  *models.User
	member *models.User
	other  *models.User
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	s.db = testutil.NewDB(s.T())
	s.tokens = auth.NewTokenManager("handler-secret", 0)

	userRepo := repository.NewUserRepository(s.db)
	projectRepo := repository.NewProjectRepository(s.db)
	taskRepo := repository.NewTaskRepository(s.db)
	commentRepo := repository.NewCommentRepository(s.db)

	s.auth = services.NewAuthService(userRepo, s.tokens, log)
	projectService := services.NewProjectService(projectRepo, userRepo, taskRepo, log)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, notifications.NewLogMailer(log, "http://frello.test"), log)
	commentService := services.NewCommentService(commentRepo, taskRepo, projectRepo, log)
	aiService := services.NewAIService(projectRepo, nil, services.AIConfig{RequestsPerMinute: 60}, log)

	authHandler := NewAuthHandler(s.auth)
	projectHandler := NewProjectHandler(projectService, aiService)
	taskHandler := NewTaskHandler(taskService, commentService)
	commentHandler := NewCommentHandler(commentService)

	r := gin.New()
	r.Use(middleware.Authenticate(s.tokens))
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)
	r.GET("/api/auth/me", authHandler.GetCurrentUser)
	r.PATCH("/api/users/me", authHandler.UpdateCurrentUser)
	r.GET("/api/projects", projectHandler.ListProjects)
	r.POST("/api/projects", projectHandler.CreateProject)
	r.GET("/api/projects/:id", projectHandler.GetProject)
	r.GET("/api/projects/:id/board", projectHandler.GetBoard)
	r.DELETE("/api/projects/:id", projectHandler.DeleteProject)
	r.POST("/api/projects/:id/members", projectHandler.AddMember)
	r.DELETE("/api/projects/:id/members/:user_id", projectHandler.RemoveMember)
	r.POST("/api/projects/:id/suggestions/assignee", projectHandler.SuggestAssignee)
	r.DELETE("/api/projects/:id/comments/:comment_id", commentHandler.RemoveComment)
	r.POST("/api/tasks", taskHandler.CreateTask)
	r.PATCH("/api/tasks/:id", taskHandler.UpdateTask)
	r.DELETE("/api/tasks/:id", taskHandler.DeleteTask)
	r.GET("/api/tasks/:id/comments", taskHandler.ListComments)
	r.POST("/api/comments", commentHandler.CreateComment)
	s.engine = r

	s.admin = testutil.CreateUser(s.T(), s.db, "admin@frello.test")
	s.member = testutil.CreateUser(s.T(), s.db, "member@frello.test")
	s.other = testutil.CreateUser(s.T(), s.db, "other@frello.test")
}

func (s *HandlerSuite) token(user *models.User) string {
	token, err := s.tokens.Issue(user.ID)
	s.Require().NoError(err)
	return token
}

func (s *HandlerSuite) do(method, path string, user *models.User, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("Authorization", "Bearer "+s.token(user))
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *HandlerSuite) requireError(w *httptest.ResponseRecorder, status int, code, message string) {
	s.Require().Equal(status, w.Code, w.Body.String())
	apiErr := decode[apierrors.APIError](s.T(), w)
	s.Equal(code, apiErr.Code)
	if message != "" {
		s.Equal(message, apiErr.Message)
	}
}

func (s *HandlerSuite) project() *models.Project {
	project := testutil.CreateProject(s.T(), s.db, "Launch", s.admin)
	testutil.AddMember(s.T(), s.db, project, s.member)
	return project
}

func (s *HandlerSuite) TestRegisterAndLogin() {
	w := s.do(http.MethodPost, "/api/auth/register", nil, map[string]string{
		"name":      "Grace",
		"role":      "Engineer",
		"email":     "Grace@Frello.test",
		"expertise": "COBOL",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	registered := decode[dto.AuthResponse](s.T(), w)
	s.Equal("grace@frello.test", registered.User.Email)
	s.NotEmpty(registered.Token)

	userID, err := s.tokens.Parse(registered.Token)
	s.Require().NoError(err)
	s.Equal(registered.User.ID, userID)

	w = s.do(http.MethodPost, "/api/auth/register", nil, map[string]string{
		"name":  "Grace again",
		"email": "grace@frello.test",
	})
	s.requireError(w, http.StatusConflict, apierrors.ErrCodeAlreadyExists, "User already exists with that email. Please log in instead.")

	w = s.do(http.MethodPost, "/api/auth/login", nil, map[string]string{"email": "grace@frello.test"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(registered.User.ID, decode[dto.AuthResponse](s.T(), w).User.ID)

	w = s.do(http.MethodPost, "/api/auth/login", nil, map[string]string{"email": "nobody@frello.test"})
	s.requireError(w, http.StatusNotFound, apierrors.ErrCodeNotFound, "No user found with that email")
}

func (s *HandlerSuite) TestRegisterValidation() {
	w := s.do(http.MethodPost, "/api/auth/register", nil, map[string]string{"name": "x", "email": "not-an-email"})
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Invalid request body")
}

func (s *HandlerSuite) TestMeRequiresToken() {
	w := s.do(http.MethodGet, "/api/auth/me", nil, nil)
	s.requireError(w, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized, "Unauthorized")

	w = s.do(http.MethodGet, "/api/auth/me", s.member, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(s.member.ID, decode[dto.UserDTO](s.T(), w).ID)
}

func (s *HandlerSuite) TestUpdateCurrentUser() {
	w := s.do(http.MethodPatch, "/api/users/me", s.member, map[string]string{"expertise": "Rust"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	updated := decode[dto.UserDTO](s.T(), w)
	s.Equal("Rust", updated.Expertise)
	s.Equal(s.member.Name, updated.Name)
}

func (s *HandlerSuite) TestCreateAndListProjects() {
	w := s.do(http.MethodPost, "/api/projects", s.admin, map[string]string{"title": "Roadmap", "description": "Q3"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.ProjectDTO](s.T(), w)
	s.Equal(s.admin.ID, created.AdminID)

	w = s.do(http.MethodGet, "/api/projects", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	listed := decode[struct {
		Projects []dto.ProjectDTO `json:"projects"`
	}](s.T(), w)
	s.Require().Len(listed.Projects, 1)
	s.Equal(created.ID, listed.Projects[0].ID)

	w = s.do(http.MethodGet, "/api/projects", s.other, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"projects":[]`)
}

func (s *HandlerSuite) TestGetProjectReturnsBoard() {
	project := s.project()
	testutil.CreateTask(s.T(), s.db, project, "Write copy", models.TaskStatusToDo, s.member)
	testutil.CreateTask(s.T(), s.db, project, "Ship", models.TaskStatusDone, nil)

	w := s.do(http.MethodGet, "/api/projects/"+project.ID.String(), s.member, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	detail := decode[dto.ProjectDetailResponse](s.T(), w)
	s.Len(detail.Tasks, 2)
	s.Len(detail.Users, 2)
	s.Require().Len(detail.Board.Columns, len(models.TaskStatuses))
	s.Equal(models.TaskStatusToDo, detail.Board.Columns[0].Status)
	s.Len(detail.Board.Columns[0].Tasks, 1)
	s.Len(detail.Board.Columns[4].Tasks, 1)

	w = s.do(http.MethodGet, "/api/projects/"+project.ID.String()+"/board", s.member, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	view := decode[dto.BoardResponse](s.T(), w)
	s.Equal(1, view.Summary.AssignedToViewer)
	s.Equal(2, view.Summary.Total)
}

func (s *HandlerSuite) TestGetProjectErrors() {
	project := s.project()

	w := s.do(http.MethodGet, "/api/projects/"+project.ID.String(), s.other, nil)
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden, "User is not part of the project.")

	w = s.do(http.MethodGet, "/api/projects/"+uuid.NewString(), s.member, nil)
	s.requireError(w, http.StatusNotFound, apierrors.ErrCodeNotFound, "No project found with the provided project ID.")

	w = s.do(http.MethodGet, "/api/projects/not-a-uuid", s.member, nil)
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Invalid id")
}

func (s *HandlerSuite) TestDeleteProjectAdminOnly() {
	project := s.project()
	path := "/api/projects/" + project.ID.String()

	w := s.do(http.MethodDelete, path, s.member, nil)
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden, "Not authorized to delete project")

	w = s.do(http.MethodDelete, path, s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Zero(testutil.Count(s.T(), s.db, &models.Project{}, "id = ?", project.ID))
}

func (s *HandlerSuite) TestMembers() {
	project := s.project()
	base := "/api/projects/" + project.ID.String() + "/members"

	w := s.do(http.MethodPost, base, s.member, map[string]string{"email": s.other.Email})
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden, "Only the admin can add users to the project.")

	w = s.do(http.MethodPost, base, s.admin, map[string]string{"email": s.other.Email})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal(s.other.ID, decode[dto.UserDTO](s.T(), w).ID)

	w = s.do(http.MethodPost, base, s.admin, map[string]string{"email": s.other.Email})
	s.requireError(w, http.StatusConflict, apierrors.ErrCodeAlreadyExists, "User is already part of the project.")

	w = s.do(http.MethodDelete, base+"/"+s.admin.ID.String(), s.admin, nil)
	s.requireError(w, http.StatusConflict, apierrors.ErrCodeConflict, "")

	w = s.do(http.MethodDelete, base+"/"+s.other.ID.String(), s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Zero(testutil.Count(s.T(), s.db, &models.ProjectMember{}, "project_id = ? AND user_id = ?", project.ID, s.other.ID))

	w = s.do(http.MethodDelete, base+"/bogus", s.admin, nil)
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Invalid user_id")
}

func (s *HandlerSuite) TestSuggestAssigneeWithoutAI() {
	project := s.project()

	w := s.do(http.MethodPost, "/api/projects/"+project.ID.String()+"/suggestions/assignee", s.member,
		map[string]string{"task_description": "Tune the database"})
	s.requireError(w, http.StatusServiceUnavailable, apierrors.ErrCodeServiceUnavailable, "AI service is not configured")
}

func (s *HandlerSuite) TestTaskLifecycle() {
	project := s.project()

	w := s.do(http.MethodPost, "/api/tasks", s.member, map[string]interface{}{
		"title":      "Draft post",
		"project_id": project.ID.String(),
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.TaskDTO](s.T(), w)
	s.Equal(models.TaskStatusToDo, created.Status)
	s.Nil(created.AssigneeID)

	path := "/api/tasks/" + created.ID.String()

	w = s.do(http.MethodPatch, path, s.admin, map[string]interface{}{
		"project_id":  project.ID.String(),
		"status":      "InProgress",
		"assignee_id": s.member.ID.String(),
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.TaskDTO](s.T(), w)
	s.Equal(models.TaskStatusInProgress, updated.Status)
	s.Require().NotNil(updated.AssigneeID)
	s.Equal(s.member.ID, *updated.AssigneeID)
	s.Equal("Draft post", updated.Title)

	w = s.do(http.MethodPatch, path, s.member, map[string]interface{}{
		"project_id":  project.ID.String(),
		"assignee_id": nil,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Nil(decode[dto.TaskDTO](s.T(), w).AssigneeID)

	w = s.do(http.MethodPatch, path, s.member, map[string]interface{}{
		"project_id": project.ID.String(),
		"title":      "Not mine anymore",
	})
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden, "User is not authorized to update this task.")

	w = s.do(http.MethodDelete, path, s.member, nil)
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden, "User is not authorized to delete this task.")

	w = s.do(http.MethodDelete, path, s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Zero(testutil.Count(s.T(), s.db, &models.Task{}, "id = ?", created.ID))
}

func (s *HandlerSuite) TestCreateTaskValidation() {
	project := s.project()

	w := s.do(http.MethodPost, "/api/tasks", s.member, map[string]interface{}{
		"title":      "Bad",
		"project_id": project.ID.String(),
		"status":     "Blocked",
	})
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Invalid request body")

	w = s.do(http.MethodPost, "/api/tasks", s.other, map[string]interface{}{
		"title":      "Intruder",
		"project_id": project.ID.String(),
	})
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden, "User is not part of the project.")
}

func (s *HandlerSuite) TestUpdateTaskRejectsBadAssignee() {
	project := s.project()
	task := testutil.CreateTask(s.T(), s.db, project, "Pick me", models.TaskStatusToDo, nil)
	path := "/api/tasks/" + task.ID.String()

	w := s.do(http.MethodPatch, path, s.admin, map[string]interface{}{
		"project_id":  project.ID.String(),
		"assignee_id": "nope",
	})
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Invalid assignee_id")

	w = s.do(http.MethodPatch, path, s.admin, map[string]interface{}{
		"project_id":  project.ID.String(),
		"assignee_id": uuid.NewString(),
	})
	s.requireError(w, http.StatusNotFound, apierrors.ErrCodeNotFound, "User not found with the provided ID.")
}

func (s *HandlerSuite) TestComments() {
	project := s.project()
	task := testutil.CreateTask(s.T(), s.db, project, "Discuss", models.TaskStatusInReview, nil)

	w := s.do(http.MethodPost, "/api/comments", s.member, map[string]string{
		"project_id": project.ID.String(),
		"task_id":    task.ID.String(),
		"text":       "Looks good",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.CommentDTO](s.T(), w)
	s.Equal("Looks good", created.Content)
	s.Equal(s.member.ID, created.UserID)

	w = s.do(http.MethodGet, "/api/tasks/"+task.ID.String()+"/comments", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	listed := decode[struct {
		Comments []dto.CommentDTO `json:"comments"`
	}](s.T(), w)
	s.Require().Len(listed.Comments, 1)
	s.Require().NotNil(listed.Comments[0].User)
	s.Equal(s.member.Name, listed.Comments[0].User.Name)

	w = s.do(http.MethodGet, "/api/tasks/"+task.ID.String()+"/comments", s.other, nil)
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden, "User is not part of the project.")

	removePath := "/api/projects/" + project.ID.String() + "/comments/" + created.ID.String()
	testutil.AddMember(s.T(), s.db, project, s.other)
	w = s.do(http.MethodDelete, removePath, s.other, nil)
	s.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden, "Not authorized to delete comment")

	w = s.do(http.MethodDelete, removePath, s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(created.ID, decode[dto.CommentDTO](s.T(), w).ID)

	w = s.do(http.MethodDelete, removePath, s.admin, nil)
	s.requireError(w, http.StatusNotFound, apierrors.ErrCodeNotFound, "No comment found with that ID")
}

func (s *HandlerSuite) TestBodyAndPathIDsParseAlike() {
	project := s.project()
	upper := strings.ToUpper(project.ID.String())

	w := s.do(http.MethodPost, "/api/tasks", s.member, map[string]interface{}{
		"title":       "Shout",
		"project_id":  upper,
		"assignee_id": strings.ToUpper(s.member.ID.String()),
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.TaskDTO](s.T(), w)
	s.Equal(project.ID, created.ProjectID)

	w = s.do(http.MethodGet, "/api/projects/"+upper, s.member, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPatch, "/api/tasks/"+created.ID.String(), s.admin, map[string]interface{}{
		"project_id": upper,
		"status":     "Done",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/comments", s.member, map[string]string{
		"project_id": upper,
		"task_id":    strings.ToUpper(created.ID.String()),
		"text":       "Loud and clear",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/tasks", s.member, map[string]interface{}{
		"title":      "Broken",
		"project_id": "not-a-uuid",
	})
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Invalid project_id")

	w = s.do(http.MethodPost, "/api/comments", s.member, map[string]string{
		"project_id": project.ID.String(),
		"task_id":    "42",
		"text":       "Where?",
	})
	s.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Invalid task_id")
}
