package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fabiansimon/Frello/internal/auth"
	"github.com/fabiansimon/Frello/internal/notifications"
	"github.com/fabiansimon/Frello/internal/repository"
	"github.com/fabiansimon/Frello/internal/testutil"
)

type fakeMailer struct {
	mu        sync.Mutex
	err       error
	reminders []notifications.Reminder
}

func (m *fakeMailer) SendTaskReminder(_ context.Context, r notifications.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders = append(m.reminders, r)
	return m.err
}

func (m *fakeMailer) sent() []notifications.Reminder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notifications.Reminder(nil), m.reminders...)
}

type fakeChat struct {
	answer   string
	err      error
	noChoice bool
	requests []openai.ChatCompletionRequest
}

func (c *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	if c.noChoice {
		return openai.ChatCompletionResponse{}, nil
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: c.answer}},
		},
	}, nil
}

type serviceEnv struct {
	db       *gorm.DB
	tokens   *auth.TokenManager
	mailer   *fakeMailer
	chat     *fakeChat
	auth     *AuthService
	projects *ProjectService
	tasks    *TaskService
	comments *CommentService
	ai       *AIService
}

func newServiceEnv(t *testing.T, log *zap.Logger) *serviceEnv {
	t.Helper()

	if log == nil {
		log = zap.NewNop()
	}

	db := testutil.NewDB(t)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	env := &serviceEnv{
		db:     db,
		tokens: auth.NewTokenManager("test-secret", 0),
		mailer: &fakeMailer{},
		chat:   &fakeChat{},
	}
	env.auth = NewAuthService(userRepo, env.tokens, log)
	env.projects = NewProjectService(projectRepo, userRepo, taskRepo, log)
	env.tasks = NewTaskService(taskRepo, projectRepo, userRepo, env.mailer, log)
	env.comments = NewCommentService(commentRepo, taskRepo, projectRepo, log)
	env.ai = NewAIService(projectRepo, env.chat, AIConfig{Model: openai.GPT4, RequestsPerMinute: 600}, log)
	return env
}

func requireForbidden(t *testing.T, err error, reason string) {
	t.Helper()

	require.Error(t, err)
	require.True(t, errors.Is(err, ErrForbidden), "expected forbidden, got %v", err)

	var forbidden *ForbiddenError
	require.True(t, errors.As(err, &forbidden))
	require.Equal(t, reason, forbidden.Reason)
}
