package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fabiansimon/Frello/internal/constants"
	"github.com/fabiansimon/Frello/internal/metrics"
	"github.com/fabiansimon/Frello/internal/models"
	"github.com/fabiansimon/Frello/internal/policy"
	"github.com/fabiansimon/Frello/internal/repository"
)

var ErrAIRequestFailed = errors.New("AI request failed")

const suggestionSystemPrompt = "You are an expert Product Manager. You will get the context of a task and a list of users with their respective expertise and choose which user is most suitable for that task."

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ChatCompleter is the part of the OpenAI client the service needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AIConfig struct {
	Model             string
	RequestsPerMinute int
}

// AIService asks the LLM which project member fits a task best.
type AIService struct {
	projectAccess
	client  ChatCompleter
	model   string
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewAIService creates the suggestion service. A nil client disables suggestions.
func NewAIService(projectRepo repository.ProjectRepository, client ChatCompleter, cfg AIConfig, log *zap.Logger) *AIService {
	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 1
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4
	}

	return &AIService{
		projectAccess: projectAccess{projectRepo: projectRepo},
		client:        client,
		model:         model,
		limiter:       rate.NewLimiter(rate.Limit(float64(perMinute)/60), perMinute),
		log:           log,
	}
}

type Suggestion struct {
	UserID uuid.UUID
}

// SuggestAssignee returns the member the LLM picked for taskDescription. The
// answer must be the bare ID of a current member, anything else is
// ErrInvalidSuggestion. Members only.
func (s *AIService) SuggestAssignee(ctx context.Context, projectID uuid.UUID, taskDescription string, actorID uuid.UUID) (*Suggestion, error) {
	if s.client == nil {
		return nil, ErrAIServiceNotConfigured
	}

	if _, err := s.authorizeProject(ctx, projectID, actorID, policy.ActionSuggestAssignee); err != nil {
		return nil, err
	}

	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	users := make([]models.User, 0, len(members))
	for _, m := range members {
		users = append(users, m.User)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.SuggestionTimeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		metrics.RecordSuggestion("error")
		return nil, fmt.Errorf("%w: %v", ErrAIRequestFailed, err)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: suggestionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildSuggestionPrompt(taskDescription, users)},
		},
	})
	if err != nil {
		metrics.RecordSuggestion("error")
		s.log.Error("OpenAI API error", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAIRequestFailed, err)
	}

	if len(resp.Choices) == 0 {
		metrics.RecordSuggestion("invalid")
		return nil, ErrInvalidSuggestion
	}

	userID, ok := parseSuggestion(resp.Choices[0].Message.Content, users)
	if !ok {
		metrics.RecordSuggestion("invalid")
		s.log.Warn("AI returned an unusable suggestion",
			zap.String("project_id", projectID.String()),
			zap.String("answer", resp.Choices[0].Message.Content),
		)
		return nil, ErrInvalidSuggestion
	}

	metrics.RecordSuggestion("success")
	return &Suggestion{UserID: userID}, nil
}

func buildSuggestionPrompt(taskDescription string, users []models.User) string {
	var b strings.Builder
	for _, u := range users {
		fmt.Fprintf(&b, "• ID: %s; Role: %s; Expertise: \"%s\n\"", u.ID, u.Role, u.Expertise)
	}
	return fmt.Sprintf(
		"Take a task with following description: \"%s\". Now take a look at all the possible employees to fulfill said task:\n %s. Please pick what employee is most suitable for said taks and only answer with their ID.",
		taskDescription, b.String(),
	)
}

// parseSuggestion accepts a bare UUID naming one of users.
func parseSuggestion(answer string, users []models.User) (uuid.UUID, bool) {
	answer = strings.TrimSpace(answer)
	if !uuidPattern.MatchString(answer) {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(answer)
	if err != nil {
		return uuid.Nil, false
	}
	for _, u := range users {
		if u.ID == id {
			return id, true
		}
	}
	return uuid.Nil, false
}
