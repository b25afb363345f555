package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/acadassist/acadassist/internal/profile"
)

// ErrUpstreamTimeout indicates the model provider did not answer within the
// configured deadline.
var ErrUpstreamTimeout = errors.New("llm request timed out")

// Message represents a chat message.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

func SystemPrompt(content string) Message {
	return Message{Role: openai.ChatMessageRoleSystem, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: openai.ChatMessageRoleUser, Content: content}
}

// Service is the LLM service interface.
type Service interface {
	// Chat performs a synchronous chat completion and returns the content.
	Chat(ctx context.Context, messages []Message) (string, error)
}

type llmService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewLLMService creates an LLM Service for the profile's provider. All
// supported providers speak the OpenAI-compatible chat API.
func NewLLMService(p *profile.Profile) (Service, error) {
	clientConfig := openai.DefaultConfig(p.LLMAPIKey)

	switch p.LLMProvider {
	case "groq":
		clientConfig.BaseURL = "https://api.groq.com/openai/v1"
	case "deepseek":
		clientConfig.BaseURL = "https://api.deepseek.com"
	case "ollama":
		clientConfig.BaseURL = "http://localhost:11434/v1"
	case "openai":
		// Default base URL.
	default:
		slog.Info("using generic OpenAI-compatible provider", slog.String("provider", p.LLMProvider))
	}
	if p.LLMBaseURL != "" {
		clientConfig.BaseURL = p.LLMBaseURL
	}

	timeoutSeconds := p.LLMTimeout
	if timeoutSeconds <= 0 {
		timeoutSeconds = 60
	}

	return &llmService{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   p.LLMModel,
		timeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

func (s *llmService) Chat(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0, // deterministic SQL and summaries
		Messages:    convertMessages(messages),
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrUpstreamTimeout
		}
		return "", fmt.Errorf("llm chat failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from llm")
	}
	return resp.Choices[0].Message.Content, nil
}

func convertMessages(messages []Message) []openai.ChatCompletionMessage {
	converted := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		converted[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return converted
}
