package usecase

import (
	"context"
	"fmt"

	"github.com/laraabey/Loops-integrated-chatbot/config"
	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
	openai_tools "github.com/laraabey/Loops-integrated-chatbot/pkg/openai-tools"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const (
	OpenAIRoleSystem    = openai.ChatMessageRoleSystem
	OpenAIRoleUser      = openai.ChatMessageRoleUser
	OpenAIRoleAssistant = openai.ChatMessageRoleAssistant
)

type CompletionRequest struct {
	Instruction string
	History     []model.Message
	Message     string
	MaxTokens   int
	Temperature float32
}

type TokenCounter func(messages []openai.ChatCompletionMessage, model string) (int, error)

type OpenAIUsecase struct {
	cfg         config.OpenAI
	client      *openai.Client
	countTokens TokenCounter
	tokenLimit  int
}

// NewOpenAIUsecase builds the gateway from an explicit config; the API key is
// never read from the environment here. A tokenLimit of zero disables the
// prompt budget check.
func NewOpenAIUsecase(cfg config.OpenAI, tokenLimit int) *OpenAIUsecase {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	return &OpenAIUsecase{
		cfg:         cfg,
		client:      openai.NewClientWithConfig(clientConfig),
		countTokens: openai_tools.CountToken,
		tokenLimit:  tokenLimit,
	}
}

func (gpt *OpenAIUsecase) WithTokenCounter(counter TokenCounter) *OpenAIUsecase {
	gpt.countTokens = counter
	return gpt
}

// Complete sends one non-streaming chat completion and returns the first
// choice. Nothing is retried.
func (gpt *OpenAIUsecase) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := gpt.buildMessages(req)

	resp, err := gpt.client.CreateChatCompletion(
		ctx, openai.ChatCompletionRequest{
			Model:       gpt.cfg.OpenAIModel,
			Messages:    messages,
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// buildMessages lays out [instruction, history..., user message] and drops the
// oldest history entries while the prompt is over budget.
func (gpt *OpenAIUsecase) buildMessages(req CompletionRequest) []openai.ChatCompletionMessage {
	history := make([]openai.ChatCompletionMessage, 0, len(req.History))
	for _, message := range req.History {
		history = append(
			history, openai.ChatCompletionMessage{
				Role:    parseRole(message.Role),
				Content: message.Content,
			},
		)
	}

	build := func() []openai.ChatCompletionMessage {
		messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
		messages = append(
			messages, openai.ChatCompletionMessage{
				Role:    OpenAIRoleSystem,
				Content: req.Instruction,
			},
		)
		messages = append(messages, history...)
		return append(
			messages, openai.ChatCompletionMessage{
				Role:    OpenAIRoleUser,
				Content: req.Message,
			},
		)
	}

	if gpt.tokenLimit <= 0 || gpt.countTokens == nil {
		return build()
	}
	for len(history) > 0 {
		tokenCount, err := gpt.countTokens(build(), gpt.cfg.OpenAIModel)
		if err != nil {
			log.Warn().Err(err).Msg("count token error, sending window untrimmed")
			break
		}
		if tokenCount < gpt.tokenLimit {
			break
		}
		history = history[1:]
		log.Debug().Int("tokens", tokenCount).Msg("history trimmed due to token limit")
	}
	return build()
}

// parseRole maps the widget roles and passes anything else through
// unchanged for the provider to judge.
func parseRole(role model.Role) string {
	switch role {
	case model.RoleUser:
		return OpenAIRoleUser
	case model.RoleAssistant:
		return OpenAIRoleAssistant
	default:
		return string(role)
	}
}
