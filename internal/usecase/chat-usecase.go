package usecase

import (
	"context"
	"fmt"

	"github.com/laraabey/Loops-integrated-chatbot/config"
	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
)

const MessageRequired = "Message is required"

type CompletionGateway interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type ChatUsecaseDeps struct {
	Gateway CompletionGateway
}

type ChatUsecase struct {
	ChatUsecaseDeps
	cfg         config.Chat
	instruction string
}

type ChatReply struct {
	Response string
	// DetectedLanguage is always English. Clients re-derive the language from
	// their own text.
	DetectedLanguage model.Language
}

func NewChatUsecase(deps ChatUsecaseDeps, cfg config.Chat, knowledge Knowledge) *ChatUsecase {
	return &ChatUsecase{
		ChatUsecaseDeps: deps,
		cfg:             cfg,
		instruction:     knowledge.Instruction(),
	}
}

func (c *ChatUsecase) Instruction() string {
	return c.instruction
}

func (c *ChatUsecase) Reply(ctx context.Context, message string, history []model.Message) (ChatReply, error) {
	if message == "" {
		return ChatReply{}, &ValidationError{Message: MessageRequired}
	}

	// The window is forwarded as sent. A provider rejecting an entry is an
	// upstream failure, not a client one.
	window := Window(history, c.cfg.HistoryWindow)
	answer, err := c.Gateway.Complete(
		ctx, CompletionRequest{
			Instruction: c.instruction,
			History:     window,
			Message:     message,
			MaxTokens:   c.cfg.MaxTokens,
			Temperature: c.cfg.ModelTemperature,
		},
	)
	if err != nil {
		return ChatReply{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return ChatReply{
		Response:         answer,
		DetectedLanguage: model.LanguageEnglish,
	}, nil
}

// Window returns a copy of the last size entries of history, oldest first.
func Window(history []model.Message, size int) []model.Message {
	if size <= 0 {
		return []model.Message{}
	}
	start := 0
	if len(history) > size {
		start = len(history) - size
	}
	window := make([]model.Message, len(history)-start)
	copy(window, history[start:])
	return window
}
