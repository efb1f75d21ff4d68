package handler

import (
	"encoding/json"
	"net/http"

	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
	"github.com/laraabey/Loops-integrated-chatbot/internal/usecase"
	"github.com/rs/zerolog"
)

const (
	MessageChatError = "Sorry, I encountered an error. Please try again."

	maxBodyBytes = 1 << 20
)

type chatRequest struct {
	Message             string          `json:"message"`
	ConversationHistory []model.Message `json:"conversationHistory"`
	ForceLanguage       string          `json:"forceLanguage,omitempty"`
}

type chatResponse struct {
	Response         string `json:"response"`
	DetectedLanguage string `json:"detectedLanguage"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	logger := zerolog.Ctx(r.Context())

	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Error().Err(err).Msg("chat: failed to decode request")
		writeError(w, http.StatusInternalServerError, MessageChatError)
		return
	}
	if req.ForceLanguage != "" {
		logger.Debug().Str("force_language", req.ForceLanguage).Msg("chat: client forced language")
	}

	reply, err := s.Chat.Reply(r.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		if verr, ok := usecase.IsValidation(err); ok {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		logger.Error().Err(err).Msg("chat: reply failed")
		writeError(w, http.StatusInternalServerError, MessageChatError)
		return
	}

	writeJSON(
		w, http.StatusOK, chatResponse{
			Response:         reply.Response,
			DetectedLanguage: string(reply.DetectedLanguage),
		},
	)
}
