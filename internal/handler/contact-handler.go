package handler

import (
	"encoding/json"
	"net/http"

	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
	"github.com/laraabey/Loops-integrated-chatbot/internal/usecase"
	"github.com/rs/zerolog"
)

const MessageContactError = "Failed to submit form"

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	logger := zerolog.Ctx(r.Context())

	var req model.ContactSubmission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Error().Err(err).Msg("contact: failed to decode request")
		writeError(w, http.StatusInternalServerError, MessageContactError)
		return
	}

	_, ack, err := s.Contact.Submit(r.Context(), req)
	if err != nil {
		if verr, ok := usecase.IsValidation(err); ok {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		logger.Error().Err(err).Msg("contact: submit failed")
		writeError(w, http.StatusInternalServerError, MessageContactError)
		return
	}

	writeJSON(w, http.StatusOK, contactResponse{Success: true, Message: ack})
}
