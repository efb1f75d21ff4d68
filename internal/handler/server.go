package handler

import (
	"context"
	"net/http"

	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
	"github.com/laraabey/Loops-integrated-chatbot/internal/usecase"
)

type ChatReplier interface {
	Reply(ctx context.Context, message string, history []model.Message) (usecase.ChatReply, error)
}

type ContactSubmitter interface {
	Submit(ctx context.Context, submission model.ContactSubmission) (model.ContactRecord, string, error)
}

type ServerDeps struct {
	Chat           ChatReplier
	Contact        ContactSubmitter
	Knowledge      usecase.Knowledge
	AllowedOrigins []string
}

type Server struct {
	ServerDeps
	page *pageRenderer
}

// NewServer returns the site: landing page, chat and contact API, health check.
func NewServer(deps ServerDeps) (http.Handler, error) {
	page, err := newPageRenderer(deps.Knowledge)
	if err != nil {
		return nil, err
	}
	s := &Server{
		ServerDeps: deps,
		page:       page,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/contact", s.handleContact)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/", s.handlePage)

	return chainMiddlewares(
		mux,
		withCORS(deps.AllowedOrigins),
		withLogging,
		withRequestID,
	), nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
