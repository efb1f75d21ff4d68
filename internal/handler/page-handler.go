package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/laraabey/Loops-integrated-chatbot/internal/usecase"
	"github.com/laraabey/Loops-integrated-chatbot/pkg/widget"
	"github.com/rs/zerolog"
)

//go:embed web/index.html
var webFS embed.FS

type pageData struct {
	Knowledge          usecase.Knowledge
	Triggers           []string
	Placeholders       map[string]string
	Labels             map[string]string
	Indicators         map[string]string
	FallbackReply      string
	ContactFailedReply string
}

type pageRenderer struct {
	tmpl *template.Template
	data pageData
}

func newPageRenderer(knowledge usecase.Knowledge) (*pageRenderer, error) {
	tmpl, err := template.ParseFS(webFS, "web/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse landing page: %w", err)
	}
	modes := []widget.Mode{widget.ModeAuto, widget.ModeEnglish, widget.ModeSinhala}
	data := pageData{
		Knowledge:          knowledge,
		Triggers:           widget.ContactTriggers,
		Placeholders:       make(map[string]string, len(modes)),
		Labels:             make(map[string]string, len(modes)),
		Indicators:         make(map[string]string, len(modes)),
		FallbackReply:      widget.FallbackReply,
		ContactFailedReply: widget.ContactFailedReply,
	}
	for _, mode := range modes {
		data.Placeholders[string(mode)] = mode.Placeholder()
		data.Labels[string(mode)] = mode.Label()
		data.Indicators[string(mode)] = mode.Indicator()
	}
	return &pageRenderer{tmpl: tmpl, data: data}, nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	var buf bytes.Buffer
	if err := s.page.tmpl.Execute(&buf, s.page.data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("page: render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
