package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/laraabey/Loops-integrated-chatbot/config"
	"github.com/laraabey/Loops-integrated-chatbot/internal/handler"
	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
	"github.com/laraabey/Loops-integrated-chatbot/internal/usecase"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	calls  []usecase.CompletionRequest
	answer string
	err    error
}

func (s *stubGateway) Complete(_ context.Context, req usecase.CompletionRequest) (string, error) {
	s.calls = append(s.calls, req)
	return s.answer, s.err
}

type failingStorage struct{}

func (failingStorage) SaveContact(context.Context, model.ContactRecord) error {
	return errors.New("redis: connection refused")
}

type testSite struct {
	handler    http.Handler
	gateway    *stubGateway
	contactLog *bytes.Buffer
}

func newTestSite(t *testing.T, storage usecase.ContactStorage) *testSite {
	t.Helper()
	gateway := &stubGateway{answer: "We are open Monday to Friday, 9 AM to 6 PM."}
	var contactLog bytes.Buffer

	chat := usecase.NewChatUsecase(
		usecase.ChatUsecaseDeps{Gateway: gateway},
		config.Chat{HistoryWindow: 8, MaxTokens: 150, ModelTemperature: 0.7},
		usecase.LoopsKnowledge,
	)
	contact := usecase.NewContactUsecase(
		usecase.ContactUsecaseDeps{
			Log:     zerolog.New(&contactLog),
			Storage: storage,
		},
	)
	h, err := handler.NewServer(
		handler.ServerDeps{
			Chat:      chat,
			Contact:   contact,
			Knowledge: usecase.LoopsKnowledge,
		},
	)
	require.NoError(t, err)
	return &testSite{handler: h, gateway: gateway, contactLog: &contactLog}
}

func (s *testSite) post(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestHealthz(t *testing.T) {
	site := newTestSite(t, nil)
	w := httptest.NewRecorder()
	site.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestChatFirstMessage(t *testing.T) {
	site := newTestSite(t, nil)

	w := site.post(t, "/api/chat", `{"message":"What are your working hours?","conversationHistory":[]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "We are open Monday to Friday, 9 AM to 6 PM.", body["response"])
	assert.Equal(t, "en", body["detectedLanguage"])

	require.Len(t, site.gateway.calls, 1)
	call := site.gateway.calls[0]
	assert.Equal(t, "What are your working hours?", call.Message)
	assert.Empty(t, call.History)
	assert.Equal(t, 150, call.MaxTokens)
}

func TestChatHistoryOptionalAndWindowed(t *testing.T) {
	site := newTestSite(t, nil)

	w := site.post(t, "/api/chat", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var history []map[string]any
	for i := 0; i < 12; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history = append(history, map[string]any{"role": role, "content": string(rune('a' + i)), "timestamp": "10:00"})
	}
	payload, err := json.Marshal(map[string]any{"message": "next", "conversationHistory": history})
	require.NoError(t, err)

	w = site.post(t, "/api/chat", string(payload))
	require.Equal(t, http.StatusOK, w.Code)
	call := site.gateway.calls[1]
	require.Len(t, call.History, 8)
	assert.Equal(t, "e", call.History[0].Content)
	assert.Equal(t, "l", call.History[7].Content)
}

func TestChatDetectedLanguageIsAlwaysEnglish(t *testing.T) {
	site := newTestSite(t, nil)
	w := site.post(t, "/api/chat", `{"message":"ලෝකයේ වාසස්ථානය කොහෙද?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "en", decodeBody(t, w)["detectedLanguage"])
}

func TestChatRejectsMissingMessage(t *testing.T) {
	for _, body := range []string{`{}`, `{"message":""}`, `{"conversationHistory":[{"role":"user","content":"x"}]}`} {
		site := newTestSite(t, nil)
		w := site.post(t, "/api/chat", body)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Message is required", decodeBody(t, w)["error"])
		assert.Empty(t, site.gateway.calls, "gateway must not be called")
	}
}

func TestChatUpstreamFailure(t *testing.T) {
	site := newTestSite(t, nil)
	site.gateway.err = errors.New("openai: 429 rate limited, key sk-secret")

	w := site.post(t, "/api/chat", `{"message":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"error": "Sorry, I encountered an error. Please try again."}, decodeBody(t, w))
	assert.NotContains(t, w.Body.String(), "sk-secret")
}

func TestChatOddHistoryIsNotAClientError(t *testing.T) {
	for _, body := range []string{
		`{"message":"hi","conversationHistory":[{"role":"assistant","content":""}]}`,
		`{"message":"hi","conversationHistory":[{"role":"system","content":"x"}]}`,
	} {
		site := newTestSite(t, nil)
		w := site.post(t, "/api/chat", body)
		assert.Equal(t, http.StatusOK, w.Code, body)
		assert.Len(t, site.gateway.calls, 1, body)

		site = newTestSite(t, nil)
		site.gateway.err = errors.New("openai: 400 invalid message")
		w = site.post(t, "/api/chat", body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, body)
		assert.Equal(t, handler.MessageChatError, decodeBody(t, w)["error"])
	}
}

func TestChatMalformedBody(t *testing.T) {
	site := newTestSite(t, nil)
	w := site.post(t, "/api/chat", `{"message":`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, handler.MessageChatError, decodeBody(t, w)["error"])
	assert.Empty(t, site.gateway.calls)
}

func TestChatMethodNotAllowed(t *testing.T) {
	site := newTestSite(t, nil)
	w := httptest.NewRecorder()
	site.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestContactSuccess(t *testing.T) {
	site := newTestSite(t, nil)

	w := site.post(t, "/api/contact", `{"name":"Nimal","email":"nimal@example.com","message":"Call me"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(
		t,
		map[string]any{"success": true, "message": "Thank you! Our team will contact you soon."},
		decodeBody(t, w),
	)
	assert.Contains(t, site.contactLog.String(), "nimal@example.com")
	assert.Contains(t, site.contactLog.String(), `"timestamp"`)
}

func TestContactMissingFields(t *testing.T) {
	for _, body := range []string{
		`{"name":"","email":"a@b.com","message":"hi"}`,
		`{"name":"A","message":"hi"}`,
		`{"name":"A","email":"a@b.com"}`,
		`{}`,
	} {
		site := newTestSite(t, nil)
		w := site.post(t, "/api/contact", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, map[string]any{"error": "All fields are required"}, decodeBody(t, w))
		assert.Zero(t, site.contactLog.Len())
	}
}

func TestContactSinkFailure(t *testing.T) {
	site := newTestSite(t, failingStorage{})
	w := site.post(t, "/api/contact", `{"name":"A","email":"a@b.com","message":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"error": "Failed to submit form"}, decodeBody(t, w))
	assert.NotContains(t, w.Body.String(), "redis")
}

func TestContactMalformedBody(t *testing.T) {
	for _, body := range []string{`not json`, `{"name":1,"email":"a@b.com","message":"hi"}`} {
		site := newTestSite(t, nil)
		w := site.post(t, "/api/contact", body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, body)
		assert.Equal(t, handler.MessageContactError, decodeBody(t, w)["error"])
		assert.Empty(t, site.contactLog.String())
	}
}

func TestLandingPage(t *testing.T) {
	site := newTestSite(t, nil)
	w := httptest.NewRecorder()
	site.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	page := w.Body.String()
	assert.Contains(t, page, "Welcome to Loops Integrated")
	assert.Contains(t, page, "Colombo 03, Sri Lanka")
	assert.Contains(t, page, "get in touch")
	assert.Contains(t, page, "/api/chat")

	w = httptest.NewRecorder()
	site.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	site := newTestSite(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://loops.lk")
	w := httptest.NewRecorder()
	site.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
