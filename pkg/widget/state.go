package widget

import (
	"strings"
	"time"

	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
	"github.com/laraabey/Loops-integrated-chatbot/pkg/local"
)

const (
	FallbackReply       = "Sorry, I encountered an error. Please try again."
	ContactFailedReply  = "❌ Failed to submit form. Please try again."
	contactSuccessBadge = "✅ "
	timestampLayout     = "15:04"
)

type Phase string

const (
	PhaseClosed          = Phase("closed")
	PhaseOpenIdle        = Phase("open-idle")
	PhaseOpenSending     = Phase("open-sending")
	PhaseOpenContactForm = Phase("open-contact-form")
)

// State is everything one widget instance remembers. Chat sending and contact
// submitting are independent flags; only the chat one blocks another send.
type State struct {
	Open            bool
	Sending         bool
	ContactFormOpen bool
	Submitting      bool
	Mode            Mode
	Messages        []model.Message
	Form            model.ContactSubmission
}

func NewState() State {
	return State{
		Mode:     ModeAuto,
		Messages: []model.Message{},
	}
}

func (s State) Phase() Phase {
	switch {
	case !s.Open:
		return PhaseClosed
	case s.ContactFormOpen:
		return PhaseOpenContactForm
	case s.Sending:
		return PhaseOpenSending
	default:
		return PhaseOpenIdle
	}
}

type ChatRequest struct {
	Message             string          `json:"message"`
	ConversationHistory []model.Message `json:"conversationHistory"`
	ForceLanguage       string          `json:"forceLanguage,omitempty"`
}

// Pending is a chat request in flight together with the language tag its
// reply will carry.
type Pending struct {
	Request       ChatRequest
	ReplyLanguage local.Language
}

type Option func(m *Machine)

func WithTrigger(trigger ContactTrigger) Option {
	return func(m *Machine) {
		m.trigger = trigger
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// Machine holds the transition functions. Every method returns a new State
// and leaves its argument untouched.
type Machine struct {
	trigger ContactTrigger
	now     func() time.Time
}

func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		trigger: MatchesContactTriggers,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) Open(s State) State {
	s.Open = true
	return s
}

func (m *Machine) Close(s State) State {
	s.Open = false
	return s
}

// Toggle is the chat bubble click.
func (m *Machine) Toggle(s State) State {
	s.Open = !s.Open
	return s
}

func (m *Machine) ToggleLanguage(s State) State {
	s.Mode = s.Mode.Next()
	return s
}

// Send starts a chat request. It refuses blank input and anything but the
// open-idle phase.
func (m *Machine) Send(s State, input string) (State, Pending, bool) {
	if strings.TrimSpace(input) == "" || s.Phase() != PhaseOpenIdle {
		return s, Pending{}, false
	}

	history := make([]model.Message, len(s.Messages))
	copy(history, s.Messages)

	pending := Pending{
		Request: ChatRequest{
			Message:             s.Mode.Outgoing(input),
			ConversationHistory: history,
		},
		ReplyLanguage: s.Mode.ReplyLanguage(input),
	}
	if language, ok := s.Mode.forced(); ok {
		pending.Request.ForceLanguage = string(language)
	}

	s.Messages = m.appendMessage(
		s.Messages, model.Message{
			Role:    model.RoleUser,
			Content: input,
		},
	)
	s.Sending = true
	return s, pending, true
}

// Receive appends the assistant reply for pending. An empty reply only ends
// the send.
func (m *Machine) Receive(s State, pending Pending, reply string) State {
	s.Sending = false
	if reply == "" {
		return s
	}
	s.Messages = m.appendMessage(
		s.Messages, model.Message{
			Role:              model.RoleAssistant,
			Content:           reply,
			Language:          model.Language(pending.ReplyLanguage),
			ShowContactButton: m.trigger(reply),
		},
	)
	return s
}

func (m *Machine) Fail(s State) State {
	s.Sending = false
	s.Messages = m.appendMessage(
		s.Messages, model.Message{
			Role:    model.RoleAssistant,
			Content: FallbackReply,
		},
	)
	return s
}

// ShowContactForm opens the form from the contact button of the message at
// index.
func (m *Machine) ShowContactForm(s State, index int) (State, bool) {
	if !s.Open || index < 0 || index >= len(s.Messages) {
		return s, false
	}
	msg := s.Messages[index]
	if msg.Role != model.RoleAssistant || !msg.ShowContactButton {
		return s, false
	}
	s.ContactFormOpen = true
	return s, true
}

// LastContactButton is the index of the newest message with a contact
// button, or -1.
func (s State) LastContactButton() int {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].ShowContactButton {
			return i
		}
	}
	return -1
}

func (m *Machine) CancelContactForm(s State) State {
	s.ContactFormOpen = false
	return s
}

func (m *Machine) EditContactForm(s State, form model.ContactSubmission) State {
	s.Form = form
	return s
}

func (m *Machine) SubmitContact(s State) (State, model.ContactSubmission, bool) {
	if !s.ContactFormOpen || s.Submitting || s.Form.Blank() {
		return s, model.ContactSubmission{}, false
	}
	s.Submitting = true
	return s, s.Form, true
}

func (m *Machine) ContactSubmitted(s State, ack string) State {
	s.Submitting = false
	s.Messages = m.appendMessage(
		s.Messages, model.Message{
			Role:    model.RoleAssistant,
			Content: contactSuccessBadge + ack,
		},
	)
	s.ContactFormOpen = false
	s.Form = model.ContactSubmission{}
	return s
}

// ContactFailed keeps the form open with its fields.
func (m *Machine) ContactFailed(s State) State {
	s.Submitting = false
	s.Messages = m.appendMessage(
		s.Messages, model.Message{
			Role:    model.RoleAssistant,
			Content: ContactFailedReply,
		},
	)
	return s
}

// Reset lands in open-idle with an empty history, a cleared form and auto
// language mode, whatever the prior state.
func (m *Machine) Reset(State) State {
	s := NewState()
	s.Open = true
	return s
}

func (m *Machine) appendMessage(messages []model.Message, msg model.Message) []model.Message {
	msg.Timestamp = m.now().Format(timestampLayout)
	out := make([]model.Message, len(messages), len(messages)+1)
	copy(out, messages)
	return append(out, msg)
}
