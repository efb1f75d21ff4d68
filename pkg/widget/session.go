package widget

import (
	"context"
	"errors"

	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
)

var (
	ErrNotReady      = errors.New("widget is not ready for this action")
	ErrNoContactCall = errors.New("no message offers a contact button")
)

// Session drives one widget State against a Client. It is meant for a single
// goroutine, like the browser widget.
type Session struct {
	machine *Machine
	client  *Client
	state   State
}

func NewSession(machine *Machine, client *Client) *Session {
	return &Session{
		machine: machine,
		client:  client,
		state:   NewState(),
	}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Open()           { s.state = s.machine.Open(s.state) }
func (s *Session) Close()          { s.state = s.machine.Close(s.state) }
func (s *Session) ToggleLanguage() { s.state = s.machine.ToggleLanguage(s.state) }
func (s *Session) Reset()          { s.state = s.machine.Reset(s.state) }

// Send posts input and returns the assistant message that was appended:
// the reply, or the local fallback when the request fails.
func (s *Session) Send(ctx context.Context, input string) (model.Message, error) {
	next, pending, ok := s.machine.Send(s.state, input)
	if !ok {
		return model.Message{}, ErrNotReady
	}
	s.state = next

	resp, err := s.client.Chat(ctx, pending.Request)
	if err != nil {
		s.state = s.machine.Fail(s.state)
		return lastMessage(s.state), err
	}
	s.state = s.machine.Receive(s.state, pending, resp.Response)
	return lastMessage(s.state), nil
}

// ShowContactForm opens the form from the newest contact button.
func (s *Session) ShowContactForm() error {
	index := s.state.LastContactButton()
	if index < 0 {
		return ErrNoContactCall
	}
	next, ok := s.machine.ShowContactForm(s.state, index)
	if !ok {
		return ErrNotReady
	}
	s.state = next
	return nil
}

func (s *Session) CancelContactForm() {
	s.state = s.machine.CancelContactForm(s.state)
}

func (s *Session) SubmitContact(ctx context.Context, form model.ContactSubmission) (model.Message, error) {
	next, submission, ok := s.machine.SubmitContact(s.machine.EditContactForm(s.state, form))
	if !ok {
		return model.Message{}, ErrNotReady
	}
	s.state = next

	resp, err := s.client.Contact(ctx, submission)
	if err != nil || !resp.Success {
		s.state = s.machine.ContactFailed(s.state)
		return lastMessage(s.state), err
	}
	s.state = s.machine.ContactSubmitted(s.state, resp.Message)
	return lastMessage(s.state), nil
}

func lastMessage(state State) model.Message {
	if len(state.Messages) == 0 {
		return model.Message{}
	}
	return state.Messages[len(state.Messages)-1]
}
