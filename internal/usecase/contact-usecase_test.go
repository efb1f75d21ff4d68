package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/laraabey/Loops-integrated-chatbot/config"
	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContactStorage struct {
	mu      sync.Mutex
	records []model.ContactRecord
	err     error
}

func (f *fakeContactStorage) SaveContact(_ context.Context, record model.ContactRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

type fakeBot struct {
	mu   sync.Mutex
	sent []api.MessageConfig
	err  error
}

func (f *fakeBot) Send(c api.Chattable) (api.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return api.Message{}, f.err
	}
	if msg, ok := c.(api.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return api.Message{}, nil
}

var fixedNow = func() time.Time {
	return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
}

func validSubmission() model.ContactSubmission {
	return model.ContactSubmission{Name: "Nimal", Email: "nimal@example.com", Message: "Need a campaign"}
}

func TestContactUsecaseSubmitLogsEntry(t *testing.T) {
	var buf bytes.Buffer
	contact := NewContactUsecase(ContactUsecaseDeps{Log: zerolog.New(&buf), Now: fixedNow})

	record, ack, err := contact.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, MessageContactThanks, ack)
	assert.Equal(t, fixedNow(), record.SubmittedAt)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	submission, ok := entry["submission"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Nimal", submission["name"])
	assert.Equal(t, "nimal@example.com", submission["email"])
	assert.Equal(t, "Need a campaign", submission["message"])
	assert.Equal(t, "2026-10-18T09:30:00Z", entry["timestamp"])
	assert.Equal(t, record.ID.String(), entry["id"])
}

func TestContactUsecaseRejectsMissingFields(t *testing.T) {
	tests := []model.ContactSubmission{
		{Name: "", Email: "a@b.com", Message: "hi"},
		{Name: "A", Email: "", Message: "hi"},
		{Name: "A", Email: "a@b.com", Message: ""},
		{},
	}
	for _, submission := range tests {
		var buf bytes.Buffer
		storage := &fakeContactStorage{}
		contact := NewContactUsecase(ContactUsecaseDeps{Log: zerolog.New(&buf), Storage: storage})

		_, _, err := contact.Submit(context.Background(), submission)
		verr, ok := IsValidation(err)
		require.True(t, ok)
		assert.Equal(t, MessageAllFieldsRequired, verr.Message)
		assert.Empty(t, storage.records)
		assert.Zero(t, buf.Len())
	}
}

func TestContactUsecaseFansOutToSinks(t *testing.T) {
	storage := &fakeContactStorage{}
	bot := &fakeBot{}
	notifier := NewTelegramNotifier(config.Telegram{NotifyChatIDs: []int64{10, 20}}, bot)
	contact := NewContactUsecase(
		ContactUsecaseDeps{
			Log:      zerolog.Nop(),
			Storage:  storage,
			Notifier: notifier,
			Now:      fixedNow,
		},
	)

	record, _, err := contact.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	require.Len(t, storage.records, 1)
	assert.Equal(t, record, storage.records[0])
	require.Len(t, bot.sent, 2)
	assert.Contains(t, bot.sent[0].Text, "Nimal")
	assert.Contains(t, bot.sent[0].Text, MessageContactNotificationTitle)
}

func TestContactUsecaseSinkFailure(t *testing.T) {
	storage := &fakeContactStorage{err: assert.AnError}
	contact := NewContactUsecase(ContactUsecaseDeps{Log: zerolog.Nop(), Storage: storage})

	_, _, err := contact.Submit(context.Background(), validSubmission())
	require.ErrorIs(t, err, ErrContactNotRecorded)
	require.ErrorIs(t, err, assert.AnError)
}

func TestTelegramNotifierCollectsErrors(t *testing.T) {
	bot := &fakeBot{err: assert.AnError}
	notifier := NewTelegramNotifier(config.Telegram{NotifyChatIDs: []int64{1, 2}}, bot)

	err := notifier.NotifyContact(context.Background(), model.ContactRecord{Submission: validSubmission()})
	require.ErrorIs(t, err, assert.AnError)
}
