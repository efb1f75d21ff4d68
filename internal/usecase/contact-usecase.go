package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

const (
	MessageAllFieldsRequired = "All fields are required"
	MessageContactThanks     = "Thank you! Our team will contact you soon."
)

type ContactStorage interface {
	SaveContact(ctx context.Context, record model.ContactRecord) error
}

type ContactNotifier interface {
	NotifyContact(ctx context.Context, record model.ContactRecord) error
}

// ContactUsecaseDeps: Log is always written; Storage and Notifier are
// optional and only run when set.
type ContactUsecaseDeps struct {
	Log      zerolog.Logger
	Storage  ContactStorage
	Notifier ContactNotifier
	Now      func() time.Time
}

type ContactUsecase struct {
	ContactUsecaseDeps
}

func NewContactUsecase(deps ContactUsecaseDeps) *ContactUsecase {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &ContactUsecase{
		ContactUsecaseDeps: deps,
	}
}

// Submit records one contact submission and returns the acknowledgement text.
func (c *ContactUsecase) Submit(ctx context.Context, submission model.ContactSubmission) (
	model.ContactRecord,
	string,
	error,
) {
	if !submission.Complete() {
		return model.ContactRecord{}, "", &ValidationError{Message: MessageAllFieldsRequired}
	}

	record := model.ContactRecord{
		ID:          uuid.New(),
		Submission:  submission,
		SubmittedAt: c.Now().UTC(),
	}

	c.Log.Info().
		Str("id", record.ID.String()).
		Dict(
			"submission", zerolog.Dict().
				Str("name", submission.Name).
				Str("email", submission.Email).
				Str("message", submission.Message),
		).
		Str("timestamp", record.SubmittedAt.Format(time.RFC3339Nano)).
		Msg("📧 Contact Form Submission")

	p := pool.New().WithContext(ctx)
	if c.Storage != nil {
		p.Go(
			func(ctx context.Context) error {
				if err := c.Storage.SaveContact(ctx, record); err != nil {
					return fmt.Errorf("failed to save contact %s: %w", record.ID, err)
				}
				return nil
			},
		)
	}
	if c.Notifier != nil {
		p.Go(
			func(ctx context.Context) error {
				if err := c.Notifier.NotifyContact(ctx, record); err != nil {
					return fmt.Errorf("failed to notify about contact %s: %w", record.ID, err)
				}
				return nil
			},
		)
	}
	if err := p.Wait(); err != nil {
		return model.ContactRecord{}, "", fmt.Errorf("%w: %w", ErrContactNotRecorded, err)
	}
	return record, MessageContactThanks, nil
}
