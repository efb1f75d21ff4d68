package key_value

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
	"github.com/redis/go-redis/v9"
)

const contactsListKey = "contacts"

var (
	ErrContactDoesNotExist = errors.New("contact does not exist")
	ErrInvalidLimit        = errors.New("limit must be positive")
)

type contactInternal struct {
	ContactID   string `json:"contact_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Message     string `json:"message"`
	SubmittedAt string `json:"submitted_at"`
}

type ContactStorage struct {
	rdb *redis.Client
}

func NewContactStorage(rdb *redis.Client) *ContactStorage {
	return &ContactStorage{
		rdb: rdb,
	}
}

// SaveContact stores the record under its own key and pushes its id onto the
// contacts list in one transaction.
func (c *ContactStorage) SaveContact(ctx context.Context, record model.ContactRecord) error {
	contactInt := toContactInternal(record)
	contactIntJSON, err := json.Marshal(contactInt)
	if err != nil {
		return fmt.Errorf("failed to marshal internal contact: %w", err)
	}
	contactKey := getContactKey(record.ID)
	_, err = c.rdb.TxPipelined(
		ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, contactKey, contactIntJSON, 0)
			pipe.LPush(ctx, contactsListKey, record.ID.String())
			return nil
		},
	)
	if err != nil {
		return fmt.Errorf("failed to save contact %s: %w", contactKey, err)
	}
	return nil
}

func (c *ContactStorage) GetContact(ctx context.Context, contactID uuid.UUID) (model.ContactRecord, error) {
	contactKey := getContactKey(contactID)
	contactRaw, err := c.rdb.Get(ctx, contactKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ContactRecord{}, ErrContactDoesNotExist
		}
		return model.ContactRecord{}, fmt.Errorf("failed to get contact %s: %w", contactID, err)
	}
	var contactInt contactInternal
	if err = json.Unmarshal([]byte(contactRaw), &contactInt); err != nil {
		return model.ContactRecord{}, fmt.Errorf("failed to unmarshal contact %s: %w", contactID, err)
	}
	return fromContactInternal(contactInt)
}

// ListContacts returns up to limit records, newest first.
func (c *ContactStorage) ListContacts(ctx context.Context, limit int64) ([]model.ContactRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	ids, err := c.rdb.LRange(ctx, contactsListKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	records := make([]model.ContactRecord, 0, len(ids))
	for _, idStr := range ids {
		contactID, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse contactID %s: %w", idStr, err)
		}
		record, err := c.GetContact(ctx, contactID)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func toContactInternal(record model.ContactRecord) contactInternal {
	return contactInternal{
		ContactID:   record.ID.String(),
		Name:        record.Submission.Name,
		Email:       record.Submission.Email,
		Message:     record.Submission.Message,
		SubmittedAt: record.SubmittedAt.Format(time.RFC3339Nano),
	}
}

func fromContactInternal(contactInt contactInternal) (model.ContactRecord, error) {
	contactID, err := uuid.Parse(contactInt.ContactID)
	if err != nil {
		return model.ContactRecord{}, fmt.Errorf("failed to parse contact id %s: %w", contactInt.ContactID, err)
	}
	submittedAt, err := time.Parse(time.RFC3339Nano, contactInt.SubmittedAt)
	if err != nil {
		return model.ContactRecord{}, fmt.Errorf("failed to parse contact time %s: %w", contactInt.SubmittedAt, err)
	}
	return model.ContactRecord{
		ID: contactID,
		Submission: model.ContactSubmission{
			Name:    contactInt.Name,
			Email:   contactInt.Email,
			Message: contactInt.Message,
		},
		SubmittedAt: submittedAt,
	}, nil
}

func getContactKey(contactID uuid.UUID) string {
	return fmt.Sprintf("contact_%v", contactID.String())
}
