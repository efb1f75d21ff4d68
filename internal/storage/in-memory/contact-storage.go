package in_memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
)

var (
	ErrContactDoesNotExist = errors.New("contact does not exist")
	ErrContactExists       = errors.New("contact already exists")
)

type ContactStorage struct {
	mu       sync.RWMutex
	contacts map[uuid.UUID]model.ContactRecord
	order    []uuid.UUID
}

func NewContactStorage() *ContactStorage {
	return &ContactStorage{
		contacts: make(map[uuid.UUID]model.ContactRecord),
	}
}

func (c *ContactStorage) SaveContact(_ context.Context, record model.ContactRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.contacts[record.ID]; ok {
		return ErrContactExists
	}
	c.contacts[record.ID] = record
	c.order = append(c.order, record.ID)
	return nil
}

func (c *ContactStorage) GetContact(_ context.Context, contactID uuid.UUID) (model.ContactRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	record, ok := c.contacts[contactID]
	if !ok {
		return model.ContactRecord{}, ErrContactDoesNotExist
	}
	return record, nil
}

// ListContacts returns records newest first.
func (c *ContactStorage) ListContacts(_ context.Context) ([]model.ContactRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	records := make([]model.ContactRecord, 0, len(c.order))
	for i := len(c.order) - 1; i >= 0; i-- {
		records = append(records, c.contacts[c.order[i]])
	}
	return records, nil
}
