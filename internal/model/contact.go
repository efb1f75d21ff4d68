package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Complete reports whether every field carries text.
func (c ContactSubmission) Complete() bool {
	return c.Name != "" && c.Email != "" && c.Message != ""
}

// Blank reports whether any field is empty after trimming spaces.
func (c ContactSubmission) Blank() bool {
	return strings.TrimSpace(c.Name) == "" ||
		strings.TrimSpace(c.Email) == "" ||
		strings.TrimSpace(c.Message) == ""
}

// ContactRecord is a submission accepted by the contact endpoint.
type ContactRecord struct {
	ID          uuid.UUID
	Submission  ContactSubmission
	SubmittedAt time.Time
}
