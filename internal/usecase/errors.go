package usecase

import "errors"

var (
	ErrUpstream           = errors.New("completion provider failed")
	ErrEmptyCompletion    = errors.New("completion has no content")
	ErrContactNotRecorded = errors.New("contact submission not recorded")
)

// ValidationError is a client mistake. Message is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
