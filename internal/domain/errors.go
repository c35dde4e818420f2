package domain

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// ValidationError carries a human readable reason for a rejected request.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConflictError is returned when a uniqueness rule would be broken.
// It matches ErrConflict with errors.Is.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func Invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

func Conflict(reason string) error {
	return &ConflictError{Reason: reason}
}

// Reason returns the client facing message carried by err, if any.
func Reason(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Reason
	}
	return ""
}
