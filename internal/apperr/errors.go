package apperr

import "fmt"

// ValidationError reports malformed or insufficient caller input. Recoverable
// by the caller, never retried.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// MalformedResponseError means the model's raw text could not be decoded into
// structured data even after wrapper cleanup. Cleaned carries the text as it
// looked when decoding was attempted, for diagnostics.
type MalformedResponseError struct {
	Cleaned string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return "malformed model response: " + e.Err.Error()
	}
	return "malformed model response"
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func NewMalformedResponse(cleaned string, err error) *MalformedResponseError {
	return &MalformedResponseError{Cleaned: cleaned, Err: err}
}

// InvalidShapeError means decoded model output is missing a required field or
// violates a cardinality/range contract. Field names what was missing or
// malformed.
type InvalidShapeError struct {
	Field   string
	Message string
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("invalid generation shape: %s: %s", e.Field, e.Message)
}

func NewInvalidShape(field, msg string) *InvalidShapeError {
	return &InvalidShapeError{Field: field, Message: msg}
}

// NotFoundError reports a missing entity. Resource is the entity kind, e.g.
// "article" or "reading level".
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// StorageError wraps a failure from the persistence backend.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
