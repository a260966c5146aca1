package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuestion signals a blank question.
	ErrEmptyQuestion = errors.New("question is empty")
	// ErrInvalidLanguage signals a forced language outside the supported set.
	ErrInvalidLanguage = errors.New("unsupported language")
	// ErrCollaborator signals a failed call to an external language model.
	ErrCollaborator = errors.New("collaborator error")
	// ErrDataIntegrity signals a malformed knowledge dataset.
	ErrDataIntegrity = errors.New("data integrity violation")
	// ErrVectorIndex signals a failure of the external vector index.
	ErrVectorIndex = errors.New("vector index error")
	// ErrVectorIndexDisabled signals that no vector index is configured.
	ErrVectorIndexDisabled = errors.New("vector index disabled")
)

// CollaboratorError wraps ErrCollaborator with the upstream status and message.
type CollaboratorError struct {
	Op      string
	Status  int
	Message string
}

func (e *CollaboratorError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s: status %d: %s", ErrCollaborator.Error(), e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrCollaborator.Error(), e.Op, e.Message)
}

func (e *CollaboratorError) Unwrap() error { return ErrCollaborator }

// NewCollaboratorError creates a collaborator error.
func NewCollaboratorError(op string, status int, message string) error {
	return &CollaboratorError{Op: op, Status: status, Message: message}
}

// IntegrityError wraps ErrDataIntegrity with the offending record.
type IntegrityError struct {
	Source string
	Record string
	Reason string
}

func (e *IntegrityError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("%s: %s: %s", ErrDataIntegrity.Error(), e.Source, e.Reason)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", ErrDataIntegrity.Error(), e.Source, e.Record, e.Reason)
}

func (e *IntegrityError) Unwrap() error { return ErrDataIntegrity }

// NewIntegrityError creates a data integrity error.
func NewIntegrityError(source, record, reason string) error {
	return &IntegrityError{Source: source, Record: record, Reason: reason}
}
