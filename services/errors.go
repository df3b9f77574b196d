package services

import "fmt"

// ValidationError indicates malformed or missing input. Never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ConflictError indicates a unique-constraint or referential-protection
// violation (duplicate identification number, case-number retries exhausted,
// deleting a client that still has cases).
type ConflictError struct {
	Resource string
	Message  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Resource, e.Message)
}

// NotFoundError indicates the target entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// PermissionError indicates the caller lacks rights for a mutating operation.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

// StateError indicates an invalid state transition, e.g. closing a case that
// is already cerrado.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}
