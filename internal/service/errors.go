package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a missing or empty required field.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a uniqueness conflict on registration.
	ErrConflict = errors.New("already exists")
	// ErrUsernameTaken is returned when the requested username is in use.
	ErrUsernameTaken = fmt.Errorf("username %w", ErrConflict)
	// ErrEmailTaken is returned when the requested email is in use.
	ErrEmailTaken = fmt.Errorf("email %w", ErrConflict)
	// ErrInvalidCredentials indicates that provided login credentials are
	// incorrect. It deliberately does not distinguish an unknown identifier
	// from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated indicates a protected operation was attempted
	// without a valid session.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// PartialWriteError reports a multi-row submit that failed after some rows
// were already committed. The store holds Inserted of Total rows; there is
// no rollback.
type PartialWriteError struct {
	Inserted int
	Total    int
	Err      error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write: %d of %d rows committed: %v", e.Inserted, e.Total, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
