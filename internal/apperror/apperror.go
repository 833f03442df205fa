// Package apperror defines the domain error conditions shared by the
// repository, workflow, and HTTP layers. Handlers translate these into
// redirects with a flash notice or JSON error bodies.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrNotOwner        = errors.New("not owner")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// AppError carries a user-facing message alongside the underlying
// condition so handlers can flash it verbatim.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(kind, name string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s %q not found", kind, name),
	}
}

func DuplicateName(kind, name string) *AppError {
	return &AppError{
		Err:     ErrDuplicateName,
		Message: fmt.Sprintf("%s '%s' already exists", kind, name),
	}
}

// NotOwner names the actual owner so the notice matches what the user
// sees: "You cannot edit this item. This item belongs to Bob".
func NotOwner(verb, kind, owner string) *AppError {
	return &AppError{
		Err:     ErrNotOwner,
		Message: fmt.Sprintf("You cannot %s this %s. This %s belongs to %s", verb, kind, kind, owner),
	}
}

// Message returns the user-facing message when err is an AppError,
// otherwise err.Error().
func Message(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
