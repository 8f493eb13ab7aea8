package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when a mutation needs an identity key
	// and none was supplied.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the caller does not own the record.
	ErrForbidden = errors.New("not allowed to modify this record")
)

// NotFoundError reports a missing record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// NotFound marks the error for IsNotFound.
func (e *NotFoundError) NotFound() bool { return true }

// IsNotFound reports whether any error in the chain marks a missing record.
func IsNotFound(err error) bool {
	var target interface{ NotFound() bool }
	return errors.As(err, &target) && target.NotFound()
}

// RequireIdentity returns ErrUnauthenticated for an empty key.
func RequireIdentity(key string) error {
	if key == "" {
		return ErrUnauthenticated
	}
	return nil
}

// ErrConflict is returned when the record's current state forbids the change.
var ErrConflict = errors.New("record state does not allow this change")
