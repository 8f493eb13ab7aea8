package profiles

import (
	"errors"
	"fmt"
)

var (
	ErrIdentityKeyRequired = errors.New("profiles: identity key is required")
	ErrLanguageRequired    = errors.New("profiles: preferred language code is required")
)

// NotFoundError reports that no profile exists for an identity key.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile for identity %q not found", e.Key)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// NotFound marks the error as a missing record for HTTP mapping.
func (e *NotFoundError) NotFound() bool { return true }
