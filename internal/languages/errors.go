package languages

import (
	"errors"
	"fmt"
)

var (
	ErrCodeRequired = errors.New("languages: code is required")
	ErrNameRequired = errors.New("languages: name is required")
)

// NotFoundError reports a missing language row.
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

// NotFound marks the error as a missing record for HTTP mapping.
func (e *NotFoundError) NotFound() bool { return true }
