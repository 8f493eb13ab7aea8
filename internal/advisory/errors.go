package advisory

import "errors"

var (
	ErrUnknownKind      = errors.New("advisory: unknown content kind")
	ErrLanguageRequired = errors.New("advisory: language code is required")
	ErrTopicRequired    = errors.New("advisory: topic key is required")
)
