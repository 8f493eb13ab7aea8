package webhooks

import (
	"errors"
	"net/http"
	"strings"

	svix "github.com/svix/svix-webhooks/go"
)

// ErrSecretRequired is returned when no signing secret is configured.
var ErrSecretRequired = errors.New("webhooks: signing secret is required")

// Verifier checks the signature of a delivery.
type Verifier interface {
	Verify(payload []byte, headers http.Header) error
}

// NewSvixVerifier returns a Verifier for svix-signed deliveries. secret is
// the "whsec_" value issued by the identity provider.
func NewSvixVerifier(secret string) (Verifier, error) {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return nil, ErrSecretRequired
	}
	wh, err := svix.NewWebhook(trimmed)
	if err != nil {
		return nil, err
	}
	return wh, nil
}
