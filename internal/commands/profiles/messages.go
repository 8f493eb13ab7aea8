package profilescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const syncProfileMessageType = "agriconnect.profiles.sync"

// SyncProfileCommand creates the profile for an identity announced by the
// identity provider. Existing profiles are left untouched.
type SyncProfileCommand struct {
	IdentityKey string `json:"identity_key"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
}

// Type implements command.Message.
func (SyncProfileCommand) Type() string { return syncProfileMessageType }

// Validate ensures the identity key is present.
func (cmd SyncProfileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.IdentityKey, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("agriconnect.profiles.sync.identity_required", "identity key is required")
			}
			return nil
		})),
	)
}

// DisplayName joins the first and last names, or returns "" when both are blank.
func (cmd SyncProfileCommand) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(cmd.FirstName) + " " + strings.TrimSpace(cmd.LastName))
}
