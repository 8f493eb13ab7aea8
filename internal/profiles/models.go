package profiles

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Profile mirrors one identity-provider user. At most one row exists per
// identity key.
type Profile struct {
	bun.BaseModel `bun:"table:user_profiles,alias:up"`

	ID                    uuid.UUID `bun:",pk,type:uuid"                 json:"id"`
	IdentityKey           string    `bun:"identity_key,notnull,unique"   json:"identity_key"`
	Name                  *string   `bun:"name"                          json:"name,omitempty"`
	PreferredLanguageCode string    `bun:"preferred_language_code,notnull,default:'en'" json:"preferred_language_code"`
	CreatedAt             time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt             time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

func cloneProfile(src *Profile) *Profile {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Name != nil {
		name := *src.Name
		copied.Name = &name
	}
	return &copied
}
