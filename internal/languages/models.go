package languages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Language is one supported UI locale. Rows are managed by operators; the
// application only reads them.
type Language struct {
	bun.BaseModel `bun:"table:languages,alias:lang"`

	ID         uuid.UUID `bun:",pk,type:uuid"                json:"id"`
	Code       string    `bun:"code,notnull,unique"          json:"code"`
	Name       string    `bun:"name,notnull"                 json:"name"`
	NativeName *string   `bun:"native_name"                  json:"native_name,omitempty"`
	IsDefault  bool      `bun:"is_default,notnull,default:false" json:"is_default"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

func cloneLanguage(src *Language) *Language {
	if src == nil {
		return nil
	}
	copied := *src
	if src.NativeName != nil {
		native := *src.NativeName
		copied.NativeName = &native
	}
	return &copied
}
