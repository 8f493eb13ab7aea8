package feedback

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Entry is a piece of user feedback. Anonymous visitors may submit too.
type Entry struct {
	bun.BaseModel `bun:"table:user_feedback,alias:uf"`

	ID          uuid.UUID `bun:",pk,type:uuid"  json:"id"`
	UserKey     *string   `bun:"user_key"       json:"user_key,omitempty"`
	Rating      *int      `bun:"rating"         json:"rating,omitempty"`
	Comments    string    `bun:"comments,notnull" json:"comments"`
	PageContext *string   `bun:"page_context"   json:"page_context,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

func cloneEntry(src *Entry) *Entry {
	if src == nil {
		return nil
	}
	copied := *src
	if src.UserKey != nil {
		key := *src.UserKey
		copied.UserKey = &key
	}
	if src.Rating != nil {
		rating := *src.Rating
		copied.Rating = &rating
	}
	if src.PageContext != nil {
		page := *src.PageContext
		copied.PageContext = &page
	}
	return &copied
}
