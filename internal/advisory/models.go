package advisory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Kind selects one of the two advisory content tables.
type Kind string

const (
	KindCropAdvisory Kind = "crop-advisory"
	KindPostHarvest  Kind = "post-harvest"
)

// ParseKind accepts the kind names and their table names.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(KindCropAdvisory), "advisory", "advisory_content":
		return KindCropAdvisory, nil
	case string(KindPostHarvest), "post-harvest-guidance", "post_harvest_content":
		return KindPostHarvest, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, value)
}

// Table returns the table backing the kind.
func (k Kind) Table() string {
	if k == KindPostHarvest {
		return "post_harvest_content"
	}
	return "advisory_content"
}

// Content is one localized article. Both kinds share this shape.
type Content struct {
	bun.BaseModel `bun:"table:advisory_content,alias:ac"`

	ID           uuid.UUID `bun:",pk,type:uuid"         json:"id"`
	TopicKey     string    `bun:"topic_key,notnull"     json:"topic_key"`
	LanguageCode string    `bun:"language_code,notnull" json:"language_code"`
	Title        string    `bun:"title,notnull"         json:"title"`
	BodyText     string    `bun:"body_text,notnull"     json:"body_text"`
	CategoryKey  *string   `bun:"category_key"          json:"category_key,omitempty"`
	ImageURL     *string   `bun:"image_url"             json:"image_url,omitempty"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	BodyHTML string `bun:"-" json:"body_html,omitempty"`
}

// Topic is the list view of an article.
type Topic struct {
	TopicKey    string  `json:"topic_key"`
	Title       string  `json:"title"`
	CategoryKey *string `json:"category_key,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

func (c *Content) topic() Topic {
	return Topic{
		TopicKey:    c.TopicKey,
		Title:       c.Title,
		CategoryKey: c.CategoryKey,
		ImageURL:    c.ImageURL,
	}
}

func cloneContent(src *Content) *Content {
	if src == nil {
		return nil
	}
	copied := *src
	if src.CategoryKey != nil {
		category := *src.CategoryKey
		copied.CategoryKey = &category
	}
	if src.ImageURL != nil {
		image := *src.ImageURL
		copied.ImageURL = &image
	}
	return &copied
}
