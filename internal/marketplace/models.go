package marketplace

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Status is the lifecycle state of a listing.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
	StatusDelisted  Status = "delisted"
)

// Valid reports whether s is a known listing status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusDelisted:
		return true
	}
	return false
}

// Listing is produce offered for sale by a seller.
type Listing struct {
	bun.BaseModel `bun:"table:produce_listings,alias:pl"`

	ID          uuid.UUID `bun:",pk,type:uuid"                    json:"id"`
	SellerKey   string    `bun:"seller_key,notnull"               json:"seller_key"`
	CropType    string    `bun:"crop_type,notnull"                json:"crop_type"`
	Quantity    float64   `bun:"quantity,notnull"                 json:"quantity"`
	Price       float64   `bun:"price,notnull"                    json:"price"`
	Description *string   `bun:"description"                      json:"description,omitempty"`
	Status      Status    `bun:"status,notnull,default:'available'" json:"status"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// ListFilter narrows List results. Empty fields match everything.
type ListFilter struct {
	SellerKey string
	Status    Status
}

func cloneListing(src *Listing) *Listing {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Description != nil {
		description := *src.Description
		copied.Description = &description
	}
	return &copied
}
