package prices

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MarketPrice is one day's quoted price for a crop at a market. Crop and
// market are translation keys resolved by the UI.
type MarketPrice struct {
	bun.BaseModel `bun:"table:market_prices,alias:mp"`

	ID            uuid.UUID `bun:",pk,type:uuid"           json:"id"`
	CropNameKey   string    `bun:"crop_name_key,notnull"   json:"crop_name_key"`
	MarketNameKey string    `bun:"market_name_key,notnull" json:"market_name_key"`
	Price         float64   `bun:"price,notnull"           json:"price"`
	Unit          string    `bun:"unit,notnull"            json:"unit"`
	PriceDate     time.Time `bun:"price_date,notnull"      json:"price_date"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Filter narrows List results. Empty fields match everything.
type Filter struct {
	Crop   string
	Market string
	Limit  int
}

const (
	columnCrop   = "crop_name_key"
	columnMarket = "market_name_key"
)
