package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RequestStatus tracks a transport request through pickup and delivery.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusAccepted  RequestStatus = "accepted"
	StatusInTransit RequestStatus = "in_transit"
	StatusCompleted RequestStatus = "completed"
	StatusCancelled RequestStatus = "cancelled"
)

var requestStatuses = []any{StatusPending, StatusAccepted, StatusInTransit, StatusCompleted, StatusCancelled}

// Request is a farmer's request to move produce.
type Request struct {
	bun.BaseModel `bun:"table:transport_requests,alias:tr"`

	ID                  uuid.UUID     `bun:",pk,type:uuid"                    json:"id"`
	FarmerKey           string        `bun:"farmer_key,notnull"               json:"farmer_key"`
	ProduceType         string        `bun:"produce_type,notnull"             json:"produce_type"`
	Quantity            string        `bun:"quantity,notnull"                 json:"quantity"`
	PickupLocation      string        `bun:"pickup_location,notnull"          json:"pickup_location"`
	DestinationLocation string        `bun:"destination_location,notnull"     json:"destination_location"`
	DateNeeded          string        `bun:"date_needed,notnull"              json:"date_needed"`
	Status              RequestStatus `bun:"status,notnull,default:'pending'" json:"status"`
	CreatedAt           time.Time     `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt           time.Time     `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Transporter is a carrier offering pickup services.
type Transporter struct {
	bun.BaseModel `bun:"table:transporters,alias:tp"`

	ID           uuid.UUID `bun:",pk,type:uuid"  json:"id"`
	Name         string    `bun:"name,notnull"   json:"name"`
	ContactInfo  *string   `bun:"contact_info"   json:"contact_info,omitempty"`
	ServiceAreas *string   `bun:"service_areas"  json:"service_areas,omitempty"`
	Capacity     *string   `bun:"capacity"       json:"capacity,omitempty"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// RequestFilter narrows request listings. Empty fields match everything.
type RequestFilter struct {
	FarmerKey string
	Status    RequestStatus
}

func cloneRequest(src *Request) *Request {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}

func cloneTransporter(src *Transporter) *Transporter {
	if src == nil {
		return nil
	}
	copied := *src
	for _, field := range []**string{&copied.ContactInfo, &copied.ServiceAreas, &copied.Capacity} {
		if *field != nil {
			value := **field
			*field = &value
		}
	}
	return &copied
}
