package webhooks

import (
	"encoding/json"
	"fmt"

	"github.com/agriconnect/agriconnect/internal/validation"
)

const EventUserCreated = "user.created"

var envelopeSchema = validation.MustCompile(map[string]any{
	"type":     "object",
	"required": []any{"type", "data"},
	"properties": map[string]any{
		"type": map[string]any{"type": "string", "minLength": 1},
		"data": map[string]any{"type": "object"},
	},
	"if": map[string]any{
		"properties": map[string]any{
			"type": map[string]any{"const": EventUserCreated},
		},
	},
	"then": map[string]any{
		"properties": map[string]any{
			"data": map[string]any{
				"required": []any{"id"},
				"properties": map[string]any{
					"id":         map[string]any{"type": "string", "minLength": 1},
					"first_name": map[string]any{"type": []any{"string", "null"}},
					"last_name":  map[string]any{"type": []any{"string", "null"}},
				},
			},
		},
	},
})

// Event is the envelope shared by identity provider deliveries.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// UserData is the subset of a user object read from user.* events.
type UserData struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// ParseEvent validates raw against the envelope schema and decodes it.
func ParseEvent(raw []byte) (Event, error) {
	if _, err := envelopeSchema.ValidateJSON(raw); err != nil {
		return Event{}, err
	}
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return Event{}, fmt.Errorf("webhooks: decode event: %w", err)
	}
	return event, nil
}

// User decodes the data of a user event.
func (e Event) User() (UserData, error) {
	var user UserData
	if err := json.Unmarshal(e.Data, &user); err != nil {
		return UserData{}, fmt.Errorf("webhooks: decode user data: %w", err)
	}
	return user, nil
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
