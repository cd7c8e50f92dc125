package events

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// NewJSONMessage marshals payload into a message with a fresh UUID.
func NewJSONMessage(payload any) (*message.Message, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: marshal payload: %w", err)
	}
	return message.NewMessage(watermill.NewUUID(), b), nil
}

// DecodeJSON unmarshals a message payload into T. A payload that does not
// decode never will, so the error is Permanent.
func DecodeJSON[T any](msg *message.Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, Permanent(fmt.Errorf("events: decode message %s: %w", msg.UUID, err))
	}
	return v, nil
}
