package service

import (
	"encoding/json"

	"github.com/Azis2405/wpdev-copy-button/internal/app/model"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// copyMessage is the JetStream envelope for a copy event. MsgID lets the
// consumer drop redeliveries.
type copyMessage struct {
	MsgID string          `json:"msg_id"`
	Event model.CopyEvent `json:"event"`
}

// EventPublisher publishes copy events to the JetStream copy stream.
type EventPublisher struct {
	js nats.JetStreamContext
}

// NewEventPublisher creates a copy event publisher.
func NewEventPublisher(js nats.JetStreamContext) *EventPublisher {
	return &EventPublisher{js: js}
}

// Publish sends one event to the stream.
func (p *EventPublisher) Publish(event model.CopyEvent) error {
	msg := copyMessage{
		MsgID: uuid.New().String(),
		Event: event,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	_, err = p.js.Publish(model.CopyStreamSubject, data)
	return err
}
