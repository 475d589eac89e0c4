package messaging

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Event is the payload published for every world broadcast.
type Event struct {
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

type publisher interface {
	Publish(subject string, data []byte) error
}

// EventPublisher mirrors world broadcasts onto the message bus.
type EventPublisher struct {
	bus publisher
	now func() time.Time
}

func NewEventPublisher(bus publisher) *EventPublisher {
	return &EventPublisher{bus: bus, now: time.Now}
}

// Publish wraps data in an Event and sends it. Events raised before the bus
// is up are dropped.
func (p *EventPublisher) Publish(subject string, data []byte) error {
	payload, err := json.Marshal(Event{
		Subject: subject,
		Message: string(data),
		Time:    p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	err = p.bus.Publish(subject, payload)
	if errors.Is(err, ErrNotStarted) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("publishing %s: %w", subject, err)
	}
	return nil
}
