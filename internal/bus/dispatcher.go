package bus

import (
	"encoding/json"
	"fmt"
	"time"
)

// NoteCreatedEvent describes a completed note for the notification
// consumer.
type NoteCreatedEvent struct {
	Email     string    `json:"email"`
	Folio     string    `json:"folio"`
	RFC       string    `json:"rfc"`
	OriginURL string    `json:"origin_url"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher is the outbound side of the bus.
type Publisher interface {
	Publish(msg Message) error
}

// Dispatcher publishes note lifecycle events. Callers treat publish
// failures as best-effort: the create-note saga logs and swallows them.
type Dispatcher struct {
	publisher Publisher
	topic     string
}

func NewDispatcher(publisher Publisher, topic string) *Dispatcher {
	return &Dispatcher{publisher: publisher, topic: topic}
}

// PublishNoteCreated emits the note-created event with routing attributes
// for downstream filtering.
func (d *Dispatcher) PublishNoteCreated(email, folio, rfc, originURL string) error {
	event := NoteCreatedEvent{
		Email:     email,
		Folio:     folio,
		RFC:       rfc,
		OriginURL: originURL,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal note-created event: %w", err)
	}

	return d.publisher.Publish(Message{
		Topic:   d.topic,
		Subject: fmt.Sprintf("Nueva Nota de Venta - %s", folio),
		Payload: payload,
		Attributes: map[string]string{
			"folio": folio,
			"rfc":   rfc,
			"email": email,
		},
	})
}
