package events

import (
	"encoding/json"
	"fmt"
	"time"

	"leo-chat/internal/domain/message"
)

// Envelope is the wire form of a broadcast event. Participants lets every instance
// route the event to the right live subscribers without decoding the payload.
type Envelope struct {
	Event        string          `json:"event"`
	OccurredAt   time.Time       `json:"occurredAt"`
	Participants []string        `json:"participants,omitempty"`
	Payload      json.RawMessage `json:"payload"`
}

func NewEnvelope(event string, payload interface{}, participants ...string) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %q payload: %w", event, err)
	}
	return json.Marshal(Envelope{
		Event:        event,
		OccurredAt:   time.Now().UTC(),
		Participants: participants,
		Payload:      data,
	})
}

// NewMessageEnvelope wraps m for the two users of its conversation.
func NewMessageEnvelope(event string, m message.Message) ([]byte, error) {
	return NewEnvelope(event, m, m.SenderUsername, m.ReceiverUsername)
}

// ParticipantsOf reads the participants of an encoded envelope. Payloads that are
// not envelopes have none.
func ParticipantsOf(data []byte) []string {
	var head struct {
		Participants []string `json:"participants"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil
	}
	return head.Participants
}
