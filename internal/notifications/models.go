package notifications

import (
	"encoding/json"
	"strconv"
	"time"

	"roomly/internal/bookings"

	"github.com/google/uuid"
)

// MessageKind tags the wire format for consumers.
type MessageKind string

const (
	KindBookingConfirmed MessageKind = "BOOKING_CONFIRMED"
)

// Message is the envelope published to the notification topic.
type Message struct {
	ID        uuid.UUID                  `json:"id"`
	Kind      MessageKind                `json:"kind"`
	Booking   bookings.ConfirmationEvent `json:"booking"`
	CreatedAt time.Time                  `json:"created_at"`
}

func NewBookingConfirmedMessage(event bookings.ConfirmationEvent) *Message {
	return &Message{
		ID:        uuid.New(),
		Kind:      KindBookingConfirmed,
		Booking:   event,
		CreatedAt: time.Now().UTC(),
	}
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageFromJSON(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// PartitionKey routes all of one user's notifications to one partition so
// they arrive in order.
func (m *Message) PartitionKey() string {
	return strconv.FormatUint(uint64(m.Booking.UserID), 10)
}
