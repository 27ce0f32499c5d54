package domain

import "time"

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusDeclined ConnectionStatus = "declined"
)

// Connection is a member-to-member networking link inside a chamber.
type Connection struct {
	ID          int32            `json:"id"`
	ChamberID   int32            `json:"chamber_id"`
	RequesterID int32            `json:"requester_id"`
	RecipientID int32            `json:"recipient_id"`
	Status      ConnectionStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

type Message struct {
	ID          int64      `json:"id"`
	ChamberID   int32      `json:"chamber_id"`
	SenderID    int32      `json:"sender_id"`
	RecipientID int32      `json:"recipient_id"`
	Body        string     `json:"body"`
	SentAt      time.Time  `json:"sent_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}
