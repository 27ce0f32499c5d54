package domain

import "time"

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
)

type Event struct {
	ID              int32       `json:"id"`
	ChamberID       int32       `json:"chamber_id"`
	CreatedByUserID int32       `json:"created_by_user_id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Location        string      `json:"location"`
	StartsAt        time.Time   `json:"starts_at"`
	EndsAt          time.Time   `json:"ends_at"`
	Capacity        int32       `json:"capacity"` // 0 = unlimited seats
	Status          EventStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	RegisteredCount int32       `json:"registered_count,omitempty"`
}

type EventRegistration struct {
	ID           int32      `json:"id"`
	EventID      int32      `json:"event_id"`
	UserID       int32      `json:"user_id"`
	RegisteredAt time.Time  `json:"registered_at"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
}
