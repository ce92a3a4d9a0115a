package events

import "time"

// Event types
const (
	UserRegistered     = "user.registered"
	UserProfileUpdated = "user.profile_updated"
)

// UserEventsStream is the Redis stream every user event is appended to.
const UserEventsStream = "user.events"

// Event is the envelope written to the stream under the "event" field.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserRegisteredEvent struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type UserProfileUpdatedEvent struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
}
