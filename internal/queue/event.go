// Package queue defines the domain events exchanged over the message broker
// and the background consumer that fans them out into notifications.
package queue

// EventsQueueName is the durable queue carrying all domain events.
const EventsQueueName = "linkedweld.events"

// Event types.
const (
	TypeUserRegistered       = "user.registered"
	TypeApplicationSubmitted = "application.submitted"
)

// Event is the envelope published to the broker. Exactly one payload field
// is set, matching Type.
type Event struct {
	Type                 string                     `json:"type"`
	UserRegistered       *UserRegisteredEvent       `json:"user_registered,omitempty"`
	ApplicationSubmitted *ApplicationSubmittedEvent `json:"application_submitted,omitempty"`
}

// UserRegisteredEvent is published after a successful registration. The
// consumer writes the welcome notification and delivers the verification
// code out-of-band. Registration never waits for either.
type UserRegisteredEvent struct {
	UserID           uint64 `json:"user_id"`
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	VerificationCode string `json:"verification_code"`
	RegisteredAt     string `json:"registered_at"`
}

// ApplicationSubmittedEvent is published after a successful job
// application.
type ApplicationSubmittedEvent struct {
	ApplicationID uint64 `json:"application_id"`
	UserID        uint64 `json:"user_id"`
	JobID         uint64 `json:"job_id"`
	JobTitle      string `json:"job_title"`
	Company       string `json:"company"`
	SubmittedAt   string `json:"submitted_at"`
}
