// Package queue defines message payloads exchanged over the message broker.
package queue

// Message types carried on the guestlist.activity queue. Every
// payload carries its type so one durable queue can serve all
// activity consumers.
const (
	TypeRSVPSubmitted  = "rsvp.submitted"
	TypeGuestsImported = "guests.imported"
)

// RSVPSubmittedEvent is published when a guest submits or revises
// their reply on the public invite page. It contains enough
// information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type RSVPSubmittedEvent struct {
	Type           string `json:"type"`
	EventID        uint64 `json:"event_id"`
	EventName      string `json:"event_name"`
	GuestID        uint64 `json:"guest_id"`
	GuestName      string `json:"guest_name"`
	Status         string `json:"status"`
	AttendingCount int    `json:"attending_count"`
	SubmittedAt    string `json:"submitted_at"`
}

// GuestsImportedEvent is published after a CSV import lands a batch
// of guests for an event.
type GuestsImportedEvent struct {
	Type       string `json:"type"`
	EventID    uint64 `json:"event_id"`
	EventName  string `json:"event_name"`
	OwnerID    uint64 `json:"owner_id"`
	Count      int    `json:"count"`
	ImportedAt string `json:"imported_at"`
}
