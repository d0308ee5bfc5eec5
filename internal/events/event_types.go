package events

import (
	"time"

	"github.com/spec-kit/ticket-bot/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketClaimed   EventType = "ticket_claimed"
	EventTicketClosed    EventType = "ticket_closed"
	EventTranscriptSaved EventType = "transcript_saved"
)

// Event represents a lifecycle event emitted by the ticket service.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	ChannelID string            `json:"channel_id"`
	Ticket    domain.TicketType `json:"ticket_type"`
	Number    int               `json:"number"`
	ActorID   string            `json:"actor_id,omitempty"`
	ActorTag  string            `json:"actor_tag,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
