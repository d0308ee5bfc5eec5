package domain

import "time"

// TicketType enumerates the supported ticket categories.
type TicketType string

const (
	TicketTypeGeneral TicketType = "general"
	TicketTypeDeputy  TicketType = "deputy"
	TicketTypeCommand TicketType = "command"
)

// TicketTypes returns every known type in display order.
func TicketTypes() []TicketType {
	return []TicketType{TicketTypeGeneral, TicketTypeDeputy, TicketTypeCommand}
}

// ParseTicketType maps a raw string onto the closed TicketType set.
func ParseTicketType(raw string) (TicketType, bool) {
	switch TicketType(raw) {
	case TicketTypeGeneral, TicketTypeDeputy, TicketTypeCommand:
		return TicketType(raw), true
	}
	return "", false
}

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen    TicketStatus = "OPEN"
	TicketStatusClaimed TicketStatus = "CLAIMED"
	TicketStatusClosed  TicketStatus = "CLOSED"
)

// TicketRecord is the authoritative per-ticket state, keyed by the channel
// the ticket lives in. The channel topic mirrors this record for human
// visibility and is only consulted to rebuild records after a restart.
type TicketRecord struct {
	ChannelID  string
	Type       TicketType
	Number     int
	CreatorID  string
	CreatorTag string
	ClaimerID  string
	ClaimerTag string
	Status     TicketStatus
	CreatedAt  time.Time
}
